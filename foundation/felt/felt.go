// Package felt provides the field element type used for every scalar value
// on the chain: hashes, contract addresses, storage keys, calldata, roots.
package felt

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Felt represents an element of the Stark base field. The zero value is a
// valid element and is used as the placeholder value in partial commitments.
// Felt is comparable and can be used as a map key.
type Felt struct {
	inner fp.Element
}

// Zero is the zero field element.
var Zero = Felt{}

// FromUint64 constructs a field element from the specified integer.
func FromUint64(v uint64) Felt {
	var f Felt
	f.inner.SetUint64(v)
	return f
}

// FromBytes constructs a field element from a big-endian byte slice. The
// value is reduced modulo the field order.
func FromBytes(b []byte) Felt {
	var f Felt
	f.inner.SetBytes(b)
	return f
}

// FromString constructs a field element from a 0x prefixed hex string.
func FromString(s string) (Felt, error) {
	v, err := hexutil.DecodeBig(s)
	if err != nil {
		return Felt{}, fmt.Errorf("invalid felt %q: %w", s, err)
	}

	var f Felt
	f.inner.SetBigInt(v)
	return f, nil
}

// FromShortString encodes up to 31 ASCII bytes as a field element. This is
// how chain identifiers are represented on Starknet.
func FromShortString(s string) (Felt, error) {
	if len(s) > 31 {
		return Felt{}, fmt.Errorf("short string %q exceeds 31 bytes", s)
	}

	return FromBytes([]byte(s)), nil
}

// FromElement constructs a Felt from a raw field element, typically the
// result of a pedersen hash.
func FromElement(e fp.Element) Felt {
	return Felt{inner: e}
}

// Element returns the underlying field representation for use with the
// pedersen hash functions.
func (f *Felt) Element() *fp.Element {
	return &f.inner
}

// IsZero reports whether the element is the zero value.
func (f Felt) IsZero() bool {
	return f.inner.IsZero()
}

// Equal reports whether two elements represent the same value.
func (f Felt) Equal(other Felt) bool {
	return f.inner.Equal(&other.inner)
}

// Bytes returns the 32 byte big-endian representation.
func (f Felt) Bytes() [32]byte {
	return f.inner.Bytes()
}

// BigInt returns the element as a big integer.
func (f Felt) BigInt() *big.Int {
	return f.inner.BigInt(new(big.Int))
}

// String returns the canonical 0x prefixed hex form without leading zeros.
func (f Felt) String() string {
	return hexutil.EncodeBig(f.BigInt())
}

// MarshalText implements encoding.TextMarshaler so felts serialize as hex
// strings in JSON values and map keys.
func (f Felt) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Felt) UnmarshalText(data []byte) error {
	v, err := FromString(string(data))
	if err != nil {
		return err
	}

	*f = v
	return nil
}
