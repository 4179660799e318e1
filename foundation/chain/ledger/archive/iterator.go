package archive

import (
	"errors"

	"github.com/seqlabs/starknode/foundation/chain/block"
)

// ErrNotFound is returned when the requested block or state update is not
// in the archive.
var ErrNotFound = errors.New("not found")

// iterator represents the iteration implementation for walking through the
// archived blocks in number order. This implements the ledger Iterator
// interface and is shared by every archive in this package.
type iterator struct {
	get  func(num uint64) (block.Data, error)
	next uint64
	eoc  bool
}

// Next retrieves the next block from the archive.
func (it *iterator) Next() (block.Data, error) {
	data, err := it.get(it.next)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			it.eoc = true
		}
		return block.Data{}, err
	}

	it.next++

	return data, nil
}

// Done returns the end of chain value.
func (it *iterator) Done() bool {
	return it.eoc
}
