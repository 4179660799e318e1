package archive

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/seqlabs/starknode/foundation/chain/block"
	"github.com/seqlabs/starknode/foundation/chain/ledger"
	"github.com/seqlabs/starknode/foundation/chain/statediff"
)

// Bucket names for the two independently keyed stores.
var (
	bucketBlocks       = []byte("blocks")
	bucketStateUpdates = []byte("state_updates")
)

// Bolt represents the serialization implementation for storing blocks and
// state updates in a single bbolt file. Records are keyed by big endian
// block number so iteration order matches chain order.
type Bolt struct {
	db *bbolt.DB
}

// NewBolt constructs a Bolt archive backed by the specified file.
func NewBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening archive %q: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketBlocks); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketStateUpdates)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive buckets: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Close releases the underlying database file.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// Reset clears all archived data by dropping and recreating the buckets.
func (b *Bolt) Reset() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBlocks, bucketStateUpdates} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteBlock stores the specified block record keyed by its number.
func (b *Bolt) WriteBlock(data block.Data) error {
	val, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketBlocks).Put(numKey(data.Header.Number), val)
	})
}

// GetBlock returns the block record stored under the specified number.
func (b *Bolt) GetBlock(num uint64) (block.Data, error) {
	var data block.Data

	err := b.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket(bucketBlocks).Get(numKey(num))
		if val == nil {
			return fmt.Errorf("block %d: %w", num, ErrNotFound)
		}
		return json.Unmarshal(val, &data)
	})
	if err != nil {
		return block.Data{}, err
	}

	return data, nil
}

// WriteStateUpdate stores the state update under the specified block number.
func (b *Bolt) WriteStateUpdate(num uint64, su statediff.StateUpdate) error {
	val, err := json.Marshal(su)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketStateUpdates).Put(numKey(num), val)
	})
}

// GetStateUpdate returns the state update stored under the specified number.
func (b *Bolt) GetStateUpdate(num uint64) (statediff.StateUpdate, error) {
	var su statediff.StateUpdate

	err := b.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket(bucketStateUpdates).Get(numKey(num))
		if val == nil {
			return fmt.Errorf("state update %d: %w", num, ErrNotFound)
		}
		return json.Unmarshal(val, &su)
	})
	if err != nil {
		return statediff.StateUpdate{}, err
	}

	return su, nil
}

// ForEach returns an iterator to walk through the archived blocks starting
// with block number 0.
func (b *Bolt) ForEach() ledger.Iterator {
	return &iterator{get: b.GetBlock}
}

// numKey forms the big endian key for the specified block number.
func numKey(num uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, num)
	return key
}
