package workload

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/benz9527/xcoll/lib/xlog"
)

// lsmOracle mirrors the rbtree round into an in-memory pebble instance.
// Pebble orders the byte keys on its own, so the ascending walk of the
// tree is checked against an independent ordered store.
type lsmOracle struct {
	db *pebble.DB
}

func openLSMOracle(logger xlog.XLogger) (*lsmOracle, error) {
	db, err := pebble.Open("", &pebble.Options{
		FS:         vfs.NewMem(),
		DisableWAL: true,
		Logger:     xlog.NewPebbleXLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("lsm oracle open: %w", err)
	}
	return &lsmOracle{db: db}, nil
}

// encodeLSMKey flips the sign bit so the big-endian bytes sort like the ints.
func encodeLSMKey(k int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(int64(k))^(1<<63))
	return b
}

func decodeLSMKey(b []byte) int {
	return int(int64(binary.BigEndian.Uint64(b) ^ (1 << 63)))
}

func (o *lsmOracle) set(k, v int) error {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, uint64(int64(v)))
	return o.db.Set(encodeLSMKey(k), val, pebble.NoSync)
}

func (o *lsmOracle) delete(k int) error {
	return o.db.Delete(encodeLSMKey(k), pebble.NoSync)
}

// compare walks the pebble iterator alongside seq and reports the first
// divergence.
func (o *lsmOracle) compare(seq iter.Seq2[int, int]) (string, error) {
	it, err := o.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return "", fmt.Errorf("lsm oracle iter: %w", err)
	}
	defer func() {
		_ = it.Close()
	}()

	idx, valid := 0, it.First()
	for k, v := range seq {
		if !valid {
			return fmt.Sprintf("entry %d (%d, %d) absent in lsm", idx, k, v), nil
		}
		lk, lv := decodeLSMKey(it.Key()), int(int64(binary.BigEndian.Uint64(it.Value())))
		if lk != k || lv != v {
			return fmt.Sprintf("entry %d is (%d, %d), lsm has (%d, %d)", idx, k, v, lk, lv), nil
		}
		idx++
		valid = it.Next()
	}
	if valid {
		return fmt.Sprintf("lsm has extra entry %d", decodeLSMKey(it.Key())), nil
	}
	return "", it.Error()
}

func (o *lsmOracle) close() error {
	if o == nil || o.db == nil {
		return nil
	}
	return o.db.Close()
}
