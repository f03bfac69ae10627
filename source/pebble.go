package source

import (
	"github.com/cockroachdb/pebble"
)

// KV is one key/value pair produced by a Pebble range scan.
type KV struct {
	Key   []byte
	Value []byte
}

// PebbleSource adapts a Pebble iterator into a single-pass source of KV
// pairs. Key and value bytes are copied out of the iterator, so yielded
// items stay valid after the scan advances or closes.
type PebbleSource struct {
	iter    *pebble.Iterator
	started bool
	done    bool
	err     error
}

// PebbleScan opens a forward scan over [lower, upper). The returned source
// owns the iterator and closes it on exhaustion; call Close to release it
// early.
func PebbleScan(db *pebble.DB, lower, upper []byte) (*PebbleSource, error) {
	it, err := db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	return &PebbleSource{iter: it}, nil
}

// Next yields the next pair in key order, or ok=false once the range is
// exhausted or the iterator errors.
func (p *PebbleSource) Next() (KV, bool) {
	if p.done {
		return KV{}, false
	}
	var ok bool
	if !p.started {
		p.started = true
		ok = p.iter.First()
	} else {
		ok = p.iter.Next()
	}
	if !ok {
		p.err = p.iter.Error()
		p.done = true
		_ = p.iter.Close()
		return KV{}, false
	}
	kv := KV{
		Key:   append([]byte(nil), p.iter.Key()...),
		Value: append([]byte(nil), p.iter.Value()...),
	}
	return kv, true
}

// Err reports the iterator error that terminated the scan, if any.
func (p *PebbleSource) Err() error { return p.err }

// Close releases the iterator. Safe to call after exhaustion.
func (p *PebbleSource) Close() error {
	if p.done {
		return nil
	}
	p.done = true
	return p.iter.Close()
}
