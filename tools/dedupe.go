package tools

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

// ErrSerialization is returned when tool arguments cannot be canonicalized
// for fingerprinting.
var ErrSerialization = errors.New("failed to serialize tool arguments")

// Deduplicator tracks completed tool runs so the same call with the same
// arguments is not executed twice within a run. It also supports cooldown
// windows and unique-use constraints keyed by arbitrary strings.
//
// Fingerprints are computed over the tool name and the canonical JSON form
// of the arguments, so argument key order does not matter.
type Deduplicator struct {
	mu        sync.Mutex
	hashes    map[uint64]struct{}
	cooldowns map[string]time.Time
	uniques   map[string]struct{}
}

// NewDeduplicator returns an empty Deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		hashes:    make(map[uint64]struct{}),
		cooldowns: make(map[string]time.Time),
		uniques:   make(map[string]struct{}),
	}
}

// Fingerprint returns a stable hash of the tool name and arguments.
// Two argument maps with the same keys and values produce the same
// fingerprint regardless of key order.
func Fingerprint(name string, args map[string]any) (uint64, error) {
	// json.Marshal sorts map keys, including nested maps, which gives
	// us the canonical form.
	data, err := json.Marshal(args)
	if err != nil {
		return 0, errors.WithMessage(ErrSerialization, err.Error())
	}
	d := xxhash.New()
	_, _ = d.WriteString(name)
	_, _ = d.Write([]byte{'|'})
	_, _ = d.Write(data)
	return d.Sum64(), nil
}

// IsDuplicate reports whether a run with the same name and arguments was
// already tracked. It does not modify the tracked set.
func (d *Deduplicator) IsDuplicate(name string, args map[string]any) (bool, error) {
	h, err := Fingerprint(name, args)
	if err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.hashes[h]
	return ok, nil
}

// TrackRun records a completed run. Only successful runs should be tracked,
// so a failed call can be retried with the same arguments.
func (d *Deduplicator) TrackRun(name string, args map[string]any) error {
	h, err := Fingerprint(name, args)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hashes[h] = struct{}{}
	return nil
}

// StartCooldown blocks the key until the duration elapses.
func (d *Deduplicator) StartCooldown(key string, duration time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cooldowns[key] = time.Now().Add(duration)
}

// IsOnCooldown reports whether the key is still within a cooldown window.
// Expired cooldowns are removed.
func (d *Deduplicator) IsOnCooldown(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.cooldowns[key]
	if !ok {
		return false
	}
	if time.Now().After(until) {
		delete(d.cooldowns, key)
		return false
	}
	return true
}

// MarkUnique marks the key as used, IsUnique returns true for it afterwards.
func (d *Deduplicator) MarkUnique(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.uniques[key] = struct{}{}
}

// IsUnique reports whether the key was marked as used.
func (d *Deduplicator) IsUnique(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.uniques[key]
	return ok
}

// RemoveUniqueConstraint clears the unique-use mark for the key.
func (d *Deduplicator) RemoveUniqueConstraint(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.uniques, key)
}
