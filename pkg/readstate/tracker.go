// Package readstate tracks which announcements a viewer has already seen.
//
// The read set is a list of announcement ids persisted as a JSON array under a
// single storage key. It is owned by the client, never sent to the server and
// never pruned. Both the embeddable widget and the in-product preview use the
// same Tracker so their unread counts agree.
package readstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Key is the storage key holding the read set.
const Key = "announcements-read"

// ErrCorruptState is returned by New when the stored value is not a JSON array
// of strings. The tracker returned alongside it is empty and usable; the next
// mutation overwrites the bad value.
var ErrCorruptState = errors.New("readstate: stored read set is corrupt")

// Tracker is a concurrency-safe read set backed by a Storage.
// Every mutation persists the whole set before returning.
type Tracker struct {
	mu      sync.Mutex
	storage Storage
	read    map[string]struct{}
	order   []string
}

// New loads the read set from storage.
func New(storage Storage) (*Tracker, error) {
	if storage == nil {
		return nil, errors.New("readstate: storage is required")
	}
	t := &Tracker{storage: storage, read: make(map[string]struct{})}

	raw, ok, err := storage.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("readstate: load: %w", err)
	}
	if !ok || raw == "" {
		return t, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return t, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	for _, id := range ids {
		t.add(id)
	}
	return t, nil
}

func (t *Tracker) add(id string) bool {
	if _, ok := t.read[id]; ok {
		return false
	}
	t.read[id] = struct{}{}
	t.order = append(t.order, id)
	return true
}

// IsRead reports whether id is in the read set.
func (t *Tracker) IsRead(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.read[id]
	return ok
}

// MarkRead adds id to the read set and persists it. Marking an id that is
// already read changes nothing and writes nothing.
func (t *Tracker) MarkRead(id string) error {
	return t.MarkAllRead([]string{id})
}

// MarkAllRead adds every id in one read-modify-write and a single persisted update.
func (t *Tracker) MarkAllRead(ids []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	added := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if t.add(id) {
			added = append(added, id)
		}
	}
	if len(added) == 0 {
		return nil
	}
	if err := t.persist(); err != nil {
		// keep memory consistent with what is stored
		for _, id := range added {
			delete(t.read, id)
		}
		t.order = t.order[:len(t.order)-len(added)]
		return err
	}
	return nil
}

// UnreadCount returns how many of ids are not in the read set.
// Duplicate ids are counted once per occurrence, matching the list shown.
func (t *Tracker) UnreadCount(ids []string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, id := range ids {
		if _, ok := t.read[id]; !ok {
			n++
		}
	}
	return n
}

// Unread returns the ids from ids that are not yet read, in input order.
func (t *Tracker) Unread(ids []string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := t.read[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the size of the read set.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

func (t *Tracker) persist() error {
	b, err := json.Marshal(t.order)
	if err != nil {
		return fmt.Errorf("readstate: encode: %w", err)
	}
	if err := t.storage.Set(Key, string(b)); err != nil {
		return fmt.Errorf("readstate: save: %w", err)
	}
	return nil
}
