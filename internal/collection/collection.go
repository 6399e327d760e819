// Package collection implements the reusable local-collection pattern shared
// by products and orders: load a whole record array from the store (falling
// back to a remote service or sample data), derive views from it, mutate it in
// memory, persist it back wholesale and signal every open view to reload.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/wathera-admin/internal/signal"
	"github.com/example/wathera-admin/internal/storage"
)

var ErrNotFound = errors.New("record not found")

// Record is anything with a stable opaque identifier.
type Record interface {
	RecordID() string
}

// RemoteLoader fetches the collection from the remote record service.
type RemoteLoader[T Record] func(ctx context.Context) ([]T, error)

// Collection binds one record type to its store key, sync topic and fallback
// sources. All mutations rewrite the whole collection: last writer wins, no
// merge.
type Collection[T Record] struct {
	key       string
	legacyKey string
	store     storage.Store
	hub       *signal.Hub
	remote    RemoteLoader[T]
	sample    func() []T
	validate  func(*T) error
}

type Option[T Record] func(*Collection[T])

// WithLegacyKey registers an alternate store key read when the primary key is
// absent. Historically the same collection was written under two names; a
// successful legacy read is migrated forward to the primary key.
func WithLegacyKey[T Record](key string) Option[T] {
	return func(c *Collection[T]) { c.legacyKey = key }
}

// WithRemote installs the remote fetch fallback used to seed an empty store.
func WithRemote[T Record](loader RemoteLoader[T]) Option[T] {
	return func(c *Collection[T]) { c.remote = loader }
}

// WithSample installs the sample seed returned when no other source has data.
func WithSample[T Record](sample func() []T) Option[T] {
	return func(c *Collection[T]) { c.sample = sample }
}

// WithValidator runs a check against every record entering the collection via
// Create, Patch, Update or BulkUpdate.
func WithValidator[T Record](validate func(*T) error) Option[T] {
	return func(c *Collection[T]) { c.validate = validate }
}

func New[T Record](store storage.Store, hub *signal.Hub, key string, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{key: key, store: store, hub: hub}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the primary store key, which doubles as the sync signal topic.
func (c *Collection[T]) Key() string { return c.key }

// Subscribe registers fn to run whenever this collection changes, in this
// process or (with a bridge) in another one.
func (c *Collection[T]) Subscribe(fn func()) *signal.Subscription {
	return c.hub.Subscribe(c.key, fn)
}

// Load returns the current collection. It never fails to the caller: an
// absent key falls through to the legacy key, then the remote service, then
// the sample seed; a malformed stored value is logged and substituted with the
// sample without overwriting the stored bytes.
func (c *Collection[T]) Load(ctx context.Context) []T {
	raw, err := c.store.Get(ctx, c.key)
	if err == nil {
		records, derr := decode[T](raw)
		if derr == nil {
			return records
		}
		zap.S().Errorf("collection %s: malformed stored value: %v", c.key, derr)
		return c.sampleOrEmpty()
	}
	if !errors.Is(err, storage.ErrKeyNotFound) {
		zap.S().Errorf("collection %s: load: %v", c.key, err)
		return c.sampleOrEmpty()
	}

	if records, ok := c.loadLegacy(ctx); ok {
		return records
	}

	if c.remote != nil {
		records, rerr := c.remote(ctx)
		if rerr == nil {
			c.seed(ctx, records)
			return records
		}
		zap.S().Warnf("collection %s: remote fetch: %v", c.key, rerr)
	}

	if c.sample == nil {
		return []T{}
	}
	records := c.sample()
	c.seed(ctx, records)
	return records
}

func (c *Collection[T]) loadLegacy(ctx context.Context) ([]T, bool) {
	if c.legacyKey == "" {
		return nil, false
	}
	raw, err := c.store.Get(ctx, c.legacyKey)
	if err != nil {
		return nil, false
	}
	records, derr := decode[T](raw)
	if derr != nil {
		zap.S().Errorf("collection %s: malformed legacy value under %s: %v", c.key, c.legacyKey, derr)
		return nil, false
	}
	c.seed(ctx, records)
	return records, true
}

// seed persists records under the primary key without firing the sync signal;
// nothing changed from the point of view of a reader.
func (c *Collection[T]) seed(ctx context.Context, records []T) {
	raw, err := json.Marshal(records)
	if err != nil {
		zap.S().Errorf("collection %s: encode seed: %v", c.key, err)
		return
	}
	if err := c.store.Put(ctx, c.key, raw); err != nil {
		zap.S().Errorf("collection %s: persist seed: %v", c.key, err)
	}
}

func (c *Collection[T]) sampleOrEmpty() []T {
	if c.sample == nil {
		return []T{}
	}
	return c.sample()
}

// Save serializes and overwrites the whole collection, then fires the sync
// signal. The signal is strictly after the write: a notify that cannot be
// delivered leaves the persisted state intact.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, raw); err != nil {
		return fmt.Errorf("persist collection %s: %w", c.key, err)
	}
	c.hub.Publish(c.key)
	return nil
}

// Create appends a record and persists.
func (c *Collection[T]) Create(ctx context.Context, rec T) error {
	if c.validate != nil {
		if err := c.validate(&rec); err != nil {
			return err
		}
	}
	records := c.Load(ctx)
	records = append(records, rec)
	return c.Save(ctx, records)
}

// Patch merges a partial JSON document into the record with the given id.
// The identifier is immutable; a patch attempting to change it is rejected.
func (c *Collection[T]) Patch(ctx context.Context, id string, patch []byte) error {
	return c.Modify(ctx, id, func(rec *T) error {
		if err := json.Unmarshal(patch, rec); err != nil {
			return fmt.Errorf("apply patch: %w", err)
		}
		return nil
	})
}

// Update applies a typed mutation to the record with the given id.
func (c *Collection[T]) Update(ctx context.Context, id string, apply func(*T)) error {
	return c.Modify(ctx, id, func(rec *T) error {
		apply(rec)
		return nil
	})
}

// Modify applies a fallible mutation to the record with the given id in one
// persisted write. The mutation sees a copy; nothing is stored on error.
func (c *Collection[T]) Modify(ctx context.Context, id string, apply func(*T) error) error {
	records := c.Load(ctx)
	for i := range records {
		if records[i].RecordID() != id {
			continue
		}
		updated := records[i]
		if err := apply(&updated); err != nil {
			return err
		}
		if updated.RecordID() != id {
			return fmt.Errorf("collection %s: record identifier is immutable", c.key)
		}
		if c.validate != nil {
			if err := c.validate(&updated); err != nil {
				return err
			}
		}
		records[i] = updated
		return c.Save(ctx, records)
	}
	return ErrNotFound
}

// DeleteOne removes the record with the given id. Removing a stale id is a
// reported no-op, not a failure.
func (c *Collection[T]) DeleteOne(ctx context.Context, id string) (int, error) {
	return c.DeleteMany(ctx, []string{id})
}

// DeleteMany removes all records whose ids are listed and reports how many
// were removed. One persisted write, one sync signal, regardless of count.
func (c *Collection[T]) DeleteMany(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	records := c.Load(ctx)
	kept := records[:0]
	removed := 0
	for _, rec := range records {
		if drop[rec.RecordID()] {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := c.Save(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// BulkUpdate applies a typed mutation to every listed record in one persisted
// write and reports how many matched. Unknown ids are skipped.
func (c *Collection[T]) BulkUpdate(ctx context.Context, ids []string, apply func(*T)) (int, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	records := c.Load(ctx)
	matched := 0
	for i := range records {
		if !want[records[i].RecordID()] {
			continue
		}
		updated := records[i]
		apply(&updated)
		if c.validate != nil {
			if err := c.validate(&updated); err != nil {
				return 0, err
			}
		}
		records[i] = updated
		matched++
	}
	if matched == 0 {
		return 0, nil
	}
	if err := c.Save(ctx, records); err != nil {
		return 0, err
	}
	return matched, nil
}

// Clear drops the stored collection (both key spellings) so the next Load
// re-seeds from the remote service or the sample data.
func (c *Collection[T]) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("clear collection %s: %w", c.key, err)
	}
	if c.legacyKey != "" {
		if err := c.store.Delete(ctx, c.legacyKey); err != nil {
			return fmt.Errorf("clear collection %s: %w", c.legacyKey, err)
		}
	}
	c.hub.Publish(c.key)
	return nil
}

func decode[T Record](raw []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
