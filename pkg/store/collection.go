package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/inbox/pkg/schema"
)

// Record is a document the store can hold.
type Record interface {
	Key() string
	Validate() error
}

// Collection is one schema-versioned document set inside a workspace.
// The pointer type P is the record as callers see it.
type Collection[T any, P interface {
	*T
	Record
}] struct {
	d     *diskv.Diskv
	chain schema.Chain

	mu   sync.Mutex
	subs map[int]func([]P)
	// ordered subscriber ids so fan-out follows registration order
	order  []int
	nextID int
}

func newCollection[T any, P interface {
	*T
	Record
}](d *diskv.Diskv, chain schema.Chain) *Collection[T, P] {
	return &Collection[T, P]{
		d:     d,
		chain: chain,
		subs:  make(map[int]func([]P)),
	}
}

// Insert stores a new document. It fails with *DuplicateKeyError when the
// id is taken and *ValidationError when the document breaks the schema.
func (c *Collection[T, P]) Insert(doc P) error {
	if err := doc.Validate(); err != nil {
		return &ValidationError{Collection: c.chain.Name, Err: err}
	}
	c.mu.Lock()
	if c.d.Has(doc.Key()) {
		c.mu.Unlock()
		return &DuplicateKeyError{Collection: c.chain.Name, ID: doc.Key()}
	}
	err := c.write(doc)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.notify()
	return nil
}

// Upsert replaces or inserts the full document keyed by its id.
func (c *Collection[T, P]) Upsert(doc P) error {
	if err := doc.Validate(); err != nil {
		return &ValidationError{Collection: c.chain.Name, Err: err}
	}
	c.mu.Lock()
	err := c.write(doc)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.notify()
	return nil
}

// Patch merges fields into the stored document and revalidates the merged
// result. A missing id is a *NotFoundError.
func (c *Collection[T, P]) Patch(id string, fields map[string]any) error {
	c.mu.Lock()
	raw, err := c.readRaw(id)
	if err != nil {
		c.mu.Unlock()
		if isMissingKey(err) {
			return &NotFoundError{Collection: c.chain.Name, ID: id}
		}
		return err
	}
	for k, v := range fields {
		raw[k] = v
	}
	raw["id"] = id
	merged, err := decode[T, P](raw)
	if err != nil {
		c.mu.Unlock()
		return &ValidationError{Collection: c.chain.Name, Err: err}
	}
	if err := merged.Validate(); err != nil {
		c.mu.Unlock()
		return &ValidationError{Collection: c.chain.Name, Err: err}
	}
	err = c.write(merged)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.notify()
	return nil
}

// Remove deletes the document. Removing an id that does not exist is a
// silent no-op so deletes stay idempotent.
func (c *Collection[T, P]) Remove(id string) error {
	c.mu.Lock()
	if !c.d.Has(id) {
		c.mu.Unlock()
		return nil
	}
	err := c.d.Erase(id)
	c.mu.Unlock()
	if err != nil {
		if isMissingKey(err) {
			return nil
		}
		return fmt.Errorf("store: %s: erase %q: %w", c.chain.Name, id, err)
	}
	c.notify()
	return nil
}

// Get returns the document with the given id, migrated to the current
// schema version.
func (c *Collection[T, P]) Get(id string) (P, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := c.readRaw(id)
	if err != nil {
		if isMissingKey(err) {
			return nil, &NotFoundError{Collection: c.chain.Name, ID: id}
		}
		return nil, err
	}
	return decode[T, P](raw)
}

// All returns the full current contents, migrated, ordered by id.
// Unreadable documents are skipped with a note on stderr rather than
// failing the whole read.
func (c *Collection[T, P]) All() []P {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allLocked()
}

func (c *Collection[T, P]) allLocked() []P {
	keys := make([]string, 0)
	for key := range c.d.Keys(nil) {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]P, 0, len(keys))
	for _, key := range keys {
		raw, err := c.readRaw(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s: %v\n", c.chain.Name, key, err)
			continue
		}
		doc, err := decode[T, P](raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s: %v\n", c.chain.Name, key, err)
			continue
		}
		out = append(out, doc)
	}
	return out
}

// Subscribe registers a live query. The callback runs immediately with the
// current contents and again after every mutation, synchronously, in
// registration order. The returned func cancels the subscription.
func (c *Collection[T, P]) Subscribe(fn func([]P)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.order = append(c.order, id)
	snapshot := c.allLocked()
	c.mu.Unlock()

	deliver(fn, snapshot, c.chain.Name)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
		for i, sid := range c.order {
			if sid == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

func (c *Collection[T, P]) notify() {
	c.mu.Lock()
	snapshot := c.allLocked()
	fns := make([]func([]P), 0, len(c.order))
	for _, id := range c.order {
		if fn, ok := c.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range fns {
		deliver(fn, snapshot, c.chain.Name)
	}
}

// deliver isolates a panicking subscriber so later subscribers still hear
// about the change.
func deliver[P any](fn func([]P), snapshot []P, collection string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "store: %s: subscriber panic: %v\n", collection, r)
		}
	}()
	fn(append([]P(nil), snapshot...))
}

// readRaw loads the stored JSON, applies the migration chain, and writes
// the migrated form back when the document was outdated so the store
// converges to the current version.
func (c *Collection[T, P]) readRaw(id string) (schema.Doc, error) {
	data, err := c.d.Read(id)
	if err != nil {
		return nil, err
	}
	var doc schema.Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: %s: decode %q: %w", c.chain.Name, id, err)
	}
	outdated := c.chain.Outdated(doc)
	doc = c.chain.Apply(doc)
	if outdated {
		if migrated, err := json.Marshal(doc); err == nil {
			if err := c.d.Write(id, migrated); err != nil {
				fmt.Fprintf(os.Stderr, "store: %s: write back %q: %v\n", c.chain.Name, id, err)
			}
		}
	}
	return doc, nil
}

func (c *Collection[T, P]) write(doc P) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: %s: encode %q: %w", c.chain.Name, doc.Key(), err)
	}
	var m schema.Doc
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("store: %s: encode %q: %w", c.chain.Name, doc.Key(), err)
	}
	m["schema"] = c.chain.Current()
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("store: %s: encode %q: %w", c.chain.Name, doc.Key(), err)
	}
	if err := c.d.Write(doc.Key(), data); err != nil {
		return fmt.Errorf("store: %s: write %q: %w", c.chain.Name, doc.Key(), err)
	}
	return nil
}

func decode[T any, P interface {
	*T
	Record
}](raw schema.Doc) (P, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var v T
	p := P(&v)
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}
