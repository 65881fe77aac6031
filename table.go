/*
 * Copyright 2020 Saffat Technologies, Ltd.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package assethash keeps the names behind asset hashes. A Table hashes
// names with one of the engine algorithms from package hash and resolves
// hashes found in engine data back to names.
package assethash

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/atomic"
)

// Table memoizes name hashes and remembers which name owns each hash, so
// hashes read back from engine data can be resolved to names.
// It is safe for concurrent use.
type Table struct {
	opts *Options

	mu     sync.RWMutex // guards hashes and names.
	hashes map[string]uint32
	names  map[uint32]string

	hits       atomic.Uint64
	misses     atomic.Uint64
	collisions atomic.Uint64
}

// Stats holds Table counters.
type Stats struct {
	Names      int
	Hits       uint64
	Misses     uint64
	Collisions uint64
}

// New returns an empty table. A nil opts hashes names with OAAT.
func New(opts *Options) *Table {
	opts = opts.copyWithDefaults()
	return &Table{
		opts:   opts,
		hashes: make(map[string]uint32, opts.InitialCapacity),
		names:  make(map[uint32]string, opts.InitialCapacity),
	}
}

// Options returns a copy of the table options.
func (t *Table) Options() Options {
	return *t.opts
}

// Hash returns the hash of name without registering it as an owner.
func (t *Table) Hash(name string) uint32 {
	t.mu.RLock()
	h, ok := t.hashes[name]
	t.mu.RUnlock()
	if ok {
		t.hits.Inc()
		return h
	}
	t.misses.Inc()
	h = t.sum(name)
	t.mu.Lock()
	t.hashes[name] = h
	t.mu.Unlock()
	return h
}

// Register hashes name and records it as the owner of the hash. Registering
// the same name again is a no-op. If a different name already owns the hash
// the first owner is kept and the error wraps ErrHashCollision; the returned
// hash is valid in either case.
func (t *Table) Register(name string) (uint32, error) {
	h := t.Hash(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	owner, ok := t.names[h]
	if !ok {
		t.names[h] = name
		return h, nil
	}
	if owner != name {
		t.collisions.Inc()
		return h, fmt.Errorf("%w: %q and %q both hash to 0x%08x", ErrHashCollision, owner, name, h)
	}
	return h, nil
}

// Name returns the registered owner of h.
func (t *Table) Name(h uint32) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.names[h]
	return name, ok
}

// Len returns the number of registered names.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

// Names returns the registered names sorted by hash.
func (t *Table) Names() []string {
	t.mu.RLock()
	hs := make([]uint32, 0, len(t.names))
	for h := range t.names {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i] < hs[j] })
	names := make([]string, len(hs))
	for i, h := range hs {
		names[i] = t.names[h]
	}
	t.mu.RUnlock()
	return names
}

// Stats returns a snapshot of the table counters.
func (t *Table) Stats() Stats {
	return Stats{
		Names:      t.Len(),
		Hits:       t.hits.Load(),
		Misses:     t.misses.Load(),
		Collisions: t.collisions.Load(),
	}
}

func (t *Table) sum(name string) uint32 {
	key := []byte(name)
	if t.opts.UpperCase {
		upper(key)
	}
	return t.opts.Algorithm.Sum(key, t.opts.Seed)
}

// upper converts ASCII lower-case letters in place and leaves every other
// byte alone, as the engine does.
func upper(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}
