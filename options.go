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

package assethash

import (
	"fmt"
	"strings"

	"github.com/unit-io/assethash/hash"
)

// Algorithm selects the hash function of a Table.
type Algorithm uint8

const (
	// OAAT is the engine's one-at-a-time hash. It is the default.
	OAAT Algorithm = iota
	// Lookup2 is the block hash with corrected word folding.
	Lookup2
	// Lookup2Legacy is the block hash with the conversion script's folding.
	Lookup2Legacy
)

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case OAAT:
		return "oaat"
	case Lookup2:
		return "lookup2"
	case Lookup2Legacy:
		return "lookup2_legacy"
	}
	return fmt.Sprintf("algorithm(%d)", uint8(a))
}

// ParseAlgorithm parses a configuration name. Empty means OAAT.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "", "oaat":
		return OAAT, nil
	case "lookup2":
		return Lookup2, nil
	case "lookup2_legacy":
		return Lookup2Legacy, nil
	}
	return OAAT, fmt.Errorf("%w: %q", errUnknownAlgorithm, name)
}

// Sum hashes key with the algorithm. The seed is ignored by OAAT.
func (a Algorithm) Sum(key []byte, seed uint32) uint32 {
	switch a {
	case Lookup2:
		return hash.Lookup2WithSeed(key, seed)
	case Lookup2Legacy:
		return hash.Lookup2Legacy(key, seed)
	}
	return hash.OAAT(key)
}

// Options holds the optional Table parameters.
type Options struct {
	// Algorithm used to hash names.
	Algorithm Algorithm

	// Seed for the lookup2 algorithms.
	Seed uint32

	// UpperCase hashes the upper-cased name. Texture names are hashed this way by the engine.
	UpperCase bool

	// InitialCapacity sizes the name maps.
	InitialCapacity int
}

func (src *Options) copyWithDefaults() *Options {
	opts := Options{}
	if src != nil {
		opts = *src
	}
	if opts.InitialCapacity <= 0 {
		opts.InitialCapacity = 64
	}
	return &opts
}
