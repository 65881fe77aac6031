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

package hash

const (
	// golden is the initial value of the a and b registers.
	golden uint32 = 0x9e3779b9

	// BlockSize is the number of bytes lookup2 consumes per round.
	BlockSize = 12
)

// foldFunc packs 4 key bytes into a block word.
type foldFunc func(k []byte) uint32

// Lookup2 returns the lookup2 hash of key with a zero seed.
func Lookup2(key []byte) uint32 {
	return lookup2(key, 0, foldWord)
}

// Lookup2WithSeed returns the lookup2 hash of key, seeding register c.
func Lookup2WithSeed(key []byte, seed uint32) uint32 {
	return lookup2(key, seed, foldWord)
}

// Lookup2Legacy returns the lookup2 hash as produced by the pipeline's
// original conversion script, whose block words were written without
// parentheses. Use it only to reproduce hashes stored by that script; it
// agrees with Lookup2WithSeed for keys shorter than BlockSize.
func Lookup2Legacy(key []byte, seed uint32) uint32 {
	return lookup2(key, seed, foldLegacyWord)
}

func lookup2(key []byte, seed uint32, fold foldFunc) uint32 {
	a, b, c := golden, golden, seed
	p := key
	for len(p) >= BlockSize {
		a += fold(p[0:4])
		b += fold(p[4:8])
		c += fold(p[8:12])
		a, b, c = Mix(a, b, c)
		p = p[BlockSize:]
	}
	return lookup2Tail(a, b, c, p, uint32(len(key)))
}

// lookup2Tail folds the total length and the last 0-11 bytes, then mixes.
// The lowest byte of c is reserved for the length, so the tail only reaches
// the top three bytes of c.
func lookup2Tail(a, b, c uint32, tail []byte, length uint32) uint32 {
	c += length
	switch len(tail) {
	case 11:
		c += uint32(tail[10]) << 24
		fallthrough
	case 10:
		c += uint32(tail[9]) << 16
		fallthrough
	case 9:
		c += uint32(tail[8]) << 8
		fallthrough
	case 8:
		b += uint32(tail[7]) << 24
		fallthrough
	case 7:
		b += uint32(tail[6]) << 16
		fallthrough
	case 6:
		b += uint32(tail[5]) << 8
		fallthrough
	case 5:
		b += uint32(tail[4])
		fallthrough
	case 4:
		a += uint32(tail[3]) << 24
		fallthrough
	case 3:
		a += uint32(tail[2]) << 16
		fallthrough
	case 2:
		a += uint32(tail[1]) << 8
		fallthrough
	case 1:
		a += uint32(tail[0])
	}
	_, _, c = Mix(a, b, c)
	return c
}

// foldWord reads k little-endian.
func foldWord(k []byte) uint32 {
	return uint32(k[0]) | uint32(k[1])<<8 | uint32(k[2])<<16 | uint32(k[3])<<24
}

// foldLegacyWord evaluates k0 + k1 << 8 + k2 << 16 + k3 << 24 with addition
// binding tighter than shift, i.e. ((k0+k1) << (8+k2)) << (16+k3) << 24,
// on unbounded integers before truncation. The total shift is at least 48,
// so the truncated word is always zero.
func foldLegacyWord(k []byte) uint32 {
	shift := 48 + uint(k[2]) + uint(k[3])
	return uint32((uint64(k[0]) + uint64(k[1])) << shift)
}
