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

import (
	"hash"
)

// Size is the size of a hash result in bytes.
const Size = 4

var (
	_ hash.Hash32 = new(oaatDigest)
	_ hash.Hash32 = new(lookup2Digest)
)

type oaatDigest struct {
	h int32
}

// NewOAAT returns a hash.Hash32 computing OAAT over everything written to it.
func NewOAAT() hash.Hash32 {
	return new(oaatDigest)
}

func (d *oaatDigest) Write(p []byte) (int, error) {
	h := d.h
	for _, c := range p {
		h = oaatRound(h, c)
	}
	d.h = h
	return len(p), nil
}

func (d *oaatDigest) Sum32() uint32 { return oaatFinal(d.h) }

func (d *oaatDigest) Sum(b []byte) []byte { return appendUint32(b, d.Sum32()) }

func (d *oaatDigest) Reset() { d.h = 0 }

func (d *oaatDigest) Size() int { return Size }

func (d *oaatDigest) BlockSize() int { return 1 }

// lookup2Digest mixes every complete block as soon as it is written and
// keeps at most BlockSize-1 pending bytes.
type lookup2Digest struct {
	seed    uint32
	fold    foldFunc
	a, b, c uint32
	length  uint32
	buf     [BlockSize]byte
	nbuf    int
}

// NewLookup2 returns a hash.Hash32 computing Lookup2WithSeed over everything
// written to it.
func NewLookup2(seed uint32) hash.Hash32 {
	d := &lookup2Digest{seed: seed, fold: foldWord}
	d.Reset()
	return d
}

// NewLookup2Legacy returns the streaming form of Lookup2Legacy.
func NewLookup2Legacy(seed uint32) hash.Hash32 {
	d := &lookup2Digest{seed: seed, fold: foldLegacyWord}
	d.Reset()
	return d
}

func (d *lookup2Digest) Write(p []byte) (int, error) {
	n := len(p)
	d.length += uint32(n)
	if d.nbuf > 0 {
		k := copy(d.buf[d.nbuf:], p)
		d.nbuf += k
		p = p[k:]
		if d.nbuf < BlockSize {
			return n, nil
		}
		d.block(d.buf[:])
		d.nbuf = 0
	}
	for len(p) >= BlockSize {
		d.block(p[:BlockSize])
		p = p[BlockSize:]
	}
	d.nbuf = copy(d.buf[:], p)
	return n, nil
}

func (d *lookup2Digest) block(k []byte) {
	d.a += d.fold(k[0:4])
	d.b += d.fold(k[4:8])
	d.c += d.fold(k[8:12])
	d.a, d.b, d.c = Mix(d.a, d.b, d.c)
}

func (d *lookup2Digest) Sum32() uint32 {
	return lookup2Tail(d.a, d.b, d.c, d.buf[:d.nbuf], d.length)
}

func (d *lookup2Digest) Sum(b []byte) []byte { return appendUint32(b, d.Sum32()) }

func (d *lookup2Digest) Reset() {
	d.a, d.b, d.c = golden, golden, d.seed
	d.length = 0
	d.nbuf = 0
}

func (d *lookup2Digest) Size() int { return Size }

func (d *lookup2Digest) BlockSize() int { return BlockSize }

func appendUint32(b []byte, h uint32) []byte {
	return append(b, byte(h>>24), byte(h>>16), byte(h>>8), byte(h))
}
