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

// Package hash computes the 32-bit asset name hashes shared between the
// content pipeline and the runtime engine.
//
// OAAT is the primary algorithm: every material definition, draw style,
// parameter and input layout is identified by OAAT of its UTF-8 name.
// Lookup2 is kept as an alternate block hash.
//
// Results must match the engine bit for bit. None of the functions here can
// fail; overflow always wraps modulo 2^32. The hashes are not
// cryptographically secure.
package hash

// OAAT returns the one-at-a-time hash of key.
//
// The engine runs the accumulator as a signed 32-bit integer and reads each
// byte as a signed char, so bytes >= 0x80 are added as negative values and
// the right shifts are arithmetic. The final bit pattern is returned as
// unsigned.
func OAAT(key []byte) uint32 {
	var h int32
	for _, c := range key {
		h = oaatRound(h, c)
	}
	return oaatFinal(h)
}

// OAATString returns the one-at-a-time hash of the UTF-8 bytes of s.
func OAATString(s string) uint32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = oaatRound(h, s[i])
	}
	return oaatFinal(h)
}

func oaatRound(h int32, c byte) int32 {
	h += int32(int8(c))
	h += h << 10
	h ^= h >> 6
	return h
}

func oaatFinal(h int32) uint32 {
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return uint32(h)
}
