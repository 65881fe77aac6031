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

package materials

// dataTypeSizes maps vertex element types to their size in bytes.
// Type names are case sensitive; the engine data spells Float16_2 both ways.
var dataTypeSizes = map[string]int{
	"Float3":    12,
	"D3dcolor":  4,
	"Float2":    8,
	"Float4":    16,
	"ubyte4n":   4,
	"Float16_2": 4,
	"float16_2": 4,
	"Short2":    4,
	"Float1":    4,
	"Short4":    8,
}

// DataTypeSize returns the size in bytes of a vertex element type.
func DataTypeSize(typ string) (int, bool) {
	n, ok := dataTypeSizes[typ]
	return n, ok
}
