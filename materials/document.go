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

import (
	"encoding/json"
	"strconv"
)

// Attributes holds the copied attributes of a source element. Keys have
// their first letter lower-cased.
type Attributes map[string]interface{}

// Name returns the "name" attribute.
func (a Attributes) Name() (string, bool) {
	name, ok := a[keyName].(string)
	return name, ok
}

// Hash returns the "hash" attribute, whether it was set by the converter or
// decoded from a document.
func (a Attributes) Hash() (uint32, bool) {
	switch v := a[keyHash].(type) {
	case uint32:
		return v, true
	case json.Number:
		h, err := strconv.ParseUint(v.String(), 10, 32)
		return uint32(h), err == nil
	case float64:
		if v < 0 || v > float64(^uint32(0)) || v != float64(uint32(v)) {
			return 0, false
		}
		return uint32(v), true
	}
	return 0, false
}

// InputLayout describes the vertex streams of a draw style.
type InputLayout struct {
	Name string `json:"name"`
	// Sizes is the vertex stride in bytes keyed by stream index.
	Sizes   map[string]int `json:"sizes"`
	Hash    uint32         `json:"hash"`
	Entries []Attributes   `json:"entries"`
}

// ParameterGroup is a named set of shader parameters.
type ParameterGroup struct {
	Name       string       `json:"name"`
	Hash       uint32       `json:"hash"`
	Parameters []Attributes `json:"parameters"`
}

// MaterialDefinition is a material with its parameters and draw styles.
type MaterialDefinition struct {
	Name       string       `json:"name"`
	Hash       uint32       `json:"hash"`
	Properties []Attributes `json:"properties"`
	DrawStyles []Attributes `json:"drawStyles"`
}

// Document is the converted materials document read by the engine.
// Material definitions are keyed by the decimal hash of their name.
type Document struct {
	InputLayouts        map[string]*InputLayout        `json:"inputLayouts"`
	ParameterGroups     map[string]*ParameterGroup     `json:"parameterGroups"`
	MaterialDefinitions map[string]*MaterialDefinition `json:"materialDefinitions"`
}

func newDocument() *Document {
	return &Document{
		InputLayouts:        make(map[string]*InputLayout),
		ParameterGroups:     make(map[string]*ParameterGroup),
		MaterialDefinitions: make(map[string]*MaterialDefinition),
	}
}

// Definition returns the material definition whose name hashes to h.
func (d *Document) Definition(h uint32) (*MaterialDefinition, bool) {
	def, ok := d.MaterialDefinitions[strconv.FormatUint(uint64(h), 10)]
	return def, ok
}

// InputLayoutOf returns the input layout of the first draw style of the
// material definition whose name hashes to h.
func (d *Document) InputLayoutOf(h uint32) (*InputLayout, bool) {
	def, ok := d.Definition(h)
	if !ok || len(def.DrawStyles) == 0 {
		return nil, false
	}
	name, ok := def.DrawStyles[0][keyInputLayout].(string)
	if !ok {
		return nil, false
	}
	layout, ok := d.InputLayouts[name]
	return layout, ok
}

// Names returns the name of every hashed entity in the document.
func (d *Document) Names() []string {
	var names []string
	for _, l := range d.InputLayouts {
		names = append(names, l.Name)
	}
	for _, g := range d.ParameterGroups {
		names = append(names, g.Name)
	}
	for _, def := range d.MaterialDefinitions {
		names = append(names, def.Name)
		for _, a := range def.DrawStyles {
			if name, ok := a.Name(); ok {
				names = append(names, name)
			}
		}
		for _, a := range def.Properties {
			if name, ok := a.Name(); ok {
				names = append(names, name)
			}
		}
	}
	return names
}
