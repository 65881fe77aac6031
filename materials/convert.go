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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/unit-io/assethash"
	"github.com/unit-io/assethash/internal/log"
)

const (
	keyName        = "name"
	keyHash        = "hash"
	keyInputLayout = "inputLayout"

	attrName   = "Name"
	attrClass  = "Class"
	attrType   = "Type"
	attrStream = "Stream"

	groupDrawStyles = "DrawStyles"
	groupProperties = "Properties"
	classParameter  = "Parameter"
)

var (
	// ErrMissingName is returned when an element that must be hashed has no Name attribute.
	ErrMissingName = errors.New("missing Name attribute")

	errMalformed       = errors.New("malformed materials document")
	errUnknownDataType = errors.New("unknown vertex data type")
)

// Options holds the optional Converter parameters.
type Options struct {
	// Table hashes and registers every entity name. Defaults to an OAAT table.
	Table *assethash.Table

	// StrictCollisions fails the conversion when two different names share a hash.
	// Otherwise collisions are logged.
	StrictCollisions bool
}

func (src *Options) copyWithDefaults() *Options {
	opts := Options{}
	if src != nil {
		opts = *src
	}
	if opts.Table == nil {
		opts.Table = assethash.New(nil)
	}
	return &opts
}

// Converter turns materials source documents into engine documents.
type Converter struct {
	opts *Options
}

// NewConverter returns a converter. A nil opts hashes names with OAAT.
func NewConverter(opts *Options) *Converter {
	return &Converter{opts: opts.copyWithDefaults()}
}

// Table returns the name table the converter registers names in.
func (c *Converter) Table() *assethash.Table {
	return c.opts.Table
}

// Convert reads a source document from r and converts it.
func Convert(r io.Reader, opts *Options) (*Document, error) {
	src, err := ReadSource(r)
	if err != nil {
		return nil, err
	}
	return NewConverter(opts).Convert(src)
}

// Convert converts a parsed source document.
func (c *Converter) Convert(src *Source) (*Document, error) {
	root := &src.Root
	layouts, ok1 := root.Child(0)
	groups, ok2 := root.Child(1)
	defs, ok3 := root.Child(2)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: root has %d sections, want 3", errMalformed, len(root.Children))
	}

	doc := newDocument()
	for i := range defs.Children {
		def, err := c.definition(&defs.Children[i], fmt.Sprintf("%s[%d]", defs.label(), i))
		if err != nil {
			return nil, err
		}
		key := strconv.FormatUint(uint64(def.Hash), 10)
		if prev, ok := doc.MaterialDefinitions[key]; ok {
			log.Warn("materials.Convert", fmt.Sprintf("material definition %q replaces %q", def.Name, prev.Name))
		}
		doc.MaterialDefinitions[key] = def
	}
	for i := range layouts.Children {
		layout, err := c.inputLayout(&layouts.Children[i], fmt.Sprintf("%s[%d]", layouts.label(), i))
		if err != nil {
			return nil, err
		}
		doc.InputLayouts[layout.Name] = layout
	}
	for i := range groups.Children {
		group, err := c.parameterGroup(&groups.Children[i], fmt.Sprintf("%s[%d]", groups.label(), i))
		if err != nil {
			return nil, err
		}
		doc.ParameterGroups[group.Name] = group
	}
	log.Debug("materials.Convert", fmt.Sprintf("converted %d material definitions, %d input layouts, %d parameter groups",
		len(doc.MaterialDefinitions), len(doc.InputLayouts), len(doc.ParameterGroups)))
	return doc, nil
}

func (c *Converter) definition(n *Node, path string) (*MaterialDefinition, error) {
	name, h, err := c.name(n, path)
	if err != nil {
		return nil, err
	}
	def := &MaterialDefinition{
		Name:       name,
		Hash:       h,
		Properties: []Attributes{},
		DrawStyles: []Attributes{},
	}
	for i := range n.Children {
		group := &n.Children[i]
		groupName, _ := group.Attr(attrName)
		switch groupName {
		case groupDrawStyles:
			for j := range group.Children {
				a, err := c.entity(&group.Children[j], fmt.Sprintf("%s/%s[%d]", path, groupName, j))
				if err != nil {
					return nil, err
				}
				def.DrawStyles = append(def.DrawStyles, a)
			}
		case groupProperties:
			for j := range group.Children {
				prop := &group.Children[j]
				if class, _ := prop.Attr(attrClass); !strings.Contains(class, classParameter) {
					continue
				}
				a, err := c.entity(prop, fmt.Sprintf("%s/%s[%d]", path, groupName, j))
				if err != nil {
					return nil, err
				}
				def.Properties = append(def.Properties, a)
			}
		}
	}
	return def, nil
}

// entity copies the attributes of a draw style or property and adds its hash.
func (c *Converter) entity(n *Node, path string) (Attributes, error) {
	a := make(Attributes, len(n.Attrs)+1)
	for _, attr := range n.Attrs {
		if attr.Name.Local == attrClass {
			continue
		}
		a[lowerFirst(attr.Name.Local)] = attr.Value
	}
	name, ok := a.Name()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingName, path)
	}
	h, err := c.register(name)
	if err != nil {
		return nil, err
	}
	a[keyHash] = h
	return a, nil
}

func (c *Converter) inputLayout(n *Node, path string) (*InputLayout, error) {
	name, h, err := c.name(n, path)
	if err != nil {
		return nil, err
	}
	entries, ok := n.Child(0)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no entries", errMalformed, path)
	}
	layout := &InputLayout{
		Name:    name,
		Sizes:   make(map[string]int),
		Hash:    h,
		Entries: make([]Attributes, 0, len(entries.Children)),
	}
	for i := range entries.Children {
		e := &entries.Children[i]
		entry := make(Attributes, len(e.Attrs))
		for _, attr := range e.Attrs {
			key := attr.Name.Local
			if key == attrClass {
				continue
			}
			if key == attrType {
				stream, ok := e.Attr(attrStream)
				if !ok {
					return nil, fmt.Errorf("%w: %s/entries[%d] has no Stream", errMalformed, path, i)
				}
				size, ok := DataTypeSize(attr.Value)
				if !ok {
					return nil, fmt.Errorf("%w: %q in %s/entries[%d]", errUnknownDataType, attr.Value, path, i)
				}
				layout.Sizes[stream] += size
			}
			entry[lowerFirst(key)] = numeric(attr.Value)
		}
		layout.Entries = append(layout.Entries, entry)
	}
	return layout, nil
}

func (c *Converter) parameterGroup(n *Node, path string) (*ParameterGroup, error) {
	name, h, err := c.name(n, path)
	if err != nil {
		return nil, err
	}
	params, ok := n.Child(0)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no parameters", errMalformed, path)
	}
	group := &ParameterGroup{
		Name:       name,
		Hash:       h,
		Parameters: make([]Attributes, 0, len(params.Children)),
	}
	for i := range params.Children {
		p := &params.Children[i]
		a := make(Attributes, len(p.Attrs))
		for _, attr := range p.Attrs {
			a[lowerFirst(attr.Name.Local)] = attr.Value
		}
		group.Parameters = append(group.Parameters, a)
	}
	return group, nil
}

func (c *Converter) name(n *Node, path string) (string, uint32, error) {
	name, ok := n.Attr(attrName)
	if !ok || name == "" {
		return "", 0, fmt.Errorf("%w: %s", ErrMissingName, path)
	}
	h, err := c.register(name)
	return name, h, err
}

func (c *Converter) register(name string) (uint32, error) {
	h, err := c.opts.Table.Register(name)
	if err == nil {
		return h, nil
	}
	if c.opts.StrictCollisions {
		return 0, err
	}
	log.Warn("materials.Convert", err.Error())
	return h, nil
}

// lowerFirst lower-cases the first letter of an attribute key.
func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// numeric converts an all-digit value to an int and returns any other value unchanged.
func numeric(v string) interface{} {
	if v == "" {
		return v
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return v
		}
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return v
}
