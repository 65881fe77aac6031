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

// Package materials converts materials XML documents into the JSON document
// the engine loads, tagging every named entity with the hash of its name.
package materials

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Node is an element of a materials source document. Elements are addressed
// by position and by their Name attribute, never by tag.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []Node     `xml:",any"`
}

// Source is a parsed materials document. Its first three children hold the
// input layouts, the parameter groups and the material definitions.
type Source struct {
	Root Node
}

// ReadSource parses a materials XML document.
func ReadSource(r io.Reader) (*Source, error) {
	var src Source
	if err := xml.NewDecoder(r).Decode(&src.Root); err != nil {
		return nil, fmt.Errorf("materials: parse source: %w", err)
	}
	return &src, nil
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == key {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the i-th child element.
func (n *Node) Child(i int) (*Node, bool) {
	if i < 0 || i >= len(n.Children) {
		return nil, false
	}
	return &n.Children[i], true
}

// label names the node in error messages.
func (n *Node) label() string {
	if name, ok := n.Attr("Name"); ok {
		return name
	}
	return n.XMLName.Local
}
