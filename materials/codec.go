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
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// snappyMagic starts every snappy framed stream.
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

// Encode writes doc as indented JSON. With compress set the JSON is wrapped
// in a snappy framed stream.
func Encode(w io.Writer, doc *Document, compress bool) error {
	if !compress {
		return encodeJSON(w, doc)
	}
	sw := snappy.NewBufferedWriter(w)
	if err := encodeJSON(sw, doc); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

func encodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("materials: encode: %w", err)
	}
	return nil
}

// Decode reads a document written by Encode, compressed or not. Numbers in
// attributes decode as json.Number.
func Decode(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(len(snappyMagic)); err == nil && bytes.Equal(magic, snappyMagic) {
		src = snappy.NewReader(br)
	}
	dec := json.NewDecoder(src)
	dec.UseNumber()
	doc := newDocument()
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("materials: decode: %w", err)
	}
	return doc, nil
}
