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

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	jcr "github.com/DisposaBoy/JsonConfigReader"
)

// Config represents main configuration.
type Config struct {
	// Path of the materials XML document to convert.
	// Can be overridden from the command line, see option --input.
	Input string `json:"input"`

	// Path of the emitted JSON document. Empty writes to stdout.
	// Can be overridden from the command line, see option --output.
	Output string `json:"output"`

	// Compress writes the emitted document as a snappy framed stream.
	Compress bool `json:"compress"`

	// Default logging level is "InfoLevel" so to enable the debug log set the "LogLevel" to "DebugLevel".
	LoggingLevel string `json:"logging_level"`

	// Config for name hashing
	HashConfig json.RawMessage `json:"hash_config"`
}

// HashConfig represents the configuration of the name table.
type HashConfig struct {
	// Algorithm is one of "oaat", "lookup2" or "lookup2_legacy". Defaults to "oaat".
	Algorithm string `json:"algorithm"`

	// Seed for the lookup2 algorithms.
	Seed uint32 `json:"seed"`

	// UpperCase hashes the upper-cased name, as the engine does for texture names.
	UpperCase bool `json:"upper_case"`

	// StrictCollisions fails a conversion when two different names share a hash.
	StrictCollisions bool `json:"strict_collisions"`
}

// Read decodes a configuration from r. Comments and trailing commas are allowed.
func Read(r io.Reader) (*Config, error) {
	var cfg Config
	if err := json.NewDecoder(jcr.New(r)).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Hash parses the hash_config section. A missing section yields the zero config.
func (c *Config) Hash() (HashConfig, error) {
	var hc HashConfig
	if len(c.HashConfig) == 0 {
		return hc, nil
	}
	if err := json.Unmarshal(c.HashConfig, &hc); err != nil {
		return hc, fmt.Errorf("config: parse hash_config: %w", err)
	}
	return hc, nil
}
