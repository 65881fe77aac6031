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

// Command assethash converts materials documents and computes asset name hashes.
//
// 	assethash [flags] convert          convert the input document
// 	assethash [flags] hash NAME...     print the hashes of names
// 	assethash [flags] lookup HASH...   resolve hashes against a converted document
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/unit-io/assethash"
	"github.com/unit-io/assethash/hash"
	"github.com/unit-io/assethash/internal/config"
	"github.com/unit-io/assethash/internal/log"
	"github.com/unit-io/assethash/materials"
)

var errUsage = errors.New("usage: assethash [flags] convert | hash NAME... | lookup HASH...")

func main() {
	var configfile = flag.String("config", "", "Path to config file.")
	var input = flag.String("input", "", "Override the materials XML document to convert.")
	var output = flag.String("output", "", "Override the output document, or the document to resolve hashes against.")
	var compress = flag.Bool("compress", false, "Write the output document as a snappy framed stream.")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := &config.Config{}
	if *configfile != "" {
		log.Debug("main", "Using config from "+*configfile)
		var err error
		if cfg, err = config.Load(*configfile); err != nil {
			log.Fatal("main", "Failed to read config file", err)
		}
	}
	if cfg.LoggingLevel != "" {
		zerolog.SetGlobalLevel(log.ParseLevel(cfg.LoggingLevel, zerolog.InfoLevel))
	}
	if *input != "" {
		cfg.Input = *input
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *compress {
		cfg.Compress = true
	}

	if err := run(cfg, flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			flag.PrintDefaults()
			os.Exit(2)
		}
		log.Fatal("main", "assethash failed", err)
	}
}

func run(cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	hc, err := cfg.Hash()
	if err != nil {
		return err
	}
	algorithm, err := assethash.ParseAlgorithm(hc.Algorithm)
	if err != nil {
		return err
	}
	table := assethash.New(&assethash.Options{
		Algorithm: algorithm,
		Seed:      hc.Seed,
		UpperCase: hc.UpperCase,
	})

	switch args[0] {
	case "convert":
		return convert(cfg, table, hc.StrictCollisions, stdout)
	case "hash":
		return printHashes(table, args[1:], stdout)
	case "lookup":
		return lookup(cfg, table, args[1:], stdout)
	}
	return errUsage
}

func convert(cfg *config.Config, table *assethash.Table, strict bool, stdout io.Writer) error {
	if cfg.Input == "" {
		return fmt.Errorf("%w: no input document", errUsage)
	}
	in, err := os.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	doc, err := materials.Convert(in, &materials.Options{Table: table, StrictCollisions: strict})
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return materials.Encode(stdout, doc, cfg.Compress)
	}
	out, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if err := materials.Encode(out, doc, cfg.Compress); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	st := table.Stats()
	log.Info("main", fmt.Sprintf("wrote %s: %d material definitions, %d names, %d collisions",
		cfg.Output, len(doc.MaterialDefinitions), st.Names, st.Collisions))
	return nil
}

func printHashes(table *assethash.Table, names []string, stdout io.Writer) error {
	seed := table.Options().Seed
	for _, name := range names {
		key := []byte(name)
		fmt.Fprintf(stdout, "%s\t0x%08x\t%d\tlookup2=0x%08x\n",
			name, table.Hash(name), table.Hash(name), hash.Lookup2WithSeed(key, seed))
	}
	return nil
}

func lookup(cfg *config.Config, table *assethash.Table, hashes []string, stdout io.Writer) error {
	if cfg.Output == "" {
		return fmt.Errorf("%w: no document to resolve against", errUsage)
	}
	f, err := os.Open(cfg.Output)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := materials.Decode(f)
	if err != nil {
		return err
	}
	for _, name := range doc.Names() {
		if _, err := table.Register(name); err != nil {
			log.Warn("main", err.Error())
		}
	}
	for _, s := range hashes {
		h, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid hash %q: %w", s, err)
		}
		name, ok := table.Name(uint32(h))
		if !ok {
			name = "?"
		}
		fmt.Fprintf(stdout, "0x%08x\t%s\n", h, name)
	}
	return nil
}
