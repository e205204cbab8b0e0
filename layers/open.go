// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats are the supported configuration file formats.
type Formats int32

const (
	JSON Formats = iota
	TOML
	YAML
)

func (f Formats) String() string {
	switch f {
	case JSON:
		return "json"
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	}
	return fmt.Sprintf("Formats(%d)", int32(f))
}

// FormatFromExt returns the format of the given file name from its
// extension: .json, .toml, .yaml or .yml.
func FormatFromExt(filename string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("layers: unknown configuration format of %q", filename)
}

// DirFiles are the configuration file names looked for by [OpenDir],
// in order.
var DirFiles = []string{"config.json", "config.toml", "config.yaml", "config.yml"}

// Read decodes a configuration in the given format. Values missing from
// the input keep their defaults. The result is sorted but not validated.
func Read(r io.Reader, format Formats) (*Config, error) {
	c := &Config{}
	c.Defaults()
	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(c)
	case TOML:
		err = toml.NewDecoder(r).Decode(c)
	case YAML:
		err = yaml.NewDecoder(r).Decode(c)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		err = fmt.Errorf("layers: unknown format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("layers: decoding %v: %w", format, err)
	}
	c.Sort()
	return c, nil
}

// Write encodes the configuration in the given format.
func Write(c *Config, w io.Writer, format Formats) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(c)
	case TOML:
		return toml.NewEncoder(w).Encode(c)
	case YAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("layers: unknown format %v", format)
}

// Load loads the configuration in the given file, in the format given
// by its extension, and checks it without looking at the resource
// directory. A relative [Config.Resource] is resolved against the
// directory of the file.
func Load(filename string) (*Config, error) {
	format, err := FormatFromExt(filename)
	if err != nil {
		return nil, err
	}
	if ok, err := fsx.FileExists(filename); !ok {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %q", ErrNoConfig, filename)
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	c, err := Read(bytes.NewReader(b), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	dir := filepath.Dir(filename)
	switch {
	case c.Resource == "":
		c.Resource = dir
	case !filepath.IsAbs(c.Resource):
		c.Resource = filepath.Join(dir, c.Resource)
	}
	if err := c.Validate(nil); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

// Open opens the configuration in the given file like [Load], and also
// checks that the resource directory and the image directories of all
// layers exist.
func Open(filename string) (*Config, error) {
	c, err := Load(filename)
	if err != nil {
		return nil, err
	}
	if st, err := os.Stat(c.Resource); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrNoResource, c.Resource)
	}
	if err := c.Validate(os.DirFS(c.Resource)); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	slog.Debug("layers: opened configuration", "file", filename, "layers", len(c.Layers))
	return c, nil
}

// FindConfig returns the configuration file of the panorama resource
// directory, the first of [DirFiles] present in it.
func FindConfig(resource string) (string, error) {
	if st, err := os.Stat(resource); err != nil || !st.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrNoResource, resource)
	}
	for _, fn := range DirFiles {
		fp := filepath.Join(resource, fn)
		if errors.Log1(fsx.FileExists(fp)) {
			return fp, nil
		}
	}
	return "", fmt.Errorf("%w: no %s in %q", ErrNoConfig, strings.Join(DirFiles, ", "), resource)
}

// OpenDir opens the configuration of the panorama resource directory
// found by [FindConfig].
func OpenDir(resource string) (*Config, error) {
	fn, err := FindConfig(resource)
	if err != nil {
		return nil, err
	}
	return Open(fn)
}

// Save saves the configuration to the given file, in the format given
// by its extension.
func Save(c *Config, filename string) (err error) {
	format, err := FormatFromExt(filename)
	if err != nil {
		return err
	}
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(fp)
	if err := Write(c, bw, format); err != nil {
		return err
	}
	return bw.Flush()
}
