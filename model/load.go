package model

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/synbench/errors"
)

// Format names accepted by Decode and Encode
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// File is the on-disk layout of a model description:
//
//	[[structs]]
//	name = "MyStruct"
//
//	  [[structs.attributes]]
//	  name = "field1"
//	  type = "string"
type File struct {
	Structs []Struct `json:"structs" toml:"structs" yaml:"structs"`
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Newf("unsupported model file extension %q (supported: .toml, .yaml, .yml, .json)", filepath.Ext(path))
	}
}

// LoadFile reads and validates a model description file.
func LoadFile(path string) ([]Struct, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model file %s", path)
	}
	structs, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load model file %s", path)
	}
	return structs, nil
}

// Decode parses a model description in the given format and validates the
// names of every struct.
func Decode(data []byte, format string) ([]Struct, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return nil, errors.Wrap(err, "failed to decode TOML")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "failed to decode YAML")
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "failed to decode JSON")
		}
	default:
		return nil, errors.Newf("unsupported format: %s", format)
	}

	for i := range f.Structs {
		if err := f.Structs[i].Validate(); err != nil {
			return nil, errors.Wrapf(err, "struct %d", i)
		}
	}
	return f.Structs, nil
}

// Encode writes structs in the given format, in the same layout Decode reads.
func Encode(w io.Writer, format string, structs []Struct) error {
	f := File{Structs: structs}
	switch format {
	case FormatTOML:
		enc := gotoml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(f); err != nil {
			return errors.Wrap(err, "failed to encode TOML")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return errors.Wrap(err, "failed to encode YAML")
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return errors.Wrap(err, "failed to encode JSON")
		}
	default:
		return errors.Newf("unsupported format: %s (supported: toml, yaml, json)", format)
	}
	return nil
}
