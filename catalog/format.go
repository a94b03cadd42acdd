package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file or key extension.
// Unknown extensions are reported as an error.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("catalog: unsupported file extension for %q", path)
	}
}

// Decode reads a whole catalog document.
func Decode(r io.Reader, format Format) (*Document, error) {
	doc := &Document{}
	if err := decode(r, format, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeCommand reads a document holding a single command.
func DecodeCommand(r io.Reader, format Format) (*Command, error) {
	cmd := &Command{}
	if err := decode(r, format, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Encode writes v (a Document or Command) in the given format.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(v)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("catalog: unsupported format %q", format)
	}
}

func decode(r io.Reader, format Format, v any) error {
	var err error

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(v)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		var meta toml.MetaData
		meta, err = toml.NewDecoder(r).Decode(v)
		if err == nil {
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown field %q", undecoded[0].String())
			}
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	default:
		return fmt.Errorf("catalog: unsupported format %q", format)
	}

	if err != nil {
		return fmt.Errorf("catalog: failed to decode %s: %w", format, err)
	}
	return nil
}
