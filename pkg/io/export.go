package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/saasfactory/archviz/pkg/diagram"
	"github.com/saasfactory/archviz/pkg/errors"
)

// Write encodes a diagram definition to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(w io.Writer, d *diagram.Diagram, enc Encoding) error {
	doc := fromDiagram(d)
	switch enc {
	case JSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		if err := e.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case YAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := e.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case TOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported definition encoding %q", enc)
	}
	return nil
}

// Marshal returns the encoded definition.
func Marshal(d *diagram.Diagram, enc Encoding) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes a diagram definition to the file at path, inferring the
// encoding from the extension.
func Export(d *diagram.Diagram, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	enc, err := EncodingOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return writeClose(f, d, enc, path)
}

// writeClose writes the definition to wc and closes it, reporting a close
// failure when the write itself succeeded.
func writeClose(wc io.WriteCloser, d *diagram.Diagram, enc Encoding, name string) error {
	if err := Write(wc, d, enc); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}
