package io

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/saasfactory/archviz/pkg/diagram"
	"github.com/saasfactory/archviz/pkg/errors"
)

// Read decodes a definition from r and builds the diagram it describes.
//
// Read returns an error if:
//   - The input is malformed or contains unknown fields
//   - A node has an unknown kind or a duplicate ID
//   - A cluster, edge or chain references an unknown node
//   - A node belongs to more than one cluster
//
// Errors are wrapped with context naming the node, cluster, edge or chain
// that caused the problem. Read does not close r.
func Read(r io.Reader, enc Encoding) (*diagram.Diagram, error) {
	var doc document
	switch enc {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil, errors.New(errors.ErrCodeInvalidInput, "decode yaml: empty document")
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidInput, "decode toml: unknown keys %s", strings.Join(keys, ", "))
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported definition encoding %q", enc)
	}

	if len(doc.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "definition declares no nodes")
	}
	return doc.build()
}

// Import reads the definition file at path. The encoding is inferred from
// the file extension.
func Import(path string) (*diagram.Diagram, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	enc, err := EncodingOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
