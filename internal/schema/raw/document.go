package raw

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"desergen/internal/modpath"
	"desergen/internal/schema"
)

// Document is one decoded schema file.
type Document struct {
	// Name overrides the generated type name.
	Name string
	// FileName overrides the output file stem.
	FileName string
	// ModPath overrides the module path the schema is emitted under.
	ModPath *modpath.Path
	// Schema is the unresolved body.
	Schema Schema
	// Validation is optional deserialization metadata.
	Validation *schema.ValidationInfo

	// Source is the file the document was read from, if any.
	Source string
	// LastUpdated is the source modification time, if known.
	LastUpdated time.Time
}

// document is the YAML wire shape of a schema file.
type document struct {
	Name       string                 `yaml:"name,omitempty"`
	FileName   string                 `yaml:"file_name,omitempty"`
	ModPath    *modpath.Path          `yaml:"mod_path,omitempty"`
	Schema     yaml.Node              `yaml:"schema"`
	Validation *schema.ValidationInfo `yaml:"validation,omitempty"`
}

// Parse decodes a schema document from YAML.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var wire document
	if err := dec.Decode(&wire); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errMissingSchema
		}

		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}

	if wire.Schema.Kind == 0 {
		return nil, errMissingSchema
	}

	body, err := decodeSchema(&wire.Schema)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	if wire.Name != "" && strings.TrimSpace(wire.Name) == "" {
		return nil, errors.New("name override must not be blank")
	}

	if wire.FileName != "" && strings.TrimSpace(wire.FileName) == "" {
		return nil, errors.New("file_name override must not be blank")
	}

	if wire.FileName != "" {
		if err := modpath.CheckSegment(wire.FileName); err != nil {
			return nil, fmt.Errorf("file_name override: %w", err)
		}
	}

	return &Document{
		Name:       wire.Name,
		FileName:   wire.FileName,
		ModPath:    wire.ModPath,
		Schema:     body,
		Validation: wire.Validation,
	}, nil
}
