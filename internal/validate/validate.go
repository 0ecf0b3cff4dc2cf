// Package validate holds the compiled JSON Schemas for request payloads.
// Schemas are embedded and compiled once at startup; a payload that fails
// validation is a client error, never a server one.
package validate

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Registry maps payload names to compiled schemas. Read-only after New.
type Registry struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles every embedded schema. The schema name is the file name
// without extension, e.g. schemas/rfq.json -> "rfq".
func New() (*Registry, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read embedded schemas: %w", err)
	}

	reg := &Registry{schemas: make(map[string]*jsonschema.Schema, len(entries))}
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(data, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		reg.schemas[name] = rs
	}
	return reg, nil
}

// Check validates a payload against a named schema. The returned error text
// is safe to show to API clients.
func (r *Registry) Check(ctx context.Context, name string, payload []byte) error {
	rs, ok := r.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}
	verrs, err := rs.ValidateBytes(ctx, payload)
	if err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for i, ve := range verrs {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(ve.Error())
		}
		return fmt.Errorf("%s", sb.String())
	}
	return nil
}
