package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// stateSchema is the structural check applied to imported states.
const stateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["metadata", "inventory", "quests"],
  "properties": {
    "metadata":  {"type": "object"},
    "inventory": {"type": "object"},
    "quests":    {"type": "object"}
  }
}`

var compileStateSchema = sync.OnceValues(func() (*jschema.Schema, error) {
	var doc any
	if err := json.Unmarshal([]byte(stateSchema), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse state schema: %w", err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("state.schema.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return c.Compile("state.schema.json")
})

// Import reads a save document, validates it and returns its state.
// It does not touch the store.
//
// Failures carry a domain.ErrorKind: FileReadFailed when r fails,
// InvalidFormat when the document is not JSON or lacks version/state,
// ValidationFailed when the state lacks metadata, inventory or quests.
// A version mismatch is only logged.
func (g *Gateway) Import(ctx context.Context, r io.Reader) (*domain.GameState, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.KindFileReadFailed.Wrap(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.KindInvalidFormat.Wrap(fmt.Errorf("failed to parse save file: %w", err))
	}

	if !truthy(doc["version"]) || !truthy(doc["state"]) {
		return nil, domain.KindInvalidFormat.Errorf("invalid save file format: version and state are required")
	}

	sch, err := compileStateSchema()
	if err != nil {
		return nil, domain.KindValidationFailed.Wrap(err)
	}
	if err := sch.Validate(doc["state"]); err != nil {
		return nil, domain.KindValidationFailed.Wrap(fmt.Errorf("save file validation failed: %w", err))
	}

	var body struct {
		State *domain.GameState `json:"state"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, domain.KindValidationFailed.Wrap(fmt.Errorf("save file validation failed: %w", err))
	}

	version, ok := doc["version"].(string)
	if !ok {
		version = fmt.Sprint(doc["version"])
	}
	g.warnVersion(version)
	return body.State, nil
}

// ImportFile opens path and delegates to Import. Any extension is accepted.
func (g *Gateway) ImportFile(ctx context.Context, path string) (*domain.GameState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.KindFileReadFailed.Wrap(err, "path", path)
	}
	defer f.Close()
	return g.Import(ctx, f)
}

// Export builds a fresh, pretty-printed save document for state.
// The filename is grunberg_save_<character name or "unknown">_<UTC date>.json.
func (g *Gateway) Export(state *domain.GameState) (domain.ExportedSave, error) {
	if state == nil {
		return domain.ExportedSave{}, domain.KindExportFailed.Errorf("failed to export save file: no state")
	}

	env := g.envelope(state)
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return domain.ExportedSave{}, domain.KindExportFailed.Wrap(fmt.Errorf("failed to export save file: %w", err))
	}

	name := "unknown"
	if state.Character != nil && state.Character.Name != "" {
		name = state.Character.Name
	}
	date := g.now().UTC().Format("2006-01-02")

	return domain.ExportedSave{
		Filename: fmt.Sprintf("grunberg_save_%s_%s.json", name, date),
		Data:     data,
	}, nil
}

// ExportTo writes the exported document into dir and returns its path.
func (g *Gateway) ExportTo(state *domain.GameState, dir string) (string, error) {
	exp, err := g.Export(state)
	if err != nil {
		return "", err
	}

	// character names are user input
	path := filepath.Join(dir, filepath.Base(exp.Filename))
	if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
		return "", domain.KindExportFailed.Wrap(err, "path", path)
	}
	return path, nil
}

// EnvelopeSchema returns the JSON Schema of the save envelope.
func EnvelopeSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&domain.SaveEnvelope{})
	schema.Title = "Grunberg Save"
	schema.Description = "Versioned save envelope written by grunberg"

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schema); err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return buf.Bytes(), nil
}

// truthy mirrors the loose presence check of the save format:
// null, false, 0 and "" count as missing.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
