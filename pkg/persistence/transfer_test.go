package persistence_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/grunberg/pkg/adapters/memory"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/aretw0/grunberg/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_Errors(t *testing.T) {
	gw := persistence.New(memory.NewStore())
	ctx := context.Background()

	tests := []struct {
		name string
		doc  string
		kind domain.ErrorKind
	}{
		{"not json", `{oops`, domain.KindInvalidFormat},
		{"not an object", `[1,2]`, domain.KindInvalidFormat},
		{"missing state", `{"version":"1.0.0"}`, domain.KindInvalidFormat},
		{"null state", `{"version":"1.0.0","state":null}`, domain.KindInvalidFormat},
		{"missing version", `{"state":{"metadata":{},"inventory":{},"quests":{}}}`, domain.KindInvalidFormat},
		{"empty version", `{"version":"","state":{"metadata":{},"inventory":{},"quests":{}}}`, domain.KindInvalidFormat},
		{"zero version", `{"version":0,"state":{"metadata":{},"inventory":{},"quests":{}}}`, domain.KindInvalidFormat},
		{"state without quests", `{"version":"1.0.0","state":{"metadata":{},"inventory":{}}}`, domain.KindValidationFailed},
		{"scalar state", `{"version":"1.0.0","state":"hello"}`, domain.KindValidationFailed},
		{"inventory not an object", `{"version":"1.0.0","state":{"metadata":{},"inventory":[],"quests":{}}}`, domain.KindValidationFailed},
		{"wrong field type", `{"version":"1.0.0","state":{"metadata":{"playtime":"long"},"inventory":{},"quests":{}}}`, domain.KindValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gw.Import(ctx, strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err), "err: %v", err)
		})
	}
}

func TestImport_NonStringVersion(t *testing.T) {
	gw := persistence.New(memory.NewStore(), persistence.WithClock(fixedClock(saved)))
	exp, err := gw.Export(sampleState())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(exp.Data, &doc))
	doc["version"] = 1
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	imported, err := gw.Import(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Aria", imported.Character.Name)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("device unplugged") }

func TestImport_ReadFailure(t *testing.T) {
	gw := persistence.New(memory.NewStore())
	_, err := gw.Import(context.Background(), brokenReader{})
	assert.True(t, domain.IsKind(err, domain.KindFileReadFailed))

	_, err = gw.ImportFile(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, domain.IsKind(err, domain.KindFileReadFailed))
}

func TestExportImportRoundTrip(t *testing.T) {
	gw := persistence.New(memory.NewStore(), persistence.WithClock(fixedClock(saved)))
	state := sampleState()

	exp, err := gw.Export(state)
	require.NoError(t, err)
	assert.Equal(t, "grunberg_save_Aria_2024-03-02.json", exp.Filename)
	assert.True(t, strings.HasPrefix(string(exp.Data), "{\n  \"version\": \"1.0.0\""), "pretty printed with two spaces")

	dir := t.TempDir()
	path, err := gw.ExportTo(state, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, exp.Filename), path)

	// any extension is accepted
	renamed := filepath.Join(dir, "backup.sav")
	require.NoError(t, os.Rename(path, renamed))

	imported, err := gw.ImportFile(context.Background(), renamed)
	require.NoError(t, err)

	want := state.Clone()
	want.Metadata.LastSaved = saved.UnixMilli()
	assert.Equal(t, want, imported)
}

func TestExport_UnknownCharacter(t *testing.T) {
	gw := persistence.New(memory.NewStore(), persistence.WithClock(fixedClock(saved)))

	exp, err := gw.Export(domain.NewState(created))
	require.NoError(t, err)
	assert.Equal(t, "grunberg_save_unknown_2024-03-02.json", exp.Filename)

	_, err = gw.Export(nil)
	assert.True(t, domain.IsKind(err, domain.KindExportFailed))
}

func TestExportTo_MissingDir(t *testing.T) {
	gw := persistence.New(memory.NewStore())
	_, err := gw.ExportTo(sampleState(), filepath.Join(t.TempDir(), "absent"))
	assert.True(t, domain.IsKind(err, domain.KindExportFailed))
}

func TestImport_DoesNotTouchStore(t *testing.T) {
	gw := persistence.New(memory.NewStore())
	exp, err := gw.Export(sampleState())
	require.NoError(t, err)

	_, err = gw.Import(context.Background(), strings.NewReader(string(exp.Data)))
	require.NoError(t, err)
	assert.False(t, gw.HasSave(context.Background()))
}

func TestEnvelopeSchema(t *testing.T) {
	data, err := persistence.EnvelopeSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "Grunberg Save", schema["title"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "version")
	assert.Contains(t, props, "state")
	assert.Contains(t, props, "timestamp")
}
