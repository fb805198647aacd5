package keymap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportProfile_YAML(t *testing.T) {
	path := writeProfile(t, "work.yaml", `name: work
version: "1"
bindings:
  - keys: ctrl+q
    action: app.quit
  - keys: f1
    action: app.help
`)

	p, err := ImportProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "work", p.Name)
	assert.Len(t, p.Bindings, 2)
}

func TestImportProfile_JSON(t *testing.T) {
	path := writeProfile(t, "work.json", `{
  "name": "work",
  "bindings": [
    {"keys": "ctrl+q", "action": "app.quit"},
    {"keys": "shift+tab", "action": "nav.prev"}
  ]
}`)

	p, err := ImportProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "work", p.Name)
	require.Len(t, p.Bindings, 2)
	assert.Equal(t, "SHIFT_TAB", p.Bindings[1].Token())
}

func TestImportProfile_JSONProbeErrors(t *testing.T) {
	path := writeProfile(t, "broken.json", `{
  "bindings": [
    {"action": "app.quit"},
    {"keys": "ctrl+x"}
  ]
}`)

	_, err := ImportProfile(path)
	require.Error(t, err)

	var probe *ProbeError
	require.ErrorAs(t, err, &probe)
	assert.Len(t, probe.Problems, 3)
	assert.Contains(t, probe.Problems[0], "name")
	assert.Contains(t, probe.Problems[1], "bindings.0.keys")
	assert.Contains(t, probe.Problems[2], "bindings.1.action")
}

func TestImportProfile_InvalidJSON(t *testing.T) {
	path := writeProfile(t, "garbage.json", `{not json`)

	_, err := ImportProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestImportProfile_SchemaViolations(t *testing.T) {
	path := writeProfile(t, "bad.yaml", `name: test
options:
  decode_timeout_ms: "fast"
bindings:
  - keys: ctrl+q
    action: app.quit
    nope: true
`)

	_, err := ImportProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
	assert.Contains(t, err.Error(), "decode_timeout_ms")
}

func TestImportProfile_IncompatibleVersion(t *testing.T) {
	path := writeProfile(t, "future.yaml", `name: test
version: "9.0"
bindings:
  - keys: ctrl+q
    action: app.quit
`)

	p, err := ImportProfile(path)
	require.Error(t, err)

	var verr *IncompatibleVersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "9.0", verr.ProfileVersion)
	assert.NotNil(t, p, "profile is still returned for inspection")
}

func TestImportProfile_ShadowWarning(t *testing.T) {
	path := writeProfile(t, "shadow.yaml", `name: test
bindings:
  - keys: ctrl+q
    action: app.quit
  - keys: ctrl+q
    action: app.other
`)

	p, err := ImportProfile(path)
	require.Error(t, err)

	var warn *ShadowedBindingWarning
	require.ErrorAs(t, err, &warn)
	require.Len(t, warn.Shadowed, 1)
	assert.Contains(t, warn.Shadowed[0], "app.other")
	require.NotNil(t, p)
	assert.Len(t, p.Bindings, 2)
}

func TestImportProfile_GuardedDuplicatesNotShadowed(t *testing.T) {
	path := writeProfile(t, "guarded.yaml", `name: test
bindings:
  - keys: enter
    action: edit.accept
    when: mode == "insert"
  - keys: enter
    action: nav.open
`)

	_, err := ImportProfile(path)
	assert.NoError(t, err, "a guarded binding does not shadow a later unguarded one")
}

func TestImportProfile_IdenticalGuardShadowed(t *testing.T) {
	path := writeProfile(t, "dupe-guard.yaml", `name: test
bindings:
  - keys: enter
    action: edit.accept
    when: mode == "insert"
  - keys: enter
    action: edit.other
    when: mode == "insert"
`)

	_, err := ImportProfile(path)
	var warn *ShadowedBindingWarning
	require.ErrorAs(t, err, &warn)
	assert.Contains(t, warn.Shadowed[0], "edit.other")
}

func TestImportProfile_MissingFile(t *testing.T) {
	_, err := ImportProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read profile")
}

func TestValidateAgainstSchema(t *testing.T) {
	valid := []byte(`name: ok
bindings:
  - keys: ctrl+q
    action: app.quit
`)
	assert.NoError(t, ValidateAgainstSchema(valid))

	assert.Error(t, ValidateAgainstSchema(nil))
	assert.Error(t, ValidateAgainstSchema([]byte(`name: "has spaces!"`)))
	assert.Error(t, ValidateAgainstSchema([]byte(`{"name": "x", "extra": 1}`)))
}
