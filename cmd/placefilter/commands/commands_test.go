package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/placefilter/internal/config"
	"github.com/jask/placefilter/internal/selection"
)

const testCatalog = `{
  "Japan": {"Tokyo": ["Shibuya", "Shinjuku"], "Osaka": ["Sakai"]},
  "Canada": {"Ontario": ["Toronto", "Ottawa"]}
}`

type cliEnv struct {
	config string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	return newCLIEnvWith(t, "file", "prefs.json")
}

func newCLIEnvWith(t *testing.T, backend, storeFile string) cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PLACEFILTER_CONFIG", "")

	catalogPath := filepath.Join(dir, "locations.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0o600))

	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[catalog]\npath = \"" + catalogPath + "\"\n\n" +
		"[store]\nbackend = \"" + backend + "\"\npath = \"" + filepath.Join(dir, storeFile) + "\"\nkey = \"location-filters\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return cliEnv{config: cfgPath}
}

func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", e.config}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSelectPersistsAcrossInvocations(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "select", "country", "Japan")
	require.NoError(t, err)
	require.Contains(t, out, "country: Japan")

	_, err = env.run(t, "select", "state", "Tokyo")
	require.NoError(t, err)

	out, err = env.run(t, "show")
	require.NoError(t, err)
	require.Contains(t, out, "country: Japan")
	require.Contains(t, out, "state:   Tokyo")
	require.Contains(t, out, "countries: 1  states: 1  cities: 2")
}

func TestSelectToggleClearsLevel(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "select", "country", "Japan")
	require.NoError(t, err)
	_, err = env.run(t, "select", "state", "Osaka")
	require.NoError(t, err)

	out, err := env.run(t, "select", "country", "Japan")
	require.NoError(t, err)
	require.Contains(t, out, "countries: 2  states: 3  cities: 5")

	out, err = env.run(t, "show", "--json")
	require.NoError(t, err)
	var got struct {
		Selection map[string]string `json:"selection"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, map[string]string{"country": "", "state": "", "city": ""}, got.Selection)
}

func TestSelectErrors(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "select", "city", "Toronto")
	require.ErrorIs(t, err, selection.ErrPreconditionViolation)

	_, err = env.run(t, "select", "country", "Japn")
	require.ErrorIs(t, err, selection.ErrInvalidSelection)
	require.Contains(t, err.Error(), `did you mean "Japan"`)

	_, err = env.run(t, "select", "planet", "Earth")
	require.Error(t, err)
}

func TestClearAndReset(t *testing.T) {
	env := newCLIEnv(t)
	for _, args := range [][]string{
		{"select", "country", "Canada"},
		{"select", "state", "Ontario"},
		{"select", "city", "Ottawa"},
	} {
		_, err := env.run(t, args...)
		require.NoError(t, err)
	}

	out, err := env.run(t, "clear", "state")
	require.NoError(t, err)
	require.Contains(t, out, "country: Canada")
	require.Contains(t, out, "countries: 1  states: 1  cities: 2")

	out, err = env.run(t, "reset")
	require.NoError(t, err)
	require.Contains(t, out, "countries: 2")
}

func TestOptions(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "options", "country")
	require.NoError(t, err)
	require.Equal(t, "  Canada\n  Japan\n", out)

	out, err = env.run(t, "options", "state")
	require.NoError(t, err)
	require.Empty(t, out)

	_, err = env.run(t, "select", "country", "Japan")
	require.NoError(t, err)
	out, err = env.run(t, "options", "country", "-q", "JA")
	require.NoError(t, err)
	require.Equal(t, "* Japan\n", out)

	out, err = env.run(t, "options", "province")
	require.NoError(t, err)
	require.Equal(t, "  Osaka\n  Tokyo\n", out)
}

func TestExport(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "select", "country", "Japan")
	require.NoError(t, err)
	_, err = env.run(t, "select", "state", "Osaka")
	require.NoError(t, err)

	out, err := env.run(t, "export")
	require.NoError(t, err)
	var got map[string]map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, map[string]map[string][]string{"Japan": {"Osaka": {"Sakai"}}}, got)

	file := filepath.Join(t.TempDir(), "out.json")
	_, err = env.run(t, "export", "-o", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.JSONEq(t, out, string(data))
}

func TestStoreFlagOverridesConfig(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "--store", "memory", "select", "country", "Japan")
	require.NoError(t, err)

	out, err := env.run(t, "show")
	require.NoError(t, err)
	require.Contains(t, out, "countries: 2", "memory store does not outlive the command")

	_, err = env.run(t, "--store", "nosuch", "show")
	require.Error(t, err)
}

func TestPrefsListsStoredRows(t *testing.T) {
	env := newCLIEnvWith(t, "sqlite", "placefilter.db")

	out, err := env.run(t, "prefs")
	require.NoError(t, err)
	require.Contains(t, out, "no stored preferences")

	_, err = env.run(t, "select", "country", "Japan")
	require.NoError(t, err)

	out, err = env.run(t, "prefs")
	require.NoError(t, err)
	require.Contains(t, out, "location-filters")
	require.Contains(t, out, `{"country":"Japan","state":"","city":""}`)
	require.Regexp(t, `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`, out)

	_, err = env.run(t, "--store", "file", "prefs")
	require.ErrorContains(t, err, "sqlite")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PLACEFILTER_CONFIG", "")
	env := cliEnv{config: filepath.Join(dir, "conf", "placefilter.toml")}

	out, err := env.run(t, "--store", "memory", "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, "wrote "+env.config)

	cfg, err := config.Load(env.config)
	require.NoError(t, err)
	require.Equal(t, config.BackendMemory, cfg.Store.Backend)
	require.Equal(t, "location-filters", cfg.Store.Key)

	_, err = env.run(t, "config", "init")
	require.ErrorContains(t, err, "already exists")

	_, err = env.run(t, "--store", "file", "config", "init", "--force")
	require.NoError(t, err)
	cfg, err = config.Load(env.config)
	require.NoError(t, err)
	require.Equal(t, config.BackendFile, cfg.Store.Backend)

	out, err = env.run(t, "show")
	require.NoError(t, err, "the written file is usable by the other commands")
	require.Contains(t, out, "countries:")
}
