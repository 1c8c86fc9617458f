package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// newCLIEnv isolates config and data dirs and returns a runner that always
// passes --data-dir.
func newCLIEnv(t *testing.T) (run func(args ...string) map[string]any, dataDir string) {
	t.Helper()
	t.Setenv("SHOPLIST_CONFIG_DIR", t.TempDir())
	dataDir = t.TempDir()

	run = func(args ...string) map[string]any {
		t.Helper()
		full := append([]string{"--data-dir", dataDir}, args...)
		stdout, stderr, err := runCLI(t, full)
		require.NoError(t, err, "shoplist %v\nstderr:\n%s", args, stderr)

		var env map[string]any
		require.NoError(t, json.Unmarshal(stdout, &env), "stdout:\n%s", stdout)
		require.Contains(t, env, "data")
		return env
	}
	return run, dataDir
}

func data(env map[string]any) map[string]any {
	m, _ := env["data"].(map[string]any)
	return m
}

func TestLists_CreateToggleProgress(t *testing.T) {
	run, _ := newCLIEnv(t)

	created := data(run("lists", "create", "--name", "Weekly", "--item", "Milk:Dairy", "--item", "Bread:bakery"))
	listID, _ := created["id"].(string)
	require.NotEmpty(t, listID)
	items, _ := created["items"].([]any)
	require.Len(t, items, 2)
	assert.EqualValues(t, 0, created["progress"])

	first, _ := items[0].(map[string]any)
	itemID, _ := first["id"].(string)
	assert.Equal(t, "Milk", first["name"])
	assert.Equal(t, "dairy", first["category"])
	assert.Equal(t, false, first["completed"])

	toggled := data(run("items", "toggle", listID, itemID))
	assert.EqualValues(t, 50, toggled["progress"])

	prog := data(run("lists", "progress", listID))
	assert.EqualValues(t, 1, prog["done"])
	assert.EqualValues(t, 2, prog["total"])
	assert.EqualValues(t, 50, prog["progress"])

	// Toggling again restores the previous state.
	run("items", "toggle", listID, itemID)
	prog = data(run("lists", "progress", listID))
	assert.EqualValues(t, 0, prog["progress"])
}

func TestItems_ToggleTrimsIDs(t *testing.T) {
	run, _ := newCLIEnv(t)
	created := data(run("lists", "create", "--name", "Weekly", "--item", "Milk:Dairy"))
	listID := created["id"].(string)
	itemID := created["items"].([]any)[0].(map[string]any)["id"].(string)

	toggled := data(run("items", "toggle", " "+listID+" ", " "+itemID+" "))
	assert.Equal(t, listID, toggled["listId"])
	item, _ := toggled["item"].(map[string]any)
	assert.Equal(t, itemID, item["id"])
	assert.Equal(t, "Milk", item["name"])
	assert.Equal(t, true, item["completed"])
}

func TestLists_NewestFirstAndDelete(t *testing.T) {
	run, _ := newCLIEnv(t)

	a := data(run("lists", "create", "--name", "A", "--item", "Soap:Hygiene"))
	b := data(run("lists", "create", "--name", "B", "--item", "Chips:Snacks"))

	ls := run("lists", "ls")
	rows, _ := ls["data"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, b["id"], rows[0].(map[string]any)["id"])
	assert.Equal(t, a["id"], rows[1].(map[string]any)["id"])

	run("lists", "delete", a["id"].(string))
	rows, _ = run("lists", "ls")["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].(map[string]any)["name"])
}

func TestLists_UnknownIDsAreNotFound(t *testing.T) {
	run, dataDir := newCLIEnv(t)
	created := data(run("lists", "create", "--name", "A", "--item", "Soap:Hygiene"))
	listID := created["id"].(string)

	cases := [][]string{
		{"lists", "show", "list-nope"},
		{"lists", "delete", "list-nope"},
		{"lists", "rename", "list-nope", "--name", "X"},
		{"items", "toggle", "list-nope", "item-nope"},
		{"items", "rm", "list-nope", "item-nope"},
	}
	for _, args := range cases {
		_, stderr, err := runCLI(t, append([]string{"--data-dir", dataDir}, args...))
		require.Error(t, err, "shoplist %v", args)
		assert.Contains(t, string(stderr), "not found", "shoplist %v", args)
	}

	// Known list, unknown item.
	_, stderr, err := runCLI(t, []string{"--data-dir", dataDir, "items", "toggle", listID, "item-nope"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "not found")
}

func TestLists_CreateValidation(t *testing.T) {
	t.Setenv("SHOPLIST_CONFIG_DIR", t.TempDir())
	dataDir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"blank name", []string{"lists", "create", "--name", "  ", "--item", "Milk:Dairy"}, "list name is required"},
		{"no items", []string{"lists", "create", "--name", "Empty"}, "at least one item"},
		{"bad item spec", []string{"lists", "create", "--name", "A", "--item", "Milk"}, "Name:Category"},
		{"unknown category", []string{"lists", "create", "--name", "A", "--item", "Milk:Toys"}, "unknown category"},
		{"blank item name", []string{"lists", "create", "--name", "A", "--item", " :Dairy"}, "item name is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, stderr, err := runCLI(t, append([]string{"--data-dir", dataDir}, tc.args...))
			require.Error(t, err)
			assert.Contains(t, string(stderr), tc.want)
		})
	}

	// Nothing was saved.
	stdout, _, err := runCLI(t, []string{"--data-dir", dataDir, "lists", "ls"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(stdout))
}

func TestItems_AddRenameRemove(t *testing.T) {
	run, _ := newCLIEnv(t)
	created := data(run("lists", "create", "--name", "Party", "--item", "Soda:Beverages"))
	listID := created["id"].(string)

	added := data(run("items", "add", listID, "--name", "Chips", "--category", "snacks"))
	itemID, _ := added["id"].(string)
	require.NotEmpty(t, itemID)
	assert.Equal(t, "Chips", added["name"])

	renamed := data(run("lists", "rename", listID, "--name", "Birthday party"))
	assert.Equal(t, "Birthday party", renamed["name"])
	assert.EqualValues(t, 2, renamed["itemsTotal"])

	run("items", "rm", listID, itemID)
	shown := data(run("lists", "show", listID))
	items, _ := shown["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Soda", items[0].(map[string]any)["name"])
}

func TestCategories_CountsOpenItems(t *testing.T) {
	run, _ := newCLIEnv(t)
	created := data(run("lists", "create", "--name", "A", "--item", "Milk:Dairy", "--item", "Cheese:Dairy", "--item", "Soap:Hygiene"))
	first := created["items"].([]any)[0].(map[string]any)
	run("items", "toggle", created["id"].(string), first["id"].(string))

	rows, _ := run("categories")["data"].([]any)
	require.Len(t, rows, 11)
	open := map[string]float64{}
	for _, r := range rows {
		m := r.(map[string]any)
		open[m["id"].(string)] = m["open"].(float64)
	}
	assert.Equal(t, float64(1), open["dairy"])
	assert.Equal(t, float64(1), open["hygiene"])
	assert.Equal(t, float64(0), open["frozen"])
}

func TestTextFormat_RendersTable(t *testing.T) {
	t.Setenv("SHOPLIST_CONFIG_DIR", t.TempDir())
	dataDir := t.TempDir()

	_, _, err := runCLI(t, []string{"--data-dir", dataDir, "lists", "create", "--name", "Weekly", "--item", "Milk:Dairy"})
	require.NoError(t, err)

	stdout, _, err := runCLI(t, []string{"--data-dir", dataDir, "--format", "text", "lists", "ls"})
	require.NoError(t, err)
	out := string(stdout)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Weekly")
	assert.Contains(t, out, "0/1")
}

func TestLists_ExportMarkdown(t *testing.T) {
	run, dataDir := newCLIEnv(t)
	created := data(run("lists", "create", "--name", "Weekly", "--item", "Milk:Dairy", "--item", "Bread:Bakery"))
	listID := created["id"].(string)
	outDir := t.TempDir()

	res := data(run("lists", "export", "--to", outDir))
	written, _ := res["written"].([]any)
	require.Len(t, written, 2)

	page, err := os.ReadFile(filepath.Join(outDir, "lists", listID+".md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "# Weekly")
	assert.Contains(t, string(page), "- [ ] Milk")

	_, stderr, err := runCLI(t, []string{"--data-dir", dataDir, "lists", "export", listID, "--to", outDir})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "file exists")
}

func TestDocs(t *testing.T) {
	run, _ := newCLIEnv(t)

	topics, _ := data(run("docs"))["topics"].([]any)
	assert.Contains(t, topics, "keys")

	stdout, _, err := runCLI(t, []string{"docs", "keys", "--raw"})
	require.NoError(t, err)
	assert.Contains(t, string(stdout), "# Keys")

	_, _, err = runCLI(t, []string{"docs", "nope"})
	require.Error(t, err)
}

func TestConfig_Precedence(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("SHOPLIST_CONFIG_DIR", cfgDir)
	t.Setenv("SHOPLIST_DATA_DIR", "")
	t.Setenv("SHOPLIST_GLYPHS", "")
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("data_dir: /from/file\nglyphs: ascii\nlogin_delay: 2s\n"), 0o644))

	show := func(args ...string) map[string]any {
		t.Helper()
		stdout, stderr, err := runCLI(t, append(args, "config", "show"))
		require.NoError(t, err, "stderr:\n%s", stderr)
		var env map[string]any
		require.NoError(t, json.Unmarshal(stdout, &env))
		return data(env)
	}

	got := show()
	assert.Equal(t, "/from/file", got["dataDir"])
	assert.Equal(t, "ascii", got["glyphs"])
	assert.Equal(t, "2s", got["loginDelay"])

	t.Setenv("SHOPLIST_GLYPHS", "unicode")
	got = show()
	assert.Equal(t, "unicode", got["glyphs"])

	got = show("--glyphs", "ascii", "--data-dir", "/from/flag", "--persist")
	assert.Equal(t, "ascii", got["glyphs"])
	assert.Equal(t, "/from/flag", got["dataDir"])
	assert.Equal(t, true, got["persist"])

	stdout, _, err := runCLI(t, []string{"config", "path"})
	require.NoError(t, err)
	assert.Contains(t, string(stdout), filepath.Join(cfgDir, "config.yaml"))
}

func TestConfig_SetWritesFile(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("SHOPLIST_CONFIG_DIR", cfgDir)
	t.Setenv("SHOPLIST_GLYPHS", "")

	_, stderr, err := runCLI(t, []string{"config", "set", "glyphs", "ascii"})
	require.NoError(t, err, "stderr:\n%s", stderr)

	b, err := os.ReadFile(filepath.Join(cfgDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "glyphs: ascii")

	_, stderr, err = runCLI(t, []string{"config", "set", "colour", "red"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "unknown config key")

	_, stderr, err = runCLI(t, []string{"config", "set", "log_level", "bogus"})
	require.Error(t, err)
	assert.Contains(t, string(stderr), "log_level")
}

func TestConfig_SetRepairsBrokenLogLevel(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("SHOPLIST_CONFIG_DIR", cfgDir)
	t.Setenv("SHOPLIST_LOG_LEVEL", "")
	t.Setenv("SHOPLIST_LOG_FILE", "")
	logFile := filepath.Join(t.TempDir(), "shoplist.log")
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("log_file: "+logFile+"\nlog_level: bogus\n"), 0o644))

	// Other commands refuse to run with the broken level.
	_, _, err := runCLI(t, []string{"--data-dir", t.TempDir(), "lists", "ls"})
	require.Error(t, err)

	_, stderr, err := runCLI(t, []string{"config", "set", "log_level", "info"})
	require.NoError(t, err, "stderr:\n%s", stderr)

	stdout, stderr, err := runCLI(t, []string{"--data-dir", t.TempDir(), "lists", "ls"})
	require.NoError(t, err, "stderr:\n%s", stderr)
	assert.JSONEq(t, `{"data":[]}`, string(stdout))
}
