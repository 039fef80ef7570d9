package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclex/internal/cli"
	"github.com/yaklabco/doclex/internal/configloader"
	"github.com/yaklabco/doclex/pkg/reporter"
	"github.com/yaklabco/doclex/pkg/runner"
)

var testInfo = cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}

const javaSource = `/**
 * Returns the {@code size}.
 *
 * @return the size
 */
int size();
/** Broken {@link Foo */
`

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

// fixtureDir writes javaSource and an empty config file to a temp directory.
func fixtureDir(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.java"), []byte(javaSource), 0o644))

	cfgFile := filepath.Join(t.TempDir(), ".doclex.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("dialect: java\n"), 0o644))

	return dir, cfgFile
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "doclex", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"scan", "init", "config", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestScanCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	scanCmd, _, err := cmd.Find([]string{"scan"})
	require.NoError(t, err)

	for _, name := range []string{
		"format", "view", "jobs", "ignore", "tab-stop", "dialect", "strict",
		"tag-introducer", "ext", "no-context", "no-summary", "compact",
	} {
		assert.NotNil(t, scanCmd.Flags().Lookup(name), "missing flag %s", name)
	}

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}
}

func TestScan_TextTokens(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixtureDir(t)

	out, err := execute(t, "scan", "--config", cfgFile, "--color", "never", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "A.java (2 comments)")
	assert.Contains(t, out, "InlineTagStart")
	assert.Contains(t, out, `unclosed inline tag "link"`)
	assert.Contains(t, out, "2 comments")
}

func TestScan_TreeView(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixtureDir(t)

	out, err := execute(t, "scan", "--config", cfgFile, "--color", "never", "--view", "tree", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "BlockTag return")
	assert.Contains(t, out, "Erroneous link (unclosed)")
}

func TestScan_JSON(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixtureDir(t)

	out, err := execute(t, "scan", "--config", cfgFile, "--format", "json", dir)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	require.Len(t, output.Files, 1)
	assert.Len(t, output.Files[0].Comments, 2)
	assert.Equal(t, 1, output.Summary.TotalIssues)
}

func TestScan_Strict(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixtureDir(t)

	_, err := execute(t, "scan", "--config", cfgFile, "--color", "never", "--strict", dir)
	require.ErrorIs(t, err, cli.ErrScanWarningsFound)
	assert.Equal(t, cli.ExitScanWarnings, cli.ExitCode(err))
	assert.True(t, cli.IsResultError(err))
}

func TestScan_InvalidFlagValue(t *testing.T) {
	t.Parallel()

	dir, cfgFile := fixtureDir(t)

	_, err := execute(t, "scan", "--config", cfgFile, "--view", "html", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestScan_ConfigFileSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := "///\ta\n///\t\tb\nvoid f();\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "F.java"), []byte(source), 0o644))

	cfgFile := filepath.Join(t.TempDir(), "doclex.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("tab_stop = 4\nformat = \"json\"\n"), 0o644))

	out, err := execute(t, "scan", "--config", cfgFile, dir)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	require.Len(t, output.Files[0].Comments, 1)
	assert.Equal(t, "a\n\tb", output.Files[0].Comments[0].Body)
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".doclex.toml")

	_, err := execute(t, "init", "--output", path, "--minimal")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# doclex configuration")
	assert.Contains(t, string(data), `dialect = "java"`)
	assert.Contains(t, string(data), "tab_stop = 8")
	assert.NotContains(t, string(data), "extensions")

	_, err = execute(t, "init", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "init", "--output", path, "--force")
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "extensions")

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.NotContains(t, string(backup), "extensions")
}

func TestInit_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "init", "--format", "json", "--output", filepath.Join(t.TempDir(), "x.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be yaml or toml")
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), ".doclex.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("tab_stop: 4\nview: outline\n"), 0o644))

	out, err := execute(t, "config", "show", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "tab_stop: 4")
	assert.Contains(t, out, "view: outline")

	out, err = execute(t, "config", "show", "--config", cfgFile, "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "tab_stop = 4")
}

func TestConfigPaths(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), ".doclex.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("jobs: 2\n"), 0o644))

	out, err := execute(t, "config", "paths", "--config", cfgFile, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "explicit  "+cfgFile+" loaded")
}

func TestConfigEnv(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "config", "env", "--color", "never")
	require.NoError(t, err)

	for _, envVar := range configloader.ListEnvVars() {
		assert.Contains(t, out, envVar.Name)
	}
	assert.Contains(t, out, "DOCLEX_TAB_STOP")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "doclex")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestHelp(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--color", "never", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "scan")
	assert.Contains(t, out, "--config")

	out, err = execute(t, "--color=never", "scan", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--tab-stop")
	assert.Contains(t, out, "Global Flags:")
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stats  runner.Stats
		strict bool
		want   int
	}{
		{name: "clean", stats: runner.Stats{Comments: 3}, want: cli.ExitSuccess},
		{name: "scan errors not strict", stats: runner.Stats{ScanErrors: 1}, want: cli.ExitSuccess},
		{name: "scan errors strict", stats: runner.Stats{ScanErrors: 1, UnclosedTags: 2}, strict: true, want: cli.ExitScanErrors},
		{name: "unclosed tags strict", stats: runner.Stats{UnclosedTags: 1}, strict: true, want: cli.ExitScanWarnings},
		{name: "unreadable", stats: runner.Stats{FilesErrored: 1}, want: cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(&runner.Result{Stats: tt.stats}, tt.strict))
		})
	}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitScanErrors, cli.ExitCode(cli.ErrScanIssuesFound))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(cli.ErrUnreadableFiles))
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(errors.Join(
		errors.New("failed to load configuration"),
		&configloader.ValidationError{Field: "view", Message: "bad"},
	)))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(errors.New("boom")))
	assert.False(t, cli.IsResultError(errors.New("boom")))
	assert.False(t, strings.Contains(cli.ErrScanIssuesFound.Error(), "\n"))
}
