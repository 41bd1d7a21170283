package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/scout/internal/filelock"
	"github.com/harrison/scout/internal/match"
	"github.com/harrison/scout/internal/walker"
)

// isolate points the scout home at an empty directory and clears overrides
// so the user's environment cannot leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("SCOUT_HOME", home)
	for _, key := range flagKeys {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(key), "")
		os.Unsetenv(EnvPrefix + "_" + strings.ToUpper(key))
	}
	return home
}

func makeTree(t *testing.T, entries ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, e := range entries {
		path := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(e, "/")))
		if strings.HasSuffix(e, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	return root
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func outputLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRootCommand_Help(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "scout [path] <pattern>")
	assert.Contains(t, stdout, "--invisible")
	assert.Contains(t, stdout, "--filesonly")
	assert.Contains(t, stdout, "--regex")
	assert.Contains(t, stdout, "--tree")
}

func TestRootCommand_Version(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, Version)
}

func TestRootCommand_SearchDefaultFlags(t *testing.T) {
	isolate(t)
	root := makeTree(t, "a/", "b.txt", ".hidden/b.txt")

	stdout, _, err := execute(t, root, "b.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "b.txt"),
		"Explored 2 directories and searched 2 objects, found 0 directories and 1 files.",
	}, outputLines(stdout))
}

func TestRootCommand_SearchIncludeHidden(t *testing.T) {
	isolate(t)
	root := makeTree(t, "a/", "b.txt", ".hidden/b.txt")

	stdout, _, err := execute(t, "-i", root, "b.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "b.txt"),
		filepath.Join(root, ".hidden", "b.txt"),
		"Explored 3 directories and searched 4 objects, found 0 directories and 2 files.",
	}, outputLines(stdout))
}

func TestRootCommand_MissingRoot(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	stdout, _, err := execute(t, missing, "x")
	require.Error(t, err)

	var rootErr *walker.RootError
	require.True(t, errors.As(err, &rootErr), "got %T: %v", err, err)
	assert.Equal(t, missing, rootErr.Path)
	assert.Empty(t, stdout, "no summary for an invalid root")
}

func TestRootCommand_ArgumentErrors(t *testing.T) {
	isolate(t)
	root := makeTree(t, "a/")

	t.Run("missing pattern", func(t *testing.T) {
		_, _, err := execute(t)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing search pattern")
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, _, err := execute(t, root, "a", "b")
		require.Error(t, err)
	})

	t.Run("tree takes one path", func(t *testing.T) {
		_, _, err := execute(t, "--tree", root, "a")
		require.Error(t, err)
	})

	t.Run("invalid regex", func(t *testing.T) {
		stdout, _, err := execute(t, "-r", root, "(")
		require.Error(t, err)

		var patErr *match.PatternError
		assert.True(t, errors.As(err, &patErr), "got %T: %v", err, err)
		assert.Empty(t, stdout)
	})
}

func TestRootCommand_DefaultRootIsWorkingDirectory(t *testing.T) {
	isolate(t)
	root := makeTree(t, "sub/needle")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Setenv("PWD", root)
	t.Cleanup(func() { _ = os.Chdir(wd) })

	stdout, _, err := execute(t, "-s", "needle")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"needle",
		"Explored 2 directories and searched 2 objects, found 0 directories and 1 files.",
	}, outputLines(stdout))
}

func TestRootCommand_Order(t *testing.T) {
	isolate(t)
	root := makeTree(t, "a/deep/hit", "b/hit", "hit")

	bfs, _, err := execute(t, root, "hit")
	require.NoError(t, err)
	dfs, _, err := execute(t, "-d", root, "hit")
	require.NoError(t, err)
	dfsLong, _, err := execute(t, "--order", "dfs", root, "hit")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "hit"),
		filepath.Join(root, "b", "hit"),
		filepath.Join(root, "a", "deep", "hit"),
	}, outputLines(bfs)[:3])
	assert.Equal(t, []string{
		filepath.Join(root, "hit"),
		filepath.Join(root, "a", "deep", "hit"),
		filepath.Join(root, "b", "hit"),
	}, outputLines(dfs)[:3])
	assert.Equal(t, dfs, dfsLong)

	// same counters either way
	assert.Equal(t, outputLines(bfs)[3], outputLines(dfs)[3])
}

func TestRootCommand_Tree(t *testing.T) {
	isolate(t)
	root := makeTree(t, "a/c.txt", "b.txt")

	stdout, _, err := execute(t, "--tree", "-s", root)
	require.NoError(t, err)

	assert.Equal(t, root+":\na\nb.txt\n\n"+filepath.Join(root, "a")+":\nc.txt\n\n", stdout)
}

func TestRootCommand_Gitignore(t *testing.T) {
	isolate(t)
	root := makeTree(t, "keep.txt", "drop.log", "logs/old.log")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\n"), 0644))

	without, _, err := execute(t, "-r", "-f", "-s", root, `.*\.log`)
	require.NoError(t, err)
	assert.Contains(t, without, "drop.log")

	with, _, err := execute(t, "--gitignore", "-r", "-f", "-s", root, `.*\.log`)
	require.NoError(t, err)
	assert.NotContains(t, with, "drop.log")
}

func TestRootCommand_NoScoutHome(t *testing.T) {
	isolate(t)
	t.Setenv("SCOUT_HOME", "")
	t.Setenv("HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	root := makeTree(t, "a/", "b.txt")

	stdout, stderr, err := execute(t, "--log-level", "debug", root, "b.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "b.txt"),
		"Explored 2 directories and searched 2 objects, found 0 directories and 1 files.",
	}, outputLines(stdout))
	assert.Contains(t, stderr, "using defaults")

	_, _, err = execute(t, "--init-config")
	require.Error(t, err, "writing a config needs a home")
}

func TestRootCommand_UnreadableGitignore(t *testing.T) {
	isolate(t)
	root := makeTree(t, "drop.log")
	require.NoError(t, os.Mkdir(filepath.Join(root, ".gitignore"), 0755))

	stdout, stderr, err := execute(t, "--gitignore", "-s", root, "drop.log")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"drop.log",
		"Explored 1 directories and searched 1 objects, found 0 directories and 1 files.",
	}, outputLines(stdout))
	assert.Contains(t, stderr, "[WARN]")
	assert.Contains(t, stderr, ".gitignore")
}

func TestRootCommand_ConfigPrecedence(t *testing.T) {
	isolate(t)
	root := makeTree(t, "target/", "x/target")

	configPath := filepath.Join(t.TempDir(), "scout.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("files_only: true\nshort: true\n"), 0644))

	t.Run("file", func(t *testing.T) {
		stdout, _, err := execute(t, "--config", configPath, root, "target")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"target",
			"Explored 3 directories and searched 1 objects, found 0 directories and 1 files.",
		}, outputLines(stdout))
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("SCOUT_FILES_ONLY", "false")
		stdout, _, err := execute(t, "--config", configPath, root, "target")
		require.NoError(t, err)
		assert.Contains(t, stdout, "found 1 directories and 1 files.")
	})

	t.Run("flag over env", func(t *testing.T) {
		t.Setenv("SCOUT_FILES_ONLY", "false")
		stdout, _, err := execute(t, "--config", configPath, "--filesonly", root, "target")
		require.NoError(t, err)
		assert.Contains(t, stdout, "found 0 directories and 1 files.")
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Setenv("SCOUT_COLOR", "sometimes")
		_, _, err := execute(t, root, "target")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid color mode")
	})

	t.Run("reserved names from file", func(t *testing.T) {
		reservedConfig := filepath.Join(t.TempDir(), "scout.yaml")
		require.NoError(t, os.WriteFile(reservedConfig, []byte("reserved_names: [x]\n"), 0644))

		stdout, _, err := execute(t, "--config", reservedConfig, root, "target")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "target"),
			"Explored 2 directories and searched 1 objects, found 1 directories and 0 files.",
		}, outputLines(stdout))
	})
}

func TestRootCommand_DebugLogging(t *testing.T) {
	isolate(t)
	root := makeTree(t, "a/")

	_, stderr, err := execute(t, "--log-level", "debug", root, "a")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[DEBUG]")
	assert.Contains(t, stderr, "order=bfs")

	_, stderr, err = execute(t, root, "a")
	require.NoError(t, err)
	assert.Empty(t, stderr, "default level is warn")
}

func TestRootCommand_InitConfig(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "config.yaml")

	stdout, _, err := execute(t, "--init-config")
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "order: bfs")

	_, stderr, err := execute(t, "--init-config")
	require.Error(t, err)
	assert.True(t, errors.Is(err, filelock.ErrExists))
	assert.Contains(t, stderr, "Warning: config file already exists")
	assert.Contains(t, stderr, "--force")

	_, _, err = execute(t, "--init-config", "--force")
	require.NoError(t, err)

	_, _, err = execute(t, "--init-config", "extra")
	require.Error(t, err)
}
