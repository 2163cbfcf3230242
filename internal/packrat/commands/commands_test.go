// The _test suffix creates an external test package, exercising the
// commands' public API as a true black box.
package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packrat-data/packrat/internal/packrat/commands"
	"github.com/packrat-data/packrat/internal/packrat/lib"
	"github.com/packrat-data/packrat/internal/packrat/types"
)

// setupWorkDir creates an isolated working directory with a few source
// files to add to packages.
func setupWorkDir(t *testing.T) string {
	t.Helper()
	lib.ResetIgnoreState()

	// The resolver canonicalizes paths, so the test setup must too or
	// root comparisons fail where the temp dir is a symlink.
	workDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err, "Failed to resolve symlinks for temp dir")
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "stations.txt"), []byte("KSEA\nKPDX\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "readings.csv"), []byte("station,temp_c\nKSEA,4.2\nKPDX,5.1\n"), 0644))
	return workDir
}

func TestSplitPackageSpec(t *testing.T) {
	user, pkg, err := commands.SplitPackageSpec("alice/weather")
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "weather", pkg)

	for _, bad := range []string{"alice", "alice/weather/extra", "/weather", "alice/", ""} {
		_, _, err := commands.SplitPackageSpec(bad)
		assert.Error(t, err, "Expected %q to be rejected", bad)
	}
}

func TestAddCommand(t *testing.T) {
	workDir := setupWorkDir(t)

	err := commands.Add(workDir, "alice/weather", "stations", filepath.Join(workDir, "stations.txt"), "")
	require.NoError(t, err, "Add failed unexpectedly")

	// A fresh marker directory was created in the working directory.
	root := filepath.Join(workDir, lib.PackageDirName)
	require.DirExists(t, root, "Add must create a package root when none exists")

	store, err := lib.Open("alice", "weather", types.DefaultFormat, workDir)
	require.NoError(t, err)
	require.True(t, store.Exists(), "The package manifest must be visible")

	resolved, err := store.Resolve("stations")
	require.NoError(t, err)
	data, err := os.ReadFile(resolved.FilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("KSEA\nKPDX\n"), data)
}

func TestAddDirCommand(t *testing.T) {
	workDir := setupWorkDir(t)

	// A nested source tree with an ignored directory.
	sourceDir := filepath.Join(workDir, "source")
	require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "raw"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "scratch"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "notes.txt"), []byte("top"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "raw", "q1.txt"), []byte("nested"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "scratch", "junk.txt"), []byte("junk"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, lib.IgnoreFilename), []byte("scratch/\n"), 0644))

	err := commands.AddDir(workDir, "alice/archive", sourceDir, "")
	require.NoError(t, err, "AddDir failed unexpectedly")

	store, err := lib.Open("alice", "archive", types.DefaultFormat, workDir)
	require.NoError(t, err)
	contents, err := store.GetContents()
	require.NoError(t, err)

	assert.Contains(t, contents.Children, "notes", "Top-level file must be added under its base name")
	require.Contains(t, contents.Children, "raw", "Nested files must land under a group per directory")
	assert.Contains(t, contents.Children["raw"].Children, "q1")
	assert.NotContains(t, contents.Children, "scratch", "Ignored directories must be skipped")
}

func TestHashCommand(t *testing.T) {
	workDir := setupWorkDir(t)

	// Hashing a package that does not exist is an error.
	err := commands.Hash(workDir, "alice/nothing", "")
	assert.Error(t, err, "Hash of a missing package must fail")

	require.NoError(t, commands.Add(workDir, "alice/weather", "stations", filepath.Join(workDir, "stations.txt"), ""))
	assert.NoError(t, commands.Hash(workDir, "alice/weather", ""))
}

func TestListPackages(t *testing.T) {
	workDir := setupWorkDir(t)

	require.NoError(t, commands.Add(workDir, "alice/weather", "stations", filepath.Join(workDir, "stations.txt"), ""))
	require.NoError(t, commands.Add(workDir, "bob/traffic", "stations", filepath.Join(workDir, "stations.txt"), ""))

	packages, err := commands.ListPackages(workDir)
	require.NoError(t, err, "ListPackages failed unexpectedly")
	require.Len(t, packages, 2, "Expected both packages to be listed")

	seen := make(map[string]bool)
	for _, p := range packages {
		seen[p.User+"/"+p.Package] = true
		assert.Equal(t, filepath.Join(workDir, lib.PackageDirName), p.Root)
	}
	assert.True(t, seen["alice/weather"])
	assert.True(t, seen["bob/traffic"])
}

func TestInspectCommand(t *testing.T) {
	workDir := setupWorkDir(t)
	require.NoError(t, commands.Add(workDir, "alice/weather", "stations", filepath.Join(workDir, "stations.txt"), ""))

	assert.NoError(t, commands.Inspect(workDir, "alice/weather", "", ""), "Inspecting the root group must succeed")
	assert.NoError(t, commands.Inspect(workDir, "alice/weather", "stations", ""), "Inspecting a file node must succeed")
	assert.Error(t, commands.Inspect(workDir, "alice/weather", "missing", ""), "Inspecting a missing path must fail")
}
