package commands_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packrat-data/packrat/internal/packrat/commands"
	"github.com/packrat-data/packrat/internal/packrat/lib"
	"github.com/packrat-data/packrat/internal/packrat/types"
)

func TestInstallCommand(t *testing.T) {
	workDir := setupWorkDir(t)

	content := []byte("KSEA\nKPDX\n")
	digest := lib.GetHash(content)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	contents := types.NewGroup()
	contents.Children["stations"] = types.NewLeaf(types.NodeFile, digest, types.Metadata{
		Path: "stations.txt", Target: string(types.TargetFile),
	})
	spec := commands.InstallSpec{
		Contents: contents,
		Objects:  map[string]string{digest: server.URL + "/" + digest},
	}
	specData, err := json.Marshal(spec)
	require.NoError(t, err)
	specFile := filepath.Join(workDir, "install_spec.json")
	require.NoError(t, os.WriteFile(specFile, specData, 0644))

	require.NoError(t, commands.Install(workDir, "alice/weather", specFile, ""), "Install failed unexpectedly")

	// The package is now resolvable end to end.
	store, err := lib.Open("alice", "weather", types.DefaultFormat, workDir)
	require.NoError(t, err)
	require.True(t, store.Exists())
	resolved, err := store.Resolve("stations")
	require.NoError(t, err)
	data, err := os.ReadFile(resolved.FilePath)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}
