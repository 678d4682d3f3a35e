package cli

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/tablink/internal/buildinfo"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	prevRead := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prevRead })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
}

func TestCurrentVersionInfoFromBuildInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.23.4",
		Main: debug.Module{
			Path:    "github.com/aidanlsb/tablink",
			Version: "v0.3.0",
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-09-30T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)

	info := currentVersionInfo()
	assert.Equal(t, "v0.3.0", info.Version)
	assert.Equal(t, "github.com/aidanlsb/tablink", info.ModulePath)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2026-09-30T12:00:00Z", info.CommitTime)
	assert.True(t, info.Modified)
	assert.Equal(t, "go1.23.4", info.GoVersion)
}

func TestCurrentVersionInfoFallsBackToLdflags(t *testing.T) {
	stubBuildInfo(t, nil, false)

	prevVersion, prevCommit, prevDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = prevVersion, prevCommit, prevDate
	})
	buildinfo.Version = "v0.2.1"
	buildinfo.Commit = "def456"
	buildinfo.Date = "2026-08-01"

	info := currentVersionInfo()
	assert.Equal(t, "v0.2.1", info.Version)
	assert.Equal(t, "def456", info.Commit)
	assert.Equal(t, "2026-08-01", info.CommitTime)
	assert.Equal(t, defaultModulePath, info.ModulePath)
}

func TestCurrentVersionInfoDevelBuild(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)

	info := currentVersionInfo()
	assert.Equal(t, "devel", info.Version)
}

func TestVersionCommandJSON(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: defaultModulePath, Version: "v1.0.0"}}, true)
	cfgPath := setupCLI(t, "", nil)

	out, err := runCLI(t, cfgPath, "--json", "version")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", dataMap(t, decodeResponse(t, out))["version"])
}
