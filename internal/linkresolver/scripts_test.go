package linkresolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryCoversKnownBrowsers(t *testing.T) {
	reg := DefaultRegistry()
	for _, id := range []string{
		"company.thebrowser.Browser",
		"com.vivaldi.Vivaldi",
		"com.google.Chrome",
		"com.brave.Browser",
		"com.apple.Safari",
		"com.kagi.kagimacOS",
		"org.mozilla.firefox",
		"app.zen-browser.zen",
		"net.imput.helium",
		"company.thebrowser.dia",
	} {
		_, ok := reg.ByBundleID[id]
		assert.True(t, ok, "missing %s", id)
	}
	require.NoError(t, reg.Validate())
}

func TestRegistryLookup(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name     string
		app      Application
		wantName string
		ok       bool
	}{
		{name: "bundle id", app: Application{BundleID: "com.apple.Safari"}, wantName: "Safari", ok: true},
		{name: "bundle id wins over name", app: Application{BundleID: "com.apple.Safari", Name: "Vivaldi.app"}, wantName: "Safari", ok: true},
		{name: "alias", app: Application{BundleID: "com.vivaldi.Vivaldi.beta", Name: "Vivaldi.app"}, wantName: "Vivaldi", ok: true},
		{name: "alias without suffix", app: Application{Name: "Helium"}, wantName: "Helium", ok: true},
		{name: "unknown", app: Application{BundleID: "com.example", Name: "Example.app"}},
		{name: "empty", app: Application{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := reg.Lookup(tt.app)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantName, s.Name)
		})
	}
}

func TestScriptsUseDeepTraversalForFirefoxAndZen(t *testing.T) {
	reg := DefaultRegistry()
	for _, id := range []string{"org.mozilla.firefox", "app.zen-browser.zen"} {
		s := reg.ByBundleID[id]
		assert.Contains(t, s.Body, "System Events")
		assert.Contains(t, s.Body, "combo box 1")
	}
	assert.Contains(t, reg.ByBundleID["com.google.Chrome"].Body, `tell application "Google Chrome"`)
}

func TestRegistryMergeAndValidate(t *testing.T) {
	reg := DefaultRegistry()
	reg.Merge(&Registry{
		ByBundleID: map[string]Script{"com.microsoft.edgemac": {Name: "Microsoft Edge", Body: "x"}},
		ByName:     map[string]string{"Edge.app": "com.microsoft.edgemac"},
	})
	require.NoError(t, reg.Validate())

	s, ok := reg.Lookup(Application{Name: "Edge.app"})
	require.True(t, ok)
	assert.Equal(t, "Microsoft Edge", s.Name)

	reg.Merge(&Registry{ByName: map[string]string{"Ghost.app": "com.example.ghost"}})
	assert.ErrorContains(t, reg.Validate(), "Ghost.app")
}

func TestRegistryBrowsersSorted(t *testing.T) {
	entries := DefaultRegistry().Browsers()
	require.Len(t, entries, 10)
	assert.Equal(t, "Arc", entries[0].Name)

	for _, e := range entries {
		if e.BundleID == "com.vivaldi.Vivaldi" {
			assert.Equal(t, []string{"Vivaldi.app"}, e.Aliases)
		}
	}
}
