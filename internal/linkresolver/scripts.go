package linkresolver

import (
	"fmt"
	"sort"
	"strings"
)

// Script extracts the active tab/document URL from one application's UI.
type Script struct {
	// Name is the display name of the application.
	Name string `yaml:"name"`
	// Body is the AppleScript source handed to the ScriptRunner.
	Body string `yaml:"script"`
}

// Registry maps applications to their URL-extraction scripts.
//
// Lookup is two-tier: first by bundle identifier, then by application name for
// builds whose bundle id is not (yet) known but whose name is.
type Registry struct {
	ByBundleID map[string]Script
	// ByName maps an application name (e.g. "Vivaldi.app") to a key in ByBundleID.
	ByName map[string]string
}

// BrowserEntry is one row of Registry.Browsers.
type BrowserEntry struct {
	BundleID string   `json:"bundle_id"`
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases,omitempty"`
}

func activeTabScript(app string) string {
	return fmt.Sprintf(`tell application %q to return URL of active tab of front window`, app)
}

func frontDocumentScript(app string) string {
	return fmt.Sprintf(`tell application %q to return URL of front document`, app)
}

// Firefox does not expose a URL accessor; read the address bar instead.
// Fetching the process properties first is required or System Events errors out.
const firefoxScript = `
tell application "System Events"
	set firefox to application process "Firefox"
	get properties of firefox
	set frontWindow to front window of firefox
	set firstGroup to first group of frontWindow
	set navigation to toolbar "Navigation" of firstGroup
	get value of UI element 1 of combo box 1 of navigation
end tell`

// Zen nests its navigation toolbar two groups deeper than Firefox.
const zenScript = `
tell application "System Events"
	set zen to application process "Zen"
	get properties of zen
	set frontWindow to front window of zen
	set firstGroup to first group of frontWindow
	set navigation to toolbar "Navigation" of group 1 of group 1 of firstGroup
	get value of UI element 1 of combo box 1 of group 1 of navigation
end tell`

const diaScript = `
tell application "Dia"
	return URL of (first tab of front window whose isFocused is true)
end tell`

// DefaultRegistry returns the built-in browser table.
func DefaultRegistry() *Registry {
	return &Registry{
		ByBundleID: map[string]Script{
			"company.thebrowser.Browser": {Name: "Arc", Body: activeTabScript("Arc")},
			"com.vivaldi.Vivaldi":        {Name: "Vivaldi", Body: activeTabScript("Vivaldi")},
			"com.google.Chrome":          {Name: "Google Chrome", Body: activeTabScript("Google Chrome")},
			"com.brave.Browser":          {Name: "Brave Browser", Body: activeTabScript("Brave Browser")},
			"com.apple.Safari":           {Name: "Safari", Body: frontDocumentScript("Safari")},
			"com.kagi.kagimacOS":         {Name: "Orion", Body: frontDocumentScript("Orion")},
			"org.mozilla.firefox":        {Name: "Firefox", Body: firefoxScript},
			"app.zen-browser.zen":        {Name: "Zen", Body: zenScript},
			"net.imput.helium":           {Name: "Helium", Body: activeTabScript("Helium")},
			"company.thebrowser.dia":     {Name: "Dia", Body: diaScript},
		},
		ByName: map[string]string{
			"Vivaldi.app": "com.vivaldi.Vivaldi",
			"Helium.app":  "net.imput.helium",
		},
	}
}

// Lookup finds the script for app, trying the bundle id first and then the name.
func (r *Registry) Lookup(app Application) (Script, bool) {
	if r == nil {
		return Script{}, false
	}
	if s, ok := r.ByBundleID[app.BundleID]; ok && app.BundleID != "" {
		return s, true
	}
	for _, name := range nameCandidates(app.Name) {
		bundleID, ok := r.ByName[name]
		if !ok {
			continue
		}
		if s, ok := r.ByBundleID[bundleID]; ok {
			return s, true
		}
	}
	return Script{}, false
}

// nameCandidates returns name as given plus its counterpart with or without ".app".
func nameCandidates(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if trimmed := strings.TrimSuffix(name, ".app"); trimmed != name {
		return []string{name, trimmed}
	}
	return []string{name, name + ".app"}
}

// Merge copies other's entries into r, replacing entries with the same key.
func (r *Registry) Merge(other *Registry) {
	if other == nil {
		return
	}
	if r.ByBundleID == nil {
		r.ByBundleID = make(map[string]Script)
	}
	if r.ByName == nil {
		r.ByName = make(map[string]string)
	}
	for id, s := range other.ByBundleID {
		r.ByBundleID[id] = s
	}
	for name, id := range other.ByName {
		r.ByName[name] = id
	}
}

// Validate checks that every alias points at a known bundle id and every script
// has a body.
func (r *Registry) Validate() error {
	for id, s := range r.ByBundleID {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("browser with empty bundle id")
		}
		if strings.TrimSpace(s.Body) == "" {
			return fmt.Errorf("browser %s: script is empty", id)
		}
	}
	for name, id := range r.ByName {
		if _, ok := r.ByBundleID[id]; !ok {
			return fmt.Errorf("alias %q points at unknown bundle id %q", name, id)
		}
	}
	return nil
}

// Browsers lists the registry sorted by display name, then bundle id.
func (r *Registry) Browsers() []BrowserEntry {
	aliases := make(map[string][]string)
	for name, id := range r.ByName {
		aliases[id] = append(aliases[id], name)
	}

	entries := make([]BrowserEntry, 0, len(r.ByBundleID))
	for id, s := range r.ByBundleID {
		names := aliases[id]
		sort.Strings(names)
		entries = append(entries, BrowserEntry{BundleID: id, Name: s.Name, Aliases: names})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a != b {
			return a < b
		}
		return entries[i].BundleID < entries[j].BundleID
	})
	return entries
}
