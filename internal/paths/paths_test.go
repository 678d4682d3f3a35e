package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "tilde only", input: "~", want: home},
		{name: "tilde slash", input: "~/Documents/Notes", want: filepath.Join(home, "Documents", "Notes")},
		{name: "trimmed", input: "  ~/x  ", want: filepath.Join(home, "x")},
		{name: "absolute", input: "/etc/hosts", want: "/etc/hosts"},
		{name: "relative", input: "notes/x", want: "notes/x"},
		{name: "other user", input: "~other/x", want: "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTilde(tt.input); got != tt.want {
				t.Errorf("ExpandTilde(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfigDirPrefersXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	xdg := filepath.Join(home, ".config", AppDirName)
	if err := os.MkdirAll(xdg, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := ConfigDir(); got != xdg {
		t.Errorf("expected %q, got %q", xdg, got)
	}
}
