package ui

import (
	"strings"
	"testing"
)

func TestStatusMessages(t *testing.T) {
	if got := Success("saved"); got != "✓ saved" {
		t.Errorf("unexpected success message %q", got)
	}
	if got := Successf("saved %d", 1); got != "✓ saved 1" {
		t.Errorf("unexpected success message %q", got)
	}
	if got := Error("failed"); got != "✗ failed" {
		t.Errorf("unexpected error message %q", got)
	}
	if got := Warning("careful"); got != "⚠ careful" {
		t.Errorf("unexpected warning message %q", got)
	}
}

func TestSourceMentionsProvenance(t *testing.T) {
	got := Source("clipboard")
	if !strings.Contains(got, "clipboard") || !strings.Contains(got, "from") {
		t.Errorf("expected provenance in %q", got)
	}
}
