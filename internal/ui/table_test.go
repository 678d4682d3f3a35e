package ui

import "testing"

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("Safari", "com.apple.Safari")
	tbl.AddRow("Arc", "company.thebrowser.Browser", "")
	tbl.AddRow("Vivaldi", "com.vivaldi.Vivaldi", "Vivaldi.app")

	want := "" +
		"Safari   com.apple.Safari\n" +
		"Arc      company.thebrowser.Browser\n" +
		"Vivaldi  com.vivaldi.Vivaldi         Vivaldi.app\n"
	if got := tbl.String(); got != want {
		t.Fatalf("unexpected table:\n%q\nwant:\n%q", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	if got := NewTable(2).String(); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
