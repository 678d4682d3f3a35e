// Package buildinfo holds release metadata stamped at link time:
//
//	go build -ldflags "-X github.com/aidanlsb/tablink/internal/buildinfo.Version=v0.1.0"
package buildinfo

// Empty in local builds; `tablink version` then falls back to module build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
