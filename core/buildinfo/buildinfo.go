package buildinfo

// These variables are set via -ldflags at build time:
//
//	-X 'github.com/m3rciful/swapstream/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/m3rciful/swapstream/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/m3rciful/swapstream/core/buildinfo.Date=2025-08-30T12:00:00Z'
var (
	// Version reports the semantic version or tag of the build.
	Version = "dev"
	// Commit reports the source control commit used for the build.
	Commit = "local"
	// Date reports the build timestamp in RFC3339 format.
	Date = ""
)

// Info is the JSON shape served by the ops endpoint and printed by the CLI.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date,omitempty"`
}

// Current returns the build metadata of the running binary.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}
