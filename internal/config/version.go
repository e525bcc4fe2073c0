package config

import "fmt"

// Build metadata, stamped with
// -ldflags "-X github.com/bobmcallan/websnap/internal/config.Version=..."
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// BuildInfo is the build metadata as reported by --version and get_version.
type BuildInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
}

// CurrentBuild returns the stamped build metadata.
func CurrentBuild() BuildInfo {
	return BuildInfo{Version: Version, Build: Build, Commit: GitCommit}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", b.Version, b.Build, b.Commit)
}

// GetFullVersion returns version with build info.
func GetFullVersion() string {
	return CurrentBuild().String()
}
