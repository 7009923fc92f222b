package wordbreak

import (
	"fmt"
	"runtime/debug"
)

// VersionInfo reports the VCS revision baked into the binary, for the
// -version flag and the /info endpoint.
func VersionInfo() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "(version info unavailable)"
	}

	var rev, commitTime string
	dirty := false
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			commitTime = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return "(version info unavailable)"
	}

	when := commitTime
	if dirty {
		when = "dirty"
	}
	return fmt.Sprintf("built from commit %.8s (%s) using %s", rev, when, bi.GoVersion)
}
