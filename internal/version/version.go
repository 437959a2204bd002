package version

import "fmt"

// These are populated at build time via -ldflags.
var (
	Version   = "devel"
	CommitSha = ""
)

func GetVersionString() string {
	if CommitSha == "" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s)", Version, CommitSha)
}
