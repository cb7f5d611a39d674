// Package version holds build details, set with -ldflags at build time.
package version

import "fmt"

// Build and version details
var (
	GitCommit = ""
	GitBranch = ""
	BuildDate = ""
	Version   = "unknown"
)

// String formats the non-empty build details, one per line, ending with
// the version.
func String() string {
	s := ""
	for _, f := range [][2]string{
		{"git commit", GitCommit},
		{"git branch", GitBranch},
		{"build date", BuildDate},
	} {
		if f[1] != "" {
			s += fmt.Sprintf("%s: %s\n", f[0], f[1])
		}
	}
	return s + "version: " + Version
}

// LogFields returns the build details as logger key/value pairs.
func LogFields() []interface{} {
	return []interface{}{
		"GitCommit", GitCommit,
		"GitBranch", GitBranch,
		"BuildDate", BuildDate,
		"Version", Version,
	}
}
