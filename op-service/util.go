package op_service

import "strings"

// PrefixEnvVar returns the env var mirror of a flag: PREFIX_SUFFIX.
func PrefixEnvVar(prefix, suffix string) []string {
	return []string{prefix + "_" + suffix}
}

// FormatVersion renders version, the short git commit, the git date and build meta
// joined with dashes. Empty parts are skipped.
func FormatVersion(version string, gitCommit string, gitDate string, meta string) string {
	parts := []string{version}
	if gitCommit != "" {
		if len(gitCommit) >= 8 {
			gitCommit = gitCommit[:8]
		}
		parts = append(parts, gitCommit)
	}
	if gitDate != "" {
		parts = append(parts, gitDate)
	}
	if meta != "" {
		parts = append(parts, meta)
	}
	return strings.Join(parts, "-")
}
