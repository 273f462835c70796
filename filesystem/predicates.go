package filesystem

import (
	"path/filepath"
	"strings"
)

// IsReportFile checks if a file is a spreadsheet report.
func IsReportFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(strings.ToLower(base), ".xlsx") && !shouldIgnore(base)
}

// shouldIgnore filters editor lock files and hidden files that office
// suites drop next to open workbooks.
func shouldIgnore(name string) bool {
	return strings.HasPrefix(name, "~$") ||
		strings.HasPrefix(name, ".~lock") ||
		strings.HasPrefix(name, ".")
}
