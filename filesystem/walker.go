package filesystem

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var reportNameRegex = regexp.MustCompile(`^(.*) - (\d+) - (PASS|FAIL)\.xlsx$`)

// Report describes a report file found in the export directory.
type Report struct {
	FileName string
	Path     string

	// Parsed from FileName when it follows the report naming pattern.
	TestName string
	Number   int
	Verdict  string
	Parsed   bool
}

// ParseReportName splits "{name} - {number} - {verdict}.xlsx" into its parts.
func ParseReportName(fileName string) (name string, number int, verdict string, ok bool) {
	m := reportNameRegex.FindStringSubmatch(fileName)
	if m == nil {
		return "", 0, "", false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, "", false
	}
	return m[1], n, m[3], true
}

// ListReports returns the report files directly inside dir, sorted by file name.
func ListReports(dir string) ([]Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var reports []Report
	for _, entry := range entries {
		if entry.IsDir() || !IsReportFile(entry.Name()) {
			continue
		}
		r := Report{
			FileName: entry.Name(),
			Path:     filepath.Join(dir, entry.Name()),
		}
		r.TestName, r.Number, r.Verdict, r.Parsed = ParseReportName(entry.Name())
		reports = append(reports, r)
	}

	sort.Slice(reports, func(i, j int) bool {
		a, b := reports[i], reports[j]
		if a.Parsed && b.Parsed && a.TestName == b.TestName {
			return a.Number < b.Number
		}
		return a.FileName < b.FileName
	})
	return reports, nil
}
