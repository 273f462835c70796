package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseReportName(t *testing.T) {
	name, n, verdict, ok := ParseReportName("Login - Happy path - 12 - FAIL.xlsx")
	if !ok {
		t.Fatal("expected name to parse")
	}
	if name != "Login - Happy path" || n != 12 || verdict != "FAIL" {
		t.Errorf("got %q %d %q", name, n, verdict)
	}

	if _, _, _, ok := ParseReportName("random.xlsx"); ok {
		t.Error("expected random.xlsx not to parse")
	}
}

func TestListReports(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "testscribe-walker-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	files := []string{
		"Login - 10 - PASS.xlsx",
		"Login - 2 - FAIL.xlsx",
		"Alpha.xlsx",
		"~$Login - 2 - FAIL.xlsx",
		"readme.md",
		"nested/Inner - 1 - PASS.xlsx",
	}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	reports, err := ListReports(tmpDir)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}

	want := []string{"Alpha.xlsx", "Login - 2 - FAIL.xlsx", "Login - 10 - PASS.xlsx"}
	if len(reports) != len(want) {
		t.Fatalf("expected %d reports, got %d: %+v", len(want), len(reports), reports)
	}
	for i, r := range reports {
		if r.FileName != want[i] {
			t.Errorf("report %d = %q, want %q", i, r.FileName, want[i])
		}
	}

	if !reports[1].Parsed || reports[1].Verdict != "FAIL" || reports[1].Number != 2 {
		t.Errorf("expected parsed FAIL report #2, got %+v", reports[1])
	}
	if reports[0].Parsed {
		t.Error("Alpha.xlsx should not be parsed")
	}
}

func TestListReports_MissingDir(t *testing.T) {
	if _, err := ListReports(filepath.Join(os.TempDir(), "testscribe-no-such-dir")); err == nil {
		t.Error("expected error for missing directory")
	}
}
