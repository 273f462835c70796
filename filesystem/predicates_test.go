package filesystem

import "testing"

func TestIsReportFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Login - 1 - PASS.xlsx", true},
		{"/out/Login - 2 - FAIL.XLSX", true},
		{"notes.txt", false},
		{"~$Login - 1 - PASS.xlsx", false},
		{".~lock.Login - 1 - PASS.xlsx#", false},
		{".hidden.xlsx", false},
		{"report.xls", false},
	}

	for _, tt := range tests {
		if got := IsReportFile(tt.name); got != tt.want {
			t.Errorf("IsReportFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
