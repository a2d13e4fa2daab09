package version

import (
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"dev build", "dev", "none", "dev"},
		{"empty version", "", "none", "dev"},
		{"release with commit", "1.2.0", "abcdef1234567", "1.2.0 (abcdef1)"},
		{"short commit", "1.2.0", "abc", "1.2.0 (abc)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			if got := Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfoContainsFields(t *testing.T) {
	info := Info()
	for _, want := range []string{"knowva version", "commit:", "built:", "go:", "platform:"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info() missing %q: %s", want, info)
		}
	}
}

func TestUserAgent(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "0.3.1"
	if got := UserAgent(); got != "knowva_cli/0.3.1" {
		t.Errorf("UserAgent() = %q", got)
	}
}
