package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	got := Template()
	for _, want := range []string{"{{.Name}} version " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
}

func TestString(t *testing.T) {
	if got := String(); !strings.HasPrefix(got, "version: ") {
		t.Errorf("String() = %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); !strings.HasPrefix(got, "knowdeps/"+Version) {
		t.Errorf("UserAgent() = %q", got)
	}
}
