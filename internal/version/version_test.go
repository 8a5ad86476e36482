package version

import (
	"strings"
	"testing"
)

func TestString_Injected(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v0.3.0", "abc1234", "2026-10-01"
	if got, want := String(), "v0.3.0 (abc1234, 2026-10-01)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestString_Dev(t *testing.T) {
	if got := String(); !strings.HasPrefix(got, Version+" (") {
		t.Errorf("String() = %q", got)
	}
}

func TestShortRevision(t *testing.T) {
	if got := shortRevision("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("shortRevision() = %q", got)
	}
	if got := shortRevision("abc"); got != "abc" {
		t.Errorf("shortRevision() = %q", got)
	}
}
