package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet_LinkedValuesWin(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.3", "abc123", "2024-01-02"
	info := Get()

	if info.Version != "v1.2.3" || info.Commit != "abc123" || info.Date != "2024-01-02" {
		t.Fatalf("expected linked values, got %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Fatalf("expected go version %q, got %q", runtime.Version(), info.GoVersion)
	}
	if got := info.String(); got != "mdkanban v1.2.3 (commit=abc123, date=2024-01-02)" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestString_HasPrefix(t *testing.T) {
	if !strings.HasPrefix(String(), "mdkanban ") {
		t.Fatalf("expected mdkanban prefix, got %q", String())
	}
}
