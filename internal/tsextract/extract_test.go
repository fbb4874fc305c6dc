package tsextract

import (
	"testing"
	"time"

	"timegrep/internal/status"
	"timegrep/internal/tsformat"
)

func mustCompile(t *testing.T, format string) *tsformat.Matcher {
	t.Helper()
	m, err := tsformat.Compile(format)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", format, err)
	}
	return m
}

func TestExtractFastPathDefault(t *testing.T) {
	m := mustCompile(t, "%Y-%m-%d %H:%M:%S")
	e := New(m, 0)

	ts, st := e.Extract([]byte("2020-06-15 12:30:00 some message"))
	if st != status.Found {
		t.Fatalf("status = %v, want Found", st)
	}
	want := time.Date(2020, 6, 15, 12, 30, 0, 0, time.UTC).Unix()
	if ts != want {
		t.Errorf("ts = %d, want %d", ts, want)
	}
}

func TestExtractFastPathTimestamp(t *testing.T) {
	m := mustCompile(t, "unixtime=%s")
	e := New(m, 0)

	ts, st := e.Extract([]byte("unixtime=100 key=val"))
	if st != status.Found {
		t.Fatalf("status = %v, want Found", st)
	}
	if ts != 100 {
		t.Errorf("ts = %d, want 100", ts)
	}
}

func TestExtractFastPathMissingYearDefaultsToZeroedCalendar(t *testing.T) {
	m := mustCompile(t, "%b %d %H:%M:%S")
	e := New(m, 0)

	ts, st := e.Extract([]byte("Jan 05 10:00:00 host sshd"))
	if st != status.Found {
		t.Fatalf("status = %v, want Found", st)
	}
	want := time.Date(1900, 1, 5, 10, 0, 0, 0, time.UTC).Unix()
	if ts != want {
		t.Errorf("ts = %d, want %d", ts, want)
	}
}

func TestExtractSlowPathTwelveHourClock(t *testing.T) {
	m := mustCompile(t, "%Y-%m-%d %I:%M:%S %p")
	e := New(m, 0)

	ts, st := e.Extract([]byte("2020-01-01 03:04:05 PM"))
	if st != status.Found {
		t.Fatalf("status = %v, want Found", st)
	}
	want := time.Date(2020, 1, 1, 15, 4, 5, 0, time.UTC).Unix()
	if ts != want {
		t.Errorf("ts = %d, want %d", ts, want)
	}
}

func TestExtractNotFound(t *testing.T) {
	m := mustCompile(t, "%Y-%m-%d %H:%M:%S")
	e := New(m, 0)

	_, st := e.Extract([]byte("no timestamp here"))
	if st != status.NotFound {
		t.Errorf("status = %v, want NotFound", st)
	}
}

func TestExtractFastPathWithTimezone(t *testing.T) {
	m := mustCompile(t, "%Y-%m-%dT%H:%M:%S%z")
	e := New(m, 0)

	ts, st := e.Extract([]byte("2020-06-01T10:00:00+0200"))
	if st != status.Found {
		t.Fatalf("status = %v, want Found", st)
	}
	want := time.Date(2020, 6, 1, 8, 0, 0, 0, time.UTC).Unix()
	if ts != want {
		t.Errorf("ts = %d, want %d", ts, want)
	}
}
