package probe

import (
	"testing"

	"timegrep/internal/status"
	"timegrep/internal/tsextract"
	"timegrep/internal/tsformat"
)

func mustExtractor(t *testing.T, format string) *tsextract.Extractor {
	t.Helper()
	m, err := tsformat.Compile(format)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	return tsextract.New(m, 0)
}

func TestForwardFindsFirstParseableLine(t *testing.T) {
	data := []byte("garbage\n2020-01-01 00:00:01 a\n2020-01-01 00:00:02 b\n")
	e := mustExtractor(t, "%Y-%m-%d %H:%M:%S")

	r, st := Forward(data, 0, len(data), e)
	if st != status.Found {
		t.Fatalf("status = %v, want Found", st)
	}
	if r.Start != len("garbage\n") {
		t.Errorf("Start = %d, want %d", r.Start, len("garbage\n"))
	}
}

func TestForwardNotFoundWhenNothingParses(t *testing.T) {
	data := []byte("line one\nline two\n")
	e := mustExtractor(t, "%Y-%m-%d %H:%M:%S")

	_, st := Forward(data, 0, len(data), e)
	if st != status.NotFound {
		t.Errorf("status = %v, want NotFound", st)
	}
}

func TestForwardNullWhenNoNewline(t *testing.T) {
	data := []byte("no newline at all in this buffer")
	e := mustExtractor(t, "%Y-%m-%d %H:%M:%S")

	_, st := Forward(data, 0, len(data), e)
	if st != status.Null {
		t.Errorf("status = %v, want Null", st)
	}
}

func TestForwardRespectsUbound(t *testing.T) {
	// The only line starting below ubound is unparseable; the parseable
	// lines after it start past ubound and must not be reached.
	data := []byte("garbage line\n2020-01-01 00:00:01 a\n2020-01-01 00:00:02 b\n")
	e := mustExtractor(t, "%Y-%m-%d %H:%M:%S")

	_, st := Forward(data, 0, 3, e)
	if st != status.NotFound {
		t.Errorf("status = %v, want NotFound", st)
	}
}
