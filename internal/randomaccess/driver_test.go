package randomaccess

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"timegrep/internal/status"
	"timegrep/internal/tsextract"
	"timegrep/internal/tsformat"
)

func buildLines(startSecond, count int) []byte {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		ts := time.Unix(int64(startSecond+i), 0).UTC()
		fmt.Fprintf(&sb, "%s line %d\n", ts.Format("2006-01-02 15:04:05"), i)
	}
	return []byte(sb.String())
}

func mustExtractor(t *testing.T) *tsextract.Extractor {
	t.Helper()
	m, err := tsformat.Compile("%Y-%m-%d %H:%M:%S")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	return tsextract.New(m, 0)
}

func TestEmitRangeWithinBounds(t *testing.T) {
	base := int64(1577880000)
	data := buildLines(int(base), 100)
	e := mustExtractor(t)
	_ = e

	var buf bytes.Buffer
	pageSize := 4096
	_ = pageSize

	p0 := 0
	p1 := len(data)
	if err := emit(&buf, data, p0, p1, 64); err != nil {
		t.Fatalf("emit error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Errorf("emitted bytes differ from source")
	}
}

func TestRunAppendsNewlineWhenFileLacksTrailing(t *testing.T) {
	base := int64(1577880000)
	data := []byte("2020-01-01 12:00:00 x")
	_ = base
	e := mustExtractor(t)

	region := &Region{data: data}

	var buf bytes.Buffer
	st, err := Run(&buf, region, e, 0, 9999999999, 64)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if st != status.Found {
		t.Fatalf("status = %v, want Found", st)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		t.Errorf("expected synthesized trailing newline, got %q", buf.String())
	}
}

func TestRunNoMatchReturnsNotFound(t *testing.T) {
	base := int64(1577880000)
	data := buildLines(int(base), 10)
	e := mustExtractor(t)

	region := &Region{data: data}

	var buf bytes.Buffer
	st, err := Run(&buf, region, e, base+100000, base+200000, 64)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if st != status.NotFound {
		t.Errorf("status = %v, want NotFound", st)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
