package results

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
)

func sampleSequences() []Sequence {
	return []Sequence{
		{Row: 0, Sample: 0, Prompt: "First title", Text: "First title and its continuation"},
		{Row: 0, Sample: 1, Prompt: "First title", Text: "First title, another take"},
		{Row: 1, Sample: 0, Prompt: "Second title", Text: "Second title goes on"},
	}
}

func TestBuildRecord(t *testing.T) {
	schema := Schema()
	rec := buildRecord(schema, sampleSequences())
	defer rec.Release()

	if rec.NumRows() != 3 {
		t.Errorf("expected 3 rows, got %d", rec.NumRows())
	}
	if rec.NumCols() != 4 {
		t.Errorf("expected 4 columns, got %d", rec.NumCols())
	}

	rows := rec.Column(0).(*array.Int64)
	if rows.Value(2) != 1 {
		t.Errorf("expected row 1 in last record, got %d", rows.Value(2))
	}
	samples := rec.Column(1).(*array.Int32)
	if samples.Value(1) != 1 {
		t.Errorf("expected sample 1 in second record, got %d", samples.Value(1))
	}
	texts := rec.Column(3).(*array.String)
	if texts.Value(0) != "First title and its continuation" {
		t.Errorf("unexpected text in first record: %q", texts.Value(0))
	}
}

func TestFileSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.arrow")

	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}
	if err := sink.Write(sampleSequences()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f)
	if err != nil {
		t.Fatalf("failed to open ipc reader: %v", err)
	}
	defer r.Close()

	if r.NumRecords() != 1 {
		t.Fatalf("expected 1 record batch, got %d", r.NumRecords())
	}
	rec, err := r.Record(0)
	if err != nil {
		t.Fatalf("failed to read record: %v", err)
	}
	if rec.NumRows() != 3 {
		t.Errorf("expected 3 rows, got %d", rec.NumRows())
	}
	prompts := rec.Column(2).(*array.String)
	if prompts.Value(2) != "Second title" {
		t.Errorf("unexpected prompt: %q", prompts.Value(2))
	}
}

func TestFileSinkEmptyWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.arrow")

	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}
	if err := sink.Write(nil); err != nil {
		t.Errorf("expected empty write to succeed, got %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestStdoutSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStdoutSink(&buf)

	if err := sink.Write(sampleSequences()[:2]); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "=== GENERATED SEQUENCE 1 ===") {
		t.Error("expected banner for first sequence")
	}
	if !strings.Contains(out, "=== GENERATED SEQUENCE 2 ===") {
		t.Error("expected banner for second sequence")
	}
	if !strings.Contains(out, "First title and its continuation") {
		t.Error("expected generated text in output")
	}
}
