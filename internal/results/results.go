package results

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Sequence is one generated sample for one prompt row.
type Sequence struct {
	Row    int
	Sample int
	Prompt string
	Text   string
}

// Sink receives generated sequences in row order.
type Sink interface {
	Write(seqs []Sequence) error
	Close() error
}

// Schema describes the generated-sequence record layout shared by the IPC
// file and Flight sinks.
func Schema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "row", Type: arrow.PrimitiveTypes.Int64},
		{Name: "sample", Type: arrow.PrimitiveTypes.Int32},
		{Name: "prompt", Type: arrow.BinaryTypes.String},
		{Name: "text", Type: arrow.BinaryTypes.String},
	}, nil)
}

// buildRecord converts sequences to one Arrow record. The caller owns the
// returned record and must Release it.
func buildRecord(schema *arrow.Schema, seqs []Sequence) arrow.Record {
	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	rows := b.Field(0).(*array.Int64Builder)
	samples := b.Field(1).(*array.Int32Builder)
	prompts := b.Field(2).(*array.StringBuilder)
	texts := b.Field(3).(*array.StringBuilder)

	for _, s := range seqs {
		rows.Append(int64(s.Row))
		samples.Append(int32(s.Sample))
		prompts.Append(s.Prompt)
		texts.Append(s.Text)
	}

	return b.NewRecord()
}

// StdoutSink prints each sequence with the banner the batch runner has
// always used.
type StdoutSink struct {
	w io.Writer
}

func NewStdoutSink(w io.Writer) *StdoutSink {
	return &StdoutSink{w: w}
}

func (s *StdoutSink) Write(seqs []Sequence) error {
	for _, seq := range seqs {
		fmt.Fprintf(s.w, "=== GENERATED SEQUENCE %d ===\n", seq.Sample+1)
		fmt.Fprintln(s.w, seq.Text)
	}
	return nil
}

func (s *StdoutSink) Close() error {
	return nil
}
