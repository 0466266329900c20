package results

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
)

// FileSink writes generated sequences to an Arrow IPC file.
type FileSink struct {
	f      *os.File
	w      *ipc.FileWriter
	schema *arrow.Schema
}

func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	schema := Schema()
	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create ipc writer: %w", err)
	}

	return &FileSink{f: f, w: w, schema: schema}, nil
}

func (s *FileSink) Write(seqs []Sequence) error {
	if len(seqs) == 0 {
		return nil
	}
	rec := buildRecord(s.schema, seqs)
	defer rec.Release()

	if err := s.w.Write(rec); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error {
	if err := s.w.Close(); err != nil {
		s.f.Close()
		return fmt.Errorf("failed to close ipc writer: %w", err)
	}
	return s.f.Close()
}
