package results

import (
	"context"
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const flightTimeout = 30 * time.Second

// FlightSink streams generated sequences to a longbow data plane via Arrow
// Flight DoPut.
type FlightSink struct {
	client flight.Client
	schema *arrow.Schema
}

func NewFlightSink(addr string) (*FlightSink, error) {
	client, err := flight.NewClientWithMiddleware(addr, nil, nil,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create Flight client: %w", err)
	}

	return &FlightSink{client: client, schema: Schema()}, nil
}

// putStream is the slice of the DoPut client the sink needs, so tests can
// stand in for a live stream.
type putStream interface {
	flight.DataStreamWriter
	CloseSend() error
}

func (s *FlightSink) Write(seqs []Sequence) error {
	if len(seqs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), flightTimeout)
	defer cancel()

	stream, err := s.client.DoPut(ctx)
	if err != nil {
		return fmt.Errorf("failed to open DoPut stream: %w", err)
	}
	return s.put(stream, seqs)
}

func (s *FlightSink) put(stream putStream, seqs []Sequence) error {
	wr := flight.NewRecordWriter(stream, ipc.WithSchema(s.schema))
	wr.SetFlightDescriptor(&flight.FlightDescriptor{
		Type: flight.DescriptorPATH,
		Path: []string{"generations"},
	})

	rec := buildRecord(s.schema, seqs)
	defer rec.Release()

	if err := wr.Write(rec); err != nil {
		wr.Close()
		stream.CloseSend()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := wr.Close(); err != nil {
		return fmt.Errorf("failed to close record writer: %w", err)
	}
	return stream.CloseSend()
}

func (s *FlightSink) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
