package aseq

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

var ErrSourceUnavailable = errors.New("source unavailable")

// EventWriter receives the events produced for each chunk. The slice is
// reused for the next chunk and must not be retained.
type EventWriter interface {
	WriteEvents(events []Event) error
}

// EventWriterFunc adapts a function to an EventWriter.
type EventWriterFunc func(events []Event) error

func (f EventWriterFunc) WriteEvents(events []Event) error {
	return f(events)
}

// Scanner reads a stream in fixed-size chunks and feeds them through the
// pattern matcher. Memory use is bounded by the chunk size.
type Scanner struct {
	r         io.Reader
	p         *Pattern
	chunkSize int
	readAhead bool
	mp        metric.MeterProvider

	state  State
	events []Event
}

type ScannerOption func(s *Scanner)

func NewScanner(r io.Reader, p *Pattern, opts ...ScannerOption) *Scanner {
	s := &Scanner{r: r, p: p, chunkSize: defaultChunkSize}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithChunkSize sets the number of bytes read per chunk. The chunk size does
// not affect which matches are found.
func WithChunkSize(size int) ScannerOption {
	return func(s *Scanner) {
		s.chunkSize = size
	}
}

// WithReadAhead reads the next chunk while the current one is scanned.
func WithReadAhead() ScannerOption {
	return func(s *Scanner) {
		s.readAhead = true
	}
}

// WithMeterProvider records scan metrics with mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) ScannerOption {
	return func(s *Scanner) {
		s.mp = mp
	}
}

// State returns the state after the last chunk fed.
func (s *Scanner) State() State {
	return s.state
}

// Run scans the reader from its current position until EOF, passing each
// chunk's events to w. Every call starts from the zero State. A pending
// partial match at EOF is dropped, and a context window cut short by EOF is
// left unterminated.
func (s *Scanner) Run(ctx context.Context, w EventWriter) (State, error) {
	m := newScanMetrics(s.mp, s.p)
	s.state = State{}

	feed := func(chunk []byte) error {
		before := s.state
		s.state, s.events = Feed(s.p, s.state, chunk, s.events[:0])
		m.record(ctx, before, s.state)
		if len(s.events) == 0 {
			return nil
		}
		return w.WriteEvents(s.events)
	}

	var err error
	if s.readAhead {
		err = s.runReadAhead(ctx, feed)
	} else {
		err = s.runSequential(ctx, feed)
	}
	return s.state, err
}

func (s *Scanner) runSequential(ctx context.Context, feed func([]byte) error) error {
	var rb readBuffer
	rb.init(s.chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		readErr := rb.readChunk(s.r)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readError(s.state.Offset+int64(rb.end), readErr)
		}
		if err := feed(rb.window()); err != nil {
			return err
		}
		if readErr != nil {
			return nil
		}
	}
}

// runReadAhead alternates two buffers between a reading goroutine and the
// scanning loop. Chunks are still fed strictly in stream order.
func (s *Scanner) runReadAhead(ctx context.Context, feed func([]byte) error) error {
	g, ctx := errgroup.WithContext(ctx)

	free := make(chan *readBuffer, 2)
	full := make(chan *readBuffer, 2)
	for i := 0; i < 2; i++ {
		rb := new(readBuffer)
		rb.init(s.chunkSize)
		free <- rb
	}

	g.Go(func() error {
		defer close(full)
		var read int64
		for {
			var rb *readBuffer
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rb = <-free:
			}

			readErr := rb.readChunk(s.r)
			read += int64(rb.end)
			if readErr != nil && !errors.Is(readErr, io.EOF) {
				return readError(read, readErr)
			}
			full <- rb
			if readErr != nil {
				return nil
			}
		}
	})

	g.Go(func() error {
		for rb := range full {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := feed(rb.window()); err != nil {
				return err
			}
			free <- rb
		}
		return nil
	})

	return g.Wait()
}

func readError(read int64, err error) error {
	return fmt.Errorf("[aseq] read failed after %d bytes: %w: %w", read, ErrSourceUnavailable, err)
}
