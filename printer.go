package aseq

import (
	"errors"
	"io"
	"strconv"
	"sync"
)

const (
	DefaultSeparator = "|"
	DefaultRule      = "-----------------"
)

// Printer renders events as text:
//
//	MATCH 1 (position=0)
//	11|22|
//	-----------------
//
// Each batch of events is written to the underlying writer with one Write.
type Printer struct {
	w    io.Writer
	sep  string
	rule string

	mu  sync.Mutex
	buf []byte
}

type PrinterOption func(p *Printer)

// NewPrinter returns a [Printer] writing to w.
func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{w: w, sep: DefaultSeparator, rule: DefaultRule}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithSeparator sets the text written after every context byte.
func WithSeparator(sep string) PrinterOption {
	return func(p *Printer) {
		p.sep = sep
	}
}

// WithRule sets the line written when a context window closes.
func WithRule(rule string) PrinterOption {
	return func(p *Printer) {
		p.rule = rule
	}
}

var errPrinterWriterNil = errors.New("writer is nil")

func (p *Printer) WriteEvents(events []Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.w == nil {
		return errPrinterWriterNil
	}

	buf := p.buf[:0]
	for _, ev := range events {
		buf = p.appendEvent(buf, ev)
	}
	p.buf = buf

	if len(buf) == 0 {
		return nil
	}
	_, err := p.w.Write(buf)
	return err
}

func (p *Printer) appendEvent(buf []byte, ev Event) []byte {
	switch ev.Kind {
	case EventMatchFound:
		buf = append(buf, "MATCH "...)
		buf = strconv.AppendInt(buf, int64(ev.Index), 10)
		buf = append(buf, " (position="...)
		buf = strconv.AppendInt(buf, ev.Position, 10)
		buf = append(buf, ")\n"...)
	case EventContextByte:
		const digits = "0123456789abcdef"
		buf = append(buf, digits[ev.Value>>4], digits[ev.Value&0x0f])
		buf = append(buf, p.sep...)
	case EventContextWindowClosed:
		buf = append(buf, '\n')
		buf = append(buf, p.rule...)
		buf = append(buf, '\n')
	}
	return buf
}
