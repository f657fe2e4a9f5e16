package aseq

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/mnightingale/aseq"

type scanMetrics struct {
	bytes   metric.Int64Counter
	chunks  metric.Int64Counter
	matches metric.Int64Counter
	attrs   metric.MeasurementOption
}

func newScanMetrics(mp metric.MeterProvider, p *Pattern) *scanMetrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	// Instrument creation only fails on invalid names; the returned no-op
	// instruments are still usable.
	bytes, _ := meter.Int64Counter("aseq.scan.bytes",
		metric.WithUnit("By"),
		metric.WithDescription("Bytes consumed by the stream scanner"))
	chunks, _ := meter.Int64Counter("aseq.scan.chunks",
		metric.WithDescription("Chunks fed to the stream scanner"))
	matches, _ := meter.Int64Counter("aseq.scan.matches",
		metric.WithDescription("Pattern occurrences found"))

	return &scanMetrics{
		bytes:   bytes,
		chunks:  chunks,
		matches: matches,
		attrs:   metric.WithAttributes(attribute.Int("aseq.pattern.length", p.Len())),
	}
}

func (m *scanMetrics) record(ctx context.Context, before, after State) {
	m.chunks.Add(ctx, 1, m.attrs)
	m.bytes.Add(ctx, after.Offset-before.Offset, m.attrs)
	if n := after.Matches - before.Matches; n > 0 {
		m.matches.Add(ctx, int64(n), m.attrs)
	}
}
