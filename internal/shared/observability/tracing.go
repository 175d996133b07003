package observability

import "go.opentelemetry.io/otel"

// Tracer is the shared tracer for pipeline spans. With no SDK installed it
// falls back to the no-op provider, so library users only pay for tracing
// when they configure an exporter.
var Tracer = otel.Tracer("debtrank")
