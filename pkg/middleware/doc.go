// Package middleware provides element.Renderer decorators for production
// observability.
//
// # Prometheus Metrics
//
// Prometheus counts and times every renderer call:
//   - elements_renders_total{tag,op,status}
//   - elements_render_duration_seconds{tag,op}
//   - elements_render_errors_total{tag,op,error_type}
//   - elements_live_handles{tag}
//
//	r := middleware.Prometheus("x-button", render.Component(button))
//
// Use NewMetrics with WithRegistry to keep the metrics off the default
// registry, then Metrics.Wrap each renderer.
//
// # OpenTelemetry
//
// Tracing opens one span per renderer call with the element tag, the
// operation and the prop count. Update and unmount spans are children of
// the mount span of the same tree:
//
//	r := middleware.Tracing("x-button", r,
//	    middleware.WithOpFilter(func(tag, op string) bool { return op != "update" }),
//	)
//
// Decorators compose; the outermost sees the handles of the ones inside.
package middleware
