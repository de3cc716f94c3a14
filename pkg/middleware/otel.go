package middleware

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/elements/pkg/element"
)

const defaultTracerName = "github.com/vango-dev/elements"

// OTelConfig configures the OpenTelemetry renderer decorator.
type OTelConfig struct {
	// TracerName is the name of the tracer.
	TracerName string

	// TracerProvider supplies the tracer. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// IncludePropNames records the sorted prop names of every call.
	// Prop values are never recorded.
	IncludePropNames bool

	// Filter determines which operations to trace. Return true to trace.
	// If nil, all operations are traced.
	Filter func(tag, op string) bool

	// AttributeExtractor adds custom attributes from the prop bag.
	// Unmount has no bag and receives nil.
	AttributeExtractor func(tag string, props element.Props) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry renderer decorator.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithPropNames enables recording prop names.
func WithPropNames(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludePropNames = include
	}
}

// WithOpFilter sets a filter function for operations.
func WithOpFilter(filter func(tag, op string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(tag string, props element.Props) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing wraps r so every Mount, Update and Unmount runs in a span named
// "<tag> <op>". Renderer calls carry no context, so mount spans are roots;
// update and unmount spans are children of the mount span of their handle.
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure it in main() before defining elements:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func Tracing(tag string, r element.Renderer, opts ...OTelOption) element.Renderer {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &traced{
		next:   r,
		tag:    tag,
		config: config,
		tracer: tp.Tracer(config.TracerName),
	}
}

// tracedHandle carries the mount span's context next to the wrapped
// renderer's handle.
type tracedHandle struct {
	inner element.Handle
	span  trace.SpanContext
}

// SpanContext returns the mount span context recorded in a handle produced
// by a Tracing renderer, or an invalid span context.
func SpanContext(h element.Handle) trace.SpanContext {
	if th, ok := h.(*tracedHandle); ok {
		return th.span
	}
	return trace.SpanContext{}
}

type traced struct {
	next   element.Renderer
	tag    string
	config OTelConfig
	tracer trace.Tracer
}

func (t *traced) Mount(container element.Container, props element.Props) (element.Handle, error) {
	ctx, span := t.start(context.Background(), "mount", props)
	defer span.End()

	if root, ok := container.(*element.ShadowRoot); ok {
		span.SetAttributes(attribute.String("element.shadow", string(root.Mode())))
	}

	h, err := t.next.Mount(container, props)
	finish(span, err)
	if err != nil {
		return nil, err
	}
	return &tracedHandle{inner: h, span: trace.SpanContextFromContext(ctx)}, nil
}

func (t *traced) Update(handle element.Handle, props element.Props) error {
	th, err := unwrap(handle)
	if err != nil {
		return err
	}
	_, span := t.start(trace.ContextWithSpanContext(context.Background(), th.span), "update", props)
	defer span.End()

	err = t.next.Update(th.inner, props)
	finish(span, err)
	return err
}

func (t *traced) Unmount(handle element.Handle) error {
	th, err := unwrap(handle)
	if err != nil {
		return err
	}
	_, span := t.start(trace.ContextWithSpanContext(context.Background(), th.span), "unmount", nil)
	defer span.End()

	err = t.next.Unmount(th.inner)
	finish(span, err)
	return err
}

// start opens a span, or a non-recording span when the filter skips op so
// the handle still carries a usable context.
func (t *traced) start(ctx context.Context, op string, props element.Props) (context.Context, trace.Span) {
	if t.config.Filter != nil && !t.config.Filter(t.tag, op) {
		return ctx, trace.SpanFromContext(ctx)
	}

	attrs := []attribute.KeyValue{
		attribute.String("element.tag", t.tag),
		attribute.String("element.op", op),
	}
	if props != nil {
		attrs = append(attrs, attribute.Int("element.prop_count", len(props)))
	}
	if t.config.IncludePropNames && props != nil {
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		attrs = append(attrs, attribute.StringSlice("element.props", names))
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(t.tag, props)...)
	}

	return t.tracer.Start(ctx, t.tag+" "+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

func unwrap(handle element.Handle) (*tracedHandle, error) {
	th, ok := handle.(*tracedHandle)
	if !ok {
		return nil, fmt.Errorf("middleware: handle %T was not returned by a tracing renderer", handle)
	}
	return th, nil
}
