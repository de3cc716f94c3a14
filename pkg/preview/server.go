package preview

import (
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/elements/internal/errors"
	"github.com/vango-dev/elements/pkg/element"
	"github.com/vango-dev/elements/pkg/render"
	"github.com/vango-dev/elements/pkg/transform"
)

// Config configures the preview server.
type Config struct {
	// Registry holds the elements to preview. Required.
	Registry *element.Registry

	// HTML renders elements. Defaults to a compact renderer.
	HTML *render.Renderer

	// Logger receives request and session logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Gatherer is served on /metrics when set.
	Gatherer prometheus.Gatherer

	// CheckOrigin validates websocket origins. Defaults to allowing all
	// origins.
	CheckOrigin func(r *http.Request) bool
}

// Server serves element previews over HTTP and live sessions over
// websockets.
type Server struct {
	registry *element.Registry
	html     *render.Renderer
	logger   *slog.Logger
	router   chi.Router
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*session]struct{}
}

// New creates a preview server.
func New(cfg Config) *Server {
	if cfg.HTML == nil {
		cfg.HTML = render.NewRenderer(render.RendererConfig{})
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.CheckOrigin == nil {
		cfg.CheckOrigin = func(r *http.Request) bool { return true }
	}

	s := &Server{
		registry: cfg.Registry,
		html:     cfg.HTML,
		logger:   cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		sessions: make(map[*session]struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/elements", s.handleList)
	r.Get("/elements/{tag}", s.handleRender)
	r.Get("/elements/{tag}/live", s.handleLive)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SessionCount returns the number of open live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close ends every live session.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.conn.Close()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// ElementInfo describes a defined element.
type ElementInfo struct {
	Tag                string     `json:"tag"`
	Shadow             string     `json:"shadow,omitempty"`
	ObservedAttributes []string   `json:"observedAttributes"`
	Props              []PropInfo `json:"props"`
}

// PropInfo describes a declared prop.
type PropInfo struct {
	Name      string         `json:"name"`
	Attribute string         `json:"attribute"`
	Type      transform.Kind `json:"type"`
}

// Describe returns the description of def.
func Describe(def *element.Definition) ElementInfo {
	info := ElementInfo{
		Tag:                def.Tag(),
		Shadow:             string(def.Shadow()),
		ObservedAttributes: def.ObservedAttributes(),
		Props:              make([]PropInfo, 0, def.Schema().Len()),
	}
	for _, d := range def.Schema().Descriptors() {
		info.Props = append(info.Props, PropInfo{Name: d.PropName, Attribute: d.AttrName, Type: d.Kind})
	}
	return info
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	tags := s.registry.Tags()
	infos := make([]ElementInfo, 0, len(tags))
	for _, tag := range tags {
		if def, ok := s.registry.Get(tag); ok {
			infos = append(infos, Describe(def))
		}
	}
	writeJSON(w, http.StatusOK, infos)
}

// handleRender creates the element, applies query parameters as
// attributes, mounts it and returns its HTML.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	if _, ok := s.registry.Get(tag); !ok {
		writeError(w, http.StatusNotFound, notFound(tag))
		return
	}

	doc := element.NewDocument(s.registry)
	defer doc.Close()

	el, err := doc.CreateElement(tag)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	for _, a := range queryAttrs(r) {
		if err := el.SetAttribute(a[0], a[1]); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if err := doc.Append(el); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	html, err := s.html.ElementToString(el)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// queryAttrs returns the query parameters as attributes in name order.
// The last value of a repeated parameter wins.
func queryAttrs(r *http.Request) [][2]string {
	q := r.URL.Query()
	names := make([]string, 0, len(q))
	for name := range q {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([][2]string, len(names))
	for i, name := range names {
		values := q[name]
		attrs[i] = [2]string{name, values[len(values)-1]}
	}
	return attrs
}

func notFound(tag string) error {
	return errors.New("E143").
		WithDetailf("<%s> is not defined", tag).
		WithSuggestion("GET /elements lists the defined elements")
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error(), Code: errors.Code(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
