package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	kderrors "github.com/matzehuels/knowdeps/pkg/errors"
	"github.com/matzehuels/knowdeps/pkg/locale"
	"github.com/matzehuels/knowdeps/pkg/presenter"
)

const shutdownTimeout = 5 * time.Second

// LoadFunc builds the document for the "show project dependencies" command.
type LoadFunc func(ctx context.Context) (presenter.Document, error)

// Options configures a Server.
type Options struct {
	Enricher *presenter.Enricher
	Strings  locale.Strings // zero value uses locale.English
	Logger   *log.Logger    // nil uses log.Default()

	// Load backs POST /commands/show-dependencies. Nil disables the command.
	Load LoadFunc

	// Ready is called with the base URL once the listener is bound.
	Ready func(baseURL string)
}

// Server is the web panel host.
type Server struct {
	opts   Options
	logger *log.Logger
	router chi.Router

	mu     sync.Mutex
	panels map[string]*panel
}

type panel struct {
	doc    presenter.Document
	html   []byte
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Server with no open panels.
func New(opts Options) *Server {
	if opts.Strings.Tag == "" {
		opts.Strings = locale.English
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Enricher == nil {
		opts.Enricher = &presenter.Enricher{}
	}

	s := &Server{
		opts:   opts,
		logger: logger,
		panels: make(map[string]*panel),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Post("/commands/show-dependencies", s.handleShowDependencies)
	r.Get("/panels/{id}", s.handlePanelRedirect)
	r.Get("/panels/{id}/", s.handleDocument)
	r.Get("/panels/{id}/events", s.handleEvents)
	r.Delete("/panels/{id}", s.handleClose)
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Open registers a new panel for doc and returns its ID. Every call creates
// an independent panel, even for the same document.
func (s *Server) Open(doc presenter.Document) (string, error) {
	var buf bytes.Buffer
	if err := presenter.RenderHTML(&buf, doc, s.opts.Strings); err != nil {
		return "", err
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &panel{doc: doc, html: buf.Bytes(), ctx: ctx, cancel: cancel}
	id := uuid.NewString()

	s.mu.Lock()
	s.panels[id] = p
	s.mu.Unlock()

	s.logger.Debug("panel opened", "id", id, "entries", doc.Size())
	return id, nil
}

// Close closes a panel and stops its enrichment. It reports whether the panel
// was open.
func (s *Server) Close(id string) bool {
	s.mu.Lock()
	p, ok := s.panels[id]
	delete(s.panels, id)
	s.mu.Unlock()

	if ok {
		p.cancel()
		s.logger.Debug("panel closed", "id", id)
	}
	return ok
}

// Panels returns the number of open panels.
func (s *Server) Panels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.panels)
}

func (s *Server) panel(id string) (*panel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.panels[id]
	return p, ok
}

// Run serves on addr until ctx is cancelled, then shuts down. Open event
// streams end when ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	baseURL := "http://" + ln.Addr().String()
	s.logger.Info("serving panels", "url", baseURL)
	if s.opts.Ready != nil {
		s.opts.Ready(baseURL)
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, indexTmpl, pageData{
		Lang:    s.opts.Strings.Tag,
		Title:   s.opts.Strings.PanelTitle,
		Command: s.opts.Strings.CommandTitle,
		Enabled: s.opts.Load != nil,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleShowDependencies(w http.ResponseWriter, r *http.Request) {
	if s.opts.Load == nil {
		http.Error(w, "command not available", http.StatusNotFound)
		return
	}

	doc, err := s.opts.Load(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if kderrors.IsEnvironment(err) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Error("show dependencies", "err", err)
		s.renderPage(w, status, noticeTmpl, pageData{
			Lang:    s.opts.Strings.Tag,
			Title:   s.opts.Strings.PanelTitle,
			Message: s.opts.Strings.Notification(err),
		})
		return
	}

	id, err := s.Open(doc)
	if err != nil {
		s.logger.Error("render panel", "err", err)
		http.Error(w, "cannot render panel", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/panels/"+id+"/", http.StatusSeeOther)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := s.panel(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(p.html)
}

// The document subscribes to a relative URL, so it must be served from the
// directory form of the panel path.
func (s *Server) handlePanelRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/panels/"+chi.URLParam(r, "id")+"/", http.StatusMovedPermanently)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	if !s.Close(chi.URLParam(r, "id")) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := s.panel(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(p.ctx, cancel)
	defer stop()

	stream, err := newEventStream(ctx, w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := s.opts.Enricher.Run(ctx, p.doc, stream); err != nil {
		s.logger.Debug("panel enrichment stopped", "id", id, "err", err)
		return
	}
	_ = stream.complete()
}

func (s *Server) renderPage(w http.ResponseWriter, status int, tmpl *template.Template, data pageData) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("render page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
