package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Server is an http.Handler serving wizard sessions.
type Server struct {
	router   chi.Router
	opts     Options
	store    *Store
	renderer render.Renderer
	logger   *log.Logger
}

// New builds a server with default options plus any overrides.
func New(fns ...OptionFn) (*Server, error) {
	opts := NewOptions(fns...)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	renderer := opts.Renderer
	if renderer == nil {
		r, err := vanilla.New(vanilla.WithAssetBase(opts.AssetsPath))
		if err != nil {
			return nil, fmt.Errorf("server: build renderer: %w", err)
		}
		renderer = r
	}
	if opts.Assets == nil {
		opts.Assets = vanilla.AssetsFS()
	}

	store := NewStore(func() *wizard.Wizard {
		return wizard.New(
			wizard.WithSubmitter(opts.Submitter),
			wizard.WithLogger(logger),
		)
	})

	s := &Server{
		router:   chi.NewRouter(),
		opts:     opts,
		store:    store,
		renderer: renderer,
		logger:   logger,
	}
	s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Store exposes the session store.
func (s *Server) Store() *Store {
	return s.store
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.opts.Guard != nil {
		r.Use(guard(s.opts.Guard))
	}

	r.Get("/", s.handleStart)
	r.Get("/openapi.json", s.handleOpenAPI)
	r.Handle(s.opts.AssetsPath+"/*", http.StripPrefix(s.opts.AssetsPath, http.FileServer(http.FS(s.opts.Assets))))

	r.Route(s.opts.BasePath+"/{id}", func(r chi.Router) {
		r.Get("/", s.withSession(s.handleShow))
		r.Get("/state", s.withSession(s.handleState))
		r.Post("/step", s.withSession(s.handleStep))
		r.Post("/fields", s.withSession(s.handleFields))
		r.Post("/next", s.withSession(s.handleNext))
		r.Post("/products/{index}/remove", s.withSession(s.handleRemove))
		r.Post("/submit", s.withSession(s.handleSubmit))
	})
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, id uuid.UUID, wiz *wizard.Wizard)

func (s *Server) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, ErrSessionNotFound.Error(), http.StatusNotFound)
			return
		}
		wiz, ok := s.store.Get(id)
		if !ok {
			http.Error(w, ErrSessionNotFound.Error(), http.StatusNotFound)
			return
		}
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form body", http.StatusBadRequest)
				return
			}
		}
		next(w, r, id, wiz)
	}
}

func (s *Server) sessionPath(id uuid.UUID) string {
	return s.opts.BasePath + "/" + id.String()
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	id, _ := s.store.Create()
	s.logger.Info("session started", "session", id)
	http.Redirect(w, r, s.sessionPath(id), http.StatusSeeOther)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request, id uuid.UUID, wiz *wizard.Wizard) {
	s.renderPage(w, r, id, wiz, http.StatusOK)
}

type stateResponse struct {
	ID    uuid.UUID   `json:"id"`
	State wizard.View `json:"state"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request, id uuid.UUID, wiz *wizard.Wizard) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(stateResponse{ID: id, State: wiz.State()})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, id uuid.UUID, wiz *wizard.Wizard) {
	if r.PostForm.Get(stepParam) == "" {
		s.fail(w, r, id, wiz, badRequest(errors.New("server: step is required")))
		return
	}
	if err := selectPostedStep(wiz, r.PostForm); err != nil {
		s.fail(w, r, id, wiz, err)
		return
	}
	s.redirect(w, r, id)
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request, id uuid.UUID, wiz *wizard.Wizard) {
	if err := applyFields(wiz, r.PostForm); err != nil {
		s.fail(w, r, id, wiz, err)
		return
	}
	if err := selectPostedStep(wiz, r.PostForm); err != nil {
		s.fail(w, r, id, wiz, err)
		return
	}
	s.redirect(w, r, id)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request, id uuid.UUID, wiz *wizard.Wizard) {
	if err := applyFields(wiz, r.PostForm); err != nil {
		s.fail(w, r, id, wiz, err)
		return
	}
	wiz.SetPendingAddProduct(r.PostForm.Get(checkboxParam) != "")
	wiz.AdvanceFromProduct()
	s.redirect(w, r, id)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request, id uuid.UUID, wiz *wizard.Wizard) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.fail(w, r, id, wiz, badRequest(fmt.Errorf("server: malformed product index %q", chi.URLParam(r, "index"))))
		return
	}
	if err := applyFields(wiz, r.PostForm); err != nil {
		s.fail(w, r, id, wiz, err)
		return
	}
	if err := wiz.RemoveProduct(index); err != nil {
		s.fail(w, r, id, wiz, err)
		return
	}
	s.redirect(w, r, id)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, id uuid.UUID, _ *wizard.Wizard) {
	// Claim the session so a concurrent submit of the same form sees 404.
	wiz, ok := s.store.Take(id)
	if !ok {
		http.Error(w, ErrSessionNotFound.Error(), http.StatusNotFound)
		return
	}
	record := wiz.Snapshot()
	if err := wiz.Submit(r.Context()); err != nil {
		s.store.Put(id, wiz)
		s.fail(w, r, id, wiz, err)
		return
	}
	s.logger.Info("session submitted", "session", id, "products", len(record.Products))

	confirm, ok := s.renderer.(render.ConfirmationRenderer)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	body, err := confirm.RenderConfirmation(r.Context(), record, s.renderOptions(r, id))
	if err != nil {
		s.logger.Error("render confirmation", "session", id, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.write(w, body, http.StatusOK)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	data, err := openapi.JSON(r.Context(), openapi.WithBasePath(s.opts.BasePath))
	if err != nil {
		s.logger.Error("openapi document", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	http.Redirect(w, r, s.sessionPath(id), http.StatusSeeOther)
}

// fail reports err. Wizard rejections re-render the page with the error as a
// notice; transport errors get a plain response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, id uuid.UUID, wiz *wizard.Wizard, err error) {
	code := statusFor(err)
	if isWizardError(err) {
		s.logger.Debug("operation rejected", "session", id, "err", err)
	} else {
		s.logger.Warn("request failed", "session", id, "status", code, "err", err)
	}
	if code != http.StatusUnprocessableEntity {
		http.Error(w, err.Error(), code)
		return
	}
	s.renderPage(w, r, id, wiz, code, err.Error())
}

func (s *Server) renderOptions(r *http.Request, id uuid.UUID) render.RenderOptions {
	variant := s.opts.ThemeVariant
	if v := r.URL.Query().Get("variant"); v != "" {
		variant = v
	}
	return render.RenderOptions{
		Layout:       s.opts.Layout,
		ActionBase:   s.sessionPath(id),
		HiddenFields: render.MergeHiddenFields(nil, render.SessionField(id.String())),
		Theme:        s.opts.Theme,
		ThemeVariant: variant,
	}
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, id uuid.UUID, wiz *wizard.Wizard, status int, notices ...string) {
	opts := s.renderOptions(r, id)
	opts.Notices = render.MergeNotices(nil, notices...)
	body, err := s.renderer.Render(r.Context(), wiz.State(), opts)
	if err != nil {
		s.logger.Error("render page", "session", id, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.write(w, body, status)
}

func (s *Server) write(w http.ResponseWriter, body []byte, status int) {
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
