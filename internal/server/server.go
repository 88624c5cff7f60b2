package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/AshwinChaudhary21/InterviewChatbot/internal/questions"
	"github.com/AshwinChaudhary21/InterviewChatbot/internal/session"

	"go.uber.org/zap"
)

const sessionCookie = "talentscout_session"

//go:embed templates/*.html
var templatesFS embed.FS

// questionService produces normalized question sets for a tech stack.
type questionService interface {
	Generate(ctx context.Context, techs []string) (questions.Set, error)
}

// candidateStore persists the finished screening.
type candidateStore interface {
	SaveCandidateAndAnswers(ctx context.Context, candidate map[string]any, answers []map[string]any) (string, error)
}

type Config struct {
	Listen string
}

// Server renders the four-step screening flow and delegates to the question
// service and the candidate store.
type Server struct {
	listen    string
	sessions  *session.Manager
	questions questionService
	store     candidateStore
	logger    *zap.Logger
	tmpl      *template.Template
	mux       *http.ServeMux
}

func New(cfg Config, svc questionService, store candidateStore, logger *zap.Logger) (*Server, error) {
	if svc == nil {
		return nil, errors.New("question service is required")
	}
	if store == nil {
		return nil, errors.New("candidate store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	listen := cfg.Listen
	if listen == "" {
		listen = ":8080"
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		listen:    listen,
		sessions:  session.NewManager(),
		questions: svc,
		store:     store,
		logger:    logger,
		tmpl:      tmpl,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /details", s.handleDetails)
	s.mux.HandleFunc("POST /techstack", s.handleTechStack)
	s.mux.HandleFunc("POST /answers", s.handleAnswers)
	s.mux.HandleFunc("POST /command", s.handleCommand)
	s.mux.HandleFunc("POST /reset", s.handleReset)

	return s, nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until the context is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listen,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", zap.String("addr", s.listen))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// currentSession returns the session referenced by the request cookie,
// creating a fresh one (and setting the cookie) when absent or stale.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) *session.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.Get(cookie.Value); ok {
			return sess
		}
	}

	sess := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
	})

	return sess
}
