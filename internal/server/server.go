package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/jobboardhq/jobs-api/internal/apierror"
	"github.com/jobboardhq/jobs-api/internal/config"
	"github.com/jobboardhq/jobs-api/internal/email"
	"github.com/jobboardhq/jobs-api/internal/middleware"
)

const (
	CacheKeyAllJobs = "allJobs"
)

type Server struct {
	cfg          config.Config
	Conn         *sql.DB
	router       *mux.Router
	emailClient  email.Client
	SessionStore *sessions.CookieStore
	bigCache     *bigcache.BigCache
}

func NewServer(
	cfg config.Config,
	conn *sql.DB,
	r *mux.Router,
	emailClient email.Client,
	sessionStore *sessions.CookieStore,
) Server {
	if cfg.SentryDSN != "" {
		raven.SetDSN(cfg.SentryDSN)
	}

	bigCache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(12*time.Hour))
	svr := Server{
		cfg:          cfg,
		Conn:         conn,
		router:       r,
		emailClient:  emailClient,
		SessionStore: sessionStore,
		bigCache:     bigCache,
	}
	if err != nil {
		svr.Log(err, "unable to initialise big cache")
	}

	return svr
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) GetEmail() email.Client {
	return s.emailClient
}

func (s Server) GetJWTSigningKey() []byte {
	return s.cfg.JwtSigningKey
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (s Server) TEXT(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

// Error maps an error to its client-facing status and body. Validation
// failures enumerate every violated constraint in one response. Anything
// outside the taxonomy becomes an internal error and gets logged.
func (s Server) Error(w http.ResponseWriter, err error) {
	status := apierror.Status(err)
	if status == http.StatusInternalServerError {
		s.Log(err, "internal error while serving request")
	}
	s.JSON(w, status, map[string]interface{}{
		"errors": apierror.Messages(err),
		"status": status,
	})
}

func (s Server) Log(err error, msg string) {
	if s.cfg.SentryDSN != "" {
		raven.CaptureError(err, map[string]string{"ctx": msg})
	}
	log.Printf("%s: %+v", msg, err)
}

func (s Server) CacheGet(key string) ([]byte, bool) {
	if s.bigCache == nil {
		return []byte{}, false
	}
	out, err := s.bigCache.Get(key)
	if err != nil {
		return []byte{}, false
	}
	return out, true
}

func (s Server) CacheSet(key string, val []byte) error {
	if s.bigCache == nil {
		return nil
	}
	return s.bigCache.Set(key, val)
}

func (s Server) CacheDelete(key string) error {
	if s.bigCache == nil {
		return nil
	}
	err := s.bigCache.Delete(key)
	if err == bigcache.ErrEntryNotFound {
		return nil
	}
	return err
}

func (s Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.Env == "dev" {
		log.Printf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	return http.ListenAndServe(
		addr,
		middleware.HTTPSMiddleware(
			middleware.LoggingMiddleware(middleware.HeadersMiddleware(s.router, s.cfg.Env)),
			s.cfg.Env,
		),
	)
}
