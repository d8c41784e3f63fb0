package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"bloodconnect/internal/service"
	"bloodconnect/internal/utils"
	"bloodconnect/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	app       *service.Service
	metrics   http.Handler
	templates *template.Template

	cookie *securecookie.SecureCookie

	handler http.Handler
	server  *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	app *service.Service,
	metrics http.Handler,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := cookieKey(config.CookieHashKey, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_HASH_KEY: %w", err)
	}

	blockKey, err := cookieKey(config.CookieBlockKey, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_BLOCK_KEY: %w", err)
	}

	s := &Service{
		logger:  logger,
		config:  config,
		app:     app,
		metrics: metrics,
		cookie:  securecookie.New(hashKey, blockKey),
		handler: mux,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

// cookieKey decodes a base64 key, or generates a random one when unset.
// Random keys invalidate cookies on every restart.
func cookieKey(encoded string, size int) ([]byte, error) {
	if encoded == "" {
		return securecookie.GenerateRandomKey(size), nil
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the router, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleDashboard, http.MethodGet)

	r.HandleFunc("/donors", s.handleDonorSearch, http.MethodGet)
	r.HandleFunc("/donors/register", s.handleGetRegister, http.MethodGet)
	r.HandleFunc("/donors/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/donors/:id", s.handleDonorDetail, http.MethodGet)
	r.HandleFunc("/donors/:id/donations", s.handlePostDonation, http.MethodPost)
	r.HandleFunc("/donors/:id/status", s.handlePostDonorStatus, http.MethodPost)
	r.HandleFunc("/donors/:id/select", s.handlePostSelectDonor, http.MethodPost)

	r.HandleFunc("/requests", s.handleRequestList, http.MethodGet)
	r.HandleFunc("/requests", s.handlePostRequest, http.MethodPost)
	r.HandleFunc("/requests/new", s.handleGetNewRequest, http.MethodGet)
	r.HandleFunc("/requests/:id", s.handleRequestDetail, http.MethodGet)
	r.HandleFunc("/requests/:id/cancel", s.handlePostCancelRequest, http.MethodPost)

	r.HandleFunc("/notifications", s.handleNotifications, http.MethodGet)
	r.HandleFunc("/notifications/:id/accept", s.handlePostAccept, http.MethodPost)
	r.HandleFunc("/notifications/:id/decline", s.handlePostDecline, http.MethodPost)

	r.HandleFunc("/analytics", s.handleAnalytics, http.MethodGet)
	r.HandleFunc("/leaderboard", s.handleLeaderboard, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.JSONContentType)

		r.HandleFunc("/api/match", s.handleAPIMatch, http.MethodPost)
		r.HandleFunc("/api/donors", s.handleAPIDonors, http.MethodGet)
		r.HandleFunc("/api/requests", s.handleAPIRequests, http.MethodGet)
		r.HandleFunc("/api/analytics", s.handleAPIAnalytics, http.MethodGet)
		r.HandleFunc("/api/leaderboard", s.handleAPILeaderboard, http.MethodGet)
	})

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics, http.MethodGet)
	}

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"km": func(d float64) string {
			return fmt.Sprintf("%.1f km", d)
		},
		"kmPtr": func(d *float64) string {
			if d == nil {
				return ""
			}
			return fmt.Sprintf("%.1f km", *d)
		},
		"percent": func(f float64) string {
			return fmt.Sprintf("%.0f%%", f*100)
		},
		"minutes": func(d time.Duration) string {
			return fmt.Sprintf("%.0f min", d.Minutes())
		},
		"date": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"dateOr": func(t *time.Time, defaultVal string) string {
			if t == nil {
				return defaultVal
			}
			return t.Format("2006-01-02")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"join":  strings.Join,
		"short": utils.ShortID,
		"bloodTypes": func(bts []types.BloodType) string {
			out := make([]string, 0, len(bts))
			for _, bt := range bts {
				out = append(out, bt.String())
			}
			return strings.Join(out, ", ")
		},
		"lower": func(v any) string {
			return strings.ToLower(fmt.Sprint(v))
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
