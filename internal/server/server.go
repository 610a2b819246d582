package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/afwatch/afwatch/pkg/dataset"
)

//go:embed web
var WebFS embed.FS

// Server serves the dashboard and its JSON API. The dataset is loaded
// once before construction and read-only from here on; every handler
// recomputes its view from it on each request.
type Server struct {
	Data     *dataset.Dataset
	Username string
	Password string
}

func New(d *dataset.Dataset, user, pass string) *Server {
	return &Server{
		Data:     d,
		Username: user,
		Password: pass,
	}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	// API Group
	mux.HandleFunc("GET /api/meta", s.basicAuth(s.handleMeta))
	mux.HandleFunc("GET /api/facets", s.basicAuth(s.handleFacets))
	mux.HandleFunc("GET /api/items", s.basicAuth(s.handleItems))
	mux.HandleFunc("GET /api/updates", s.basicAuth(s.handleUpdates))
	mux.HandleFunc("GET /api/readouts", s.basicAuth(s.handleReadouts))
	mux.HandleFunc("GET /api/weekly", s.basicAuth(s.handleWeekly))

	// Static Files
	webRoot, err := fs.Sub(WebFS, "web")
	if err != nil {
		return err
	}
	fileServer := http.FileServer(http.FS(webRoot))
	mux.Handle("/", s.basicAuthMiddlewareForStatic(fileServer))

	log.Printf("Starting server on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) basicAuthMiddlewareForStatic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
