// Package api exposes the validation pipeline over HTTP: upload a
// summary sheet, receive the QC report.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reedan88/ooicgsn-data-tools/adapters/tabular"
	"github.com/reedan88/ooicgsn-data-tools/app"
	"github.com/reedan88/ooicgsn-data-tools/internal"
	"github.com/reedan88/ooicgsn-data-tools/internal/config"
	"github.com/reedan88/ooicgsn-data-tools/internal/profiling"
	"github.com/reedan88/ooicgsn-data-tools/internal/report"
)

// Server represents the QC HTTP server
type Server struct {
	router  *chi.Mux
	service *app.ValidationService
	cfg     *config.Config
	log     *internal.Logger
}

// NewServer creates a server around a configured validation service.
func NewServer(service *app.ValidationService, cfg *config.Config, log *internal.Logger) *Server {
	if log == nil {
		log = internal.DefaultLogger
	}
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		cfg:     cfg,
		log:     log,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Router returns the HTTP handler for mounting or serving.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/reports", s.handleValidate)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleValidate accepts a multipart upload ("file"), validates it, and
// returns the report as JSON. A sheet full of bad data is still a 200:
// findings are the product, not a server error.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	limit := int64(s.cfg.Server.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse upload: %v", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing \"file\" form field")
		return
	}
	defer file.Close()

	// The readers work from paths, so spool the upload to a temp file.
	tmp, err := os.CreateTemp("", "summary-*"+filepath.Ext(header.Filename))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "spool upload")
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusInternalServerError, "spool upload")
		return
	}
	tmp.Close()

	table, err := tabular.NewReader(tmp.Name()).Read()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("read sheet: %v", err))
		return
	}

	findings, err := s.service.Run(r.Context(), table)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("validate: %v", err))
		return
	}

	var profiles []profiling.ColumnSummary
	if s.cfg.Data.Profile {
		profiles = profiling.Summarize(table)
	}

	doc := report.New(header.Filename, findings, profiles)
	s.log.Info("report %s: %s -> %d finding(s)", doc.ID, header.Filename, len(findings))
	body, err := doc.JSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode report")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
