package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/station-report-service/internal/adapter/csvfile"
	"github.com/couchcryptid/station-report-service/internal/adapter/xlsx"
	"github.com/couchcryptid/station-report-service/internal/domain"
	"github.com/couchcryptid/station-report-service/internal/observability"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Analyzer runs the report pipeline over an uploaded table.
type Analyzer interface {
	Analyze(ctx context.Context, table domain.Table) (domain.Report, error)
	Export(ctx context.Context, table domain.Table, stationToken string) (domain.Pivot, error)
	Stations(ctx context.Context, table domain.Table) ([]string, error)
	CheckReadiness(ctx context.Context) error
}

// ReportPublisher forwards generated reports to downstream consumers.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report domain.Report) error
}

// Server exposes the upload/analysis API plus health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	analyzer   Analyzer
	publisher  ReportPublisher // nil when publishing is disabled
	metrics    *observability.Metrics
	logger     *slog.Logger
	maxUpload  int64
}

// NewServer creates the HTTP server. publisher may be nil.
func NewServer(addr string, analyzer Analyzer, publisher ReportPublisher, maxUpload int64, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		analyzer:  analyzer,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		maxUpload: maxUpload,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/analyze/export", s.handleExport)
		r.Post("/stations", s.handleStations)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.analyzer.CheckReadiness(ctx); err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "not ready", "error": err.Error()})
		return
	}
	render.JSON(w, r, map[string]string{"status": "ready"})
}

// handleAnalyze accepts a multipart spreadsheet upload and responds with the
// aggregated report as JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	table, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), table)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.publishReport(r.Context(), report)
	render.JSON(w, r, report)
}

// handleExport accepts a multipart upload plus a station_id form field and
// responds with the station's date-by-position pivot as a downloadable
// workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	table, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	station := strings.TrimSpace(r.FormValue("station_id"))
	if station == "" {
		s.badRequest(w, r, "station_id form field is required")
		return
	}

	pivot, err := s.analyzer.Export(r.Context(), table, station)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	download := fmt.Sprintf("analyzed_station_%s_%s.xlsx", station, base)
	w.Header().Set("Content-Type", xlsxContentType)
	// FormatMediaType escapes quotes and other specials the client may have
	// put in the uploaded filename.
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": download}))

	if err := xlsx.WritePivot(w, pivot); err != nil {
		// Headers are already sent; all we can do is log.
		s.logger.Error("write pivot workbook failed", "error", err, "station", station)
	}
}

// handleStations lists the distinct station identifiers in the upload so a
// client can populate a selection dropdown before requesting an export.
func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	table, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	stations, err := s.analyzer.Stations(r.Context(), table)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, map[string][]string{"stations": stations})
}

// readUpload parses the multipart "file" field into a Table, dispatching on
// file extension. On failure it writes the error response and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (domain.Table, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, map[string]string{"error": "uploaded file exceeds the size limit"})
			return domain.Table{}, "", false
		}
		s.badRequest(w, r, "request is not a valid multipart upload")
		return domain.Table{}, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.badRequest(w, r, "no file uploaded")
		return domain.Table{}, "", false
	}
	defer file.Close()

	table, err := decodeTable(header, file)
	if err != nil {
		s.badRequest(w, r, err.Error())
		return domain.Table{}, "", false
	}
	return table, header.Filename, true
}

func decodeTable(header *multipart.FileHeader, file multipart.File) (domain.Table, error) {
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx":
		return xlsx.ReadTable(file)
	case ".csv":
		return csvfile.ReadTable(file)
	default:
		return domain.Table{}, errors.New("unsupported file type: upload a .xlsx or .csv file")
	}
}

// publishReport forwards the report to the publisher when one is configured.
// Publish failures are logged and counted but never fail the request; the
// caller already has their report.
func (s *Server) publishReport(ctx context.Context, report domain.Report) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReport(ctx, report); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("report publish failed", "error", err)
		return
	}
	s.metrics.ReportsPublished.Inc()
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var schemaErr *domain.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, map[string]string{"error": schemaErr.Error()})
	case errors.Is(err, domain.ErrStationTokenNotAccepted):
		s.badRequest(w, r, err.Error())
	default:
		s.logger.Error("analysis failed", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "internal error"})
	}
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]string{"error": msg})
}
