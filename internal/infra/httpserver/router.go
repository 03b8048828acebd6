package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/dhiaselmi1/documind-ai/internal/application/analysis"
	appdocs "github.com/dhiaselmi1/documind-ai/internal/application/documents"
	anadomain "github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
	docdomain "github.com/dhiaselmi1/documind-ai/internal/domain/documents"
	"github.com/dhiaselmi1/documind-ai/internal/middleware"
)

// maxUploadBytes caps one multipart upload.
const maxUploadBytes = 16 << 20

type Router struct {
	docsSvc     *appdocs.Service
	analysisSvc *appanalysis.Service
}

// Options configure the router surface.
type Options struct {
	AllowedOrigins []string
	Checkers       map[string]middleware.HealthChecker
	RateLimit      int // requests per second, 0 disables
}

func NewRouter(docsSvc *appdocs.Service, analysisSvc *appanalysis.Service, opts Options) http.Handler {
	r := &Router{docsSvc: docsSvc, analysisSvc: analysisSvc}
	mux := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"} // dashboard runs on its own port
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if opts.RateLimit > 0 {
		mux.Use(middleware.RateLimitMiddleware(opts.RateLimit*2, opts.RateLimit))
	}

	mux.Get("/health", middleware.HealthHandler(opts.Checkers, analysisSvc.AgentStatus))
	mux.Get("/livez", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/documents", r.wrap(r.handleUpload))
		rt.Get("/documents", r.wrap(r.handleListDocuments))
		rt.Get("/documents/{id}", r.wrap(r.handleGetDocument))
		rt.Post("/documents/{id}/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleLatestAnalyses))
		rt.Get("/analyses/{id}", r.wrap(r.handleGetAnalysis))
		rt.Get("/analyses/{id}/faults", r.wrap(r.handleListFaults))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest wraps validation errors so wrap can map them to 400.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, docdomain.ErrNotFound), errors.Is(err, anadomain.ErrReportNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, docdomain.ErrUnsupportedFormat), errors.Is(err, docdomain.ErrNoText):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			var br badRequest
			if errors.As(err, &br) {
				http.Error(w, br.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/documents (multipart, field "file")
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return badRequest{fmt.Errorf("invalid multipart form: %w", err)}
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return badRequest{fmt.Errorf("missing file field: %w", err)}
	}
	defer file.Close()

	filename := middleware.SanitizeString(header.Filename)
	if err := middleware.ValidateFilename(filename); err != nil {
		return badRequest{err}
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	doc, err := r.docsSvc.Upload(req.Context(), appdocs.UploadCommand{
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		return err
	}
	middleware.IncrementDocuments()

	return writeJSON(w, http.StatusCreated, doc)
}

// GET /v1/documents?limit=20
func (r *Router) handleListDocuments(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.docsSvc.List(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*docdomain.Document{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/documents/{id}
func (r *Router) handleGetDocument(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateDocumentID(id); err != nil {
		return badRequest{err}
	}
	doc, err := r.docsSvc.Get(req.Context(), docdomain.DocumentID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, doc)
}

// POST /v1/documents/{id}/analyze
// Runs every registered agent and returns the merged report. A report
// with failed or timed-out agents is still a 200: consumers check the
// per-agent status.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateDocumentID(id); err != nil {
		return badRequest{err}
	}

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	report, err := r.analysisSvc.AnalyzeDocument(req.Context(), docdomain.DocumentID(id))
	if err != nil {
		return err
	}
	if report.Degraded() {
		middleware.IncrementAnalysesDegraded()
	}

	return writeJSON(w, http.StatusOK, report)
}

// GET /v1/analyses?limit=20
func (r *Router) handleLatestAnalyses(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.analysisSvc.Latest(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*anadomain.Report{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/analyses/{id}; id is the document ID
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateDocumentID(id); err != nil {
		return badRequest{err}
	}
	report, err := r.analysisSvc.GetReport(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, report)
}

// GET /v1/analyses/{id}/faults?limit=50
func (r *Router) handleListFaults(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateDocumentID(id); err != nil {
		return badRequest{err}
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.analysisSvc.ListFaults(req.Context(), id, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	if list == nil {
		return writeJSON(w, http.StatusOK, []any{})
	}
	return writeJSON(w, http.StatusOK, list)
}
