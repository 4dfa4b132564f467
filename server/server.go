package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sensitivecancergpt/predictor"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const (
	sessionCookie  = "scgpt_session"
	sessionIdleTTL = 12 * time.Hour
)

// InitStatus is the one-time client initialisation report shown on every page.
type InitStatus struct {
	OK      bool
	Message string
}

// Settings configures a Server. Zero values are usable.
type Settings struct {
	Init InitStatus
	// ModelLabel names the provider in user-facing messages, e.g. "Gemini".
	ModelLabel string
	// Timeout bounds each prediction request; zero means no timeout.
	Timeout  time.Duration
	Registry *prometheus.Registry
	Logger   *log.Logger
	Verbose  bool
}

type Server struct {
	predictor *predictor.Predictor
	settings  Settings
	store     *sessionStore
	pages     map[string]*template.Template
	metrics   *serverMetrics
	logger    *log.Logger
}

type sessionEntry struct {
	sess     *predictor.Session
	lastSeen time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

func newStore(ttl time.Duration) *sessionStore {
	return &sessionStore{sessions: make(map[string]*sessionEntry), ttl: ttl, now: time.Now}
}

func (s *sessionStore) set(id string, sess *predictor.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, k)
		}
	}
	s.sessions[id] = &sessionEntry{sess: sess, lastSeen: now}
}

func (s *sessionStore) get(id string) (*predictor.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok || s.now().Sub(e.lastSeen) > s.ttl {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.sess, true
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func New(pred *predictor.Predictor, settings Settings) (*Server, error) {
	if pred == nil {
		return nil, errors.New("predictor required")
	}
	if settings.Logger == nil {
		settings.Logger = log.Default()
	}
	if settings.Registry == nil {
		settings.Registry = prometheus.NewRegistry()
	}
	if settings.ModelLabel == "" {
		settings.ModelLabel = "Gemini"
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	store := newStore(sessionIdleTTL)
	metrics, err := newServerMetrics(settings.Registry, store)
	if err != nil {
		return nil, err
	}

	return &Server{
		predictor: pred,
		settings:  settings,
		store:     store,
		pages:     pages,
		metrics:   metrics,
		logger:    settings.Logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/sensitivity", s.handleSensitivity)
	mux.HandleFunc("/detection", s.handleDetection)
	mux.HandleFunc("/visualizations", s.handleVisualizations)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.settings.Registry, promhttp.HandlerOpts{}))
	return s.logMiddleware(mux)
}

// --- Handlers ---

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/sensitivity", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !s.settings.Init.OK {
		fmt.Fprintln(w, "degraded:", s.settings.Init.Message)
		return
	}
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	data := s.newPage(tabSensitivity)
	data.Drug = defaultDrug
	data.CellLine = defaultCellLine

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, tabSensitivity, data)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data.Drug = r.PostForm.Get("drug")
		data.CellLine = r.PostForm.Get("cell_line")

		ctx, cancel := s.requestContext(r)
		defer cancel()
		out, err := sess.PredictSensitivity(ctx, data.Drug, data.CellLine)
		if errors.Is(err, predictor.ErrValidation) {
			s.metrics.predictions.WithLabelValues(tabSensitivity, "invalid").Inc()
			data.warn("⚠️ Please fill out both drug and cell line fields.")
			s.render(w, http.StatusUnprocessableEntity, tabSensitivity, data)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.info(fmt.Sprintf("📤 Sending prompt to %s for drug sensitivity...", s.settings.ModelLabel))
		s.applyOutcome(&data, tabSensitivity, out)
		s.render(w, http.StatusOK, tabSensitivity, data)
	}
}

func (s *Server) handleDetection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	data := s.newPage(tabDetection)
	data.Fields = predictor.DefaultClinicalFields()

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, tabDetection, data)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fields, err := parseClinicalForm(r, data.Fields)
		if err == nil {
			data.Fields = fields
		}
		var out predictor.Outcome
		if err == nil {
			ctx, cancel := s.requestContext(r)
			defer cancel()
			out, err = sess.DetectCancer(ctx, fields)
		}
		if errors.Is(err, predictor.ErrValidation) {
			s.metrics.predictions.WithLabelValues(tabDetection, "invalid").Inc()
			data.warn("⚠️ " + err.Error())
			s.render(w, http.StatusUnprocessableEntity, tabDetection, data)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.info(fmt.Sprintf("📤 Sending prompt to %s for cancer detection...", s.settings.ModelLabel))
		s.applyOutcome(&data, tabDetection, out)
		s.render(w, http.StatusOK, tabDetection, data)
	}
}

func (s *Server) handleVisualizations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	data := s.newPage(tabVisualizations)

	// recomputed from the store on every request
	data.Sensitivity = sess.SensitivityRecords()
	if len(data.Sensitivity) > 0 {
		data.Bar = newBarChart(predictor.Tally(predictor.PredictionLabels(data.Sensitivity)))
	}
	data.Detection = sess.DetectionRecords()
	if len(data.Detection) > 0 {
		data.Donut = newDonutChart(predictor.Tally(predictor.DiagnosisLabels(data.Detection)), donutHole)
	}
	s.render(w, http.StatusOK, tabVisualizations, data)
}

// --- Helpers ---

// session returns the caller's session, creating an empty one when the cookie
// is missing or unknown. Must run before anything is written to w.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *predictor.Session {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if sess, ok := s.store.get(c.Value); ok {
			return sess
		}
	}
	id := uuid.NewString()
	sess := predictor.NewSession(id, s.predictor)
	s.store.set(id, sess)
	s.metrics.sessions.Inc()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.infof("[server] new session %s", id)
	return sess
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.settings.Timeout > 0 {
		return context.WithTimeout(r.Context(), s.settings.Timeout)
	}
	return context.WithCancel(r.Context())
}

func (s *Server) applyOutcome(data *pageData, kind string, out predictor.Outcome) {
	data.HasResult = true
	data.Result = out.Verdict
	data.ResultTitle = "Prediction Result:"
	if kind == tabDetection {
		data.ResultTitle = "Detection Result:"
	}
	if out.Err != nil {
		data.Result = "Error: " + out.Verdict
		s.metrics.predictions.WithLabelValues(kind, "error").Inc()
		data.fail(fmt.Sprintf("Error calling %s API: %v", s.settings.ModelLabel, out.Err))
		return
	}
	s.metrics.predictions.WithLabelValues(kind, "ok").Inc()
	data.success(fmt.Sprintf("✅ %s response:", s.settings.ModelLabel))
	data.Response = renderMarkdown(out.Raw)
}

// parseClinicalForm fills fields from the form; absent inputs keep their defaults.
func parseClinicalForm(r *http.Request, fields predictor.ClinicalFields) (predictor.ClinicalFields, error) {
	ints := []struct {
		name string
		dst  *int
	}{
		{"age", &fields.Age},
		{"tumor_size", &fields.TumorSizeMM},
		{"grade", &fields.Grade},
	}
	for _, in := range ints {
		v := strings.TrimSpace(r.PostForm.Get(in.name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fields, fmt.Errorf("%w: %s must be a whole number", predictor.ErrValidation, strings.ReplaceAll(in.name, "_", " "))
		}
		*in.dst = n
	}
	if v := r.PostForm.Get("lymph_nodes"); v != "" {
		fields.LymphNodes = v
	}
	if v := r.PostForm.Get("menopause"); v != "" {
		fields.Menopause = v
	}
	return fields, nil
}

func (s *Server) infof(format string, args ...interface{}) {
	if !s.settings.Verbose {
		return
	}
	s.logger.Printf("[INFO] "+format, args...)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		s.infof("[server] %s %s %d %s", r.Method, path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
