package httpapi

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/sbogelman-afk/hart-backend-dual/internal/auditstore"
	"github.com/sbogelman-afk/hart-backend-dual/internal/evaluation"
)

const maxIntakeBytes = 1 << 20

// Evaluator is the core boundary the transport depends on.
type Evaluator interface {
	Evaluate(ctx context.Context, form evaluation.IntakeForm) (evaluation.EvaluationResult, error)
	RenderDocument(ctx context.Context, result evaluation.EvaluationResult) ([]byte, error)
}

// Config carries the transport policy knobs. Token and origins are explicit
// constructor parameters, never process-wide variables.
type Config struct {
	// Token is the bearer token required on evaluation routes.
	Token string

	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string
}

type Server struct {
	evaluator Evaluator
	store     *auditstore.Store
	cfg       Config
}

// NewServer wires the evaluation core behind the HTTP boundary. store may be
// nil when audit persistence is disabled.
func NewServer(evaluator Evaluator, store *auditstore.Store, cfg Config) http.Handler {
	s := &Server{evaluator: evaluator, store: store, cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/evaluate", s.requireAuth(http.HandlerFunc(s.handleEvaluate)))
	mux.Handle("/evaluations/", s.requireAuth(http.HandlerFunc(s.handleEvaluations)))
	return s.withCORS(mux)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeEvalError reports failed evaluations with the stage and code an upper
// layer needs to decide on retries.
func writeEvalError(w http.ResponseWriter, err error) {
	var ee *evaluation.Error
	if errors.As(err, &ee) {
		writeJSON(w, ee.Status, map[string]any{
			"error": map[string]any{
				"code":      ee.Code,
				"stage":     string(ee.Stage),
				"message":   ee.Message,
				"transient": ee.Transient,
			},
		})
		return
	}
	writeError(w, 500, err.Error())
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeError(w, 401, "missing bearer token")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if !hmac.Equal([]byte(token), []byte(s.cfg.Token)) {
			writeError(w, 403, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, 200, map[string]any{
		"message": "HART backend running. POST an intake form to /evaluate.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxIntakeBytes))
	if err != nil {
		writeError(w, 400, "invalid request body")
		return
	}
	var form evaluation.IntakeForm
	if err := json.Unmarshal(blob, &form); err != nil {
		writeError(w, 400, "invalid intake form: "+err.Error())
		return
	}

	result, err := s.evaluator.Evaluate(r.Context(), form)
	if err != nil {
		log.Printf("evaluate failed stage=%s code=%s err=%v",
			evaluation.StageFromError(err), evaluation.ErrorCode(err), err)
		writeEvalError(w, err)
		return
	}

	id := newEvaluationID()
	if s.store != nil {
		resultJSON, merr := json.Marshal(result)
		if merr != nil {
			log.Printf("marshal result for audit: %v", merr)
		} else if err := s.store.Save(auditstore.Record{
			ID:          id,
			PatientName: form.Name.Or(""),
			IntakeJSON:  string(blob),
			ResultJSON:  string(resultJSON),
			Report:      result.FormattedReport,
		}); err != nil {
			// The evaluation succeeded; a failed audit write is logged, not
			// surfaced to the patient-facing caller.
			log.Printf("audit save %s: %v", id, err)
		}
	}

	writeJSON(w, 200, map[string]any{
		"id":         id,
		"evaluation": result,
	})
}

func (s *Server) handleEvaluations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.store == nil {
		writeError(w, 404, "audit store disabled")
		return
	}

	path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/evaluations/"), "/")
	id, view := path, ""
	if i := strings.IndexByte(path, '/'); i >= 0 {
		id, view = path[:i], path[i+1:]
	}
	if id == "" {
		writeError(w, 400, "evaluation id is required")
		return
	}

	rec, err := s.store.Get(id)
	if err != nil {
		log.Printf("audit get %s: %v", id, err)
		writeError(w, 500, "failed to load evaluation")
		return
	}
	if rec == nil {
		writeError(w, 404, "evaluation not found")
		return
	}

	switch view {
	case "":
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		_, _ = w.Write([]byte(rec.ResultJSON))
	case "report":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte(rec.Report))
	case "pdf":
		s.servePDF(w, r, rec)
	default:
		writeError(w, 404, "unknown evaluation view")
	}
}

func (s *Server) servePDF(w http.ResponseWriter, r *http.Request, rec *auditstore.Record) {
	var result evaluation.EvaluationResult
	if err := json.Unmarshal([]byte(rec.ResultJSON), &result); err != nil {
		log.Printf("decode stored result %s: %v", rec.ID, err)
		writeError(w, 500, "stored evaluation is unreadable")
		return
	}
	doc, err := s.evaluator.RenderDocument(r.Context(), result)
	if err != nil {
		log.Printf("render pdf %s: %v", rec.ID, err)
		writeEvalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="evaluation-`+rec.ID+`.pdf"`)
	w.WriteHeader(200)
	_, _ = w.Write(doc)
}

func newEvaluationID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "EVAL-" + hex.EncodeToString(b)
}
