package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Kruthisver/AI-Interview-Coach/internal/handlers"
	"github.com/Kruthisver/AI-Interview-Coach/internal/middleware"
)

// New wires the interview endpoints. limiter may be nil to disable rate
// limiting. trustProxy honors X-Forwarded-For / X-Real-IP and must only be set
// behind a proxy that overwrites those headers.
func New(interviewHandler *handlers.InterviewHandler, limiter *middleware.RateLimiter, trustProxy bool, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	if trustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/", interviewHandler.Root)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Model-backed routes
	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Post("/generate_questions", interviewHandler.GenerateQuestions)
		r.Post("/evaluate_answer", interviewHandler.EvaluateAnswer)
		r.Post("/generate_summary", interviewHandler.GenerateSummary)
		r.Post("/force_end_interview", interviewHandler.ForceEnd)
	})

	return r
}
