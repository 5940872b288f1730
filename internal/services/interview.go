package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Kruthisver/AI-Interview-Coach/internal/interview"
	"github.com/Kruthisver/AI-Interview-Coach/internal/logger"
	"github.com/Kruthisver/AI-Interview-Coach/internal/models"
)

var ErrNoResumeText = errors.New("could not extract text from the resume")

// InterviewService drives a mock interview. It keeps no state between calls:
// every response is a function of the request body (and the model's reply),
// with turn counts and context re-derived from the transcript the client
// sends each time. Do not add per-interview fields here.
type InterviewService struct {
	llm      Generator
	settings interview.Settings
	log      *zap.Logger
}

func NewInterviewService(llm Generator, settings interview.Settings, log *zap.Logger) *InterviewService {
	return &InterviewService{
		llm:      llm,
		settings: settings,
		log:      log,
	}
}

// GenerateQuestions returns exactly QuestionCount numbered questions tailored
// to the resume. When the model yields fewer usable items the fixed
// role-aware set is returned instead.
func (s *InterviewService) GenerateQuestions(ctx context.Context, jobRole, resumeText string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", ErrNoResumeText
	}

	count := s.settings.QuestionCount
	excerpt := interview.Excerpt(resumeText, s.settings.ResumeExcerptChars)
	prompt := buildQuestionsPrompt(jobRole, excerpt, count)

	raw := s.llm.Generate(ctx, s.settings.ModelID, prompt, s.settings.Timeout)
	questions := interview.ParseQuestions(raw)

	if len(questions) < count {
		s.log.Info("using fallback questions",
			zap.String("job_role", jobRole),
			zap.Int("parsed", len(questions)),
			zap.Bool("model_empty", raw == ""),
		)
		questions = s.settings.FallbackQuestions(jobRole)
	}

	if len(questions) > count {
		questions = questions[:count]
	}
	return interview.NumberQuestions(questions), nil
}

// EvaluateAnswer scores an answer and proposes the next question. If the
// answer reads as a request to stop, the interview is summarized instead.
func (s *InterviewService) EvaluateAnswer(ctx context.Context, req models.EvaluationRequest) (out models.EvaluationOutcome) {
	if interview.IsEndIntent(req.Answer) {
		history := make([]models.Message, 0, len(req.History)+1)
		history = append(history, req.History...)
		history = append(history, models.Message{Role: models.RoleUser, Content: req.Answer})

		s.log.Info("end of interview requested by candidate")
		return models.SummaryResult(s.GenerateSummary(ctx, models.SummaryRequest{
			History: history,
			JobRole: s.settings.DefaultJobRole,
		}))
	}

	fb := s.settings.Fallbacks
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("evaluation failed", zap.Any("panic", r))
			out = models.EvaluationResult(models.EvaluationResponse{
				Evaluation: interview.FormatEvaluation(models.ParsedEvaluation{
					Score:        fb.Score,
					Feedback:     fb.FailureFeedback,
					NextQuestion: fb.FailureNextQuestion,
				}, fb),
			})
		}
	}()

	questionsAsked := interview.CountQuestions(req.History)

	raw := s.llm.Generate(ctx, s.settings.ModelID, buildEvaluationPrompt(req.Question, req.Answer), s.settings.Timeout)

	var parsed models.ParsedEvaluation
	if raw == "" {
		s.log.Warn("model unavailable, using fallback evaluation")
		parsed = models.ParsedEvaluation{
			Score:        fb.Score,
			Feedback:     fb.UnavailableFeedback,
			NextQuestion: fb.UnavailableNextQuestion,
		}
	} else {
		parsed = interview.ParseEvaluation(raw, fb)
		s.log.Debug("parsed evaluation",
			zap.String("score", parsed.Score),
			zap.String("raw", logger.TruncateForLog(raw, 300)),
		)
	}

	return models.EvaluationResult(models.EvaluationResponse{
		Evaluation:     interview.FormatEvaluation(parsed, fb),
		InterviewEnded: false,
		QuestionsAsked: &questionsAsked,
	})
}

// GenerateSummary writes the closing message that concludes the interview.
func (s *InterviewService) GenerateSummary(ctx context.Context, req models.SummaryRequest) (out models.SummaryResponse) {
	fb := s.settings.Fallbacks
	questionsAsked := interview.CountQuestions(req.History)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("summary failed", zap.Any("panic", r))
			out = models.SummaryResponse{
				Evaluation:     fb.FailureClosing,
				InterviewEnded: true,
				Summary:        fb.FailureSummary,
				TotalQuestions: questionsAsked,
				Message:        fb.ConcludedMessage,
			}
		}
	}()

	jobRole := strings.TrimSpace(req.JobRole)
	if jobRole == "" {
		jobRole = s.settings.DefaultJobRole
	}

	conversation := interview.RecentContext(req.History, s.settings.ContextMessages, s.settings.ContextMessageChars)
	prompt := buildSummaryPrompt(jobRole, questionsAsked, conversation)

	summary := s.llm.Generate(ctx, s.settings.ModelID, prompt, s.settings.Timeout)
	if summary == "" {
		s.log.Warn("model unavailable, using fallback summary")
		summary = fb.Summary
	}
	summary = interview.CollapseNewlines(summary)

	s.log.Info("interview concluded",
		zap.String("job_role", jobRole),
		zap.Int("total_questions", questionsAsked),
	)

	return models.SummaryResponse{
		Evaluation:     summary,
		InterviewEnded: true,
		Summary:        summary,
		TotalQuestions: questionsAsked,
		Message:        fb.ConcludedMessage,
	}
}

// ForceEnd concludes the interview on the client's request.
func (s *InterviewService) ForceEnd(ctx context.Context, req models.SummaryRequest) models.SummaryResponse {
	return s.GenerateSummary(ctx, req)
}
