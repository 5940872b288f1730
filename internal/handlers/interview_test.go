package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kruthisver/AI-Interview-Coach/internal/models"
	"github.com/Kruthisver/AI-Interview-Coach/internal/services"
)

type stubInterviewService struct {
	questions    string
	questionsErr error
	outcome      models.EvaluationOutcome
	summary      models.SummaryResponse

	lastJobRole    string
	lastResume     string
	lastEvaluation models.EvaluationRequest
	lastSummary    models.SummaryRequest
	forced         bool
}

func (s *stubInterviewService) GenerateQuestions(ctx context.Context, jobRole, resumeText string) (string, error) {
	s.lastJobRole = jobRole
	s.lastResume = resumeText
	return s.questions, s.questionsErr
}

func (s *stubInterviewService) EvaluateAnswer(ctx context.Context, req models.EvaluationRequest) models.EvaluationOutcome {
	s.lastEvaluation = req
	return s.outcome
}

func (s *stubInterviewService) GenerateSummary(ctx context.Context, req models.SummaryRequest) models.SummaryResponse {
	s.lastSummary = req
	return s.summary
}

func (s *stubInterviewService) ForceEnd(ctx context.Context, req models.SummaryRequest) models.SummaryResponse {
	s.forced = true
	s.lastSummary = req
	return s.summary
}

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(data []byte, filename string) (string, error) {
	return s.text, s.err
}

func newTestHandler(svc *stubInterviewService, ext *stubExtractor) *InterviewHandler {
	return NewInterviewHandler(svc, ext, 1<<20, zap.NewNop())
}

func multipartRequest(t *testing.T, jobRole string, withResume bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if jobRole != "" {
		require.NoError(t, mw.WriteField("job_role", jobRole))
	}
	if withResume {
		fw, err := mw.CreateFormFile("resume", "resume.pdf")
		require.NoError(t, err)
		fw.Write([]byte("%PDF-1.4 fake"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/generate_questions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", "req-123")
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	return payload
}

func TestRoot(t *testing.T) {
	h := newTestHandler(&stubInterviewService{}, &stubExtractor{})
	rr := httptest.NewRecorder()

	h.Root(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, livenessMessage, decodeBody(t, rr)["message"])
}

func TestGenerateQuestions_Success(t *testing.T) {
	svc := &stubInterviewService{questions: "1. A\n2. B\n3. C\n4. D\n5. E"}
	h := newTestHandler(svc, &stubExtractor{text: "Jane Doe, Go engineer"})
	rr := httptest.NewRecorder()

	h.GenerateQuestions(rr, multipartRequest(t, "Backend Engineer", true))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, svc.questions, decodeBody(t, rr)["questions"])
	assert.Equal(t, "Backend Engineer", svc.lastJobRole)
	assert.Equal(t, "Jane Doe, Go engineer", svc.lastResume)
}

func TestGenerateQuestions_MissingFields(t *testing.T) {
	tests := []struct {
		name       string
		jobRole    string
		withResume bool
		field      string
	}{
		{"missing job role", "", true, "job_role"},
		{"missing resume", "SRE", false, "resume"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(&stubInterviewService{}, &stubExtractor{text: "x"})
			rr := httptest.NewRecorder()

			h.GenerateQuestions(rr, multipartRequest(t, tc.jobRole, tc.withResume))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var resp models.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
			assert.Contains(t, resp.Error.Fields, tc.field)
			assert.Equal(t, "req-123", resp.Error.RequestID)
		})
	}
}

func TestGenerateQuestions_NotMultipart(t *testing.T) {
	h := newTestHandler(&stubInterviewService{}, &stubExtractor{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate_questions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	h.GenerateQuestions(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGenerateQuestions_ExtractionFailure(t *testing.T) {
	svc := &stubInterviewService{}
	h := newTestHandler(svc, &stubExtractor{err: services.ErrNoExtractableText})
	rr := httptest.NewRecorder()

	h.GenerateQuestions(rr, multipartRequest(t, "SRE", true))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "EXTRACTION_ERROR", resp.Error.Code)
	assert.Empty(t, svc.lastJobRole, "service must not be called")
}

func TestGenerateQuestions_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no resume text", services.ErrNoResumeText, http.StatusBadRequest},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(&stubInterviewService{questionsErr: tc.err}, &stubExtractor{text: "resume"})
			rr := httptest.NewRecorder()

			h.GenerateQuestions(rr, multipartRequest(t, "SRE", true))

			assert.Equal(t, tc.status, rr.Code)
			assert.NotContains(t, rr.Body.String(), "disk on fire")
		})
	}
}

func TestEvaluateAnswer_EvaluationPayload(t *testing.T) {
	asked := 2
	svc := &stubInterviewService{outcome: models.EvaluationResult(models.EvaluationResponse{
		Evaluation:     "**Score:** 8/10",
		QuestionsAsked: &asked,
	})}
	h := newTestHandler(svc, &stubExtractor{})
	rr := httptest.NewRecorder()

	body := `{"question":"Why Go?","answer":"Simplicity.","history":[{"role":"assistant","content":"Why Go?"}]}`
	h.EvaluateAnswer(rr, httptest.NewRequest(http.MethodPost, "/evaluate_answer", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	payload := decodeBody(t, rr)
	assert.Equal(t, "**Score:** 8/10", payload["evaluation"])
	assert.Equal(t, false, payload["interview_ended"])
	assert.Equal(t, float64(2), payload["questions_asked"])
	assert.NotContains(t, payload, "summary")

	assert.Equal(t, "Simplicity.", svc.lastEvaluation.Answer)
	require.Len(t, svc.lastEvaluation.History, 1)
	assert.Equal(t, models.RoleAssistant, svc.lastEvaluation.History[0].Role)
}

func TestEvaluateAnswer_SummaryPayload(t *testing.T) {
	svc := &stubInterviewService{outcome: models.SummaryResult(models.SummaryResponse{
		Evaluation:     "Thanks for your time.",
		InterviewEnded: true,
		Summary:        "Thanks for your time.",
		TotalQuestions: 4,
		Message:        "Interview concluded successfully.",
	})}
	h := newTestHandler(svc, &stubExtractor{})
	rr := httptest.NewRecorder()

	h.EvaluateAnswer(rr, httptest.NewRequest(http.MethodPost, "/evaluate_answer", strings.NewReader(`{"question":"q","answer":"done"}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	payload := decodeBody(t, rr)
	assert.Equal(t, true, payload["interview_ended"])
	assert.Equal(t, "Thanks for your time.", payload["summary"])
	assert.Equal(t, float64(4), payload["total_questions"])
	assert.NotContains(t, payload, "questions_asked")
}

func TestEvaluateAnswer_InvalidBody(t *testing.T) {
	h := newTestHandler(&stubInterviewService{}, &stubExtractor{})
	rr := httptest.NewRecorder()

	h.EvaluateAnswer(rr, httptest.NewRequest(http.MethodPost, "/evaluate_answer", strings.NewReader(`{"question":`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSummaryEndpoints(t *testing.T) {
	summary := models.SummaryResponse{
		Evaluation:     "Bye.",
		InterviewEnded: true,
		Summary:        "Bye.",
		TotalQuestions: 3,
		Message:        "Interview concluded successfully.",
	}
	body := `{"job_role":"SRE","history":[{"role":"assistant","content":"Ready?"}]}`

	t.Run("generate_summary", func(t *testing.T) {
		svc := &stubInterviewService{summary: summary}
		h := newTestHandler(svc, &stubExtractor{})
		rr := httptest.NewRecorder()

		h.GenerateSummary(rr, httptest.NewRequest(http.MethodPost, "/generate_summary", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rr.Code)
		var got models.SummaryResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, summary, got)
		assert.Equal(t, "SRE", svc.lastSummary.JobRole)
		assert.False(t, svc.forced)
	})

	t.Run("force_end_interview", func(t *testing.T) {
		svc := &stubInterviewService{summary: summary}
		h := newTestHandler(svc, &stubExtractor{})
		rr := httptest.NewRecorder()

		h.ForceEnd(rr, httptest.NewRequest(http.MethodPost, "/force_end_interview", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, svc.forced)
		assert.Len(t, svc.lastSummary.History, 1)
	})

	t.Run("invalid body", func(t *testing.T) {
		h := newTestHandler(&stubInterviewService{}, &stubExtractor{})
		rr := httptest.NewRecorder()

		h.ForceEnd(rr, httptest.NewRequest(http.MethodPost, "/force_end_interview", strings.NewReader(`nope`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
