package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Kruthisver/AI-Interview-Coach/internal/models"
	"github.com/Kruthisver/AI-Interview-Coach/internal/services"
)

const livenessMessage = "AI Interview Coach Backend is running 🚀"

type interviewService interface {
	GenerateQuestions(ctx context.Context, jobRole, resumeText string) (string, error)
	EvaluateAnswer(ctx context.Context, req models.EvaluationRequest) models.EvaluationOutcome
	GenerateSummary(ctx context.Context, req models.SummaryRequest) models.SummaryResponse
	ForceEnd(ctx context.Context, req models.SummaryRequest) models.SummaryResponse
}

type resumeExtractor interface {
	ExtractText(data []byte, filename string) (string, error)
}

type InterviewHandler struct {
	interview      interviewService
	extractor      resumeExtractor
	maxUploadBytes int64
	log            *zap.Logger
}

func NewInterviewHandler(interview interviewService, extractor resumeExtractor, maxUploadBytes int64, log *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		interview:      interview,
		extractor:      extractor,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (h *InterviewHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": livenessMessage})
}

// GenerateQuestions handles a multipart upload with job_role and resume.
func (h *InterviewHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "Resume exceeds the upload size limit", r))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Expected a multipart form with job_role and resume", r))
		return
	}

	fields := map[string]string{}
	jobRole := strings.TrimSpace(r.FormValue("job_role"))
	if jobRole == "" {
		fields["job_role"] = "required"
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		fields["resume"] = "required"
	}
	if len(fields) > 0 {
		if file != nil {
			file.Close()
		}
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("failed to read resume upload", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Error generating questions", r))
		return
	}

	resumeText, err := h.extractor.ExtractText(data, header.Filename)
	if err != nil {
		h.log.Info("resume extraction failed", zap.String("filename", header.Filename), zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResp("EXTRACTION_ERROR", "Could not extract text from the resume.", r))
		return
	}

	questions, err := h.interview.GenerateQuestions(r.Context(), jobRole, resumeText)
	if err != nil {
		if errors.Is(err, services.ErrNoResumeText) {
			writeJSON(w, http.StatusBadRequest, errorResp("EXTRACTION_ERROR", "Could not extract text from the resume.", r))
			return
		}
		h.log.Error("question generation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Error generating questions", r))
		return
	}

	writeJSON(w, http.StatusOK, models.QuestionsResponse{Questions: questions})
}

func (h *InterviewHandler) EvaluateAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	writeJSON(w, http.StatusOK, h.interview.EvaluateAnswer(r.Context(), req))
}

func (h *InterviewHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSummaryRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.interview.GenerateSummary(r.Context(), req))
}

func (h *InterviewHandler) ForceEnd(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSummaryRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.interview.ForceEnd(r.Context(), req))
}

func decodeSummaryRequest(w http.ResponseWriter, r *http.Request) (models.SummaryRequest, bool) {
	var req models.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return req, false
	}
	return req, true
}
