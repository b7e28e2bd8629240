package response

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/bryanwahyu/scriptguard/internal/application/review"
	"github.com/bryanwahyu/scriptguard/internal/domain/ai"
	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
	"github.com/bryanwahyu/scriptguard/internal/middleware"
)

// Submitter runs a full analysis for one request.
type Submitter interface {
	Submit(ctx context.Context, cmd review.SubmitCommand) (domain.Analysis, error)
}

// Request is the JSON body clients send.
type Request struct {
	Content     string `json:"content"`
	CreatorName string `json:"creator_name"`
	BriefType   string `json:"brief_type,omitempty"`
}

// Handler maps raw request bodies to envelopes.
type Handler struct {
	svc     Submitter
	logger  *slog.Logger
	metrics *middleware.Metrics
}

func NewHandler(svc Submitter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger, metrics: middleware.Global()}
}

// Handle decodes body, validates it and runs the analysis. It never returns
// an error: every failure is expressed as an envelope.
func (h *Handler) Handle(ctx context.Context, body []byte) Envelope {
	var req Request
	if err := json.Unmarshal(bytes.TrimSpace(body), &req); err != nil {
		h.metrics.BadRequests.Add(1)
		h.logger.DebugContext(ctx, "undecodable request body", "error", err)
		return BadRequest(DetailsMissingFields)
	}
	return h.Analyze(ctx, req)
}

// Analyze validates an already decoded request and runs the analysis.
func (h *Handler) Analyze(ctx context.Context, req Request) Envelope {
	in, err := middleware.ValidateSubmission(middleware.SubmissionInput{
		Content:     req.Content,
		CreatorName: req.CreatorName,
		BriefType:   req.BriefType,
	})
	if err != nil {
		h.metrics.BadRequests.Add(1)
		if errors.Is(err, middleware.ErrMissingField) {
			return BadRequest(DetailsMissingFields)
		}
		return BadRequest(err.Error())
	}

	analysis, err := h.svc.Submit(ctx, review.SubmitCommand{
		Content:     in.Content,
		CreatorName: in.CreatorName,
		BriefType:   in.BriefType,
	})
	if err != nil {
		quota := errors.Is(err, ai.ErrQuotaExceeded)
		h.metrics.RecordFailure(quota)
		h.logger.ErrorContext(ctx, "analysis failed",
			"creator", in.CreatorName,
			"quota_exceeded", quota,
			"error", err,
		)
		return Error(err.Error())
	}

	h.metrics.CategoryErrors.Add(uint64(countCategoryErrors(analysis.Details)))
	if analysis.Status == domain.StatusRejected {
		h.metrics.RecordVerdict(false)
		return Rejection(analysis.Details)
	}
	h.metrics.RecordVerdict(true)
	return Success(analysis.Details)
}

func countCategoryErrors(r domain.Report) int {
	n := 0
	for _, c := range domain.Categories() {
		for _, res := range r.Results(c) {
			if res.Criteria == domain.CriteriaError {
				n++
			}
		}
	}
	return n
}
