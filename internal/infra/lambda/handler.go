// Package lambda adapts the review handler to AWS Lambda function URLs.
package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/bryanwahyu/scriptguard/internal/response"
)

type Handler struct {
	inner  *response.Handler
	logger *slog.Logger
}

func NewHandler(inner *response.Handler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{inner: inner, logger: logger}
}

// Handle processes one function-URL invocation.
func (h *Handler) Handle(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	logger := h.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With("aws_request_id", lc.AwsRequestID)
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			logger.WarnContext(ctx, "undecodable base64 body", "error", err)
			return toResponse(response.BadRequest(response.DetailsMissingFields))
		}
		body = decoded
	}

	env := h.inner.Handle(ctx, body)
	logger.InfoContext(ctx, "lambda invocation",
		"status", env.Body.Status,
		"status_code", env.StatusCode,
	)
	return toResponse(env)
}

func toResponse(env response.Envelope) (events.LambdaFunctionURLResponse, error) {
	raw, err := json.Marshal(env.Body)
	if err != nil {
		return events.LambdaFunctionURLResponse{}, err
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: env.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(raw),
	}, nil
}
