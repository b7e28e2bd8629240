// Package response turns analysis outcomes into the client-facing envelope
// shared by the HTTP API and the Lambda handler.
package response

import "net/http"

// Envelope statuses.
const (
	StatusBadRequest = "BAD REQUEST"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
	StatusError      = "ERROR"
)

const (
	MessageBadRequest = "Script cannot be processed due to a client-side error."
	MessageApproved   = "Script passed all checks and is approved for use."
	MessageRejected   = "Script failed one or more checks."
	MessageError      = "An internal error occurred while processing the script."

	// DetailsMissingFields is the bad-request detail for an incomplete body.
	DetailsMissingFields = "The request body must include 'content' and 'creator name'."
)

// Envelope is the complete response. StatusCode doubles as the HTTP status.
type Envelope struct {
	StatusCode int  `json:"statusCode"`
	Body       Body `json:"body"`
}

// Body carries the verdict. Details is the category report for APPROVED and
// REJECTED, and a message string otherwise.
type Body struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func BadRequest(details any) Envelope {
	return Envelope{StatusCode: http.StatusBadRequest, Body: Body{StatusBadRequest, MessageBadRequest, details}}
}

func Success(details any) Envelope {
	return Envelope{StatusCode: http.StatusOK, Body: Body{StatusApproved, MessageApproved, details}}
}

func Rejection(details any) Envelope {
	return Envelope{StatusCode: http.StatusOK, Body: Body{StatusRejected, MessageRejected, details}}
}

func Error(details any) Envelope {
	return Envelope{StatusCode: http.StatusInternalServerError, Body: Body{StatusError, MessageError, details}}
}
