// Package api provides transport-neutral request and outcome value types.
// The HTTP adapter extracts a Request from the wire; the pipeline returns
// an Outcome that the adapter writes back.
package api

import "github.com/artpar/billmock/domain/apierror"

// Credentials carries the Basic auth pair from the request, if present.
type Credentials struct {
	Username string
	Password string
	Present  bool
}

// Request is everything the pipeline needs from one inbound request.
type Request struct {
	Params   map[string]string // path parameters
	Query    map[string]string // query parameters
	Auth     Credentials
	ClientIP string
	TraceID  string
}

// Outcome is the terminal result of one pipeline pass: a 200 response
// body, or an error envelope. Never both.
type Outcome struct {
	Status int
	Body   any
	Error  *apierror.Response
}

// OK wraps a generated body in a successful outcome.
func OK(body any) Outcome {
	return Outcome{Status: 200, Body: body}
}

// Fail wraps an error envelope in a terminal outcome.
func Fail(e apierror.Response) Outcome {
	return Outcome{Status: e.Status, Error: &e}
}
