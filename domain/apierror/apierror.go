// Package apierror defines the error envelope every failed request
// returns: an HTTP status, a code name, and a human-readable message.
// Nothing else crosses the boundary, regardless of the internal failure.
package apierror

// Response is the wire form of a failed request (value type).
type Response struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error code names, mirrored by the HTTP status line.
const (
	CodeBadRequest      = "BadRequest"
	CodeUnauthorized    = "UnauthorizedError"
	CodeForbidden       = "ForbiddenError"
	CodeNotFound        = "NotFoundError"
	CodeUnprocessable   = "UnprocessableEntityError"
	CodeTooManyRequests = "TooManyRequestsError"
	CodeInternal        = "InternalServerError"
)

// The full failure catalog. Message texts are part of the API contract.
var (
	ErrCredentialsFailed = Response{Status: 401, Code: CodeUnauthorized, Message: "Credentials failed"}

	ErrRestrictedAccess = Response{Status: 403, Code: CodeForbidden, Message: "Restricted access"}

	ErrContractNotFound     = Response{Status: 404, Code: CodeNotFound, Message: "ContractId not found for user"}
	ErrInvoiceNotFound      = Response{Status: 404, Code: CodeNotFound, Message: "Invoice with the ID not found"}
	ErrInvoiceWrongContract = Response{Status: 404, Code: CodeNotFound, Message: "Invoice with the ID doesn't belong to the contract"}
	ErrEndpointNotFound     = Response{Status: 404, Code: CodeNotFound, Message: "Endpoint not found"}

	ErrPeriodInvalid = Response{Status: 422, Code: CodeUnprocessable, Message: "Period invalid"}
	ErrDateInvalid   = Response{Status: 422, Code: CodeUnprocessable, Message: "Date format invalid. Expected YYYY-MM-DD"}

	ErrRateLimited = Response{Status: 429, Code: CodeTooManyRequests, Message: "Rate limit exceeded. Maximum 2 requests per second."}

	ErrInvalidContractFormat = Response{Status: 400, Code: CodeBadRequest, Message: "Invalid contract ID format"}

	ErrUnexpected = Response{Status: 500, Code: CodeInternal, Message: "Unexpected error"}
)
