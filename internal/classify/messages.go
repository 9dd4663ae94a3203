package classify

import "net/http"

// User-facing message texts. These are the only failure strings the chat
// surface may show; raw error text from the runtime never reaches the user.
const (
	msgNetworkFailure = "Unable to reach the service. Please check your connection and try again."

	msgEmptyResponse = "The service returned an empty response. Please try again."

	msgBackendBusy = "The service is having trouble processing requests right now. Please try again in a few moments."

	msgParseFailure = "Received an invalid response from the service. Please try again."

	msgUnexpectedFormat = "Received an unexpected response format from the server."

	msgProcessingError = "There was a problem processing your request. Please try again."

	msgHTTPFailure = "The service returned an unexpected error. Please try again."

	msgNoDocuments = "No matching documents were found. Try:\n" +
		"1. Rephrasing your question\n" +
		"2. Using more general search terms\n" +
		"3. Checking the document name for typos"

	msgContextLength = "Your question needs more context than can be processed at once. Try:\n" +
		"1. Asking a more specific question\n" +
		"2. Breaking the question into smaller parts\n" +
		"3. Limiting the question to fewer documents"
)

// statusMessages overrides the payload's own error text for well-known
// upstream failure statuses.
var statusMessages = map[int]string{
	http.StatusBadRequest:         "Invalid request. Please check your question and try again.",
	http.StatusBadGateway:         "Service is temporarily unavailable. Please try again later.",
	http.StatusServiceUnavailable: "Service is temporarily unavailable. Please try again in a few moments.",
	http.StatusGatewayTimeout:     "Request timed out. Please try again.",
}

// backendFailureSentinel is a literal substring some backend versions emit
// when an upstream call fails mid-pipeline. Matching on it is a known-fragile
// heuristic tied to that backend's error format; a body containing it is
// treated as recoverable regardless of HTTP status.
const backendFailureSentinel = "Backend call failure"
