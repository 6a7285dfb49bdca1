package handler

import "net/http"

func errorResponse(w http.ResponseWriter, status int, message any) {
	env := envelope{"error": message}

	// fall back to an empty 500 if the envelope cannot be encoded
	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(500)
	}
}

// failedValidationResponse returns 422 UnprocessableEntity status.
// The request was well-formed but its parameters are out of range.
func failedValidationResponse(w http.ResponseWriter, errors map[string]string) {
	errorResponse(w, http.StatusUnprocessableEntity, errors)
}

// internalErrorResponse returns 500 InternalServerError status
func internalErrorResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusInternalServerError, message)
}

// upstreamErrorResponse answers with the status GetCode picks for err.
// Upstream details stay in the logs.
func upstreamErrorResponse(w http.ResponseWriter, err error) {
	code := GetCode(err)
	switch code {
	case http.StatusBadGateway:
		errorResponse(w, code, "failed to fetch data from an upstream service")
	case http.StatusGatewayTimeout:
		errorResponse(w, code, "upstream service timed out")
	case http.StatusInternalServerError:
		internalErrorResponse(w, "the server encountered a problem and could not process your request")
	default:
		errorResponse(w, code, err.Error())
	}
}
