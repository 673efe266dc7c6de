package types

// SuccessEnvelope wraps successful API payloads.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error payload.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps error API payloads.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
