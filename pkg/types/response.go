// Package types defines the JSON envelopes the storefront API speaks.
// Success responses mirror the content service's data/meta shape so the
// frontend reads pagination the same way from both.
package types

type SuccessEnvelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// ListMeta accompanies paginated listings.
type ListMeta struct {
	Pagination Pagination `json:"pagination"`
}

// Pagination is a page window in content-service terms.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
