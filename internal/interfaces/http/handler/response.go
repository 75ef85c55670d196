package handler

import "github.com/b3erp/backend/internal/interfaces/http/dto"

// Envelope documents the success body written by Success and Paginated.
// Meta is present on list endpoints only.
type Envelope[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    T         `json:"data"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorEnvelope documents the body written by Error and HandleError
type ErrorEnvelope struct {
	Success bool          `json:"success" example:"false"`
	Error   dto.ErrorInfo `json:"error"`
}
