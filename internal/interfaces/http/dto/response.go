package dto

// DefaultPageSize applies when a list request names no page size
const DefaultPageSize = 20

// Response is the JSON envelope of every API reply. Exactly one of Data
// and Error is set; Meta accompanies paged lists.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta describes the page a list reply holds
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta clamps page to 1 and pageSize to DefaultPageSize when unset
func NewMeta(total int64, page, pageSize int) *Meta {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	size := int64(pageSize)
	return &Meta{Total: total, Page: page, PageSize: pageSize, TotalPages: int((total + size - 1) / size)}
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func Paged(data any, total int64, page, pageSize int) Response {
	return Response{Success: true, Data: data, Meta: NewMeta(total, page, pageSize)}
}

// Fail builds an error reply. code is normalised to its ERR_ form.
func Fail(code, message, requestID string) Response {
	return Response{Error: &ErrorInfo{Code: NormalizeErrorCode(code), Message: message, RequestID: requestID}}
}

// Invalid builds an ERR_VALIDATION reply with per-field details
func Invalid(message, requestID string, details []ValidationDetail) Response {
	resp := Fail(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// IDRequest binds a UUID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
