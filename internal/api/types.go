package api

// CreateLabelBody is the POST /labels payload
type CreateLabelBody struct {
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Parent string `json:"parent,omitempty"`
}

// UpdateLabelBody is the PATCH /labels/{label} payload. Absent fields are
// left unchanged; "parent": "" detaches the label.
type UpdateLabelBody struct {
	Name   *string `json:"name,omitempty"`
	Color  *string `json:"color,omitempty"`
	Parent *string `json:"parent,omitempty"`
}

// AddChildrenBody is the POST /labels/{label}/children payload
type AddChildrenBody struct {
	Children []string `json:"children"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every non-2xx response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest = "invalid_request"
	CodeForbidden      = "forbidden"
	CodeNotFound       = "not_found"
	CodeNotAllowed     = "method_not_allowed"
	CodeInternal       = "internal"
)
