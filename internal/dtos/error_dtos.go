package dtos

// ValidationErrorDetail is one field-level failure from request
// validation, returned as a list so clients can annotate forms.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}
