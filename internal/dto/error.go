package dto

// ErrorResponse is the body of every failed API call. Kind and LineIndex are
// set for ledger errors; LineIndex only when a single line is at fault.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	LineIndex *int   `json:"lineIndex,omitempty"`
}
