package models

// ErrorMessage is the body of an error envelope.
type ErrorMessage struct {
	Error   string       `json:"error"`
	Code    string       `json:"code,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type SuccessResponse struct {
	StatusCode int      `json:"status_code"`
	Message    string   `json:"message"`
	Data       *Account `json:"data"`
	Process    string   `json:"process"`
}

type ErrorResponse struct {
	StatusCode int          `json:"status_code"`
	Message    string       `json:"message"`
	Body       ErrorMessage `json:"body"`
	Process    string       `json:"process"`
}

// Envelope is the result handed to transport adapters. Exactly one of
// Success or Error is set.
type Envelope struct {
	Success *SuccessResponse
	Error   *ErrorResponse
}

func NewSuccessEnvelope(statusCode int, message, process string, account *Account) Envelope {
	return Envelope{Success: &SuccessResponse{
		StatusCode: statusCode,
		Message:    message,
		Data:       account,
		Process:    process,
	}}
}

func NewErrorEnvelope(statusCode int, message, process string, body ErrorMessage) Envelope {
	return Envelope{Error: &ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
		Process:    process,
	}}
}

func (e Envelope) IsSuccess() bool {
	return e.Success != nil
}

func (e Envelope) StatusCode() int {
	if e.Success != nil {
		return e.Success.StatusCode
	}
	if e.Error != nil {
		return e.Error.StatusCode
	}
	return 0
}

func (e Envelope) Process() string {
	if e.Success != nil {
		return e.Success.Process
	}
	if e.Error != nil {
		return e.Error.Process
	}
	return ""
}

// Payload returns the arm that should be serialised.
func (e Envelope) Payload() any {
	if e.Success != nil {
		return e.Success
	}
	return e.Error
}
