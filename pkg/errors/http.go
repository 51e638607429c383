package errors

type HTTPError struct {
	Code       string
	Message    string
	StatusCode int
}

func NewHTTPError(code string, message string, statusCode int) *HTTPError {
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e HTTPError) Error() string {
	return e.Message
}
