package response

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgErrors "github.com/vogiaan1904/branchqueue/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Resp struct {
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

func parseHttpError(err error) (int, Resp) {
	var parsedErr *pkgErrors.HTTPError
	if errors.As(err, &parsedErr) {
		statusCode := parsedErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}

		return statusCode, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Message,
		}
	}

	return http.StatusInternalServerError, Resp{
		ErrorCode: "BRQ500",
		Message:   "Internal server error",
	}
}

// JSON writes data wrapped in a success envelope.
func JSON(w http.ResponseWriter, statusCode int, data any) error {
	return write(w, statusCode, Resp{Message: "success", Data: data})
}

// Error writes err as an error envelope. Errors that are not HTTPErrors
// are reported as internal errors without leaking their text.
func Error(w http.ResponseWriter, err error) error {
	statusCode, body := parseHttpError(err)
	return write(w, statusCode, body)
}

func write(w http.ResponseWriter, statusCode int, body Resp) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(body)
}

func ParseGRPCError(err error) error {
	var parsedErr *pkgErrors.GRPCError
	if errors.As(err, &parsedErr) {
		grpcCode := parsedErr.GrpcCode
		if grpcCode == codes.OK {
			grpcCode = codes.InvalidArgument
		}
		return status.Error(grpcCode, parsedErr.Error())
	}

	return status.Error(codes.Internal, "Internal server error")
}
