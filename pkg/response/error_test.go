package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkgErrors "github.com/vogiaan1904/branchqueue/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorWritesHTTPError(t *testing.T) {
	rec := httptest.NewRecorder()
	herr := pkgErrors.NewHTTPError("BRQ001", "Department not found", http.StatusNotFound)

	require.NoError(t, Error(rec, fmt.Errorf("wrapped: %w", herr)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body Resp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BRQ001", body.ErrorCode)
	assert.Equal(t, "Department not found", body.Message)
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, Error(rec, fmt.Errorf("db exploded")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "exploded")
}

func TestParseGRPCError(t *testing.T) {
	err := ParseGRPCError(pkgErrors.NewGRPCError("BRQ001", "Department not found", codes.NotFound))
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "BRQ001 - Department not found", st.Message())

	st, _ = status.FromError(ParseGRPCError(pkgErrors.NewGRPCError("BRQ002", "bad", codes.OK)))
	assert.Equal(t, codes.InvalidArgument, st.Code())

	st, _ = status.FromError(ParseGRPCError(fmt.Errorf("boom")))
	assert.Equal(t, codes.Internal, st.Code())
}
