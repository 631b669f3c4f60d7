package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API's response wrapper so tests can assert on the
// wire shape without reaching into raw maps.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *EnvelopeError  `json:"error"`
	Meta    *EnvelopeMeta   `json:"meta"`
}

// EnvelopeError is the error half of the response wrapper.
type EnvelopeError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Details   []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

// EnvelopeMeta carries pagination counters on list responses.
type EnvelopeMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// PerformJSON sends a JSON request through the handler and returns the
// recorder. An empty token skips the Authorization header.
func PerformJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeEnvelope parses a recorded response body into an Envelope.
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env),
		"response is not a valid envelope: %s", w.Body.String())
	return env
}

// RequireSuccess asserts status and the success flag, returning the
// envelope for further data assertions.
func RequireSuccess(t *testing.T, w *httptest.ResponseRecorder, wantStatus int) Envelope {
	t.Helper()

	require.Equal(t, wantStatus, w.Code, "unexpected status: %s", w.Body.String())
	env := DecodeEnvelope(t, w)
	require.True(t, env.Success, "expected a success envelope: %s", w.Body.String())
	require.Nil(t, env.Error)
	return env
}

// RequireErrorCode asserts status plus the envelope's error code.
func RequireErrorCode(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantCode string) Envelope {
	t.Helper()

	assert.Equal(t, wantStatus, w.Code, "unexpected status: %s", w.Body.String())
	env := DecodeEnvelope(t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error, "expected an error envelope: %s", w.Body.String())
	assert.Equal(t, wantCode, env.Error.Code)
	return env
}

// DataAs decodes the envelope's data payload into T.
func DataAs[T any](t *testing.T, env Envelope) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), "failed to decode envelope data")
	return out
}
