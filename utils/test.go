package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRequest represents a test HTTP request. Form, when set, is posted
// urlencoded instead of the JSON Body.
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Form    url.Values
	Token   string
	Headers map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
	Body       map[string]interface{}
}

// Data returns the "data" object of a standard response
func (r TestResponse) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// MakeTestRequest makes a test HTTP request
func MakeTestRequest(t *testing.T, router *gin.Engine, req TestRequest) TestResponse {
	t.Helper()

	var body io.Reader = http.NoBody
	contentType := "application/json"
	switch {
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Body != nil:
		raw, err := json.Marshal(req.Body)
		require.NoError(t, err, "failed to marshal request body")
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, body)
	require.NoError(t, err, "failed to create request")
	httpReq.Header.Set("Content-Type", contentType)
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	resp := TestResponse{
		StatusCode: w.Code,
		Header:     w.Header(),
		Raw:        w.Body.Bytes(),
	}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp.Body), "failed to unmarshal response body")
	}
	return resp
}

// AssertResponse asserts the status and, when given, the message
func AssertResponse(t *testing.T, response TestResponse, expectedStatusCode int, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedStatusCode, response.StatusCode, string(response.Raw))
	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, response.Body["message"])
	}
}

// GetTestToken signs a one hour token for account in role
func GetTestToken(t *testing.T, secret, issuer, account, role string) string {
	t.Helper()
	token, err := GenerateToken(secret, issuer, account, role, time.Hour)
	require.NoError(t, err, "failed to generate test token")
	return token
}
