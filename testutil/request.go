// Package testutil provides helpers shared by integration-style tests:
// a fluent HTTP request builder and fixtures for the database and cache.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"
)

// RequestBuilder fluent HTTP request construction for router tests
type RequestBuilder struct {
	method  string
	path    string
	body    interface{}
	headers map[string]string
	query   url.Values
}

// NewRequest creates a request builder
func NewRequest(method, path string) *RequestBuilder {
	return &RequestBuilder{
		method:  method,
		path:    path,
		headers: make(map[string]string),
		query:   url.Values{},
	}
}

// WithJSON sets the JSON body
func (rb *RequestBuilder) WithJSON(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithHeader sets a header
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithQuery adds a query parameter
func (rb *RequestBuilder) WithQuery(key, value string) *RequestBuilder {
	rb.query.Add(key, value)
	return rb
}

// WithToken sets the bearer token
func (rb *RequestBuilder) WithToken(token string) *RequestBuilder {
	return rb.WithHeader("Authorization", "Bearer "+token)
}

// WithTraceID sets the trace id header
func (rb *RequestBuilder) WithTraceID(traceID string) *RequestBuilder {
	return rb.WithHeader("X-Trace-ID", traceID)
}

// Do executes the request against the engine
func (rb *RequestBuilder) Do(engine *gin.Engine) *ResponseHelper {
	target := rb.path
	if len(rb.query) > 0 {
		target += "?" + rb.query.Encode()
	}

	var bodyReader *bytes.Reader
	if rb.body != nil {
		bodyBytes, _ := json.Marshal(rb.body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(rb.method, target, bodyReader)
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}
	if rb.body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return &ResponseHelper{Recorder: w}
}

// ResponseHelper response inspection
type ResponseHelper struct {
	Recorder *httptest.ResponseRecorder
}

// Status returns the status code
func (rh *ResponseHelper) Status() int {
	return rh.Recorder.Code
}

// Body returns the raw body
func (rh *ResponseHelper) Body() string {
	return rh.Recorder.Body.String()
}

// JSON unmarshals the body
func (rh *ResponseHelper) JSON(v interface{}) error {
	return json.Unmarshal(rh.Recorder.Body.Bytes(), v)
}

// DataJSON unmarshals the "data" field of the standard response envelope
func (rh *ResponseHelper) DataJSON(v interface{}) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rh.Recorder.Body.Bytes(), &env); err != nil {
		return err
	}
	return json.Unmarshal(env.Data, v)
}

// Header returns a response header
func (rh *ResponseHelper) Header(key string) string {
	return rh.Recorder.Header().Get(key)
}

// CacheStatus returns the X-Cache header value
func (rh *ResponseHelper) CacheStatus() string {
	return rh.Header("X-Cache")
}

// GET convenience constructor
func GET(path string) *RequestBuilder {
	return NewRequest("GET", path)
}

// POST convenience constructor
func POST(path string) *RequestBuilder {
	return NewRequest("POST", path)
}

// PUT convenience constructor
func PUT(path string) *RequestBuilder {
	return NewRequest("PUT", path)
}

// DELETE convenience constructor
func DELETE(path string) *RequestBuilder {
	return NewRequest("DELETE", path)
}
