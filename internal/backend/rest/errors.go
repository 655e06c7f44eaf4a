package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// MsgNoResponse is the message of an APIError for a request that never got
// an answer.
const MsgNoResponse = "No response, Please check server connection"

// APIError is a failed backend call. Message is suitable for showing to the
// user as is.
type APIError struct {
	Status  int // 0 when the server did not answer
	Message string
	URL     string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NoResponse reports whether the request failed before a response arrived.
func (e *APIError) NoResponse() bool {
	return e.Status == 0
}

func noResponseError(url string, err error) *APIError {
	return &APIError{Message: MsgNoResponse, URL: url, Err: err}
}

func responseError(resp *resty.Response) *APIError {
	url := requestPath(resp)
	e := &APIError{Status: resp.StatusCode(), URL: url}
	if e.Status == http.StatusNotFound {
		e.Message = fmt.Sprintf("API Not Found (%s)", url)
		return e
	}
	e.Message = errorMessage(resp.Body())
	return e
}

// errorMessage extracts a human readable message from an error body: a
// plain text body is used verbatim, a JSON object contributes its
// "message" field, anything else becomes "Error".
func errorMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "Error"
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return text
	}

	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case map[string]any:
		if msg, ok := t["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return "Error"
}

// requestPath returns the path of the request relative to the base URL.
func requestPath(resp *resty.Response) string {
	if raw := resp.Request.RawRequest; raw != nil && raw.URL != nil {
		return strings.TrimPrefix(raw.URL.Path, "/")
	}
	return resp.Request.URL
}
