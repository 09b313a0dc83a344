package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxPeekBytes caps how much of a request body the rate limiter will buffer
// while peeking at JSON fields.
const maxPeekBytes = 1 << 16

// peekJSONBody reads the request body and extracts its top-level string
// fields. The caller must restore the body afterwards with restoreBody.
func peekJSONBody(r *http.Request) ([]byte, map[string]string, error) {
	if r.Body == nil {
		return nil, nil, errors.New("httpx: no request body")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	_ = r.Body.Close()
	if err != nil {
		return body, nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return body, nil, err
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	return body, fields, nil
}

// restoreBody puts previously read bytes back so downstream handlers can
// decode the body as usual.
func restoreBody(r *http.Request, body []byte) {
	r.Body = io.NopCloser(bytes.NewReader(body))
}
