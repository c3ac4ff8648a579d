package fotolia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// Response is a decoded API payload.
type Response struct {
	// Raw is the body exactly as received.
	Raw json.RawMessage
	// Value is Raw decoded with numbers kept as json.Number; nil for an
	// empty body or one that is not JSON.
	Value any
}

// Object returns the payload as a JSON object, or nil if it is not one.
func (r *Response) Object() map[string]any {
	if r == nil {
		return nil
	}
	obj, _ := r.Value.(map[string]any)
	return obj
}

// Decode unmarshals the raw payload into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Raw) == 0 {
		return fmt.Errorf("empty response")
	}
	return json.Unmarshal(r.Raw, v)
}

// String returns the object field key rendered as a string.
func (r *Response) String(key string) string {
	v, ok := r.Object()[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// embeddedError returns the error envelope carried by a decoded body, if any.
// A null "error" field does not count.
func embeddedError(v any, status int) *APIError {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	msg, ok := obj["error"]
	if !ok || msg == nil {
		return nil
	}
	text, ok := msg.(string)
	if !ok {
		text = fmt.Sprint(msg)
	}
	return &APIError{Message: text, Code: parseCode(obj["code"]), Status: status}
}

// parseCode converts the envelope's code field to an int. Numbers are
// truncated, strings contribute their leading integer, anything else is 0.
func parseCode(v any) int {
	switch c := v.(type) {
	case json.Number:
		if n, err := c.Int64(); err == nil {
			return int(n)
		}
		if f, err := c.Float64(); err == nil {
			return int(f)
		}
		return leadingInt(c.String())
	case float64:
		return int(c)
	case string:
		return leadingInt(c)
	case bool:
		if c {
			return 1
		}
	}
	return 0
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// classifyCall applies the API-call policy: an error envelope takes
// precedence over the status code, then any status other than 200 fails.
// A 200 body that is not JSON succeeds with a nil Value.
func classifyCall(raw *rawResponse) (*Response, error) {
	var value any
	var decodeErr error
	if len(bytes.TrimSpace(raw.Body)) > 0 {
		value, decodeErr = decodeJSON(raw.Body)
	}

	if decodeErr == nil {
		if apiErr := embeddedError(value, raw.StatusCode); apiErr != nil {
			return nil, apiErr
		}
	}

	if raw.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{StatusCode: raw.StatusCode}
	}

	if decodeErr != nil {
		value = nil
	}
	return &Response{Raw: json.RawMessage(raw.Body), Value: value}, nil
}

// classifyDownload applies the download policy to a body that has already
// been streamed to the sink. head holds the buffered start of a JSON body.
func classifyDownload(status int, contentType string, head []byte) error {
	if strings.TrimSpace(contentType) == "" {
		return &TransportError{Reason: "no content type returned"}
	}

	if isJSON(contentType) {
		if value, err := decodeJSON(head); err == nil {
			if apiErr := embeddedError(value, status); apiErr != nil {
				return apiErr
			}
		}
	}

	if status != http.StatusOK {
		return &HTTPStatusError{StatusCode: status}
	}
	return nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(contentType, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	}
	return mediaType == "application/json"
}
