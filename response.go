package routype

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// HTTPError is returned when the exchange completes but the server
// replies with a status outside the 2xx range.
//
// Body holds the best-effort decoded error payload: the parsed JSON
// value if the body was valid JSON, the raw text otherwise, or nil for
// an empty body.
type HTTPError struct {
	Status int
	Body   interface{}
}

func (e *HTTPError) Error() string {
	if e.Body == nil {
		return fmt.Sprintf("API returned HTTP status %d", e.Status)
	}
	return fmt.Sprintf("API returned HTTP status %d: %v", e.Status, e.Body)
}

// HttpCode returns the HTTP status of the failed exchange.
func (e *HTTPError) HttpCode() int {
	return e.Status
}

// isJSONContentType reports whether a Content-Type denotes JSON:
// application/json or any media type ending in +json.
func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// decodeSuccess interprets a 2xx response into out.
//
// 204 decodes to nothing. A JSON Content-Type decodes the body into
// out; success bodies are trusted to match their declared Content-Type,
// so a decode failure propagates. A non-JSON Content-Type yields the
// raw text, which requires out to be a *string, *[]byte or
// *interface{}. A missing Content-Type decodes to nothing.
func decodeSuccess(res *http.Response, out interface{}) error {
	if res.StatusCode == http.StatusNoContent {
		return nil
	}
	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		return nil
	}
	if out == nil {
		_, err := io.Copy(io.Discard, res.Body)
		return err
	}
	if isJSONContentType(contentType) {
		return json.NewDecoder(res.Body).Decode(out)
	}
	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	switch o := out.(type) {
	case *string:
		*o = string(buf)
	case *[]byte:
		*o = buf
	case *interface{}:
		*o = string(buf)
	default:
		return fmt.Errorf("cannot decode %s response into %T", contentType, out)
	}
	return nil
}

// decodeError interprets a non-2xx response into an *HTTPError. If
// parseError is set, its result becomes the error body verbatim;
// otherwise the body is parsed as JSON with a fallback to raw text.
func decodeError(res *http.Response, parseError func(*http.Response) (interface{}, error)) error {
	if parseError != nil {
		body, err := parseError(res)
		if err != nil {
			return err
		}
		return &HTTPError{Status: res.StatusCode, Body: body}
	}
	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if len(buf) == 0 {
		return &HTTPError{Status: res.StatusCode}
	}
	var body interface{}
	if err := json.Unmarshal(buf, &body); err != nil {
		body = string(buf)
	}
	return &HTTPError{Status: res.StatusCode, Body: body}
}
