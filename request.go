package routype

import (
	"bytes"
	"context"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"regexp"

	"github.com/gorilla/schema"
	"google.golang.org/protobuf/proto"
)

// MissingParamError is returned when a path mask references a parameter
// that was not supplied.
type MissingParamError struct {
	Param string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing path parameter: %s", e.Param)
}

// Path parameters are ":" followed by an identifier.
var paramPattern = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// pathParams returns the parameter names referenced by a path mask, in
// order of appearance.
func pathParams(mask string) []string {
	matches := paramPattern.FindAllStringSubmatch(mask, -1)
	params := make([]string, 0, len(matches))
	for _, m := range matches {
		params = append(params, m[1])
	}
	return params
}

// buildPath substitutes parameter values into a path mask. Every value
// is stringified and percent-encoded. Supplied parameters that the mask
// does not reference are ignored.
func buildPath(mask string, params map[string]interface{}) (string, error) {
	var missing *MissingParamError
	built := paramPattern.ReplaceAllStringFunc(mask, func(tok string) string {
		key := tok[1:]
		value, has := params[key]
		if !has {
			if missing == nil {
				missing = &MissingParamError{Param: key}
			}
			return tok
		}
		s, err := stringify(value)
		if err != nil {
			if missing == nil {
				missing = &MissingParamError{Param: key}
			}
			return tok
		}
		return url.PathEscape(s)
	})
	if missing != nil {
		return "", missing
	}
	return built, nil
}

// stringify converts a scalar to its query/path representation.
// encoding.TextMarshaler wins over the default formatting.
func stringify(v interface{}) (string, error) {
	if marshaler, ok := v.(encoding.TextMarshaler); ok {
		text, err := marshaler.MarshalText()
		if err != nil {
			return "", fmt.Errorf("failed to marshal value %v: %w", v, err)
		}
		return string(text), nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

var queryEncoder = newQueryEncoder()

func newQueryEncoder() *schema.Encoder {
	e := schema.NewEncoder()
	e.SetAliasTag("query")
	return e
}

// encodeQuery serializes a query value to an encoded query string,
// without the leading "?". Accepted values: nil (no query), url.Values
// (used as is), map[string]interface{} (nil entries dropped, slices
// repeat the key preserving element order) or a struct with `query`
// tags, encoded by gorilla/schema.
func encodeQuery(q interface{}) (string, error) {
	if q == nil {
		return "", nil
	}
	switch v := q.(type) {
	case url.Values:
		return v.Encode(), nil
	case map[string]interface{}:
		values := url.Values{}
		for key, value := range v {
			if value == nil {
				continue
			}
			rv := reflect.ValueOf(value)
			if rv.Kind() == reflect.Ptr {
				if rv.IsNil() {
					continue
				}
				rv = rv.Elem()
				value = rv.Interface()
			}
			if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
				for i := 0; i < rv.Len(); i++ {
					s, err := stringify(rv.Index(i).Interface())
					if err != nil {
						return "", fmt.Errorf("query key %s: %w", key, err)
					}
					values.Add(key, s)
				}
				continue
			}
			s, err := stringify(value)
			if err != nil {
				return "", fmt.Errorf("query key %s: %w", key, err)
			}
			values.Set(key, s)
		}
		return values.Encode(), nil
	}

	rv := reflect.ValueOf(q)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return "", fmt.Errorf("unsupported query type %T", q)
	}
	values := url.Values{}
	if err := queryEncoder.Encode(rv.Interface(), values); err != nil {
		return "", fmt.Errorf("failed to encode query struct: %w", err)
	}
	return values.Encode(), nil
}

// newHTTPRequest builds the outgoing request: URL, merged headers and
// encoded body.
//
// Body encoding policy: nil means no body. An io.Reader or []byte is
// passed through raw and no Content-Type is set for it. A proto.Message
// is sent in protobuf binary form. Everything else is serialized to
// JSON. A Content-Type already present in the supplied headers always
// wins over the automatic one.
func newHTTPRequest(ctx context.Context, method, urlStr string, body interface{}, header http.Header) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, method, urlStr, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}
	if body == nil {
		return request, nil
	}

	contentType := ""
	var payload []byte
	switch b := body.(type) {
	case io.Reader:
		request.Body = io.NopCloser(b)
		if closer, ok := b.(io.ReadCloser); ok {
			request.Body = closer
		}
		return request, nil
	case []byte:
		payload = b
	case proto.Message:
		payload, err = proto.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal protobuf body: %w", err)
		}
		contentType = "application/x-protobuf"
	default:
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON body: %w", err)
		}
		contentType = "application/json"
	}

	reader := bytes.NewReader(payload)
	snapshot := *reader
	request.ContentLength = int64(len(payload))
	request.Body = io.NopCloser(reader)
	request.GetBody = func() (io.ReadCloser, error) {
		r := snapshot
		return io.NopCloser(&r), nil
	}
	if contentType != "" && request.Header.Get("Content-Type") == "" {
		request.Header.Set("Content-Type", contentType)
	}
	return request, nil
}
