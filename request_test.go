package routype

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// wordCount is an integer encoded as a number of "|".
type wordCount int

func (c wordCount) MarshalText() (text []byte, err error) {
	return bytes.Repeat([]byte("|"), int(c)), nil
}

func TestPathParams(t *testing.T) {
	cases := []struct {
		mask string
		want []string
	}{
		{mask: "/notes", want: []string{}},
		{mask: "/notes/:id", want: []string{"id"}},
		{mask: "/users/:user/posts/:post", want: []string{"user", "post"}},
		{mask: "/files/:name.json", want: []string{"name"}},
		{mask: "/v1/:_x/:x9", want: []string{"_x", "x9"}},
	}
	for _, tc := range cases {
		got := pathParams(tc.mask)
		require.Equal(t, tc.want, got, "mask %q", tc.mask)
	}
}

func TestBuildPath(t *testing.T) {
	cases := []struct {
		mask        string
		params      map[string]interface{}
		want        string
		wantMissing string
	}{
		{
			mask:   "/notes",
			params: nil,
			want:   "/notes",
		},
		{
			mask:   "/notes/:id",
			params: map[string]interface{}{"id": 42},
			want:   "/notes/42",
		},
		{
			mask: "/users/:user/posts/:post",
			params: map[string]interface{}{
				"user": "123",
				"post": "456-789",
			},
			want: "/users/123/posts/456-789",
		},
		{
			mask:   "/search/:term",
			params: map[string]interface{}{"term": "hello world"},
			want:   "/search/hello%20world",
		},
		{
			mask:   "/search/:term",
			params: map[string]interface{}{"term": "a/b?c"},
			want:   "/search/a%2Fb%3Fc",
		},
		{
			mask:   "/notes/:id",
			params: map[string]interface{}{"id": wordCount(3)},
			want:   "/notes/%7C%7C%7C",
		},
		{
			// Extra parameters are ignored.
			mask:   "/notes/:id",
			params: map[string]interface{}{"id": 1, "unused": "x"},
			want:   "/notes/1",
		},
		{
			mask:        "/notes/:id",
			params:      map[string]interface{}{},
			wantMissing: "id",
		},
		{
			mask: "/users/:user/posts/:post",
			params: map[string]interface{}{
				"user": "123",
			},
			wantMissing: "post",
		},
	}

	for i, tc := range cases {
		got, err := buildPath(tc.mask, tc.params)
		if tc.wantMissing != "" {
			var missing *MissingParamError
			if !errors.As(err, &missing) {
				t.Errorf("case %d: want MissingParamError, got %v", i, err)
				continue
			}
			if missing.Param != tc.wantMissing {
				t.Errorf("case %d: want missing param %q, got %q", i, tc.wantMissing, missing.Param)
			}
			continue
		}
		if err != nil {
			t.Errorf("case %d: got error: %v", i, err)
			continue
		}
		if got != tc.want {
			t.Errorf("case %d: want %q, got %q", i, tc.want, got)
		}
		if strings.Contains(got, ":") {
			t.Errorf("case %d: placeholder left in %q", i, got)
		}
	}
}

func TestEncodeQuery(t *testing.T) {
	type listQuery struct {
		Tags  []string `query:"tags"`
		Limit int      `query:"limit"`
	}

	var nilPtr *int
	five := 5

	cases := []struct {
		query   interface{}
		want    string
		wantErr bool
	}{
		{query: nil, want: ""},
		{
			query: map[string]interface{}{"search": nil, "limit": 5},
			want:  "limit=5",
		},
		{
			query: map[string]interface{}{"tags": []string{"a", "b"}},
			want:  "tags=a&tags=b",
		},
		{
			query: map[string]interface{}{"b": 1, "a": 2},
			want:  "a=2&b=1",
		},
		{
			query: map[string]interface{}{"limit": &five, "skip": nilPtr},
			want:  "limit=5",
		},
		{
			query: map[string]interface{}{"q": "hello world"},
			want:  "q=hello+world",
		},
		{
			query: map[string]interface{}{"n": wordCount(2)},
			want:  "n=%7C%7C",
		},
		{
			query: map[string]interface{}{},
			want:  "",
		},
		{
			query: url.Values{"x": {"1", "2"}},
			want:  "x=1&x=2",
		},
		{
			query: listQuery{Tags: []string{"go", "http"}, Limit: 5},
			want:  "limit=5&tags=go&tags=http",
		},
		{
			query: &listQuery{Tags: []string{"go"}, Limit: 1},
			want:  "limit=1&tags=go",
		},
		{
			query:   42,
			wantErr: true,
		},
	}

	for i, tc := range cases {
		got, err := encodeQuery(tc.query)
		if tc.wantErr {
			if err == nil {
				t.Errorf("case %d: want error, not got", i)
			}
			continue
		}
		if err != nil {
			t.Errorf("case %d: got error: %v", i, err)
			continue
		}
		if got != tc.want {
			t.Errorf("case %d: want %q, got %q", i, tc.want, got)
		}
	}
}

func TestEncodeQueryRepeatedKeyCount(t *testing.T) {
	got, err := encodeQuery(map[string]interface{}{"tags": []string{"a", "b"}})
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(got, "tags="))
}

func TestNewHTTPRequestJSONBody(t *testing.T) {
	body := map[string]interface{}{"text": "hi"}
	req, err := newHTTPRequest(context.Background(), http.MethodPost, "http://x.test/notes", body, nil)
	require.NoError(t, err)
	require.Equal(t, "application/json", req.Header.Get("Content-Type"))
	payload, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"text":"hi"}`, string(payload))
	require.Equal(t, int64(len(payload)), req.ContentLength)

	// GetBody must replay the same payload.
	second, err := req.GetBody()
	require.NoError(t, err)
	replay, err := io.ReadAll(second)
	require.NoError(t, err)
	require.Equal(t, payload, replay)
}

func TestNewHTTPRequestCallerContentTypeWins(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", "application/vnd.custom+json")
	req, err := newHTTPRequest(context.Background(), http.MethodPost, "http://x.test/notes", map[string]int{"a": 1}, header)
	require.NoError(t, err)
	require.Equal(t, "application/vnd.custom+json", req.Header.Get("Content-Type"))
}

func TestNewHTTPRequestRawBodies(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		req, err := newHTTPRequest(context.Background(), http.MethodPost, "http://x.test/up", []byte{1, 2, 3}, nil)
		require.NoError(t, err)
		require.Empty(t, req.Header.Get("Content-Type"))
		payload, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, []byte{1, 2, 3}, payload)
	})

	t.Run("reader", func(t *testing.T) {
		req, err := newHTTPRequest(context.Background(), http.MethodPost, "http://x.test/up", strings.NewReader("stream"), nil)
		require.NoError(t, err)
		require.Empty(t, req.Header.Get("Content-Type"))
		payload, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, "stream", string(payload))
	})

	t.Run("nil", func(t *testing.T) {
		req, err := newHTTPRequest(context.Background(), http.MethodGet, "http://x.test/notes", nil, nil)
		require.NoError(t, err)
		require.Nil(t, req.Body)
		require.Empty(t, req.Header.Get("Content-Type"))
	})
}

func TestNewHTTPRequestProtobufBody(t *testing.T) {
	stamp := timestamppb.New(time.Date(2020, time.July, 10, 11, 30, 0, 0, time.UTC))
	want, err := proto.Marshal(stamp)
	require.NoError(t, err)

	req, err := newHTTPRequest(context.Background(), http.MethodPost, "http://x.test/t", stamp, nil)
	require.NoError(t, err)
	require.Equal(t, "application/x-protobuf", req.Header.Get("Content-Type"))
	payload, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	require.Equal(t, want, payload)
}

func TestStringify(t *testing.T) {
	cases := []struct {
		value interface{}
		want  string
	}{
		{value: "abc", want: "abc"},
		{value: 42, want: "42"},
		{value: 2.5, want: "2.5"},
		{value: true, want: "true"},
		{value: wordCount(4), want: "||||"},
	}
	for _, tc := range cases {
		got, err := stringify(tc.value)
		if err != nil {
			t.Errorf("stringify(%v): %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("stringify(%v): want %q, got %q", tc.value, tc.want, got)
		}
	}
}
