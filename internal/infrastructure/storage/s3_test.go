package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPut struct {
	method      string
	path        string
	contentType string
	body        string
}

func fakeS3(t *testing.T, status int) (*httptest.Server, *[]recordedPut) {
	t.Helper()
	var (
		mu   sync.Mutex
		puts []recordedPut
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		puts = append(puts, recordedPut{
			method:      r.Method,
			path:        r.URL.EscapedPath(),
			contentType: r.Header.Get("Content-Type"),
			body:        string(b),
		})
		mu.Unlock()
		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`)
			return
		}
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &puts
}

func newTestBucket(t *testing.T, endpoint string) *Bucket {
	t.Helper()
	b, err := NewBucket(context.Background(), Config{
		Bucket:        "brand-images",
		Endpoint:      endpoint,
		Region:        "us-east-1",
		AccessKey:     "key",
		SecretKey:     "secret",
		PublicBaseURL: "https://cdn.example.com/",
		UsePathStyle:  true,
		MaxAttempts:   1,
	})
	require.NoError(t, err)
	return b
}

func TestBucket_Put(t *testing.T) {
	srv, puts := fakeS3(t, http.StatusOK)
	b := newTestBucket(t, srv.URL)

	err := b.Put(context.Background(), "logo.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)

	require.Len(t, *puts, 1)
	got := (*puts)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/brand-images/logo.png", got.path)
	assert.Equal(t, "image/png", got.contentType)
	assert.Contains(t, got.body, "png-bytes")
}

func TestBucket_Put_Error(t *testing.T) {
	srv, _ := fakeS3(t, http.StatusForbidden)
	b := newTestBucket(t, srv.URL)

	err := b.Put(context.Background(), "logo.png", strings.NewReader("x"), 1, "image/png")
	assert.Error(t, err)
}

func TestBucket_PublicURL(t *testing.T) {
	b := newBucket(nil, "brand-images", "")
	assert.Equal(t, "https://storage.googleapis.com/brand-images/my%20logo.png", b.PublicURL("my logo.png"))

	custom := newBucket(nil, "brand-images", "https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/brand-images/a.png", custom.PublicURL("a.png"))
}

func TestNewBucket_RequiresName(t *testing.T) {
	_, err := NewBucket(context.Background(), Config{})
	assert.Error(t, err)
}

type failingPutter struct{}

func (failingPutter) PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return nil, errors.New("connection reset")
}

func TestBucket_Put_WrapsClientError(t *testing.T) {
	b := newBucket(failingPutter{}, "brand-images", "")
	err := b.Put(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brand-images/a.png")
}
