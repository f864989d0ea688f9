package cloudinaryclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/media"
)

func pngFile(body string) media.File {
	return media.File{
		Name:        "flood.png",
		ContentType: media.MIMEPNG,
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		CloudName:    "demo",
		UploadPreset: "unsigned",
		Folder:       "hopenotes/files",
	}, zap.NewNop())
	require.NoError(t, err)
	return client.WithBaseURL(server.URL)
}

func TestUpload_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		// resource type auto is part of the path
		assert.True(t, strings.HasSuffix(r.URL.Path, "/demo/auto/upload"), r.URL.Path)

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "unsigned", r.FormValue("upload_preset"))
		assert.Equal(t, "hopenotes/files", r.FormValue("folder"))
		assert.Empty(t, r.FormValue("signature"))

		f, _, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "image-bytes", string(data))

		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"secure_url":"https://res.cloudinary.com/demo/flood.png","public_id":"hopenotes/files/flood","format":"png","bytes":11,"width":640,"height":480,"resource_type":"image","created_at":"2025-12-01T00:00:00Z"}`)
	})

	var progress []int
	result, err := client.Upload(context.Background(), pngFile("image-bytes"), func(p int) {
		progress = append(progress, p)
	})
	require.NoError(t, err)

	assert.Equal(t, "https://res.cloudinary.com/demo/flood.png", result.URL)
	assert.Equal(t, "png", result.Format)
	assert.Equal(t, int64(11), result.Bytes)
	assert.Equal(t, "image", result.ResourceType)
	assert.Equal(t, "2025-12-01T00:00:00Z", result.CreatedAt)
	require.NotNil(t, result.Width)
	assert.Equal(t, 640, *result.Width)

	require.NotEmpty(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.Greater(t, progress[i], progress[i-1])
	}
}

func TestUpload_MissingCredentials(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	client.cfg.UploadPreset = ""

	_, err := client.Upload(context.Background(), pngFile("x"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials not configured")
	assert.Contains(t, err.Error(), "upload preset: Missing")
	assert.False(t, called)
}

func TestUpload_ValidationHappensBeforeNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Upload(context.Background(), media.File{
		Name:        "clip.mp4",
		ContentType: "video/mp4",
		Size:        10,
		Body:        strings.NewReader("0123456789"),
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrUnsupportedType)

	_, err = client.Upload(context.Background(), media.File{
		Name:        "huge.png",
		ContentType: media.MIMEPNG,
		Size:        media.MaxFileSize + 1,
		Body:        strings.NewReader(""),
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrFileTooLarge)

	assert.False(t, called)
}

func TestUpload_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expectedErr string
	}{
		{"cloudinary error message", http.StatusBadRequest, `{"error":{"message":"Upload preset not found"}}`, "Upload preset not found"},
		{"json without message", http.StatusInternalServerError, `{}`, "upload failed: response has no secure url"},
		{"non-json body", http.StatusBadGateway, `bad gateway`, "failed to parse upload response"},
		{"malformed success body", http.StatusOK, `not json`, "failed to parse upload response"},
		{"success without url", http.StatusOK, `{"public_id":"x"}`, "upload failed: response has no secure url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.Copy(io.Discard, r.Body)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := client.Upload(context.Background(), pngFile("abc"), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestUpload_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(Config{CloudName: "demo", UploadPreset: "unsigned"}, zap.NewNop())
	require.NoError(t, err)
	client.WithBaseURL(url)

	_, err = client.Upload(context.Background(), pngFile("abc"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network error during upload")
}
