package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "venue", r.FormValue("upload_preset"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "flyer.jpg", header.Filename)

		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://media.example.com/flyer.jpg",
		})
	}))
	defer srv.Close()

	u := NewUploader(Config{UploadURL: srv.URL, Preset: "venue"})
	url, err := u.Upload(context.Background(), "flyer.jpg", strings.NewReader("jpegbytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/flyer.jpg", url)
}

func TestUploadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	u := NewUploader(Config{UploadURL: srv.URL})
	_, err := u.Upload(context.Background(), "flyer.jpg", strings.NewReader("x"))

	require.Error(t, err)
}

func TestUploadMissingURLInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"public_id": "abc"})
	}))
	defer srv.Close()

	u := NewUploader(Config{UploadURL: srv.URL})
	_, err := u.Upload(context.Background(), "flyer.jpg", strings.NewReader("x"))

	require.Error(t, err)
}
