// Package media uploads image assets to the remote media host and returns
// the hosted URL. It is consumed only by the event-creation flow.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// PlaceholderImage is used for events created without an image file.
const PlaceholderImage = "https://picsum.photos/800/600"

type Config struct {
	// UploadURL is the unsigned upload endpoint of the media host.
	UploadURL string
	// Preset names the unsigned upload preset configured on the host.
	Preset  string
	Timeout time.Duration
}

type Uploader struct {
	cfg  Config
	http *http.Client
}

func NewUploader(cfg Config) *Uploader {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Uploader{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Upload sends the image as a multipart form and returns the hosted URL.
func (u *Uploader) Upload(ctx context.Context, filename string, img io.Reader) (string, error) {
	const op = "media.Upload"

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer pw.Close()
		if u.cfg.Preset != "" {
			if err := mw.WriteField("upload_preset", u.cfg.Preset); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, img); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.UploadURL, pr)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if out.SecureURL != "" {
		return out.SecureURL, nil
	}
	if out.URL != "" {
		return out.URL, nil
	}
	return "", fmt.Errorf("%s: response contains no url", op)
}
