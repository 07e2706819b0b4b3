package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultUploadTimeout = 30 * time.Second

// Upload posts a generated file to the service's /upload endpoint as a
// multipart form. The batch id ties the upload to server logs.
func Upload(ctx context.Context, baseURL, filename string, content []byte) (string, error) {
	batchID := uuid.NewString()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("building form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("building form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/upload", &body)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Seed-Batch", batchID)

	client := &http.Client{Timeout: defaultUploadTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("posting upload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload rejected: %s: %s", resp.Status, payload)
	}
	return batchID, nil
}
