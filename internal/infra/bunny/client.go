// Package bunny is a thin client for the Bunny Stream video API. Assets are
// addressed by library id + video guid; authentication is the AccessKey
// header.
package bunny

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const DefaultBaseURL = "https://video.bunnycdn.com"

type Config struct {
	BaseURL   string
	LibraryID string
	AccessKey string
}

type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	// No client-level timeout: the streaming upload is bounded by the
	// request context instead.
	return &Client{cfg: cfg, http: &http.Client{}}
}

func (c *Client) LibraryID() string  { return c.cfg.LibraryID }
func (c *Client) HasAccessKey() bool { return c.cfg.AccessKey != "" }

// APIError is a non-2xx response from Bunny, kept verbatim so callers can
// relay status and body to their own clients.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bunny api: status=%d body=%s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

type createVideoResponse struct {
	GUID string `json:"guid"`
}

// CreateAsset registers an empty video asset and returns its guid. The
// actual bytes are uploaded separately.
func (c *Client) CreateAsset(ctx context.Context, title string) (string, error) {
	payload, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/library/%s/videos", c.cfg.BaseURL, c.cfg.LibraryID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("AccessKey", c.cfg.AccessKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	var out createVideoResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode create video response: %w", err)
	}
	if out.GUID == "" {
		return "", fmt.Errorf("create video response missing guid")
	}
	return out.GUID, nil
}

func (c *Client) DeleteAsset(ctx context.Context, assetID string) error {
	url := fmt.Sprintf("%s/library/%s/videos/%s", c.cfg.BaseURL, c.cfg.LibraryID, assetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("AccessKey", c.cfg.AccessKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: body}
	}
	return nil
}

// Upload streams body to the binary-upload endpoint for an existing asset.
// body is forwarded as the outbound request body, so bytes flow upstream as
// they arrive; nothing is buffered. The upstream status code, response body
// and content type come back as-is for the caller to relay. Cancelling ctx
// aborts the outbound request mid-stream.
func (c *Client) Upload(ctx context.Context, libraryID, videoID string, body io.Reader) (status int, respBody []byte, contentType string, err error) {
	url := fmt.Sprintf("%s/library/%s/videos/%s", c.cfg.BaseURL, libraryID, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return 0, nil, "", err
	}
	req.Header.Set("AccessKey", c.cfg.AccessKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, "", err
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, "", err
	}
	return resp.StatusCode, respBody, resp.Header.Get("Content-Type"), nil
}
