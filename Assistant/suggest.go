// Package Assistant wraps the external AI analysis service behind the
// optional automation-suggestion feature. It is a thin HTTP collaborator;
// nothing in the logging or approval core depends on it.
package Assistant

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"time"

	"github.com/disintegration/imaging"
)

// maxImageWidth bounds attachment size before upload.
const maxImageWidth = 1024

// Request describes the task the employee wants automation advice for.
type Request struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	Image       string `json:"image,omitempty"` // base64, optional
}

// Suggestion is the structured advice returned by the service.
type Suggestion struct {
	Summary string   `json:"summary"`
	Steps   []string `json:"steps"`
	Tools   []string `json:"tools"`
}

// Client calls the suggestion API configured via ASSISTANT_API_URL.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClientFromEnv builds the client; Enabled is false when no URL is set.
func NewClientFromEnv() *Client {
	return &Client{
		BaseURL:    os.Getenv("ASSISTANT_API_URL"),
		APIKey:     os.Getenv("ASSISTANT_API_KEY"),
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Enabled() bool {
	return c.BaseURL != ""
}

// Suggest forwards the request and decodes the structured suggestion.
// Image attachments are downscaled first so uploads stay small.
func (c *Client) Suggest(req Request) (*Suggestion, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("assistant service is not configured")
	}

	if req.Image != "" {
		scaled, err := prepareImage(req.Image)
		if err != nil {
			return nil, fmt.Errorf("preparing image attachment: %w", err)
		}
		req.Image = scaled
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assistant service returned status %d", resp.StatusCode)
	}

	var suggestion Suggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestion); err != nil {
		return nil, fmt.Errorf("decoding suggestion: %w", err)
	}
	return &suggestion, nil
}

// prepareImage decodes a base64 attachment and resizes anything wider
// than maxImageWidth, re-encoding as JPEG.
func prepareImage(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid base64 image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("unsupported image format: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
