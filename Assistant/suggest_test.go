package Assistant

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodePNG(t *testing.T, width, height int) string {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestPrepareImageDownscalesWideImages(t *testing.T) {
	scaled, err := prepareImage(encodePNG(t, 2048, 512))
	assert.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(scaled)
	assert.NoError(t, err)
	img, format, err := image.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy(), "aspect ratio is preserved")
}

func TestPrepareImageKeepsSmallImages(t *testing.T) {
	scaled, err := prepareImage(encodePNG(t, 200, 100))
	assert.NoError(t, err)

	raw, _ := base64.StdEncoding.DecodeString(scaled)
	img, _, err := image.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestPrepareImageRejectsGarbage(t *testing.T) {
	_, err := prepareImage("not base64 at all!!!")
	assert.Error(t, err)

	_, err = prepareImage(base64.StdEncoding.EncodeToString([]byte("not an image")))
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Reconcile accounts", req.Title)

		json.NewEncoder(w).Encode(Suggestion{
			Summary: "Automate with a nightly job",
			Steps:   []string{"Export the ledger", "Diff against the bank feed"},
			Tools:   []string{"cron"},
		})
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, APIKey: "test-key", HTTPClient: server.Client()}
	suggestion, err := client.Suggest(Request{Title: "Reconcile accounts", Frequency: "daily"})
	assert.NoError(t, err)
	assert.Equal(t, "Automate with a nightly job", suggestion.Summary)
	assert.Len(t, suggestion.Steps, 2)
}

func TestSuggestUnconfigured(t *testing.T) {
	client := &Client{}
	_, err := client.Suggest(Request{Title: "anything"})
	assert.Error(t, err)
}

func TestSuggestUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}
	_, err := client.Suggest(Request{Title: "anything"})
	assert.Error(t, err)
}
