// Package transform implements the external image-to-image collaborator
// used by the watercolor style. The service is treated as unreliable by
// contract: timeouts, bad statuses and malformed payloads all surface as
// ordinary errors, and the caller is expected to fall back locally.
package transform

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chromaglyph/internal/logger"
)

// DefaultEndpoint is the OpenRouter chat-completions URL.
const DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// DefaultTimeout bounds the whole remote call.
const DefaultTimeout = 90 * time.Second

var (
	// ErrNoAPIKey means the client is not configured for remote calls.
	ErrNoAPIKey = errors.New("transform: no API key configured")

	// ErrNoImage means the service answered without a usable image payload.
	ErrNoImage = errors.New("transform: response contains no image")
)

// Config holds the collaborator endpoint settings.
type Config struct {
	APIKey   string
	Model    string
	Endpoint string        // DefaultEndpoint when empty
	Timeout  time.Duration // DefaultTimeout when zero
}

// Client calls the OpenRouter img2img API. It is safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
	log  logger.Logger
}

func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Modalities []string      `json:"modalities"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Images []struct {
				ImageURL imageURL `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

// Transform sends the reference PNG and the stylization prompt, returning
// the transformed PNG bytes. Every failure class comes back as an error;
// Transform never panics and never blocks longer than the configured timeout.
func (c *Client) Transform(ctx context.Context, reference []byte, dominantColors []string) ([]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(reference)
	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				{Type: "text", Text: buildPrompt(dominantColors)},
			},
		}},
		Modalities: []string{"image", "text"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("transform: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("transform: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transform: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("transform: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("transform: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || len(parsed.Choices[0].Message.Images) == 0 {
		return nil, ErrNoImage
	}

	url := parsed.Choices[0].Message.Images[0].ImageURL.URL
	if !strings.HasPrefix(url, "data:image/") {
		return nil, fmt.Errorf("%w: unexpected image URL format", ErrNoImage)
	}
	_, b64, ok := strings.Cut(url, ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data URL", ErrNoImage)
	}
	image, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("transform: decode image payload: %w", err)
	}

	c.log.Debug("Transform", "collaborator returned image", map[string]interface{}{
		"bytes": len(image),
	})
	return image, nil
}

// buildPrompt writes the stylization instructions. The curve-preservation
// constraints matter most: the collaborator must not move or rescale the
// channel curves.
func buildPrompt(dominantColors []string) string {
	var b strings.Builder
	b.WriteString(`Transform this RGB histogram chart into a watercolor painting on textured paper.

CRITICAL: Preserve the three curve shapes, positions, and proportions. The red, green, and blue curves must remain in identical positions with the same relative heights.

FILL TREATMENT:
- Fill the entire area BENEATH each curve down to the baseline with watercolor wash
- Each channel (red, green, blue) should be a solid filled shape, like mountains rising from the bottom
- The top edge of each filled area follows the curve shape
- Avoid sharp, distinct edges - use diffuse, feathered boundaries that bleed into the surrounding paper

TEXTURE:
- Color fills should show variations in saturation, watercolor granulation and wash effects
- Paint should appear translucent with visible paper texture through the washes

COLOR PALETTE:
- Red channel: deep burgundy (#4A0000) transitioning to vivid scarlet (#FF3333)
- Green channel: forest green (#004A00) transitioning to electric lime (#33FF33)
- Blue channel: navy blue (#00004A) transitioning to brilliant azure (#3333FF)
- Where curves overlap, layer the washes translucently so the pigments mix naturally

BACKGROUND:
- Pure white with subtle paper texture, a soft vignette, and generous padding

Output only the transformed watercolor painting with no text, labels, or axes.`)

	if len(dominantColors) > 0 {
		b.WriteString("\n\nThe source photograph's dominant colors were: ")
		b.WriteString(strings.Join(dominantColors, ", "))
		b.WriteString(". Let them subtly tint the paper texture.")
	}
	return b.String()
}
