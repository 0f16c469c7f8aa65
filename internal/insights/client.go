package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"librarydesk/internal/camera"
	"librarydesk/internal/library"
)

// Snapshot is the aggregate state handed to the gateway. It is copied at
// call time; mutations made while a request is in flight do not affect it.
type Snapshot struct {
	Attendance []library.Record
	Cameras    []camera.Camera
}

// Client calls the hosted text-generation API over REST.
type Client struct {
	BaseURL string
	Model   string
	APIKey  string
	HTTP    *http.Client
	Skip    bool
}

// New creates a client. With skip set it returns canned text and never
// touches the network, for dev runs and tests without a credential.
func New(baseURL, model, apiKey string, timeout time.Duration, skip bool) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		APIKey:  apiKey,
		Skip:    skip,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// BuildPrompt renders the summary the provider answers against: roster size,
// attendance and room counts, camera tallies, and the user's question verbatim.
func BuildPrompt(state Snapshot, roster library.Roster, query string) string {
	var ac, nonAC int
	for _, rec := range state.Attendance {
		switch rec.Room {
		case library.RoomAC:
			ac++
		case library.RoomNonAC:
			nonAC++
		}
	}
	var online, offline int
	for _, cam := range state.Cameras {
		if cam.Status == camera.StatusOnline {
			online++
		} else {
			offline++
		}
	}

	var b strings.Builder
	b.WriteString("Context: Library Management System.\n")
	b.WriteString("Current Stats:\n")
	fmt.Fprintf(&b, "- Total Registered Students: %d\n", len(roster))
	fmt.Fprintf(&b, "- Present Today: %d\n", len(state.Attendance))
	fmt.Fprintf(&b, "- AC Room Usage: %d\n", ac)
	fmt.Fprintf(&b, "- Non-AC Room Usage: %d\n", nonAC)
	fmt.Fprintf(&b, "- Active Cameras: %d\n", online)
	fmt.Fprintf(&b, "- Offline Cameras: %d\n", offline)
	b.WriteString("\nUser Question: ")
	b.WriteString(query)
	b.WriteString("\n\nPlease provide a professional, concise response suitable for a Library CEO.")
	return b.String()
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one complete, non-streaming request and returns the
// provider's text. Any transport failure, error status, or empty body comes
// back as an error for the gateway to absorb.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.Skip {
		return "Insights are running in offline mode; configure GEMINI_API_KEY for live answers.", nil
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("insights request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("insights provider error %s: %s", resp.Status, string(respBody))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	var text strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text.String(), nil
}
