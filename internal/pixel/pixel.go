package pixel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	EventInitiateCheckout = "InitiateCheckout"
	EventPurchase         = "Purchase"
)

type Event struct {
	Name        string   `json:"event_name"`
	ContentName string   `json:"content_name"`
	ContentIDs  []string `json:"content_ids"`
	Value       int64    `json:"value"`
	Currency    string   `json:"currency"`
	NumItems    int      `json:"num_items"`
}

// Client posts analytics events to the pixel endpoint. Calls are
// fire-and-forget: nothing in the order flow depends on the outcome.
type Client struct {
	Endpoint string
	PixelID  string
	Token    string
	Logger   *zap.SugaredLogger

	httpClient *http.Client
}

func NewClient(endpoint string, pixelID string, token string, logger *zap.SugaredLogger) *Client {
	return &Client{
		Endpoint:   endpoint,
		PixelID:    pixelID,
		Token:      token,
		Logger:     logger,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Track(event Event) {
	if c.Endpoint == "" || c.PixelID == "" {
		return
	}

	go func() {
		if err := c.post(event); err != nil {
			c.Logger.Debugw("pixel event dropped", "event", event.Name, "error", err)
		}
	}()
}

func (c *Client) post(event Event) error {
	body, err := json.Marshal(map[string]interface{}{
		"data":         []Event{event},
		"access_token": c.Token,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	url := fmt.Sprintf("%s/%s/events", c.Endpoint, c.PixelID)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
