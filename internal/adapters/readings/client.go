package readings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/randomtoy/spreads-go/internal/domain"
	"github.com/randomtoy/spreads-go/internal/ports"
)

// Client implements ports.ReadingsAPI against the readings REST service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		logger:     logger,
	}
}

// errorResponse is the service's error body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (c *Client) CreateReading(ctx context.Context, req ports.CreateReadingRequest) (ports.CreateReadingResponse, error) {
	var out ports.CreateReadingResponse
	if err := c.call(ctx, http.MethodPost, "/v1/readings", req, &out); err != nil {
		return ports.CreateReadingResponse{}, err
	}
	return out, nil
}

func (c *Client) GetReading(ctx context.Context, id string) (ports.Reading, error) {
	var out ports.Reading
	if err := c.call(ctx, http.MethodGet, "/v1/readings/"+id, nil, &out); err != nil {
		return ports.Reading{}, err
	}
	return out, nil
}

func (c *Client) ViewReading(ctx context.Context, id string) (ports.ReadingView, error) {
	var out ports.ReadingView
	if err := c.call(ctx, http.MethodGet, "/v1/readings/"+id+"/view", nil, &out); err != nil {
		return ports.ReadingView{}, err
	}
	return out, nil
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connectivity-level failure, classified apart from anything the
		// server reported.
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.mapStatus(ctx, resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapStatus folds HTTP failures into the submission error taxonomy.
func (c *Client) mapStatus(ctx context.Context, status int, raw []byte) error {
	var er errorResponse
	_ = json.Unmarshal(raw, &er)
	msg := er.Error
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", domain.ErrInsufficientEnergy, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrSessionInvalid, msg)
	default:
		c.logger.WarnContext(ctx, "readings service error", "status", status, "message", msg)
		return fmt.Errorf("readings service status %d: %s", status, msg)
	}
}
