package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mwarevito/financial-chat-analyzer/observability"
)

const defaultHTTPTimeout = 30 * time.Second

// maxBodyBytes caps provider response bodies
const maxBodyBytes = 10 << 20

// getBody performs a GET bound to ctx and returns the body of a 200 response.
// Transport failures become *NetworkError and other statuses *ProviderError.
func getBody(ctx context.Context, client *http.Client, provider, operation, rawURL string, header http.Header) ([]byte, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(provider, operation)
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI(provider, operation)

	body, err := doGet(ctx, client, provider, operation, rawURL, header)
	if err != nil {
		metrics.RecordExternalAPIError(provider, operation, ClassifyError(err))
		return nil, err
	}
	return body, nil
}

func doGet(ctx context.Context, client *http.Client, provider, operation, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{Provider: provider, Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Provider: provider, Operation: operation, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			msg = payload.Message
		}
		return nil, &ProviderError{
			Provider:   provider,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	return body, nil
}

// decodeBody unmarshals a provider body, reporting malformed JSON as a provider error
func decodeBody(provider, operation string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &ProviderError{Provider: provider, Operation: operation, Message: "malformed response: " + err.Error()}
	}
	return nil
}
