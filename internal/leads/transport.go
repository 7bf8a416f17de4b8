package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// HTTPTransport posts leads as JSON to a single webhook URL.
type HTTPTransport struct {
	client *http.Client
	url    string
	tracer trace.Tracer
}

// NewHTTPTransport builds a transport for url. A zero timeout means none,
// matching the form's no-timeout contract.
func NewHTTPTransport(url string, timeout time.Duration) *HTTPTransport {
	return NewHTTPTransportWithClient(url, &http.Client{Timeout: timeout})
}

// NewHTTPTransportWithClient uses the given client; tests pass httptest clients.
func NewHTTPTransportWithClient(url string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		client: client,
		url:    url,
		tracer: otel.Tracer("rollerup.internal.leads.transport"),
	}
}

// Send issues one POST. Success is any 2xx status; the body is discarded unread.
func (t *HTTPTransport) Send(ctx context.Context, lead Lead) error {
	ctx, span := t.tracer.Start(ctx, "leads.transport.send")
	defer span.End()

	body, err := json.Marshal(lead)
	if err != nil {
		span.RecordError(err)
		return &TransportError{Err: fmt.Errorf("marshal lead: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{StatusCode: resp.StatusCode}
	}
	return nil
}

var _ Transport = (*HTTPTransport)(nil)
