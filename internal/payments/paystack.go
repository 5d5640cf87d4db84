package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/brightpath-consulting/platform/pkg/logging"
)

var paystackTracer = otel.Tracer("brightpath.internal.payments.paystack")

const defaultBaseURL = "https://api.paystack.co"

// Client talks to the Paystack transaction API. All amounts are in kobo.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// InitializeParams describes one hosted-checkout initialization.
type InitializeParams struct {
	Email       string
	AmountKobo  int64
	Reference   string
	CallbackURL string
	Metadata    Metadata
}

// Metadata rides along with the transaction and comes back on verification
// and webhook delivery, letting the webhook cross-check out of band.
type Metadata struct {
	BookingID string `json:"booking_id,omitempty"`
	CatalogID string `json:"catalog_id,omitempty"`
	StartsAt  string `json:"starts_at,omitempty"`
	EndsAt    string `json:"ends_at,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

// Authorization is the gateway's hosted payment page for one reference.
type Authorization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Verification is the gateway's view of a charge after the fact.
type Verification struct {
	Status     string
	AmountKobo int64
	Reference  string
	PaidAt     string
	Metadata   Metadata
}

// Success reports whether the gateway settled the charge.
func (v *Verification) Success() bool {
	return strings.EqualFold(v.Status, "success")
}

// NewClient creates a Paystack client.
func NewClient(secretKey string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		secretKey:  secretKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// WithBaseURL overrides the API host (used by tests).
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL == "" {
		return c
	}
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type initializeRequest struct {
	Email       string   `json:"email"`
	Amount      int64    `json:"amount"`
	Reference   string   `json:"reference"`
	CallbackURL string   `json:"callback_url,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// Initialize creates a transaction and returns the hosted redirect URL.
func (c *Client) Initialize(ctx context.Context, params InitializeParams) (*Authorization, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("payments: paystack secret key not configured")
	}

	ctx, span := paystackTracer.Start(ctx, "paystack.initialize")
	defer span.End()
	span.SetAttributes(
		attribute.String("brightpath.reference", params.Reference),
		attribute.Int64("brightpath.amount_kobo", params.AmountKobo),
	)

	body, err := json.Marshal(initializeRequest{
		Email:       params.Email,
		Amount:      params.AmountKobo,
		Reference:   params.Reference,
		CallbackURL: params.CallbackURL,
		Metadata:    params.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("payments: encode initialize request: %w", err)
	}

	var resp initializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("payments: initialize rejected: %s", resp.Message)
	}

	c.logger.Info("paystack transaction initialized", "reference", params.Reference, "amount_kobo", params.AmountKobo)
	return &Authorization{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
	}, nil
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string   `json:"status"`
		Amount    int64    `json:"amount"`
		Reference string   `json:"reference"`
		PaidAt    string   `json:"paid_at"`
		Metadata  Metadata `json:"metadata"`
	} `json:"data"`
}

// Verify fetches the settled state of a transaction by reference.
func (c *Client) Verify(ctx context.Context, reference string) (*Verification, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("payments: paystack secret key not configured")
	}
	if strings.TrimSpace(reference) == "" {
		return nil, fmt.Errorf("payments: reference is required")
	}

	ctx, span := paystackTracer.Start(ctx, "paystack.verify")
	defer span.End()
	span.SetAttributes(attribute.String("brightpath.reference", reference))

	var resp verifyResponse
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("payments: verify rejected: %s", resp.Message)
	}

	return &Verification{
		Status:     resp.Data.Status,
		AmountKobo: resp.Data.Amount,
		Reference:  resp.Data.Reference,
		PaidAt:     resp.Data.PaidAt,
		Metadata:   resp.Data.Metadata,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("payments: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payments: paystack request failed: %w", err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("payments: read response: %w", err)
	}
	if res.StatusCode >= 400 {
		c.logger.Error("paystack returned error status", "status", res.StatusCode, "path", path)
		return fmt.Errorf("payments: paystack status %d: %s", res.StatusCode, strings.TrimSpace(string(payload)))
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("payments: decode response: %w", err)
	}
	return nil
}
