package terminal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/SakerDakak/taxipay-dashboard/pkg/metrics"
)

const (
	HeaderRequestID = "X-Request-ID"

	endpointTransactions = "transactions"
	defaultTimeout       = 10 * time.Second
	maxErrorBody         = 512
)

var (
	ErrTimeout     = errors.New("terminal api timeout")
	ErrUnavailable = errors.New("terminal api unavailable")
)

// StatusError is a non-2xx answer from the terminal API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("terminal api error [%d]: %s", e.StatusCode, e.Message)
}

// Client reads transactions from the payment terminal API.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

// New returns a client for baseURL. A non-positive timeout falls back to 10s.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		// per-request timeouts come from the context
		http: &http.Client{},
	}
}

// GetTransactions fetches one page of transactions. Pages are 1-based.
func (c *Client) GetTransactions(ctx context.Context, page, limit int) (_ *models.TransactionPage, err error) {
	const op = "TerminalClient.GetTransactions"
	ctx = wrap.WithAction(ctx, types.ActionFetchTxPage)

	start := time.Now()
	defer func() {
		metrics.RecordTerminalRequest(endpointTransactions, err, time.Since(start))
	}()

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/transactions?" + q.Encode()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: failed to build request: %w", op, err))
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if reqID := wrap.RequestID(ctx); reqID != "" {
		req.Header.Set(HeaderRequestID, reqID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: page %d: %w", op, page, c.mapError(ctx, err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: page %d: %w", op, page, decodeError(resp)))
	}

	var payload models.TransactionPage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		ctx = wrap.WithAction(ctx, "decode_transactions_payload")
		return nil, wrap.Error(ctx, fmt.Errorf("%s: failed to decode page %d: %w", op, page, err))
	}

	return &payload, nil
}

// mapError converts transport failures to ErrTimeout or ErrUnavailable.
// Cancellation of the caller's context is passed through untouched.
func (c *Client) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrUnavailable
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &apiErr); err == nil {
		msg = apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}
