package flutterwave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

var (
	// ErrTransactionNotFound indicates the gateway does not know the transaction id.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrUnauthorized indicates the secret key was rejected.
	ErrUnauthorized = errors.New("flutterwave rejected credentials")
)

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// HTTPClient verifies transactions against the Flutterwave v3 API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID       json.Number `json:"id"`
		TxRef    string      `json:"tx_ref"`
		Amount   float64     `json:"amount"`
		Currency string      `json:"currency"`
		Status   string      `json:"status"`
	} `json:"data"`
}

// NewHTTPClient creates a client with default timeout.
func NewHTTPClient(baseURL, secretKey string, logger *zap.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse flutterwave url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("flutterwave url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// VerifyTransaction fetches the gateway's record of a transaction.
func (c *HTTPClient) VerifyTransaction(ctx context.Context, transactionID string) (*model.TransactionVerification, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v3/transactions", url.PathEscape(transactionID), "verify")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data verifyResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("decode verify response: %w", err)
		}
		return &model.TransactionVerification{
			TransactionID:     data.Data.ID.String(),
			Status:            data.Status,
			TxRef:             data.Data.TxRef,
			TransactionStatus: data.Data.Status,
			Amount:            data.Data.Amount,
			Currency:          data.Data.Currency,
		}, nil
	case http.StatusNotFound:
		return nil, ErrTransactionNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("flutterwave verify failed",
			zap.String("transaction_id", transactionID),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("flutterwave error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
