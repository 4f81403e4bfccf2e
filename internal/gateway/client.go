package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtalent/hr-client/internal"
	employeemodel "github.com/dtalent/hr-client/internal/core/datamodel/employee"
	receiptmodel "github.com/dtalent/hr-client/internal/core/datamodel/receipt"
	usermodel "github.com/dtalent/hr-client/internal/core/datamodel/user"
	"github.com/dtalent/hr-client/pkg/logger"
)

// TokenSource yields the persisted session token for authenticated calls.
// An empty token simply means no Authorization header is attached.
type TokenSource interface {
	Token() (string, error)
}

// SessionWriter persists the token and user a successful sign-in produced.
// SignIn writes the session itself rather than leaving it to the caller;
// callers relying on the session store must be aware of this coupling.
type SessionWriter interface {
	SaveSession(token string, u usermodel.User) error
}

const maxErrorBodyBytes = 8 << 10

// auth header schemes per endpoint group, pinned by the backend contract:
// the JSON endpoints expect "Token <v>", the binary fallback host expects
// "Bearer <v>".
type authScheme int

const (
	authNone authScheme = iota
	authToken
	authBearer
)

type Config struct {
	BaseURL         string
	FallbackFileURL string
	RequestTimeout  time.Duration
}

// Client is the remote data gateway for the three backend resources
// (session, employees, receipts). Every call is single-attempt; a non-2xx
// status becomes a request error carrying the server's textual body when it
// sent one.
type Client struct {
	baseURL         string
	fallbackFileURL string
	timeout         time.Duration
	httpClient      *http.Client
	tokens          TokenSource
	sessions        SessionWriter
	logger          *slog.Logger
}

func NewClient(cfg Config, tokens TokenSource, sessions SessionWriter, logger *slog.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		fallbackFileURL: cfg.FallbackFileURL,
		timeout:         timeout,
		httpClient:      &http.Client{Timeout: timeout},
		tokens:          tokens,
		sessions:        sessions,
		logger:          logger,
	}
}

// SignIn authenticates against the demo login endpoint, maps the response
// user to the local model and persists the session before returning.
func (c *Client) SignIn(ctx context.Context, identifier, secret string) (string, usermodel.User, error) {
	payload := signInRequest{Username: identifier, Password: secret}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/users/demo_login/", nil, payload, authNone)
	if err != nil {
		return "", usermodel.User{}, err
	}

	var resp signInResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", usermodel.User{}, internal.NewRequestError("unexpected login response", 0).WithCode(internal.ErrCodeInvalidResponse).WithCause(err)
	}

	mapped := MapUser(resp.User)

	if err := c.sessions.SaveSession(resp.Token, mapped); err != nil {
		c.logger.Error("failed to persist session after sign-in", "error", err, "user_id", mapped.ID)
		return "", usermodel.User{}, err
	}

	c.logger.Info("signed in", "user_id", mapped.ID)
	return resp.Token, mapped, nil
}

// FetchEmployees lists employees, optionally narrowed by the
// server-delegated filter params (nationality, employeeNumber, firstName,
// lastName, email).
func (c *Client) FetchEmployees(ctx context.Context, params map[string]string) ([]employeemodel.Employee, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/users/", params, nil, authToken)
	if err != nil {
		return nil, err
	}

	var wires []EmployeeWire
	if _, err := decodeList(body, &wires); err != nil {
		return nil, internal.NewRequestError("unexpected employees response", 0).WithCode(internal.ErrCodeInvalidResponse).WithCause(err)
	}

	employees := make([]employeemodel.Employee, 0, len(wires))
	for _, w := range wires {
		employees = append(employees, MapEmployee(w))
	}

	c.logger.Debug("fetched employees", "count", len(employees))
	return employees, nil
}

// FetchReceipts lists one server-driven page of receipts. Supported params:
// year, month, type, isSended, isReaded, isSigned, page.
func (c *Client) FetchReceipts(ctx context.Context, params map[string]string) (receiptmodel.Page, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/receipts/", params, nil, authToken)
	if err != nil {
		return receiptmodel.Page{}, err
	}

	var wires []ReceiptWire
	env, err := decodeList(body, &wires)
	if err != nil {
		return receiptmodel.Page{}, internal.NewRequestError("unexpected receipts response", 0).WithCode(internal.ErrCodeInvalidResponse).WithCause(err)
	}

	items := make([]receiptmodel.Receipt, 0, len(wires))
	for _, w := range wires {
		items = append(items, MapReceipt(w))
	}

	c.logger.Debug("fetched receipts", "count", len(items), "num_pages", env.NumPages)
	return receiptmodel.Page{
		Items:      items,
		NumPages:   env.NumPages,
		TotalCount: env.TotalCount,
		PerPage:    env.PerPage,
	}, nil
}

// FetchReceiptFileURL asks the backend for the direct link to a receipt's
// PDF.
func (c *Client) FetchReceiptFileURL(ctx context.Context, id int64) (string, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/receipts/%d/file", c.baseURL, id), nil, nil, authToken)
	if err != nil {
		return "", err
	}

	var resp receiptFileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", internal.NewRequestError("unexpected receipt file response", 0).WithCode(internal.ErrCodeInvalidResponse).WithCause(err)
	}
	if resp.File == "" {
		return "", internal.NewRetrievalError("respuesta inválida: falta URL del archivo", internal.ErrCodeFileURLUnavailable)
	}

	return resp.File, nil
}

// FetchReceiptBinary downloads the raw PDF payload from the fixed fallback
// source. The fallback host is not receipt-specific; id is logged for
// traceability only.
func (c *Client) FetchReceiptBinary(ctx context.Context, id int64) ([]byte, error) {
	c.logger.Debug("fetching receipt binary fallback", "receipt_id", id)
	return c.do(ctx, http.MethodGet, c.fallbackFileURL, nil, nil, authBearer)
}

// Download fetches an arbitrary URL (the direct receipt link) without
// auth headers; receipt files are served from presigned storage URLs.
func (c *Client) Download(ctx context.Context, fileURL string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, fileURL, nil, nil, authNone)
}

func (c *Client) do(ctx context.Context, method, rawURL string, params map[string]string, payload any, scheme authScheme) ([]byte, error) {
	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		rawURL = rawURL + "?" + q.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	requestID := internal.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	ctx = logger.With(logger.Attach(ctx, c.logger), "request_id", requestID)
	log := logger.From(ctx)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if scheme != authNone {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, err
		}
		switch scheme {
		case authToken:
			if token != "" {
				req.Header.Set("Authorization", "Token "+token)
			}
		case authBearer:
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "method", method, "url", rawURL, "error", err)
		return nil, internal.NewRequestError("request failed", 0).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		appErr := newRequestError(resp.StatusCode, raw)
		log.Warn("request rejected", "method", method, "url", rawURL, "status", resp.StatusCode)
		return nil, appErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, internal.NewRequestError("failed to read response body", resp.StatusCode).WithCause(err)
	}

	return body, nil
}

// newRequestError builds the request error for a non-2xx response: the
// server's detail/message text when it sent one, otherwise the raw body,
// otherwise a status-based message. A structured code in the body is carried
// through so callers can classify without string matching.
func newRequestError(status int, raw []byte) *internal.AppError {
	message := strings.TrimSpace(string(raw))

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		if eb.Detail != "" {
			message = eb.Detail
		} else if eb.Message != "" {
			message = eb.Message
		}
	}

	if message == "" {
		message = fmt.Sprintf("request failed (%d)", status)
	}

	appErr := internal.NewRequestError(message, status)
	if eb.Code != "" {
		appErr.Code = internal.ErrorCode(strings.ToUpper(eb.Code))
	}
	return appErr
}
