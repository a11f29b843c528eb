package explorer

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

	"go.uber.org/zap"

	"volumeScope/internal/model"
)

const (
	// ActionTxList fetches native-currency transfer history.
	ActionTxList = "txlist"
	// ActionTokenTx fetches token transfer history.
	ActionTokenTx = "tokentx"

	// pageSize is the provider's maximum records per page.
	pageSize = 10000

	// busyMarker appears in the response message when the provider is
	// overloaded.
	busyMarker = "NOTOK"
)

// Client fetches paginated account history from an Etherscan V2 style API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	policy     RetryPolicy
	logger     *zap.Logger
}

// NewClient builds a Client for the given endpoint and key.
func NewClient(baseURL, apiKey string, policy RetryPolicy, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		policy:     policy.normalized(),
		logger:     logger,
	}
}

// envelope is the provider's response shape. Result is raw because it holds
// a record array on success but a plain string on errors.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// FetchAll retrieves the complete history for one action, walking pages from
// page 1 in order until the provider returns a short page or reports end of
// data. Exhausted retries surface as NetworkError; an explicit overload
// signal surfaces as ProviderBusyError without consuming the retry budget.
func (c *Client) FetchAll(ctx context.Context, action, address string, chainID uint64) ([]model.TransactionRecord, error) {
	var all []model.TransactionRecord

	for page := 1; ; page++ {
		records, last, err := c.fetchPage(ctx, action, address, chainID, page)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
		if last {
			break
		}

		if c.policy.PageDelay > 0 {
			timer := time.NewTimer(c.policy.PageDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	c.logger.Debug("fetch complete",
		zap.String("action", action),
		zap.Uint64("chain_id", chainID),
		zap.Int("records", len(all)),
	)
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, action, address string, chainID uint64, page int) ([]model.TransactionRecord, bool, error) {
	var records []model.TransactionRecord
	var last bool

	err := withRetry(ctx, c.policy.MaxAttempts, c.policy.BaseDelay, func(ctx context.Context) error {
		var err error
		records, last, err = c.requestPage(ctx, action, address, chainID, page)
		if err != nil {
			c.logger.Warn("page fetch failed",
				zap.String("action", action),
				zap.Uint64("chain_id", chainID),
				zap.Int("page", page),
				zap.Error(err),
			)
		}
		return err
	})
	if err != nil {
		var busy *model.ProviderBusyError
		if errors.As(err, &busy) {
			return nil, false, err
		}
		return nil, false, &model.NetworkError{
			Op:  fmt.Sprintf("%s page %d (chain %d)", action, page, chainID),
			Err: err,
		}
	}
	return records, last, nil
}

func (c *Client) requestPage(ctx context.Context, action, address string, chainID uint64, page int) ([]model.TransactionRecord, bool, error) {
	query := url.Values{}
	query.Set("module", "account")
	query.Set("action", action)
	query.Set("address", address)
	query.Set("startblock", "0")
	query.Set("endblock", "99999999")
	query.Set("sort", "asc")
	query.Set("chainId", strconv.FormatUint(chainID, 10))
	query.Set("page", strconv.Itoa(page))
	query.Set("offset", strconv.Itoa(pageSize))
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}

	if env.Status != "1" {
		if strings.Contains(env.Message, busyMarker) {
			var detail string
			_ = json.Unmarshal(env.Result, &detail)
			return nil, false, &model.ProviderBusyError{Message: detail}
		}
		// Provider reports no more data for this query.
		return nil, true, nil
	}

	var records []model.TransactionRecord
	if err := json.Unmarshal(env.Result, &records); err != nil {
		return nil, false, fmt.Errorf("decode result: %w", err)
	}
	if len(records) == 0 {
		return nil, true, nil
	}
	return records, len(records) < pageSize, nil
}
