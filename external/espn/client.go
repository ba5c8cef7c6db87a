package espn

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/wins-pool/internal/domain/schedule"
	"github.com/riskibarqy/wins-pool/internal/domain/team"
	"github.com/riskibarqy/wins-pool/internal/platform/logging"
	"github.com/riskibarqy/wins-pool/internal/platform/resilience"
	"github.com/riskibarqy/wins-pool/internal/usecase"
)

const (
	defaultBaseURL      = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	defaultTimeout      = 15 * time.Second
	maxResponseBodySize = 6 << 20
)

var (
	errESPNTransient    = crerr.New("espn transient failure")
	errMalformedPayload = crerr.New("espn malformed payload")
)

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RateLimitRPS   float64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads team records and the scoreboard from the public ESPN site API.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	maxRetries int
	limiter    *rate.Limiter
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("espn")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "wins-pool",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     64,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	burst := 1
	if cfg.RateLimitRPS > 0 {
		limit = rate.Limit(cfg.RateLimitRPS)
		burst = max(int(cfg.RateLimitRPS), 1)
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
	breaker.OnTransition(func(from, to resilience.CircuitState) {
		logger.Warn("espn circuit breaker transition", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
		breaker:    breaker,
	}
}

// FetchTeamRecord implements team.RecordSource.
func (c *Client) FetchTeamRecord(ctx context.Context, code string) (team.Record, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return team.Record{}, fmt.Errorf("%w: team code is required", usecase.ErrInvalidInput)
	}

	var payload teamEnvelope
	// Team lookups bypass the breaker: each refresh fans out across the
	// whole roster and must see current API state for every team.
	if err := c.doJSON(ctx, "/teams/"+code, &payload, nil); err != nil {
		return team.Record{}, fmt.Errorf("fetch team record code=%s: %w", code, err)
	}

	rec, err := mapTeamRecord(payload)
	if err != nil {
		return team.Record{}, fmt.Errorf("map team record code=%s: %w", code, err)
	}
	return rec, nil
}

// FetchScoreboard implements schedule.Source.
func (c *Client) FetchScoreboard(ctx context.Context) ([]schedule.Event, error) {
	var payload scoreboardEnvelope
	if err := c.doJSON(ctx, "/scoreboard", &payload, c.breaker); err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	events, skipped := mapScoreboard(payload)
	if skipped > 0 {
		c.logger.WarnContext(ctx, "skipped malformed scoreboard events", "skipped", skipped, "kept", len(events))
	}
	return events, nil
}

// doJSON fetches path and decodes it into target. A nil breaker admits every request.
func (c *Client) doJSON(ctx context.Context, path string, target any, breaker *resilience.CircuitBreaker) error {
	if err := breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "path", path, "state", string(breaker.State()))
		return fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + path
	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil && isESPNCircuitFailure(reqErr) {
			breaker.RecordFailure()
		} else {
			breaker.RecordSuccess()
		}
		return body, reqErr
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode provider payload: %v", errMalformedPayload, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}

		body, status, err := c.send(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		case status >= 200 && status < 300:
			return body, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: provider status=%d body=%s", errESPNTransient, status, abbreviateBody(body))
		default:
			return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(body))
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.DebugContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// send performs one GET. The body is copied out before the pooled response is released.
func (c *Client) send(ctx context.Context, fullURL string) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func isESPNCircuitFailure(err error) bool {
	return err != nil && crerr.Is(err, errESPNTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
