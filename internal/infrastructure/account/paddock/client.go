package paddock

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
	"github.com/pitwall/fantasy-gp/internal/platform/cache"
	"github.com/pitwall/fantasy-gp/internal/platform/resilience"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

var errPaddockTransient = crerr.New("paddock transient failure")

type ClientConfig struct {
	BaseURL        string
	IntrospectPath string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client verifies access tokens against the paddock account service.
// Verified principals are cached by token hash so hot users do not hit
// the account service on every request.
type Client struct {
	httpClient     *http.Client
	introspectURL  string
	logger         *slog.Logger
	cache          *cache.Store
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		introspectURL:  buildURL(cfg.BaseURL, cfg.IntrospectPath),
		logger:         logger,
		cache:          cache.NewStore(cacheTTL),
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.ProbeLimit),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		if principal, ok := cached.(user.Principal); ok {
			return principal, nil
		}
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "paddock circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: account service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.introspect(ctx, token)
	c.recordCircuitResult(err)
	if err != nil {
		return user.Principal{}, err
	}

	c.cache.Set(ctx, cacheKey, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: request introspection to paddock: %v", errPaddockTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "read introspect response")
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "paddock introspection non-200", "status_code", resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode/100 == 5 {
			return user.Principal{}, fmt.Errorf("%w: introspection failed with status %d", errPaddockTransient, resp.StatusCode)
		}
		return user.Principal{}, crerr.Newf("paddock introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "unmarshal introspect response")
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, crerr.New("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID:      decoded.UserID,
		DisplayName: decoded.DisplayName,
		IsAdmin:     decoded.IsAdmin,
	}, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if crerr.Is(err, errPaddockTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active      bool   `json:"active"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
