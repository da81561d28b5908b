package account

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/lightsout-league/pickem/internal/domain/user"
	"github.com/lightsout-league/pickem/internal/platform/resilience"
)

// Verifier resolves a bearer token to the caller's identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (user.Principal, error)
}

var (
	ErrTokenInvalid = crerr.New("token is invalid")
	errTransient    = crerr.New("identity provider transient failure")
)

const (
	introspectTimeout   = 5 * time.Second
	principalCacheTTL   = 2 * time.Minute
	principalCacheLimit = 4096
)

// IntrospectionClient verifies tokens against the identity provider's
// introspection endpoint. Verified principals are cached briefly by
// token hash, and a circuit breaker keeps a dead provider from stalling
// every request.
type IntrospectionClient struct {
	baseURL    string
	serviceKey string
	timeout    time.Duration
	httpClient *fasthttp.Client
	cache      *principalCache
	breaker    *resilience.CircuitBreaker
}

func NewIntrospectionClient(baseURL, serviceKey string, timeout time.Duration, breakerCfg resilience.CircuitBreakerConfig) *IntrospectionClient {
	if timeout <= 0 {
		timeout = introspectTimeout
	}
	breakerCfg = resilience.NormalizeCircuitBreakerConfig(breakerCfg)
	var breaker *resilience.CircuitBreaker
	if breakerCfg.Enabled {
		breaker = resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq)
	}
	return &IntrospectionClient{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		serviceKey: serviceKey,
		timeout:    timeout,
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		cache:   newPrincipalCache(principalCacheTTL, principalCacheLimit),
		breaker: breaker,
	}
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (c *IntrospectionClient) Verify(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, ErrTokenInvalid
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return user.Principal{}, crerr.Wrap(err, "identity provider unavailable")
		}
	}

	principal, err := c.introspect(token)
	if c.breaker != nil {
		if crerr.Is(err, errTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return user.Principal{}, err
	}

	c.cache.Set(cacheKey, principal)
	return principal, nil
}

func (c *IntrospectionClient) introspect(token string) (user.Principal, error) {
	body, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "encode introspection request")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/v1/introspect")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.serviceKey != "" {
		req.Header.Set("X-Service-Key", c.serviceKey)
	}
	req.SetBody(body)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return user.Principal{}, crerr.Wrapf(errTransient, "introspect token: %v", err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusOK:
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return user.Principal{}, ErrTokenInvalid
	case status >= 500:
		return user.Principal{}, crerr.Wrapf(errTransient, "introspect token: status %d", status)
	default:
		return user.Principal{}, crerr.Newf("introspect token: unexpected status %d", status)
	}

	var parsed introspectResponse
	if err := sonic.Unmarshal(resp.Body(), &parsed); err != nil {
		return user.Principal{}, crerr.Wrap(err, "decode introspection response")
	}
	if !parsed.Active || parsed.UserID == "" {
		return user.Principal{}, ErrTokenInvalid
	}

	return user.Principal{UserID: parsed.UserID, Email: parsed.Email}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
