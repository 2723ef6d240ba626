package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"dexbot/internal/infra"
)

// rpcClient posts method-call envelopes to a collaborator endpoint. One
// instance per endpoint; requests share a rate limiter and circuit breaker.
type rpcClient struct {
	baseURL string
	http    *http.Client
	limiter *infra.RateLimiter
	breaker *infra.CircuitBreaker
}

func newRPCClient(baseURL, name string) *rpcClient {
	return &rpcClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		limiter: infra.NewRateLimiter(5, 10),
		breaker: infra.NewCircuitBreaker(infra.DefaultCircuitBreakerConfig(name)),
	}
}

// rpcRequest is the wire envelope: a method name plus positional args.
type rpcRequest struct {
	Canister string `json:"canister"`
	Method   string `json:"method"`
	Args     []any  `json:"args"`
}

// rpcResponse mirrors the collaborators' ok/err result convention.
type rpcResponse struct {
	Ok  json.RawMessage `json:"ok,omitempty"`
	Err *string         `json:"err,omitempty"`
}

// errApp marks an application-level rejection inside call; adapters convert
// it to their typed error.
type errApp struct {
	reason string
}

func (e *errApp) Error() string { return e.reason }

// call invokes method on the collaborator identified by canister and decodes
// the ok-value into out (when out is non-nil). Transport failures trip the
// breaker; application rejections do not, since the endpoint is healthy.
// No retries here: retry policy belongs to the caller.
func (c *rpcClient) call(ctx context.Context, canister, method string, args []any, out any) error {
	if !c.breaker.Allow() {
		return fmt.Errorf("call %s.%s: circuit open", canister, method)
	}
	c.limiter.Wait()

	body, err := json.Marshal(rpcRequest{Canister: canister, Method: method, Args: args})
	if err != nil {
		return fmt.Errorf("encode %s.%s request: %w", canister, method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/call", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s.%s request: %w", canister, method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return fmt.Errorf("call %s.%s: %w", canister, method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return fmt.Errorf("read %s.%s response: %w", canister, method, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.breaker.RecordFailure()
		return fmt.Errorf("call %s.%s: status %d: %s", canister, method, resp.StatusCode, raw)
	}
	c.breaker.RecordSuccess()

	var env rpcResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s.%s response: %w", canister, method, err)
	}
	if env.Err != nil {
		return &errApp{reason: *env.Err}
	}
	if out != nil {
		if err := json.Unmarshal(env.Ok, out); err != nil {
			return fmt.Errorf("decode %s.%s ok-value: %w", canister, method, err)
		}
	}
	return nil
}
