package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

func (c *clientImpl) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, int, error) {
	return c.do(ctx, c.config.Retries, headers, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	})
}

func (c *clientImpl) PostForm(ctx context.Context, rawURL string, form url.Values, headers map[string]string) ([]byte, int, error) {
	encoded := form.Encode()
	return c.do(ctx, 0, headers, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentTypeForm)
		return req, nil
	})
}

// do sends the request built by build, retrying up to retries times. The body
// of the last response is returned whatever its status.
func (c *clientImpl) do(ctx context.Context, retries int, headers map[string]string, build func() (*http.Request, error)) ([]byte, int, error) {
	var (
		resp *http.Response
		err  error
	)
	for attempt := 0; ; attempt++ {
		var req *http.Request
		if req, err = build(); err != nil {
			return nil, 0, fmt.Errorf("build request: %w", err)
		}
		for k, v := range c.config.Headers {
			req.Header.Set(k, v)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err = c.client.Do(req)
		retryable := err != nil || resp.StatusCode >= http.StatusInternalServerError
		if !retryable || attempt >= retries {
			break
		}
		if resp != nil {
			resp.Body.Close()
		}
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		case <-time.After(c.config.RetryWait):
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
