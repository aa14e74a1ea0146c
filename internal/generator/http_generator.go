package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "go-safety-poster/internal/errors"
	"go-safety-poster/internal/poster"
)

// FallbackErrorMessage is used when the backend fails without a response body.
const FallbackErrorMessage = "이미지를 가져오지 못했습니다."

// maxErrorBody bounds how much of a failure body is read into the message.
const maxErrorBody = 64 << 10

type Generator interface {
	Generate(ctx context.Context, endpoint string, req poster.Request) ([]poster.Image, error)
}

// HTTPGenerator posts poster requests to the generation backend
type HTTPGenerator struct {
	client *http.Client
}

// NewHTTPGenerator creates an HTTP generator. The client timeout is the
// outer bound; callers narrow it with their context.
func NewHTTPGenerator(timeout time.Duration) *HTTPGenerator {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 16 << 10,
	}

	return NewHTTPGeneratorWithClient(&http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("too many redirects (limit: 3)")
			}
			return nil
		},
	})
}

// NewHTTPGeneratorWithClient wraps an existing client.
func NewHTTPGeneratorWithClient(client *http.Client) *HTTPGenerator {
	return &HTTPGenerator{client: client}
}

// Generate posts req as JSON and returns the images in response order.
// A missing or empty images list is not an error.
func (g *HTTPGenerator) Generate(ctx context.Context, endpoint string, req poster.Request) ([]poster.Image, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewRequestError(fmt.Sprintf("invalid endpoint %q", endpoint), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewTimeoutError("이미지 생성 시간이 초과되었습니다.", err)
		}
		return nil, apperrors.NewRequestError(FallbackErrorMessage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		cause := fmt.Errorf("status code %d", resp.StatusCode)
		text, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := strings.TrimSpace(string(text))
		if readErr != nil {
			// A truncated body is not shown as the backend's message.
			message = ""
			cause = errors.Join(cause, fmt.Errorf("read error body: %w", readErr))
		}
		if message == "" {
			message = FallbackErrorMessage
		}
		return nil, apperrors.NewRequestError(message, cause)
	}

	var decoded poster.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.NewRequestError("응답을 해석하지 못했습니다.", err)
	}

	return decoded.Images, nil
}
