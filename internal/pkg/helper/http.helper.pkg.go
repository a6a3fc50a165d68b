package helper

import (
	"bytes"
	"context"
	"crypto/tls"
	"efood-checkout/internal/common/enum"
	"efood-checkout/internal/pkg/logger"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// HTTPClientConfig tunes the outbound client used for remote APIs.
type HTTPClientConfig struct {
	ProxyURL       string
	SkipTLSVerify  bool
	RequestTimeout time.Duration
}

type HTTPClient struct {
	Client *http.Client
	Config *HTTPClientConfig
}

type HTTPRequestPayload struct {
	Method enum.MethodEnum
	URL    string
	Params map[string]string
	Body   any
}

type BasicAuth struct {
	Username string
	Password string
}

type HTTPRequestConfig struct {
	Ctx     context.Context
	Headers http.Header
	Auth    *BasicAuth
}

type HTTPAPIResponse struct {
	StatusCode int
	Headers    http.Header
	Data       []byte
}

// IsSuccess reports a 2xx status.
func (r *HTTPAPIResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func NewHTTPClient(cfg *HTTPClientConfig) *HTTPClient {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			logger.Error.Printf("Invalid proxy URL: %v", err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.Debug.Printf("Using proxy: %s", cfg.ProxyURL)
		}
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &HTTPClient{
		Client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		Config: cfg,
	}
}

// HTTPRequest performs a JSON request and returns the raw body with status.
// Non-2xx statuses are not errors here; callers decide what they mean.
func (h *HTTPClient) HTTPRequest(payload *HTTPRequestPayload, config *HTTPRequestConfig) (*HTTPAPIResponse, error) {
	if config == nil {
		config = &HTTPRequestConfig{}
	}
	if config.Ctx == nil {
		config.Ctx = context.Background()
	}

	body, err := handleRequestBody(payload)
	if err != nil {
		logger.Debug.Println("Error handling request body:", err.Error())
		return nil, err
	}

	req, err := prepareRequest(payload, body, config)
	if err != nil {
		logger.Debug.Println("Error preparing request:", err.Error())
		return nil, err
	}

	logger.Debug.Printf("%s %s", req.Method, req.URL.String())

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug.Printf("%s %s completed with status: %d", req.Method, req.URL.String(), resp.StatusCode)

	return &HTTPAPIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Data:       data,
	}, nil
}

func handleRequestBody(payload *HTTPRequestPayload) (io.Reader, error) {
	if payload.Body == nil {
		return nil, nil
	}

	switch v := payload.Body.(type) {
	case []byte:
		return bytes.NewReader(v), nil
	case string:
		return bytes.NewBufferString(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		return bytes.NewReader(b), nil
	}
}

func prepareRequest(payload *HTTPRequestPayload, body io.Reader, config *HTTPRequestConfig) (*http.Request, error) {
	if !payload.Method.IsValid() {
		return nil, fmt.Errorf("unsupported method %q", payload.Method)
	}

	req, err := http.NewRequestWithContext(config.Ctx, payload.Method.ToString(), payload.URL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range config.Headers {
		req.Header[key] = append(req.Header[key], values...)
	}

	if config.Auth != nil {
		req.SetBasicAuth(config.Auth.Username, config.Auth.Password)
	}

	if len(payload.Params) > 0 {
		q := req.URL.Query()
		for key, value := range payload.Params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req, nil
}
