package client

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

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/dmitrijs2005/ideaboard/internal/netx"
	"github.com/hashicorp/go-cleanhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Options configures an HTTPClient. An empty APIBaseURL puts the client in
// offline mode: every API call fails with ErrUnavailable.
type Options struct {
	APIBaseURL        string
	FormSubmissionURL string
	// HealthAddr is the gRPC health endpoint. Without it Ping falls back to
	// GET /healthz on the API.
	HealthAddr string
	Timeout    time.Duration
}

// HTTPClient talks JSON over HTTP to the ideas API.
type HTTPClient struct {
	apiBase string
	formURL string
	http    *http.Client

	healthConn *grpc.ClientConn
	health     healthpb.HealthClient
}

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	hc := cleanhttp.DefaultPooledClient()
	if opts.Timeout > 0 {
		hc.Timeout = opts.Timeout
	}

	c := &HTTPClient{
		apiBase: strings.TrimRight(opts.APIBaseURL, "/"),
		formURL: opts.FormSubmissionURL,
		http:    hc,
	}

	if opts.HealthAddr != "" {
		conn, err := grpc.NewClient(opts.HealthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("health client: %w", err)
		}
		c.healthConn = conn
		c.health = healthpb.NewHealthClient(conn)
	}

	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	if c.healthConn != nil {
		return c.healthConn.Close()
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	if c.health == nil {
		return c.do(ctx, http.MethodGet, c.apiURL("/healthz"), "", nil, nil)
	}

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return mapHealthError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func mapHealthError(err error) error {
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("health check: %w", err)
	}
}

func (c *HTTPClient) NotifySignup(ctx context.Context, notice models.SignupNotice) error {
	if c.formURL == "" {
		return nil
	}
	return c.do(ctx, http.MethodPost, c.formURL, "", notice, nil)
}

func (c *HTTPClient) ListIdeas(ctx context.Context) ([]models.Idea, error) {
	var ideas []models.Idea
	if err := c.do(ctx, http.MethodGet, c.apiURL("/api/ideas"), "", nil, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (c *HTTPClient) CreateIdea(ctx context.Context, token string, idea *models.Idea) (*models.Idea, error) {
	var created models.Idea
	err := c.do(ctx, http.MethodPost, c.apiURL("/api/ideas"), token, idea, &created)
	if errors.Is(err, errUndecodableBody) {
		// The status already says the idea was stored.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) SaveProfile(ctx context.Context, token string, profile *models.Profile) error {
	return c.do(ctx, http.MethodPost, c.apiURL("/api/profile"), token, profile, nil)
}

func (c *HTTPClient) PresignImageUpload(ctx context.Context, token, contentType string) (*models.ImageUpload, error) {
	in := struct {
		ContentType string `json:"contentType"`
	}{ContentType: contentType}

	var out models.ImageUpload
	if err := c.do(ctx, http.MethodPost, c.apiURL("/api/images"), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UploadImage(ctx context.Context, upload *models.ImageUpload, contentType string, body io.Reader) error {
	if err := netx.UploadToPresignedURL(ctx, c.http, upload.UploadURL, contentType, body); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// errUndecodableBody marks a 2xx response whose body is empty or not the
// expected JSON.
var errUndecodableBody = errors.New("undecodable response body")

func (c *HTTPClient) apiURL(path string) string {
	if c.apiBase == "" {
		return ""
	}
	return c.apiBase + path
}

func (c *HTTPClient) do(ctx context.Context, method, url, token string, in, out any) error {
	if url == "" {
		return ErrUnavailable
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", errUndecodableBody, method, url, err)
	}
	return nil
}
