package npm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	kderrors "github.com/matzehuels/knowdeps/pkg/errors"
	"github.com/matzehuels/knowdeps/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// PackageInfo is the registry metadata of a package's latest version.
type PackageInfo struct {
	Name        string
	Version     string
	Description string
	License     string
	Author      string
	Repository  string
	HomePage    string
}

// Client looks up packages in an npm registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option configures a [Client].
type Option func(*clientConfig)

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// WithBaseURL points the client at another registry (a mirror or a test server).
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient replaces the underlying HTTP client. It takes precedence
// over [WithTimeout].
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.timeout = d }
}

// NewClient creates a registry client. Without options it talks to
// [DefaultBaseURL] with [integrations.DefaultTimeout].
func NewClient(opts ...Option) *Client {
	cfg := clientConfig{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	hc := cfg.httpClient
	if hc == nil {
		hc = integrations.NewHTTPClient(cfg.timeout)
	}
	return &Client{
		Client:  integrations.NewClient(hc, nil),
		baseURL: cfg.baseURL,
	}
}

// BaseURL returns the registry base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Describe returns the top-level description of pkg as the registry wrote it.
// The response status is not consulted: npm answers unknown packages with a
// JSON error document, which has no description and yields "" and a nil error.
// A missing, non-string or blank description also yields "".
func (c *Client) Describe(ctx context.Context, pkg string) (string, error) {
	pkg = strings.TrimSpace(pkg)
	if err := kderrors.ValidatePackageName(pkg); err != nil {
		return "", err
	}
	var data descriptionResponse
	if _, err := c.GetJSON(ctx, c.PackageURL(pkg), &data); err != nil {
		return "", err
	}
	s, ok := data.Description.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", nil
	}
	return s, nil
}

// FetchPackage returns metadata for the version tagged latest.
func (c *Client) FetchPackage(ctx context.Context, pkg string) (*PackageInfo, error) {
	var data registryResponse
	if err := c.get(ctx, pkg, &data); err != nil {
		return nil, err
	}

	info := &PackageInfo{
		Name:        data.Name,
		Version:     data.DistTags.Latest,
		Description: extractField(data.Description, ""),
	}
	if v, ok := data.Versions[data.DistTags.Latest]; ok {
		if v.Description != "" {
			info.Description = v.Description
		}
		info.License = extractField(v.License, "type")
		info.Author = extractField(v.Author, "name")
		info.Repository = integrations.NormalizeRepoURL(extractField(v.Repository, "url"))
		info.HomePage = v.HomePage
	}
	return info, nil
}

// PackageURL returns the metadata endpoint for pkg. Scoped names keep their
// "@" and encode the separating slash.
func (c *Client) PackageURL(pkg string) string {
	return c.baseURL + "/" + escapeName(pkg)
}

func (c *Client) get(ctx context.Context, pkg string, v any) error {
	pkg = strings.TrimSpace(pkg)
	if err := kderrors.ValidatePackageName(pkg); err != nil {
		return err
	}
	if err := c.Get(ctx, c.PackageURL(pkg), v); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return err
	}
	return nil
}

func escapeName(pkg string) string {
	if strings.HasPrefix(pkg, "@") {
		return strings.Replace(pkg, "/", "%2F", 1)
	}
	return pkg
}

func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

type descriptionResponse struct {
	Description any `json:"description"`
}

type registryResponse struct {
	Name        string                    `json:"name"`
	Description any                       `json:"description"`
	DistTags    distTags                  `json:"dist-tags"`
	Versions    map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Description string `json:"description"`
	License     any    `json:"license"`
	Author      any    `json:"author"`
	Repository  any    `json:"repository"`
	HomePage    string `json:"homepage"`
}
