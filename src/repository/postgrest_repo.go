package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/peakyminds/challenge-seo/src/domain"
)

const (
	documentsPath = "/rest/v1/documents"

	// error bodies from PostgREST are short JSON objects
	maxErrorBodySize = 1024
)

type PostgRESTConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// PostgRESTRepository reads the documents collection over the PostgREST API
type PostgRESTRepository struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewPostgRESTRepository(config PostgRESTConfig) *PostgRESTRepository {
	return NewPostgRESTRepositoryWithClient(config, &http.Client{Timeout: config.Timeout})
}

func NewPostgRESTRepositoryWithClient(config PostgRESTConfig, client *http.Client) *PostgRESTRepository {
	return &PostgRESTRepository{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		client:  client,
	}
}

// ListSlugs returns the slug of every document
func (r *PostgRESTRepository) ListSlugs(ctx context.Context) ([]string, error) {
	query := url.Values{}
	query.Set("select", "slug")

	var rows []struct {
		Slug string `json:"slug"`
	}
	if err := r.get(ctx, query, &rows); err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Slug == "" {
			continue
		}
		slugs = append(slugs, row.Slug)
	}
	return slugs, nil
}

// FindBySlug fetches the single document matching slug
func (r *PostgRESTRepository) FindBySlug(ctx context.Context, slug string) (*domain.Challenge, error) {
	query := url.Values{}
	query.Set("slug", "eq."+slug)
	query.Set("select", "slug,title,image_url")

	var rows []domain.Challenge
	if err := r.get(ctx, query, &rows); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, domain.NewError(
			domain.ErrorCodeResourceNotFound,
			fmt.Errorf("challenge %q not found", slug),
			domain.WithMsg("Challenge not found"),
			domain.WithDetail("slug", slug),
		)
	}

	challenge := rows[0]
	return &challenge, nil
}

func (r *PostgRESTRepository) get(ctx context.Context, query url.Values, out interface{}) error {
	endpoint := r.baseURL + documentsPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.NewError(domain.ErrorCodeInternalProcess, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return remoteError(fmt.Errorf("failed to query documents: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return remoteError(
			fmt.Errorf("documents query returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			domain.WithDetail("remote_status", resp.StatusCode),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return remoteError(fmt.Errorf("failed to decode documents response: %w", err))
	}

	return nil
}

// remoteError marks err as an upstream failure, never as absence
func remoteError(err error, opts ...domain.ErrorOption) error {
	opts = append([]domain.ErrorOption{domain.WithMsg("Challenge backend unavailable")}, opts...)
	return domain.NewError(domain.ErrorCodeRemoteProcess, err, opts...)
}
