package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

// DefaultAPIHost is the GitHub REST API base URL.
const DefaultAPIHost = "https://api.github.com"

var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// ResolutionError reports that a requested version could not be turned into a tag.
type ResolutionError struct {
	Repo string
	msg  string
	Err  error
}

func (e *ResolutionError) Error() string {
	return e.msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func resolutionErrorf(repo string, cause error, format string, args ...any) *ResolutionError {
	return &ResolutionError{Repo: repo, msg: fmt.Sprintf(format, args...), Err: cause}
}

// Resolver turns a requested version into a concrete release tag.
type Resolver struct {
	client    *http.Client
	apiHost   string
	token     string
	userAgent string
}

// ResolverOptions configures a Resolver. Zero values select defaults.
type ResolverOptions struct {
	Client    *http.Client
	APIHost   string
	Token     string
	UserAgent string
}

// NewResolver creates a Resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	r := &Resolver{
		client:    opts.Client,
		apiHost:   strings.TrimRight(opts.APIHost, "/"),
		token:     strings.TrimSpace(opts.Token),
		userAgent: opts.UserAgent,
	}
	if r.client == nil {
		r.client = defaultHTTPClient
	}
	if r.apiHost == "" {
		r.apiHost = DefaultAPIHost
	}
	if r.userAgent == "" {
		r.userAgent = "vtx-install"
	}
	return r
}

// Resolve returns a copy of spec with Resolved set.
// Explicit versions are normalized without network access; "latest" costs
// exactly one metadata request and is never retried.
func (r *Resolver) Resolve(ctx context.Context, spec Spec) (Spec, error) {
	if _, _, err := splitRepo(spec.Repo); err != nil {
		return Spec{}, resolutionErrorf(spec.Repo, err, "%s", err.Error())
	}

	var tag string
	if IsLatest(spec.Requested) {
		latest, err := r.fetchLatestTag(ctx, spec.Repo)
		if err != nil {
			return Spec{}, err
		}
		tag = latest
	} else {
		tag = NormalizeTag(spec.Requested)
	}
	if !validTag(tag) {
		return Spec{}, resolutionErrorf(spec.Repo, nil, messages.ResolveInvalidTagFmt, tag)
	}

	spec.Resolved = tag
	return spec, nil
}

type latestReleaseResponse struct {
	TagName *string `json:"tag_name"`
}

// fetchLatestTag reads tag_name from the repository's latest release.
func (r *Resolver) fetchLatestTag(ctx context.Context, repo string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", r.apiHost, strings.TrimSpace(repo))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", resolutionErrorf(repo, err, messages.ResolveRequestFmt, repo, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", r.userAgent)
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", resolutionErrorf(repo, err, messages.ResolveRequestFmt, repo, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if isRateLimited(resp) {
			return "", resolutionErrorf(repo, nil, messages.ResolveRateLimitedFmt, repo, resp.Status)
		}
		return "", resolutionErrorf(repo, nil, messages.ResolveStatusFmt, repo, resp.Status)
	}

	var payload latestReleaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", resolutionErrorf(repo, err, messages.ResolveDecodeFmt, repo, err)
	}
	if payload.TagName == nil || strings.TrimSpace(*payload.TagName) == "" {
		return "", resolutionErrorf(repo, nil, messages.ResolveMissingTagFmt, repo)
	}
	return strings.TrimSpace(*payload.TagName), nil
}

// isRateLimited reports whether resp is GitHub's rate-limit rejection.
// GitHub answers 429, or 403 with X-RateLimit-Remaining set to zero.
func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode != http.StatusForbidden {
		return false
	}
	remaining, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining")))
	return err == nil && remaining == 0
}
