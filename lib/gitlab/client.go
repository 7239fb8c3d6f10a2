package gitlab

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Client is the read-only slice of the GitLab API this tool needs. The
// attribution engine talks to this interface, never to HTTP directly.
type Client interface {
	GetProject(ctx context.Context, ref string) (*Project, error)
	GetCommit(ctx context.Context, projectID int, revision string) (*Commit, error)
	GetCommitDiffs(ctx context.Context, projectID int, revision string) ([]*Diff, error)
	GetFile(ctx context.Context, projectID int, path string, revision string) (*File, error)

	// GetFileContent fetches and decodes the file payload in one call.
	GetFileContent(ctx context.Context, projectID int, path string, revision string) (string, error)
}

type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type httpClient struct {
	opts Options
	http *http.Client
}

var ErrNotFound = errors.New("not found")

func NewClient(opts Options) (Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("gitlab base url not configured")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")

	return &httpClient{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}, nil
}

// IsNotFound tells a missing resource apart from a transport failure.
// A missing file at a revision is expected and meaningful.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (c *httpClient) GetProject(ctx context.Context, ref string) (*Project, error) {
	var result Project
	err := c.queryJSON(ctx, "projects/"+url.PathEscape(ref), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *httpClient) GetCommit(ctx context.Context, projectID int, revision string) (*Commit, error) {
	var result Commit
	err := c.queryJSON(ctx,
		fmt.Sprintf("projects/%v/repository/commits/%v", projectID, url.PathEscape(revision)),
		&result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *httpClient) GetCommitDiffs(ctx context.Context, projectID int, revision string) ([]*Diff, error) {
	var result []*Diff
	err := c.queryJSON(ctx,
		fmt.Sprintf("projects/%v/repository/commits/%v/diff", projectID, url.PathEscape(revision)),
		&result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *httpClient) GetFile(ctx context.Context, projectID int, path string, revision string) (*File, error) {
	var result File
	err := c.queryJSON(ctx,
		fmt.Sprintf("projects/%v/repository/files/%v?ref=%v",
			projectID, url.PathEscape(path), url.QueryEscape(revision)),
		&result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *httpClient) GetFileContent(ctx context.Context, projectID int, path string, revision string) (string, error) {
	file, err := c.GetFile(ctx, projectID, path, revision)
	if err != nil {
		return "", err
	}

	return DecodeContent(file)
}

func DecodeContent(file *File) (string, error) {
	switch file.Encoding {
	case "", "text":
		return file.Content, nil

	case "base64":
		decoded, err := base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			return "", errors.Wrapf(err, "error decoding content of %v", file.FilePath)
		}
		return string(decoded), nil

	default:
		return "", errors.Errorf("unknown content encoding %v for %v", file.Encoding, file.FilePath)
	}
}

func (c *httpClient) queryJSON(ctx context.Context, resource string, result any) error {
	u := c.opts.BaseURL + "/api/v4/" + resource

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrapf(err, "error building request for %v", resource)
	}

	if c.opts.Token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.opts.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "error querying %v", resource)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrapf(ErrNotFound, "%v", resource)

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Errorf("error querying %v: status %v: %v",
			resource, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	err = json.NewDecoder(resp.Body).Decode(result)
	if err != nil {
		return errors.Wrapf(err, "error parsing response of %v", resource)
	}

	return nil
}
