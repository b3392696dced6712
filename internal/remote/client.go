// Package remote talks to the content server: health check, update events,
// content metadata, content files and share statistics.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/httpclient"
	"github.com/cesargomez89/soundboard/internal/storage"
)

type Client struct {
	baseURL string
	http    *httpclient.Client
}

func NewClient(baseURL string, hc *httpclient.Client) *Client {
	if hc == nil {
		hc = httpclient.NewClient(nil, constants.DefaultRequestInterval)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// CheckStatus succeeds only when the health route answers 200 with the
// expected body.
func (c *Client) CheckStatus(ctx context.Context) error {
	const op = "status check"

	ctx, cancel := context.WithTimeout(ctx, constants.StatusHTTPTimeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, "/v3/status-check", nil)
	if err != nil {
		return &Error{Kind: KindUnavailable, Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &Error{Kind: KindUnavailable, Op: op, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return &Error{Kind: KindUnavailable, Op: op, Err: err}
	}
	text := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if text != constants.StatusCheckOK {
		return &Error{Kind: KindUnavailable, Op: op, Err: fmt.Errorf("unexpected body %q", text)}
	}
	return nil
}

// UpdateEvents lists the server's update events since the given timestamp,
// or every event when since is constants.LastUpdateAll.
func (c *Client) UpdateEvents(ctx context.Context, since string) ([]domain.UpdateEvent, error) {
	if since == "" {
		since = constants.LastUpdateAll
	}
	events, err := getJSON[[]domain.UpdateEvent](ctx, c, "update events", "/v3/update-events/"+url.PathEscape(since))
	if err != nil {
		return nil, err
	}
	for i := range events {
		// Server-side success flags mean nothing locally.
		events[i].DidSucceed = nil
	}
	return events, nil
}

func (c *Client) Sound(ctx context.Context, id string) (*domain.Sound, error) {
	return getJSONPtr[domain.Sound](ctx, c, "get sound", "/v3/sound/"+url.PathEscape(id))
}

func (c *Client) Song(ctx context.Context, id string) (*domain.Song, error) {
	return getJSONPtr[domain.Song](ctx, c, "get song", "/v3/song/"+url.PathEscape(id))
}

func (c *Client) Author(ctx context.Context, id string) (*domain.Author, error) {
	return getJSONPtr[domain.Author](ctx, c, "get author", "/v3/author/"+url.PathEscape(id))
}

func (c *Client) Genre(ctx context.Context, id string) (*domain.MusicGenre, error) {
	return getJSONPtr[domain.MusicGenre](ctx, c, "get genre", "/v3/music-genre/"+url.PathEscape(id))
}

// AudienceStatistics returns the server-wide all-time share counts.
func (c *Client) AudienceStatistics(ctx context.Context) ([]domain.AudienceShareStat, error) {
	return getJSON[[]domain.AudienceShareStat](ctx, c, "audience statistics", "/v3/sound-share-count-stats-all-time")
}

// PostShareCount reports one local share to the server.
func (c *Client) PostShareCount(ctx context.Context, stat domain.ShareCountStat) error {
	const op = "post share count"

	payload, err := json.Marshal(stat)
	if err != nil {
		return fmt.Errorf("failed to encode share count: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/v3/share-count-stat", payload)
	if err != nil {
		return transportError(op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &Error{Kind: KindRejected, Op: op, Status: resp.StatusCode}
	}
	return nil
}

// FilePath is the server path of a sound or song file.
func FilePath(mediaType domain.MediaType, contentID string) (string, error) {
	switch mediaType {
	case domain.MediaTypeSound:
		return "/sounds/" + url.PathEscape(contentID) + constants.ExtMP3, nil
	case domain.MediaTypeSong:
		return "/songs/" + url.PathEscape(contentID) + constants.ExtMP3, nil
	}
	return "", fmt.Errorf("media type %s has no content file", mediaType)
}

// DownloadFile streams a content file into destPath. The destination is
// replaced atomically, so a failed download leaves any previous file intact.
func (c *Client) DownloadFile(ctx context.Context, mediaType domain.MediaType, contentID, destPath string) (int64, error) {
	const op = "download file"

	path, err := FilePath(mediaType, contentID)
	if err != nil {
		return 0, err
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, transportError(op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := checkResponse(op, resp); err != nil {
		return 0, err
	}

	n, err := storage.WriteAtomic(destPath, resp.Body)
	if err != nil {
		return 0, &Error{Kind: KindTransport, Op: op, Err: err}
	}
	return n, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := httpclient.NewRequest(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", constants.MimeTypeJSON)
	return c.http.Do(ctx, req)
}

func getJSON[T any](ctx context.Context, c *Client, op, path string) (T, error) {
	var out T

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return out, transportError(op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := checkResponse(op, resp); err != nil {
		return out, err
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, &Error{Kind: KindBadResponse, Op: op, Status: resp.StatusCode, Err: err}
	}
	return out, nil
}

func getJSONPtr[T any](ctx context.Context, c *Client, op, path string) (*T, error) {
	v, err := getJSON[T](ctx, c, op, path)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func checkResponse(op string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Op: op, Status: resp.StatusCode}
	case resp.StatusCode >= 500:
		return &Error{Kind: KindUnavailable, Op: op, Status: resp.StatusCode}
	default:
		return &Error{Kind: KindBadResponse, Op: op, Status: resp.StatusCode}
	}
}

// transportError classifies a failed Do. Throttling that outlasted every
// retry counts as the server being unavailable.
func transportError(op string, err error) error {
	var se *httpclient.StatusError
	if errors.As(err, &se) {
		return &Error{Kind: KindUnavailable, Op: op, Status: se.StatusCode}
	}
	return &Error{Kind: KindTransport, Op: op, Err: err}
}
