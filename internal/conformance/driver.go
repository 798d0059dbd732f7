package conformance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// APIDriver speaks the controller side of the Essensys protocol.
type APIDriver struct {
	baseURL  string
	client   *http.Client
	username string
	password string
}

func NewAPIDriver(baseURL string, client *http.Client) *APIDriver {
	if client == nil {
		client = &http.Client{}
	}
	return &APIDriver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// WithBasicAuth makes every request carry the given controller credentials.
func (d *APIDriver) WithBasicAuth(username, password string) *APIDriver {
	d.username = username
	d.password = password
	return d
}

func (d *APIDriver) ServerInfos(ctx context.Context) (*Response, error) {
	return d.do(ctx, http.MethodGet, "/api/serverinfos", "", nil)
}

// PostStatus sends body verbatim; controllers emit unquoted keys, so no
// encoding happens here.
func (d *APIDriver) PostStatus(ctx context.Context, body []byte) (*Response, error) {
	return d.do(ctx, http.MethodPost, "/api/mystatus", "application/json", body)
}

func (d *APIDriver) Inject(ctx context.Context, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding inject payload: %w", err)
	}
	return d.do(ctx, http.MethodPost, "/api/admin/inject", "application/json", body)
}

func (d *APIDriver) MyActions(ctx context.Context) (*Response, error) {
	return d.do(ctx, http.MethodGet, "/api/myactions", "", nil)
}

func (d *APIDriver) Done(ctx context.Context, guid string) (*Response, error) {
	return d.do(ctx, http.MethodPost, "/api/done/"+url.PathEscape(guid), "", nil)
}

func (d *APIDriver) do(ctx context.Context, method, path, contentType string, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if d.username != "" {
		req.SetBasicAuth(d.username, d.password)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}
