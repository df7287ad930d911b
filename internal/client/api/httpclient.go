package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dontpanic-sante/dpcli/internal/client/models"
)

// HTTPClient implements Client over the backend's JSON/HTTP API. A cookie
// jar keeps the session cookie across calls, matching the browser's
// credentials-included fetches. Requests carry no client-side timeout: a
// hanging request delays its UI transition, cancellation is left to the
// caller's context.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "http://localhost:8080".
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

func is2xx(code int) bool { return code >= 200 && code < 300 }

// decodeList reads the body and decodes it as a JSON list into out.
// A non-list body (object, scalar, garbage) is a failure.
func decodeList(r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("body is not a list")
	}
	return json.Unmarshal(data, out)
}

// readDetail extracts the "detail" field from an error body, if any.
func readDetail(r io.Reader) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}

func (c *HTTPClient) CheckAuth(ctx context.Context) (*models.AuthStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/check", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, fmt.Errorf("%w: statut %d", ErrUnavailable, resp.StatusCode)
	}

	var status models.AuthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &status, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "mot_de_passe": password}
	resp, err := c.postJSON(ctx, "/auth/login", payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if is2xx(resp.StatusCode) {
		return nil
	}
	return mapFormStatus(resp.StatusCode, readDetail(resp.Body))
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "mot_de_passe": password, "role": "utilisateur"}
	resp, err := c.postJSON(ctx, "/auth/register", payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if is2xx(resp.StatusCode) {
		return nil
	}
	return mapFormStatus(resp.StatusCode, readDetail(resp.Body))
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("%w: statut %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/conversations/", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, fmt.Errorf("%w: statut %d", ErrUnavailable, resp.StatusCode)
	}

	conversations := []models.Conversation{}
	if err := decodeList(resp.Body, &conversations); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return conversations, nil
}

func (c *HTTPClient) DeleteConversation(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/conversations/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("%w: statut %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) ListOrdonnances(ctx context.Context) ([]models.Ordonnance, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/ordonnances", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if !is2xx(resp.StatusCode) {
		return nil, fmt.Errorf("%w: statut %d", ErrUnavailable, resp.StatusCode)
	}

	ordonnances := []models.Ordonnance{}
	if err := decodeList(resp.Body, &ordonnances); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return ordonnances, nil
}

func (c *HTTPClient) ScanOrdonnance(ctx context.Context, scan OrdonnanceScan) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if scan.ValidUntil != "" {
		if err := mw.WriteField("valid_until", scan.ValidUntil); err != nil {
			return "", err
		}
	}
	switch {
	case len(scan.Image) > 0:
		name := scan.ImageName
		if name == "" {
			name = "ordonnance.png"
		}
		part, err := mw.CreateFormFile("image", name)
		if err != nil {
			return "", err
		}
		if _, err := part.Write(scan.Image); err != nil {
			return "", err
		}
	case strings.TrimSpace(scan.OCRText) != "":
		if err := mw.WriteField("ocr_text", strings.TrimSpace(scan.OCRText)); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: image ou texte OCR requis", ErrBadRequest)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/ordonnances/scan", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return "", mapFormStatus(resp.StatusCode, readDetail(resp.Body))
	}

	var created struct {
		ID models.ID `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return created.ID.String(), nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
