package client

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
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// HTTPClient implements Client against the two services.
type HTTPClient struct {
	authURL string
	taskURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

// NewHTTPClient builds a client. authURL and taskURL include the base paths,
// e.g. "http://127.0.0.1:8001/auth" and "http://127.0.0.1:8002/api".
func NewHTTPClient(authURL, taskURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		authURL: strings.TrimRight(authURL, "/"),
		taskURL: strings.TrimRight(taskURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = t
}

func (c *HTTPClient) Register(ctx context.Context, email, password string, name *string) (*models.AuthResult, error) {
	body := struct {
		Email    string  `json:"email"`
		Name     *string `json:"name,omitempty"`
		Password string  `json:"password"`
	}{email, name, password}

	var res models.AuthResult
	if err := c.doJSON(ctx, http.MethodPost, c.authURL+"/register", body, &res, false); err != nil {
		return nil, err
	}
	c.setToken(res.AccessToken)
	return &res, nil
}

// Login posts the credentials as a form, the way the auth service expects.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	form := url.Values{"email": {email}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var res models.AuthResult
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	c.setToken(res.AccessToken)
	return &res, nil
}

func (c *HTTPClient) Logout() {
	c.setToken("")
}

func (c *HTTPClient) tasksURL(userID string) string {
	return c.taskURL + "/" + url.PathEscape(userID) + "/tasks"
}

func (c *HTTPClient) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	var list []models.Task
	if err := c.doJSON(ctx, http.MethodGet, c.tasksURL(userID), nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, userID string, in models.NewTask) (*models.Task, error) {
	var t models.Task
	if err := c.doJSON(ctx, http.MethodPost, c.tasksURL(userID), in, &t, true); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) ToggleTask(ctx context.Context, userID string, id int64) (*models.Task, error) {
	var t models.Task
	u := fmt.Sprintf("%s/%d/complete", c.tasksURL(userID), id)
	if err := c.doJSON(ctx, http.MethodPatch, u, nil, &t, true); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, userID string, id int64) error {
	u := fmt.Sprintf("%s/%d", c.tasksURL(userID), id)
	return c.doJSON(ctx, http.MethodDelete, u, nil, nil, true)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, u string, in, out any, withToken bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		token := c.token()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Detail string `json:"detail"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Detail = e.Detail
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
