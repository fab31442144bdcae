// Package client talks to the quiz REST API.
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

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizzer/internal/apperror"
)

const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response carrying the server's error message.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}
	return e.Message
}

// Rejected reports whether the server refused the bearer token.
func (e *APIError) Rejected() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout on a copy of the current http.Client so
// a client passed to WithHTTPClient is never mutated.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Register(ctx context.Context, username, password, email string) (*AuthResult, error) {
	body := map[string]string{"username": username, "password": password, "email": email}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateToken returns the identity the server decodes from token.
func (c *Client) ValidateToken(ctx context.Context, token string) (*User, error) {
	var out validateResponse
	if err := c.do(ctx, http.MethodGet, "/api/validate-token", token, nil, &out); err != nil {
		return nil, err
	}
	if !out.Valid {
		return nil, &APIError{Status: http.StatusForbidden, Message: "Invalid token"}
	}
	return &out.User, nil
}

// Questions lists the question bank, dropping entries whose options are not
// an array of strings.
func (c *Client) Questions(ctx context.Context, token string) ([]Question, error) {
	var raw []rawQuestion
	if err := c.do(ctx, http.MethodGet, "/api/questions", token, nil, &raw); err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(raw))
	for _, rq := range raw {
		var options []string
		if err := json.Unmarshal(rq.Options, &options); err != nil || len(options) == 0 {
			c.log.WithField("question_id", rq.ID).Warn("Dropping question with malformed options")
			continue
		}
		questions = append(questions, Question{
			ID:            rq.ID,
			Text:          rq.Text,
			Options:       options,
			CorrectAnswer: rq.CorrectAnswer,
			TimeLimit:     rq.TimeLimit,
			CreatedBy:     rq.CreatedBy,
		})
	}
	return questions, nil
}

func (c *Client) CreateQuestion(ctx context.Context, token string, q NewQuestion) (uint, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/questions", token, q, &out); err != nil {
		return 0, err
	}
	return out.QuestionID, nil
}

func (c *Client) SubmitScore(ctx context.Context, token string, s ScoreSubmission) error {
	return c.do(ctx, http.MethodPost, "/api/scores", token, s, nil)
}

func (c *Client) Scores(ctx context.Context, token string) ([]ScoreEntry, error) {
	var out []ScoreEntry
	if err := c.do(ctx, http.MethodGet, "/api/scores", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.Network("Could not reach the quiz server", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Network("Could not read the server response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	apiErr := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Error != "" {
		apiErr.Message = eb.Error
		apiErr.Details = eb.Details
	} else {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// Timeout reports the request timeout in effect.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// AsAPIError unwraps err into an *APIError when the server produced it.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
