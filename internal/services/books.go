// Book service gateway implementation of [CatalogService] and [UserService]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
	"golang.org/x/time/rate"
)

// BookService talks to the book gateway. Each operation has its own
// configured path because the gateway routes them through separate stages.
type BookService struct {
	cfg        shared.APIConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewBookService creates a gateway client from the api section of the config.
func NewBookService(cfg shared.APIConfig, client *http.Client) *BookService {
	if client == nil {
		client = http.DefaultClient
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &BookService{
		cfg:        cfg,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)+1),
	}
}

// endpoint joins the base URL with a configured path, substituting the
// user id segment when present.
func (b *BookService) endpoint(path, userID string) string {
	path = strings.ReplaceAll(path, "{user_id}", userID)
	return strings.TrimRight(b.cfg.BaseURL, "/") + path
}

// decodeEnvelope unwraps gateway responses of the shape {"body": "<json>"}.
// Some stages return the payload directly, others wrap it as a JSON string;
// callers always see the payload.
func decodeEnvelope(data []byte, result any) error {
	var envelope struct {
		Body json.RawMessage `json:"body"`
	}

	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Body) > 0 {
		var inner string
		if err := json.Unmarshal(envelope.Body, &inner); err == nil {
			return json.Unmarshal([]byte(inner), result)
		}
		return json.Unmarshal(envelope.Body, result)
	}

	return json.Unmarshal(data, result)
}

// errorMessage extracts the server's {"message": ...} from an error response
// body, falling back to the raw status.
func errorMessage(statusCode int, data []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := decodeEnvelope(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("status %d", statusCode)
}

// doRequest performs a rate-limited request and decodes the enveloped
// response into result. sentinel classifies failures for the caller.
func (b *BookService) doRequest(ctx context.Context, method, url string, body, result any, sentinel error) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", sentinel, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", sentinel, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", sentinel, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s", sentinel, errorMessage(resp.StatusCode, data))
	}

	if result != nil {
		if err := decodeEnvelope(data, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", sentinel, err)
		}
	}

	return nil
}

// ListForUser retrieves every book owned by userID.
func (b *BookService) ListForUser(ctx context.Context, userID string) ([]models.Book, error) {
	var books []models.Book
	url := b.endpoint(b.cfg.BooksPath, userID)
	if err := b.doRequest(ctx, http.MethodGet, url, nil, &books, shared.ErrFetch); err != nil {
		return nil, err
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}

// messageResponse is the gateway's acknowledgement payload.
type messageResponse struct {
	Message string `json:"message"`
}

// Create stores a new record.
func (b *BookService) Create(ctx context.Context, book models.Book) (string, error) {
	if err := book.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrMutation, err)
	}

	var resp messageResponse
	url := b.endpoint(b.cfg.AddBookPath, book.UserID)
	if err := b.doRequest(ctx, http.MethodPost, url, book, &resp, shared.ErrMutation); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Update replaces an existing record in full.
func (b *BookService) Update(ctx context.Context, book models.Book) (string, error) {
	if err := book.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrMutation, err)
	}

	var resp messageResponse
	url := b.endpoint(b.cfg.UpdateBookPath, book.UserID)
	if err := b.doRequest(ctx, http.MethodPost, url, book, &resp, shared.ErrMutation); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Delete removes a record and its cover image in a single request.
func (b *BookService) Delete(ctx context.Context, req DeleteRequest) (string, error) {
	if req.BookID == "" {
		return "", fmt.Errorf("%w: missing book_id", shared.ErrMutation)
	}

	var resp messageResponse
	url := b.endpoint(b.cfg.DeleteBookPath, "")
	if err := b.doRequest(ctx, http.MethodDelete, url, req, &resp, shared.ErrMutation); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// uploadRequest is the upload endpoint's payload.
type uploadRequest struct {
	FileName    string `json:"fileName"`
	FileContent string `json:"fileContent"`
}

// UploadImage stores a base64-encoded image and returns its public URL.
func (b *BookService) UploadImage(ctx context.Context, fileName, base64Content string) (string, error) {
	if fileName == "" || base64Content == "" {
		return "", fmt.Errorf("%w: missing file name or content", shared.ErrUpload)
	}

	var resp struct {
		URL string `json:"url"`
	}
	url := b.endpoint(b.cfg.UploadPath, "")
	payload := uploadRequest{FileName: fileName, FileContent: base64Content}
	if err := b.doRequest(ctx, http.MethodPost, url, payload, &resp, shared.ErrUpload); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("%w: no url in response", shared.ErrUpload)
	}
	return resp.URL, nil
}

// FetchUser retrieves the account profile for userID.
func (b *BookService) FetchUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	url := b.endpoint(b.cfg.UserPath, userID)
	if err := b.doRequest(ctx, http.MethodGet, url, nil, &profile, shared.ErrFetch); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateUser saves profile changes.
func (b *BookService) UpdateUser(ctx context.Context, profile models.UserProfile) (string, error) {
	if profile.UserID == "" {
		return "", fmt.Errorf("%w: missing user_id", shared.ErrMutation)
	}

	var resp messageResponse
	url := b.endpoint(b.cfg.UpdateUserPath, profile.UserID)
	if err := b.doRequest(ctx, http.MethodPost, url, profile, &resp, shared.ErrMutation); err != nil {
		return "", err
	}
	return resp.Message, nil
}
