// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/services"
)

// MockCatalog is a test double for [services.CatalogService] and
// [services.UserService]. Unset function fields succeed with zero values.
type MockCatalog struct {
	ListForUserFunc func(ctx context.Context, userID string) ([]models.Book, error)
	CreateFunc      func(ctx context.Context, book models.Book) (string, error)
	UpdateFunc      func(ctx context.Context, book models.Book) (string, error)
	DeleteFunc      func(ctx context.Context, req services.DeleteRequest) (string, error)
	UploadFunc      func(ctx context.Context, fileName, base64Content string) (string, error)
	FetchUserFunc   func(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateUserFunc  func(ctx context.Context, profile models.UserProfile) (string, error)
}

func (m *MockCatalog) ListForUser(ctx context.Context, userID string) ([]models.Book, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	return []models.Book{}, nil
}

func (m *MockCatalog) Create(ctx context.Context, book models.Book) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, book)
	}
	return "Book added successfully.", nil
}

func (m *MockCatalog) Update(ctx context.Context, book models.Book) (string, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, book)
	}
	return "Book updated successfully.", nil
}

func (m *MockCatalog) Delete(ctx context.Context, req services.DeleteRequest) (string, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, req)
	}
	return "Book deleted successfully.", nil
}

func (m *MockCatalog) UploadImage(ctx context.Context, fileName, base64Content string) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, fileName, base64Content)
	}
	return "https://images.example.com/" + fileName, nil
}

func (m *MockCatalog) FetchUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	if m.FetchUserFunc != nil {
		return m.FetchUserFunc(ctx, userID)
	}
	return &models.UserProfile{UserID: userID}, nil
}

func (m *MockCatalog) UpdateUser(ctx context.Context, profile models.UserProfile) (string, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, profile)
	}
	return "User updated successfully.", nil
}

// MockIdentity is a test double for [services.IdentityService].
type MockIdentity struct {
	AuthenticateFunc func(ctx context.Context, username, password string) error
	CurrentUserFunc  func(ctx context.Context) (*models.UserAttributes, error)
	SignOutFunc      func(ctx context.Context) error
	SignUpFunc       func(ctx context.Context, req services.SignUpRequest) (string, error)
}

func (m *MockIdentity) Authenticate(ctx context.Context, username, password string) error {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return nil
}

func (m *MockIdentity) CurrentUser(ctx context.Context) (*models.UserAttributes, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return &models.UserAttributes{Name: "Jane Doe", Email: "jane@example.com", Sub: "user-123"}, nil
}

func (m *MockIdentity) SignOut(ctx context.Context) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	return nil
}

func (m *MockIdentity) SignUp(ctx context.Context, req services.SignUpRequest) (string, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, req)
	}
	return "user-123", nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
