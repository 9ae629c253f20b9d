// package services defines clients for the remote HTTP boundaries
//
// The book service gateway and the identity provider
package services

import (
	"context"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
)

// CatalogService is the book service boundary. Implementations synchronize
// catalogue records with the remote store; nothing is cached locally.
type CatalogService interface {
	// ListForUser retrieves every book owned by userID. An empty catalogue
	// is a successful empty slice, not an error.
	ListForUser(ctx context.Context, userID string) ([]models.Book, error)

	// Create stores a new record. The record's book_id must already be set.
	Create(ctx context.Context, book models.Book) (string, error)

	// Update replaces an existing record in full.
	Update(ctx context.Context, book models.Book) (string, error)

	// Delete removes a record and its stored cover image in one operation.
	Delete(ctx context.Context, req DeleteRequest) (string, error)

	// UploadImage stores an image and resolves to its public URL. Callers
	// must not reference the URL before this returns.
	UploadImage(ctx context.Context, fileName, base64Content string) (string, error)
}

// UserService serves the editable account profile.
type UserService interface {
	FetchUser(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateUser(ctx context.Context, profile models.UserProfile) (string, error)
}

// IdentityService is the identity provider boundary.
type IdentityService interface {
	// Authenticate exchanges credentials for a token. On failure no session
	// state changes anywhere.
	Authenticate(ctx context.Context, username, password string) error

	// CurrentUser returns the provider's attributes for the signed-in user.
	CurrentUser(ctx context.Context) (*models.UserAttributes, error)

	// SignOut invalidates the token with the provider. Best effort.
	SignOut(ctx context.Context) error

	// SignUp registers a new account and returns the assigned user id.
	SignUp(ctx context.Context, req SignUpRequest) (string, error)
}

// DeleteRequest identifies the record and cover image to remove together.
type DeleteRequest struct {
	BookID     string `json:"book_id"`
	CoverImage string `json:"coverImage"`
}

// SignUpRequest carries a validated registration to the provider.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Image    string `json:"image"`
}
