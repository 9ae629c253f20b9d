// package auth coordinates the identity provider and the session store
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/services"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/session"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
	"github.com/charmbracelet/log"
)

// Gateway is the single entry point for login, logout, and registration. It
// is the only writer to the session store.
type Gateway struct {
	identity services.IdentityService
	store    *session.Store
	repo     session.Repository
	logger   *log.Logger
}

// NewGateway creates a Gateway over the given identity service, store, and
// persistence repository.
func NewGateway(identity services.IdentityService, store *session.Store, repo session.Repository, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Gateway{identity: identity, store: store, repo: repo, logger: logger}
}

// RegistrationForm holds the raw registration inputs.
type RegistrationForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Image           string
}

// Validate runs every field check and returns the failures keyed by field
// name. An empty map means the form may be submitted.
func (f RegistrationForm) Validate() map[string]string {
	errs := make(map[string]string)
	if msg := ValidateName(f.Name); msg != "" {
		errs["name"] = msg
	}
	if msg := ValidateEmail(f.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := ValidatePassword(f.Password); msg != "" {
		errs["password"] = msg
	}
	if msg := ValidateConfirmPassword(f.Password, f.ConfirmPassword); msg != "" {
		errs["confirmPassword"] = msg
	}
	if msg := ValidatePhoneNumber(f.Phone); msg != "" {
		errs["phone"] = msg
	}
	return errs
}

// Login authenticates with the provider, fetches the user's attributes, and
// activates the session. On any failure the session is left untouched.
func (g *Gateway) Login(ctx context.Context, email, password string) (session.User, error) {
	if msg := ValidateEmail(email); msg != "" {
		return session.User{}, fmt.Errorf("%w: %s", shared.ErrValidation, msg)
	}
	if msg := ValidatePassword(password); msg != "" {
		return session.User{}, fmt.Errorf("%w: %s", shared.ErrValidation, msg)
	}

	if err := g.identity.Authenticate(ctx, email, password); err != nil {
		g.logger.Warn("login rejected", "email", email)
		return session.User{}, err
	}

	attrs, err := g.identity.CurrentUser(ctx)
	if err != nil {
		return session.User{}, err
	}

	user := session.User{ID: attrs.Sub, Name: attrs.Name, Email: attrs.Email}
	if err := g.store.SetAuthenticated(g.repo, user); err != nil {
		return session.User{}, err
	}

	g.logger.Info("session established", "user_id", user.ID)
	return user, nil
}

// Logout signs out with the provider and clears the session. Provider
// failures are logged but never block the local sign-out.
func (g *Gateway) Logout(ctx context.Context) error {
	if err := g.identity.SignOut(ctx); err != nil {
		g.logger.Warn("provider sign-out failed", "error", err)
	}

	if err := g.store.Clear(g.repo); err != nil {
		return err
	}

	g.logger.Info("session cleared")
	return nil
}

// CurrentUser returns the active session's user.
func (g *Gateway) CurrentUser(ctx context.Context) (session.User, error) {
	user, ok := g.store.Current()
	if !ok {
		return session.User{}, shared.ErrNotAuthenticated
	}
	return user, nil
}

// Register validates the form locally and, only when every field passes,
// submits it to the provider. Field failures block submission entirely.
func (g *Gateway) Register(ctx context.Context, form RegistrationForm) (string, error) {
	if errs := form.Validate(); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		return "", fmt.Errorf("%w: %s", shared.ErrValidation, strings.Join(fields, ", "))
	}

	userID, err := g.identity.SignUp(ctx, services.SignUpRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
		Image:    form.Image,
	})
	if err != nil {
		return "", err
	}

	g.logger.Info("account registered", "user_id", userID)
	return userID, nil
}
