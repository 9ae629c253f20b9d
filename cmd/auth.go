package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/auth"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
)

// AuthLogin signs in with the identity provider and persists the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("signing in", "email", email)

	user, err := r.gateway.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, shared.ErrValidation) {
			return err
		}
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.writePlain("✓ Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

// AuthLogout signs out with the provider and clears the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.store.Restore(r.sessions); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if !r.store.IsLoggedIn() {
		return r.writePlain("Not signed in.\n")
	}

	if err := r.gateway.Logout(ctx); err != nil {
		return err
	}

	return r.writePlain("✓ Signed out\n")
}

// AuthRegister creates a new account with the identity provider.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	form := auth.RegistrationForm{
		Name:            cmd.String("name"),
		Email:           cmd.String("email"),
		Password:        cmd.String("password"),
		ConfirmPassword: cmd.String("confirm-password"),
		Phone:           cmd.String("phone"),
		Image:           cmd.String("image"),
	}

	// Surface each field failure before giving up.
	if errs := form.Validate(); len(errs) > 0 {
		for _, msg := range errs {
			r.writePlain("✗ %s\n", msg)
		}
		return fmt.Errorf("%w: registration form has errors", shared.ErrValidation)
	}

	userID, err := r.gateway.Register(ctx, form)
	if err != nil {
		return err
	}

	r.logger.Info("account created", "user_id", userID)
	r.writePlain("✓ Account created (user id: %s)\n", userID)
	r.writePlain("Sign in with 'bookcat auth login' to get started.\n")
	return nil
}

// AuthWhoami prints the signed-in user from the persisted session.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}

	r.writePlain("%s <%s>\n", user.Name, user.Email)
	r.writePlain("User ID: %s\n", user.ID)
	return nil
}
