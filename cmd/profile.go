package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/auth"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
)

// ProfileShow prints the signed-in user's account profile.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}

	profile, err := r.users.FetchUser(ctx, user.ID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, true)
	}

	r.writePlainHeader(profile.Name)
	r.writePlain("Email: %s\n", profile.Email)
	if profile.Phone != "" {
		r.writePlain("Phone: %s\n", profile.Phone)
	}
	if profile.Address != "" {
		r.writePlain("Address: %s\n", profile.Address)
	}
	if profile.Image != "" {
		r.writePlain("Avatar: %s\n", profile.Image)
	}
	return nil
}

// ProfileUpdate replaces the editable profile fields. Flags that were not
// provided keep their stored values.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}

	phone := cmd.String("phone")
	address := cmd.String("address")
	image := cmd.String("image")

	if phone == "" && address == "" && image == "" {
		return fmt.Errorf("%w: provide at least one of --phone, --address, --image", shared.ErrMissingArgument)
	}

	if phone != "" {
		if msg := auth.ValidatePhoneNumber(phone); msg != "" {
			return fmt.Errorf("%w: %s", shared.ErrValidation, msg)
		}
	}

	profile, err := r.users.FetchUser(ctx, user.ID)
	if err != nil {
		return err
	}

	if phone != "" {
		profile.Phone = phone
	}
	if address != "" {
		profile.Address = address
	}
	if image != "" {
		profile.Image = image
	}

	message, err := r.users.UpdateUser(ctx, *profile)
	if err != nil {
		return err
	}

	return r.writePlain("✓ %s\n", message)
}
