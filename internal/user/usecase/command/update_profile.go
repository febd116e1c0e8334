package command

import (
	"strings"
	"time"

	"github.com/verdantgoods/storefront/internal/user/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
	"github.com/verdantgoods/storefront/pkg/auth"
)

// UpdateProfileCommand represents a self-service profile update. The
// current password must be re-submitted even for unrelated field
// changes, so an already-open tab cannot silently take over an account.
type UpdateProfileCommand struct {
	UserID          uint
	CurrentPassword string
	Email           string // optional
	Name            string // optional
	NewPassword     string // optional
}

// UpdateProfileResult carries the updated user and a fresh credential
// when the email (and therefore the claims) changed.
type UpdateProfileResult struct {
	User     *domain.User
	NewToken string // empty unless the email changed
}

// UpdateProfileHandler handles profile updates.
type UpdateProfileHandler struct {
	repo domain.UserRepository
}

// NewUpdateProfileHandler creates a new update profile handler.
func NewUpdateProfileHandler(repo domain.UserRepository) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo}
}

// Handle executes the profile update command.
func (h *UpdateProfileHandler) Handle(cmd UpdateProfileCommand) (*UpdateProfileResult, error) {
	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.CurrentPassword == "" || !auth.CheckPassword(user.PasswordHash, cmd.CurrentPassword) {
		return nil, apperr.Unauthorizedf("current password is incorrect")
	}

	emailChanged := false
	if cmd.Email != "" {
		email := strings.TrimSpace(strings.ToLower(cmd.Email))
		if !strings.Contains(email, "@") {
			return nil, apperr.Validationf("a valid email is required")
		}
		if email != user.Email {
			user.Email = email
			emailChanged = true
		}
	}
	if strings.TrimSpace(cmd.Name) != "" {
		user.Name = strings.TrimSpace(cmd.Name)
	}
	if cmd.NewPassword != "" {
		if len(cmd.NewPassword) < 6 {
			return nil, apperr.Validationf("password must be at least 6 characters")
		}
		hash, err := auth.HashPassword(cmd.NewPassword)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, err
	}

	result := &UpdateProfileResult{User: user}
	if emailChanged {
		token, err := auth.GenerateToken(user.ID, user.Email, user.IsAdmin)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to generate token", err)
		}
		result.NewToken = token
	}
	return result, nil
}
