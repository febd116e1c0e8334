package command

import (
	"time"

	"github.com/verdantgoods/storefront/internal/user/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
	"github.com/verdantgoods/storefront/pkg/auth"
)

// ResetPasswordCommand represents an administrative password reset.
type ResetPasswordCommand struct {
	UserID      uint
	NewPassword string
}

// ResetPasswordHandler handles administrative password resets.
type ResetPasswordHandler struct {
	repo domain.UserRepository
}

// NewResetPasswordHandler creates a new reset password handler.
func NewResetPasswordHandler(repo domain.UserRepository) *ResetPasswordHandler {
	return &ResetPasswordHandler{repo: repo}
}

// Handle executes the reset password command.
func (h *ResetPasswordHandler) Handle(cmd ResetPasswordCommand) error {
	if len(cmd.NewPassword) < 6 {
		return apperr.Validationf("password must be at least 6 characters")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()

	return h.repo.Update(user)
}
