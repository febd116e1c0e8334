package command

import (
	"strings"
	"time"

	"github.com/verdantgoods/storefront/internal/user/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
)

// UpdateUserCommand represents an administrative user edit.
type UpdateUserCommand struct {
	ID      uint
	Email   string // optional
	Name    string // optional
	IsAdmin *bool  // optional
}

// UpdateUserHandler handles administrative user edits.
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler.
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command.
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Email != "" {
		email := strings.TrimSpace(strings.ToLower(cmd.Email))
		if !strings.Contains(email, "@") {
			return nil, apperr.Validationf("a valid email is required")
		}
		user.Email = email
	}
	if strings.TrimSpace(cmd.Name) != "" {
		user.Name = strings.TrimSpace(cmd.Name)
	}
	if cmd.IsAdmin != nil {
		user.IsAdmin = *cmd.IsAdmin
	}
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
