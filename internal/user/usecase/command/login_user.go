package command

import (
	"strings"

	"github.com/verdantgoods/storefront/internal/user/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
	"github.com/verdantgoods/storefront/pkg/auth"
)

// LoginUserCommand represents the command to log in.
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginUserHandler handles the login command.
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login handler.
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle verifies the submitted secret and issues a credential. Unknown
// email and wrong password produce the same error so the response does
// not reveal which one failed.
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*domain.User, string, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, "", apperr.Validationf("email and password are required")
	}

	user, err := h.repo.FindByEmail(strings.TrimSpace(strings.ToLower(cmd.Email)))
	if err != nil {
		return nil, "", apperr.Unauthorizedf("invalid credentials")
	}

	if !auth.CheckPassword(user.PasswordHash, cmd.Password) {
		return nil, "", apperr.Unauthorizedf("invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to generate token", err)
	}
	return user, token, nil
}
