package command

import (
	"strings"
	"time"

	"github.com/verdantgoods/storefront/internal/user/domain"
	"github.com/verdantgoods/storefront/pkg/apperr"
	"github.com/verdantgoods/storefront/pkg/auth"
)

// RegisterUserCommand represents the command to register a new account.
type RegisterUserCommand struct {
	Email    string
	Name     string
	Password string
}

// RegisterUserHandler handles account registration.
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler.
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register command and returns the created user and
// a signed credential for it.
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperr.Validationf("a valid email is required")
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, "", apperr.Validationf("name is required")
	}
	if len(cmd.Password) < 6 {
		return nil, "", apperr.Validationf("password must be at least 6 characters")
	}

	if existing, _ := h.repo.FindByEmail(email); existing != nil {
		return nil, "", apperr.Conflictf("email already registered")
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(cmd.Name),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// The unique index backstops the pre-check against concurrent
	// registrations with the same email.
	if err := h.repo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to generate token", err)
	}
	return user, token, nil
}
