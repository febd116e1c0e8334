package command

import "github.com/verdantgoods/storefront/internal/user/domain"

// DeleteUserCommand represents the command to delete a user.
type DeleteUserCommand struct {
	ID uint
}

// DeleteUserHandler handles user deletion.
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler.
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command.
func (h *DeleteUserHandler) Handle(cmd DeleteUserCommand) error {
	return h.repo.Delete(cmd.ID)
}
