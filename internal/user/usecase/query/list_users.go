package query

import "github.com/verdantgoods/storefront/internal/user/domain"

// ListUsersQuery represents the paginated user listing.
type ListUsersQuery struct {
	Skip   int
	Take   int
	Search string
}

// ListUsersResult is one page of users plus the unpaginated total.
type ListUsersResult struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
}

// ListUsersHandler handles the user listing query.
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler.
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query. Take defaults to 20 and is
// capped at 100.
func (h *ListUsersHandler) Handle(q ListUsersQuery) (*ListUsersResult, error) {
	if q.Take <= 0 {
		q.Take = 20
	}
	if q.Take > 100 {
		q.Take = 100
	}
	if q.Skip < 0 {
		q.Skip = 0
	}

	users, total, err := h.repo.Search(q.Search, q.Take, q.Skip)
	if err != nil {
		return nil, err
	}
	return &ListUsersResult{Users: users, Total: total}, nil
}
