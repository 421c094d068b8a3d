package queries

// ListUsersQuery lists every user
type ListUsersQuery struct{}

// GetUserQuery looks up a single user, resolving to nil when absent
type GetUserQuery struct {
	ID string
}
