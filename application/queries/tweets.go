package queries

// ListTweetsQuery lists every tweet in insertion order
type ListTweetsQuery struct{}

// GetTweetQuery looks up a single tweet, resolving to nil when absent
type GetTweetQuery struct {
	ID string
}
