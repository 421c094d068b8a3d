package commands

// PostTweetCommand creates a tweet. UserID is stored as given, without checking
// that the user exists.
type PostTweetCommand struct {
	Text   string
	UserID string
}

// DeleteTweetCommand removes a tweet; the result reports whether it existed
type DeleteTweetCommand struct {
	ID string
}
