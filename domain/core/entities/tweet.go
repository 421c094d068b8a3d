package entities

// Tweet is a short text message. UserID is a weak reference to User.ID; the
// referenced user may not exist.
type Tweet struct {
	id     string
	text   string
	userID string
}

// NewTweet creates a tweet
func NewTweet(id, text, userID string) *Tweet {
	return &Tweet{
		id:     id,
		text:   text,
		userID: userID,
	}
}

// Getters

func (t *Tweet) ID() string     { return t.id }
func (t *Tweet) Text() string   { return t.text }
func (t *Tweet) UserID() string { return t.userID }
