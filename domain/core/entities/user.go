package entities

// User is an account that authors tweets. Users only come from seed data and
// never change after construction.
type User struct {
	id        string
	firstName string
	lastName  string
}

// NewUser creates a user
func NewUser(id, firstName, lastName string) *User {
	return &User{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
	}
}

// Getters

func (u *User) ID() string        { return u.id }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string  { return u.lastName }

// FullName is derived on every read and never stored.
func (u *User) FullName() string {
	return u.firstName + " " + u.lastName
}
