package model

// Identity is the caller identity resolved from a request credential.
// It is an explicit per-request value; nothing in the application keeps
// an ambient "current session". The zero value is anonymous.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

// IsAnonymous reports whether the identity carries no authenticated user.
func (i Identity) IsAnonymous() bool {
	return i.Email == ""
}
