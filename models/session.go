package models

// Session is the client-held record of the signed-in user. It is created on
// login, read whenever a protected view is shown and dropped as a whole on
// logout.
type Session struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Empty reports whether the session carries no bearer token.
func (s Session) Empty() bool {
	return s.Token == ""
}
