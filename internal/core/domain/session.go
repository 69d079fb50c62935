package domain

// Session is the authenticated identity returned by the backend's
// session-data endpoint. It is cached process-wide and invalidated on
// sign-out or when any call is rejected with 401/403.
type Session struct {
	Email    string
	Username string
}

// Valid reports whether the session carries an identity. The backend
// signals an anonymous session with an empty email.
func (s Session) Valid() bool {
	return s.Email != ""
}

// Credentials are the sign-in inputs. The password never leaves the
// sign-in call; only the cookie-backed session persists.
type Credentials struct {
	Email    string
	Password string
}

// SignUpRequest carries the fields of a new account registration.
// ProfilePic and Filename are optional together.
type SignUpRequest struct {
	Name       string
	Email      string
	Password   string
	Username   string
	AuthorDesc string
	ProfilePic []byte
	Filename   string
}
