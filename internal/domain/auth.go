package domain

import "errors"

// Credentials are the inputs required to obtain a session token
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that all required fields are present.  Requests are never built
// from incomplete credentials.
func (c Credentials) Validate() error {
	if c.Email == "" {
		return errors.New("email is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// Registration are the inputs required to create a new account
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that all required fields are present
func (r Registration) Validate() error {
	if r.Username == "" {
		return errors.New("username is required")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// Credentials returns the login credentials matching this registration, used to
// automatically log in after a successful account creation
func (r Registration) Credentials() Credentials {
	return Credentials{Email: r.Email, Password: r.Password}
}
