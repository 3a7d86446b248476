package nationstates

import "net/http"

// Credentials authenticates a single login. Exactly one field must be set.
type Credentials struct {
	Password  string
	Autologin string
	Pin       string
}

// WithPassword returns password credentials.
func WithPassword(password string) Credentials {
	return Credentials{Password: password}
}

// WithAutologin returns autologin token credentials.
func WithAutologin(token string) Credentials {
	return Credentials{Autologin: token}
}

// WithPin returns session pin credentials.
func WithPin(pin string) Credentials {
	return Credentials{Pin: pin}
}

// Validate checks that exactly one credential is set.
func (c Credentials) Validate() error {
	var set int
	for _, v := range []string{c.Password, c.Autologin, c.Pin} {
		if v != "" {
			set++
		}
	}

	switch {
	case set == 0:
		return ErrNoCredential
	case set > 1:
		return ErrAmbiguousCredential
	}
	return nil
}

// apply sets the credential header. Validate must have passed.
func (c Credentials) apply(h http.Header) {
	switch {
	case c.Pin != "":
		h.Set(HeaderPin, c.Pin)
	case c.Autologin != "":
		h.Set(HeaderAutologin, c.Autologin)
	default:
		h.Set(HeaderPassword, c.Password)
	}
}
