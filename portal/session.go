package portal

import "time"

// Session is the explicit context for authenticated calls. It is created by
// Login, passed to every remote-call function, and cleared by Logout; there
// is no ambient token storage anywhere in the core.
type Session struct {
	Token  string
	Expiry time.Time
}

func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}

func (s *Session) clear() {
	s.Token = ""
	s.Expiry = time.Time{}
}
