package domain

import "time"

// Session is the context of one interaction: who is acting and which day
// counts as "today". Today is frozen once per pass so every computation in
// that pass agrees on it, even across midnight.
type Session struct {
	Username string
	Today    Date
}

func NewSession(username string, now time.Time) Session {
	return Session{
		Username: username,
		Today:    DateOf(now),
	}
}

// Clock supplies the wall time used to freeze a session.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}
