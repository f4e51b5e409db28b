package slackbot

import "time"

// SetClock overrides the time source used for the freshness check.
func (a *Authenticator) SetClock(now func() time.Time) {
	a.now = now
}
