// Package mailer sends transactional email.
package mailer

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}
