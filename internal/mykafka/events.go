package mykafka

import "time"

const (
	EventAccountRegistered  = "account_registered"
	EventAccountLoggedIn    = "account_logged_in"
	EventAccountDeactivated = "account_deactivated"
)

type AccountEvent struct {
	Type       string    `json:"type"`
	AccountID  string    `json:"account_id"`
	Identifier string    `json:"identifier,omitempty"`
	Role       string    `json:"role,omitempty"`
	At         time.Time `json:"at"`
}
