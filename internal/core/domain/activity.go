package domain

import "time"

// ActivityAction enumerates the auth events recorded in the activity trail.
type ActivityAction string

const (
	ActionLogin       ActivityAction = "login"
	ActionLoginFailed ActivityAction = "login_failed"
	ActionSignup      ActivityAction = "signup"
)

// Activity is one entry in the auth activity trail.
type Activity struct {
	ID        string         `json:"id"`
	Username  string         `json:"userName"`
	Action    ActivityAction `json:"action"`
	RemoteIP  string         `json:"remote_ip,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
