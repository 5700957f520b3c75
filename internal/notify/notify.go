package notify

import "context"

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

type Kind string

const (
	KindApplicationConfirmation Kind = "application-confirmation"
	KindApplicationStatus       Kind = "application-status"
	KindInterviewInvitation     Kind = "interview-invitation"
)

// Message is a notification request. Payload fields are free-form and
// interpreted by the delivery side per kind.
type Message struct {
	Channels []Channel         `json:"channels"`
	Kind     Kind              `json:"kind"`
	Email    string            `json:"email,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	Payload  map[string]string `json:"payload"`
}

// Gateway delivers notifications best-effort. Callers must never let a
// returned error fail the surrounding operation.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}
