package domain

import "time"

// Audit event topics. Events are keyed by the affected resource id so that a
// single resource's event stream stays ordered on the transport.
const (
	TopicUserEvents   = "user-events"
	TopicClientEvents = "client-events"
	TopicCreditEvents = "credit-events"
)

// Audit event types.
const (
	EventUserStatusUpdated = "USER_STATUS_UPDATED"
	EventClientCreated     = "CLIENT_CREATED"
	EventCreditCreated     = "CREATED"
	EventCreditDecided     = "STATUS_UPDATED"
)

// AuditEvent is an immutable fact record emitted after a committed mutation.
// Publication is fire-and-forget: the mutation's outcome never depends on it.
type AuditEvent interface {
	// EventID identifies this emission; consumers dedup on it.
	EventID() string
	// Topic names the logical stream the event belongs to.
	Topic() string
	// Key is the partition key (the affected resource id).
	Key() string
}

// UserStatusEvent records an identity activation or deactivation.
type UserStatusEvent struct {
	ID             string    `json:"event_id" bson:"event_id"`
	EventType      string    `json:"event_type" bson:"event_type"`
	UserID         string    `json:"user_id" bson:"user_id"`
	Username       string    `json:"username" bson:"username"`
	Email          string    `json:"email" bson:"email"`
	Role           Role      `json:"role" bson:"role"`
	PreviousActive bool      `json:"previous_active" bson:"previous_active"`
	Active         bool      `json:"active" bson:"active"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
}

func (e UserStatusEvent) EventID() string { return e.ID }
func (e UserStatusEvent) Topic() string   { return TopicUserEvents }
func (e UserStatusEvent) Key() string     { return e.UserID }

// ClientEvent records a client onboarding.
type ClientEvent struct {
	ID          string    `json:"event_id" bson:"event_id"`
	EventType   string    `json:"event_type" bson:"event_type"`
	ClientID    string    `json:"client_id" bson:"client_id"`
	ClientName  string    `json:"client_name" bson:"client_name"`
	Industry    string    `json:"industry" bson:"industry"`
	OnboardedBy string    `json:"onboarded_by" bson:"onboarded_by"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

func (e ClientEvent) EventID() string { return e.ID }
func (e ClientEvent) Topic() string   { return TopicClientEvents }
func (e ClientEvent) Key() string     { return e.ClientID }

// CreditEvent records a credit creation or decision. PreviousStatus is only
// set for decisions.
type CreditEvent struct {
	ID             string       `json:"event_id" bson:"event_id"`
	EventType      string       `json:"event_type" bson:"event_type"`
	CreditID       string       `json:"credit_id" bson:"credit_id"`
	ClientID       string       `json:"client_id" bson:"client_id"`
	Amount         float64      `json:"amount" bson:"amount"`
	Status         CreditStatus `json:"status" bson:"status"`
	PreviousStatus CreditStatus `json:"previous_status,omitempty" bson:"previous_status,omitempty"`
	ActionBy       string       `json:"action_by" bson:"action_by"`
	Comments       string       `json:"comments,omitempty" bson:"comments,omitempty"`
	Timestamp      time.Time    `json:"timestamp" bson:"timestamp"`
}

func (e CreditEvent) EventID() string { return e.ID }
func (e CreditEvent) Topic() string   { return TopicCreditEvents }
func (e CreditEvent) Key() string     { return e.CreditID }
