// Package events defines the domain events published after state-changing
// operations. Publishing is best-effort: a failed publish never fails the
// operation that raised the event.
package events

import "time"

// SourceBackend identifies this service on the event bus.
const SourceBackend = "kernelworx.backend"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// AccountDeleted is raised after a self-service or admin account deletion
// completed its store-side cleanup.
type AccountDeleted struct {
	BaseEvent
	AccountID       string `json:"account_id"`
	DeletedProfiles int    `json:"deleted_profiles"`
	DeletedOrders   int    `json:"deleted_orders"`
	SelfService     bool   `json:"self_service"`
}

// NewAccountDeleted creates an AccountDeleted event.
func NewAccountDeleted(accountID string, profiles, orders int, selfService bool) AccountDeleted {
	return AccountDeleted{
		BaseEvent: BaseEvent{
			AggregateID: accountID,
			EventType:   "account.deleted",
			Timestamp:   time.Now().UTC(),
		},
		AccountID:       accountID,
		DeletedProfiles: profiles,
		DeletedOrders:   orders,
		SelfService:     selfService,
	}
}

// OwnershipTransferred is raised after a profile moved between accounts.
type OwnershipTransferred struct {
	BaseEvent
	ProfileID      string `json:"profile_id"`
	PreviousOwner  string `json:"previous_owner"`
	NewOwner       string `json:"new_owner"`
	AdminInitiated bool   `json:"admin_initiated"`
}

// NewOwnershipTransferred creates an OwnershipTransferred event.
func NewOwnershipTransferred(profileID, previousOwner, newOwner string, adminInitiated bool) OwnershipTransferred {
	return OwnershipTransferred{
		BaseEvent: BaseEvent{
			AggregateID: profileID,
			EventType:   "profile.ownership_transferred",
			Timestamp:   time.Now().UTC(),
		},
		ProfileID:      profileID,
		PreviousOwner:  previousOwner,
		NewOwner:       newOwner,
		AdminInitiated: adminInitiated,
	}
}
