package domain

// Status is the moderation state of a booking request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusArchived  Status = "archived"
)

// ValidStatus reports whether s is one of the three known states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusArchived:
		return true
	}
	return false
}

// EventType is the kind of event a client wants to host.
type EventType string

const (
	EventCorporate  EventType = "Corporate"
	EventWedding    EventType = "Wedding"
	EventExhibition EventType = "Exhibition"
	EventParty      EventType = "Private Party"
	EventShoot      EventType = "Photo/Video Shoot"
	EventOther      EventType = "Other"
)

// EventTypes lists the selectable event types in display order.
var EventTypes = []EventType{
	EventCorporate,
	EventWedding,
	EventExhibition,
	EventParty,
	EventShoot,
	EventOther,
}

// ValidEventType reports whether t is one of the enumerated event types.
func ValidEventType(t EventType) bool {
	for _, et := range EventTypes {
		if t == et {
			return true
		}
	}
	return false
}

// EventItem is a venue-scheduled, publicly listed occurrence. Events are
// created and deleted by operators and are otherwise immutable.
type EventItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD
	Link        string `json:"link"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price,omitempty"`
}

// BookingRequest is a prospective client's request to use the venue on a
// specific date.
type BookingRequest struct {
	ID              string    `json:"id"`
	EventType       EventType `json:"eventType"`
	CustomEventType string    `json:"customEventType,omitempty"`
	Date            string    `json:"date"` // YYYY-MM-DD
	Guests          int       `json:"guests"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       string    `json:"createdAt"`
	Status          Status    `json:"status"`
}

// Admin is an operator account for the moderation panel.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
}
