package models

import "time"

// Event status constants
const (
	StatusDraft = "draft"
	StatusDrawn = "drawn"
)

// Field limits
const (
	MaxEventNameLen       = 30
	MaxBudgetLen          = 20
	MaxLocationLen        = 255
	MaxParticipantNameLen = 50
	MaxParticipants       = 100
)

// Date and time layouts used on the wire and in storage
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Request types

type EventDetails struct {
	Name           string `json:"name"`
	OrganizerName  string `json:"organizer_name"`
	OrganizerEmail string `json:"organizer_email"`
	EventDate      string `json:"event_date"`           // YYYY-MM-DD
	EventTime      string `json:"event_time,omitempty"` // HH:MM
	Location       string `json:"location,omitempty"`
	Budget         string `json:"budget,omitempty"`
}

type ParticipantInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Exclusions reference participants by their position in the request.
type ExclusionInput struct {
	Giver    int `json:"giver"`
	Excluded int `json:"excluded"`
}

// Used by both POST /events/check and POST /events
type CreateEventRequest struct {
	EventDetails
	Participants []ParticipantInput `json:"participants"`
	Exclusions   []ExclusionInput   `json:"exclusions"`
}

// Response types

type CheckEventResponse struct {
	Feasible bool   `json:"feasible"`
	Reason   string `json:"reason,omitempty"`
}

type CreateEventResponse struct {
	EventID   string `json:"event_id"`
	AdminKey  string `json:"admin_key"`
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type DrawResponse struct {
	MatchCount int       `json:"match_count"`
	Notified   int       `json:"notified"`
	DrawnAt    time.Time `json:"drawn_at"`
}

type MyMatchResponse struct {
	Event    PublicEvent `json:"event"`
	Giver    string      `json:"giver"`
	Receiver string      `json:"receiver"`
}

// Domain types

type Event struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	OrganizerName  string     `json:"organizer_name"`
	OrganizerEmail string     `json:"organizer_email"`
	EventDate      string     `json:"event_date"`
	EventTime      *string    `json:"event_time,omitempty"`
	Location       string     `json:"location"`
	Budget         string     `json:"budget"`
	Status         string     `json:"status"`
	ShareSlug      string     `json:"share_slug"`
	DrawnAt        *time.Time `json:"drawn_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Participant struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Token    string `json:"-"` // Never expose in JSON
}

type Exclusion struct {
	GiverID      string `json:"giver_id"`
	GiverName    string `json:"giver_name"`
	ExcludedID   string `json:"excluded_id"`
	ExcludedName string `json:"excluded_name"`
}

type Match struct {
	GiverID      string `json:"giver_id"`
	GiverName    string `json:"giver_name"`
	ReceiverID   string `json:"receiver_id"`
	ReceiverName string `json:"receiver_name"`
}

type EventAdmin struct {
	Event        Event         `json:"event"`
	Participants []Participant `json:"participants"`
	Exclusions   []Exclusion   `json:"exclusions"`
	Drawn        bool          `json:"drawn"`
}

type EventMatches struct {
	EventID string     `json:"event_id"`
	DrawnAt *time.Time `json:"drawn_at,omitempty"`
	Matches []Match    `json:"matches"`
}

// What anyone holding the share link may see
type PublicEvent struct {
	Name             string  `json:"name"`
	EventDate        string  `json:"event_date"`
	EventTime        *string `json:"event_time,omitempty"`
	Location         string  `json:"location"`
	Budget           string  `json:"budget"`
	OrganizerName    string  `json:"organizer_name"`
	ParticipantCount int     `json:"participant_count"`
	Drawn            bool    `json:"drawn"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
