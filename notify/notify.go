// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/santa-draw/models"
)

// Message tells one giver who they drew.
type Message struct {
	To           string
	GiverName    string
	ReceiverName string

	EventName     string
	OrganizerName string
	EventDate     string // YYYY-MM-DD
	EventTime     string // HH:MM, optional
	Location      string
	Budget        string

	RevealURL string
	Token     string
}

// Notifier delivers a draw result to a single giver.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Render builds the subject and plain-text body for msg.
// now anchors the relative date ("3 weeks from now").
func Render(msg Message, now time.Time) (subject, body string) {
	subject = fmt.Sprintf("Your Secret Santa draw for %s", msg.EventName)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", msg.GiverName)
	fmt.Fprintf(&b, "The names for %s have been drawn. You are buying a gift for %s.\n\n", msg.EventName, msg.ReceiverName)

	when := msg.EventDate
	if date, err := time.Parse(models.DateLayout, msg.EventDate); err == nil {
		when = fmt.Sprintf("%s (%s)", date.Format("Monday, January 2, 2006"), humanize.RelTime(date, now, "ago", "from now"))
	}
	fmt.Fprintf(&b, "Date: %s\n", when)
	if msg.EventTime != "" {
		fmt.Fprintf(&b, "Time: %s\n", msg.EventTime)
	}
	if msg.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", msg.Location)
	}
	if msg.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", msg.Budget)
	}

	if msg.RevealURL != "" {
		fmt.Fprintf(&b, "\nYou can look up your match again at %s\n", msg.RevealURL)
		fmt.Fprintf(&b, "using your personal code: %s\n", msg.Token)
	}
	if msg.OrganizerName != "" {
		fmt.Fprintf(&b, "\nOrganized by %s. Keep it a secret!\n", msg.OrganizerName)
	}

	return subject, b.String()
}
