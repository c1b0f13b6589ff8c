// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/santa-draw/matching"
	"github.com/danielhkuo/santa-draw/models"
)

// Shown whenever the exclusions leave no valid draw
const infeasibleMessage = "No valid assignment exists. Remove a few exclusions and try again."

// Search budgets for one dry run or draw. The step limit abandons a single
// unlucky attempt early and the step budget caps the whole call, so dense
// exclusions among many participants give up within tens of milliseconds.
const (
	stepLimit  = 5000
	stepBudget = 250000
)

// solveOptions is shared by the dry run and the real draw
func solveOptions(maxAttempts int) []matching.Option {
	return []matching.Option{
		matching.WithMaxAttempts(maxAttempts),
		matching.WithStepLimit(stepLimit),
		matching.WithStepBudget(stepBudget),
	}
}

// validateEventRequest trims and checks req in place. It returns a
// user-facing message, or "" when the request is valid. Duplicate
// exclusions are dropped.
func validateEventRequest(req *models.CreateEventRequest) string {
	req.Name = strings.TrimSpace(req.Name)
	req.OrganizerName = strings.TrimSpace(req.OrganizerName)
	req.OrganizerEmail = strings.TrimSpace(req.OrganizerEmail)
	req.EventDate = strings.TrimSpace(req.EventDate)
	req.EventTime = strings.TrimSpace(req.EventTime)
	req.Location = strings.TrimSpace(req.Location)
	req.Budget = strings.TrimSpace(req.Budget)

	if req.Name == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(req.Name) > models.MaxEventNameLen {
		return fmt.Sprintf("name must be at most %d characters", models.MaxEventNameLen)
	}
	if req.OrganizerName == "" {
		return "organizer_name is required"
	}
	if !validEmail(req.OrganizerEmail) {
		return "organizer_email must be a valid email address"
	}
	if _, err := time.Parse(models.DateLayout, req.EventDate); err != nil {
		return "event_date must be formatted YYYY-MM-DD"
	}
	if req.EventTime != "" {
		if _, err := time.Parse(models.TimeLayout, req.EventTime); err != nil {
			return "event_time must be formatted HH:MM"
		}
	}
	if utf8.RuneCountInString(req.Location) > models.MaxLocationLen {
		return fmt.Sprintf("location must be at most %d characters", models.MaxLocationLen)
	}
	if utf8.RuneCountInString(req.Budget) > models.MaxBudgetLen {
		return fmt.Sprintf("budget must be at most %d characters", models.MaxBudgetLen)
	}

	n := len(req.Participants)
	if n < matching.MinParticipants {
		return fmt.Sprintf("at least %d participants are required", matching.MinParticipants)
	}
	if n > models.MaxParticipants {
		return fmt.Sprintf("at most %d participants are allowed", models.MaxParticipants)
	}

	emails := make(map[string]int, n)
	for i := range req.Participants {
		p := &req.Participants[i]
		p.Name = strings.TrimSpace(p.Name)
		p.Email = strings.TrimSpace(p.Email)

		if p.Name == "" {
			return fmt.Sprintf("participant %d: name is required", i+1)
		}
		if utf8.RuneCountInString(p.Name) > models.MaxParticipantNameLen {
			return fmt.Sprintf("participant %d: name must be at most %d characters", i+1, models.MaxParticipantNameLen)
		}
		if !validEmail(p.Email) {
			return fmt.Sprintf("participant %d: email must be a valid email address", i+1)
		}
		key := strings.ToLower(p.Email)
		if prev, dup := emails[key]; dup {
			return fmt.Sprintf("participants %d and %d share the email %s", prev+1, i+1, p.Email)
		}
		emails[key] = i
	}

	seen := make(map[models.ExclusionInput]bool, len(req.Exclusions))
	exclusions := req.Exclusions[:0]
	for _, ex := range req.Exclusions {
		if ex.Giver < 0 || ex.Giver >= n || ex.Excluded < 0 || ex.Excluded >= n {
			return fmt.Sprintf("exclusion %d -> %d refers to an unknown participant", ex.Giver, ex.Excluded)
		}
		if ex.Giver == ex.Excluded {
			return fmt.Sprintf("%s cannot be excluded from themselves", req.Participants[ex.Giver].Name)
		}
		if seen[ex] {
			continue
		}
		seen[ex] = true
		exclusions = append(exclusions, ex)
	}
	req.Exclusions = exclusions

	return ""
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// excludedByIndex builds the dry-run exclusion map from a validated request.
func excludedByIndex(req models.CreateEventRequest) map[int][]int {
	excluded := make(map[int][]int)
	for _, ex := range req.Exclusions {
		excluded[ex.Giver] = append(excluded[ex.Giver], ex.Excluded)
	}
	return excluded
}

// noSolutionReason turns a matching failure into guidance for the organizer.
// name resolves the identifier of an infeasible giver.
func noSolutionReason(err error, name func(giver any) string) string {
	var nse *matching.NoSolutionError
	if !errors.As(err, &nse) {
		return infeasibleMessage
	}
	switch {
	case errors.Is(err, matching.ErrTooFewParticipants):
		return fmt.Sprintf("At least %d participants are required.", matching.MinParticipants)
	case errors.Is(err, matching.ErrInfeasibleGiver):
		return fmt.Sprintf("%s has nobody left to draw. %s", name(nse.Giver), infeasibleMessage)
	default:
		return infeasibleMessage
	}
}
