// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"
	"time"
)

func testMessage() Message {
	return Message{
		To:            "alice@example.com",
		GiverName:     "Alice",
		ReceiverName:  "Bob",
		EventName:     "Office Party",
		OrganizerName: "Carol",
		EventDate:     "2025-12-24",
		EventTime:     "18:30",
		Location:      "Break room",
		Budget:        "$25",
		RevealURL:     "https://santa.example.com/e/abc/my-match",
		Token:         "secret-token",
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2025, 12, 3, 12, 0, 0, 0, time.UTC)
	subject, body := Render(testMessage(), now)

	if subject != "Your Secret Santa draw for Office Party" {
		t.Errorf("unexpected subject: %q", subject)
	}

	for _, want := range []string{
		"Hi Alice,",
		"gift for Bob",
		"Wednesday, December 24, 2025",
		"3 weeks from now",
		"Time: 18:30",
		"Location: Break room",
		"Budget: $25",
		"https://santa.example.com/e/abc/my-match",
		"secret-token",
		"Organized by Carol",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestRenderOmitsEmptyFields(t *testing.T) {
	msg := testMessage()
	msg.EventTime = ""
	msg.Location = ""
	msg.Budget = ""
	msg.RevealURL = ""

	_, body := Render(msg, time.Now())
	for _, unwanted := range []string{"Time:", "Location:", "Budget:", "personal code"} {
		if strings.Contains(body, unwanted) {
			t.Errorf("body should not contain %q:\n%s", unwanted, body)
		}
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := (LogNotifier{Logger: logger}).Notify(context.Background(), testMessage()); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "alice@example.com") {
		t.Errorf("expected recipient in log, got %q", out)
	}
	if strings.Contains(out, "Bob") {
		t.Errorf("receiver name must not be logged at info level: %q", out)
	}
}

func TestSMTPNotifier(t *testing.T) {
	n := NewSMTPNotifier("mail.example.com:587", "user", "pass", "santa@example.com")
	n.now = func() time.Time { return time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC) }

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	if err := n.Notify(context.Background(), testMessage()); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if gotAddr != "mail.example.com:587" {
		t.Errorf("unexpected addr %q", gotAddr)
	}
	if gotAuth == nil {
		t.Error("expected PLAIN auth when user is set")
	}
	if gotFrom != "santa@example.com" {
		t.Errorf("unexpected from %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "alice@example.com" {
		t.Errorf("unexpected recipients %v", gotTo)
	}

	mail := string(gotMsg)
	if !strings.HasPrefix(mail, "From: santa@example.com\r\nTo: alice@example.com\r\nSubject: Your Secret Santa draw for Office Party\r\n") {
		t.Errorf("unexpected headers:\n%s", mail)
	}
	if !strings.Contains(mail, "gift for Bob.\r\n") {
		t.Errorf("body should use CRLF line endings:\n%q", mail)
	}
}

func TestSMTPNotifierErrors(t *testing.T) {
	n := NewSMTPNotifier("mail.example.com:25", "", "", "santa@example.com")
	if n.auth != nil {
		t.Error("expected no auth without a user")
	}

	sendErr := errors.New("connection refused")
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return sendErr }

	if err := n.Notify(context.Background(), testMessage()); !errors.Is(err, sendErr) {
		t.Errorf("expected wrapped send error, got %v", err)
	}

	msg := testMessage()
	msg.To = ""
	if err := n.Notify(context.Background(), msg); !errors.Is(err, ErrNoRecipient) {
		t.Errorf("expected ErrNoRecipient, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Notify(ctx, testMessage()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestHeaderValueStripsLineBreaks(t *testing.T) {
	mail := string(buildMail("a@example.com", "b@example.com", "Party\r\nBcc: evil@example.com", "hi"))
	if strings.Contains(mail, "\r\nBcc:") {
		t.Errorf("header injection not prevented:\n%s", mail)
	}
}
