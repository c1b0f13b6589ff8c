// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify tells each giver who they drew.

# Notifiers

	var n notify.Notifier = notify.LogNotifier{}
	n = notify.NewSMTPNotifier("smtp.example.com:587", user, pass, "santa@example.com")

LogNotifier is the development fallback: it logs the recipient and subject at
info level and the body (which names the receiver) at debug level.
SMTPNotifier sends plain-text mail with optional PLAIN auth.

# Message Shape

Each Message carries the giver's name and address, the receiver's name, the
event's name, date, time, location and budget, and the reveal link plus the
giver's personal code. Render turns it into a subject and body.
*/
package notify
