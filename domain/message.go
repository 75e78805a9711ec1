// Package domain contains core concepts of the messaging workspace.
// This file defines Message entities.
// Messages are immutable once created.
package domain

import "time"

type MessageID int

// Message represents an immutable chat message inside a channel.
type Message struct {
	ID     MessageID
	Author UserID
	Text   string
	SentAt time.Time
}
