package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChannel_Post_KeepsNewestFirst(t *testing.T) {
	req := require.New(t)
	c := NewChannel(1, "general", true, 7)

	older := Message{ID: 1, Author: 7, Text: "first", SentAt: time.Now()}
	newer := Message{ID: 2, Author: 7, Text: "second", SentAt: time.Now()}
	c.Post(older)
	c.Post(newer)

	req.Equal(2, c.MessageCount())
	page, next := c.Page(0, 50)
	req.Equal(-1, next)
	req.Equal([]Message{newer, older}, page)
}

func TestChannel_Page_Windows(t *testing.T) {
	req := require.New(t)
	c := NewChannel(1, "general", true, 7)
	for i := 1; i <= 5; i++ {
		c.Post(Message{ID: MessageID(i), Author: 7, Text: "m"})
	}

	page, next := c.Page(0, 2)
	req.Len(page, 2)
	req.Equal(2, next)

	page, next = c.Page(2, 2)
	req.Len(page, 2)
	req.Equal(4, next)

	// Last partial window signals the end with -1.
	page, next = c.Page(4, 2)
	req.Len(page, 1)
	req.Equal(-1, next)

	// A window ending exactly on the last message also signals the end.
	_, next = c.Page(3, 2)
	req.Equal(-1, next)
}

func TestChannel_RemoveMember_DropsOwnership(t *testing.T) {
	req := require.New(t)
	c := NewChannel(1, "general", true, 7)
	c.AddMember(8)
	c.AddOwner(8)

	c.RemoveMember(8)

	req.False(c.IsMember(8))
	req.False(c.IsOwner(8))
	req.Equal([]UserID{7}, c.Owners())
	req.Equal([]UserID{7}, c.Members())
}
