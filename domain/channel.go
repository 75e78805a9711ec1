// Package domain contains core concepts of the messaging workspace.
// This file defines Channel entities and their membership invariants:
// owners are always a subset of members, and messages are kept newest-first.
package domain

type ChannelID int

type Channel struct {
	ID     ChannelID
	Name   string
	Public bool

	// owners and members keep insertion order; owners ⊆ members always holds.
	owners  []UserID
	members []UserID

	// messages are stored newest-first, mirroring the read order.
	messages []Message
}

// NewChannel creates a channel whose creator is its first owner and member.
func NewChannel(id ChannelID, name string, public bool, creator UserID) *Channel {
	return &Channel{
		ID:      id,
		Name:    name,
		Public:  public,
		owners:  []UserID{creator},
		members: []UserID{creator},
	}
}

func (c *Channel) IsMember(id UserID) bool {
	for _, m := range c.members {
		if m == id {
			return true
		}
	}
	return false
}

func (c *Channel) IsOwner(id UserID) bool {
	for _, o := range c.owners {
		if o == id {
			return true
		}
	}
	return false
}

// AddMember appends the user to the member list. Callers check membership
// beforehand; adding twice is a programming error, not a silent no-op.
func (c *Channel) AddMember(id UserID) {
	c.members = append(c.members, id)
}

// RemoveMember drops the user from members and, to preserve owners ⊆ members,
// from owners as well.
func (c *Channel) RemoveMember(id UserID) {
	c.RemoveOwner(id)
	c.members = remove(c.members, id)
}

func (c *Channel) AddOwner(id UserID) {
	c.owners = append(c.owners, id)
}

func (c *Channel) RemoveOwner(id UserID) {
	c.owners = remove(c.owners, id)
}

// Owners returns owner ids in promotion order.
func (c *Channel) Owners() []UserID {
	return append([]UserID(nil), c.owners...)
}

// Members returns member ids in join order.
func (c *Channel) Members() []UserID {
	return append([]UserID(nil), c.members...)
}

// Post prepends the message so index 0 is always the newest one.
func (c *Channel) Post(m Message) {
	c.messages = append([]Message{m}, c.messages...)
}

func (c *Channel) MessageCount() int {
	return len(c.messages)
}

// Page returns up to size messages starting at offset start (newest-first)
// and the offset of the next page, or -1 when no messages remain beyond
// the returned window. start must be validated against MessageCount first.
func (c *Channel) Page(start, size int) ([]Message, int) {
	stop := start + size
	next := stop
	if stop >= len(c.messages) {
		stop = len(c.messages)
		next = -1
	}
	return append([]Message(nil), c.messages[start:stop]...), next
}

func remove(ids []UserID, id UserID) []UserID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
