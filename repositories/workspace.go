//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=../mocks/mock_workspace.go -package=mocks
package repositories

import (
	"chat-workspace/domain"

	"github.com/google/uuid"
)

type IWorkspace interface {
	NextUserID() domain.UserID
	NextChannelID() domain.ChannelID
	NextMessageID() domain.MessageID

	PutUser(u *domain.User)
	User(id domain.UserID) (*domain.User, bool)
	UserByEmail(email string) (*domain.User, bool)
	UserByHandle(handle string) (*domain.User, bool)
	Users() []*domain.User

	PutChannel(c *domain.Channel)
	Channel(id domain.ChannelID) (*domain.Channel, bool)
	Channels() []*domain.Channel

	RevokeSession(id uuid.UUID)
	SessionRevoked(id uuid.UUID) bool

	Reset()
}

// Workspace is the single in-memory container for all users, channels and
// sessions. It performs no validation: every business rule lives in the
// services, this type only stores data and allocates ids.
//
// Access is single-caller by contract. If the workspace is ever shared
// between goroutines, every operation of the owning services must run under
// one global critical section, since id allocation and uniqueness checks are
// not independently safe under interleaving.
type Workspace struct {
	users        map[domain.UserID]*domain.User
	userOrder    []domain.UserID
	channels     map[domain.ChannelID]*domain.Channel
	channelOrder []domain.ChannelID
	revoked      map[uuid.UUID]struct{}

	lastUserID    int
	lastChannelID int
	lastMessageID int
}

func NewWorkspace() *Workspace {
	w := &Workspace{}
	w.Reset()
	return w
}

// Reset discards all data and restarts every id counter, returning the
// workspace to its empty initial state. Meant for test harnesses and
// administrative tooling.
func (w *Workspace) Reset() {
	w.users = make(map[domain.UserID]*domain.User)
	w.userOrder = nil
	w.channels = make(map[domain.ChannelID]*domain.Channel)
	w.channelOrder = nil
	w.revoked = make(map[uuid.UUID]struct{})
	w.lastUserID = 0
	w.lastChannelID = 0
	w.lastMessageID = 0
}

func (w *Workspace) NextUserID() domain.UserID {
	w.lastUserID++
	return domain.UserID(w.lastUserID)
}

func (w *Workspace) NextChannelID() domain.ChannelID {
	w.lastChannelID++
	return domain.ChannelID(w.lastChannelID)
}

func (w *Workspace) NextMessageID() domain.MessageID {
	w.lastMessageID++
	return domain.MessageID(w.lastMessageID)
}

func (w *Workspace) PutUser(u *domain.User) {
	if _, exists := w.users[u.ID]; !exists {
		w.userOrder = append(w.userOrder, u.ID)
	}
	w.users[u.ID] = u
}

func (w *Workspace) User(id domain.UserID) (*domain.User, bool) {
	u, ok := w.users[id]
	return u, ok
}

func (w *Workspace) UserByEmail(email string) (*domain.User, bool) {
	for _, id := range w.userOrder {
		if w.users[id].Email == email {
			return w.users[id], true
		}
	}
	return nil, false
}

func (w *Workspace) UserByHandle(handle string) (*domain.User, bool) {
	for _, id := range w.userOrder {
		if w.users[id].Handle == handle {
			return w.users[id], true
		}
	}
	return nil, false
}

// Users returns all users in registration order.
func (w *Workspace) Users() []*domain.User {
	out := make([]*domain.User, 0, len(w.userOrder))
	for _, id := range w.userOrder {
		out = append(out, w.users[id])
	}
	return out
}

func (w *Workspace) PutChannel(c *domain.Channel) {
	if _, exists := w.channels[c.ID]; !exists {
		w.channelOrder = append(w.channelOrder, c.ID)
	}
	w.channels[c.ID] = c
}

func (w *Workspace) Channel(id domain.ChannelID) (*domain.Channel, bool) {
	c, ok := w.channels[id]
	return c, ok
}

// Channels returns all channels in creation order.
func (w *Workspace) Channels() []*domain.Channel {
	out := make([]*domain.Channel, 0, len(w.channelOrder))
	for _, id := range w.channelOrder {
		out = append(out, w.channels[id])
	}
	return out
}

func (w *Workspace) RevokeSession(id uuid.UUID) {
	w.revoked[id] = struct{}{}
}

func (w *Workspace) SessionRevoked(id uuid.UUID) bool {
	_, revoked := w.revoked[id]
	return revoked
}
