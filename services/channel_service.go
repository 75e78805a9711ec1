//go:generate go run go.uber.org/mock/mockgen -source=channel_service.go -destination=../mocks/mock_channel_service.go -package=mocks
package services

import (
	"log/slog"
	"time"

	"chat-workspace/domain"
	"chat-workspace/errors"
	"chat-workspace/repositories"

	"github.com/samber/lo"
)

// DefaultPageSize is the message pagination window.
const DefaultPageSize = 50

type IChannelService interface {
	Create(userID domain.UserID, name string, public bool) (domain.ChannelID, error)
	Join(userID domain.UserID, channelID domain.ChannelID) error
	Invite(userID domain.UserID, channelID domain.ChannelID, targetID domain.UserID) error
	Leave(userID domain.UserID, channelID domain.ChannelID) error
	AddOwner(userID domain.UserID, channelID domain.ChannelID, targetID domain.UserID) error
	RemoveOwner(userID domain.UserID, channelID domain.ChannelID, targetID domain.UserID) error
	ListForUser(userID domain.UserID) ([]ChannelSummary, error)
	ListAll(userID domain.UserID) ([]ChannelDetails, error)
	Send(userID domain.UserID, channelID domain.ChannelID, text string) (domain.MessageID, error)
	Messages(userID domain.UserID, channelID domain.ChannelID, start int) (MessagePage, error)
	Details(userID domain.UserID, channelID domain.ChannelID) (ChannelDetails, error)
}

type ChannelService struct {
	workspace repositories.IWorkspace
	log       *slog.Logger
	pageSize  int
}

func NewChannelService(workspace repositories.IWorkspace, log *slog.Logger, pageSize int) *ChannelService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ChannelService{workspace: workspace, log: log, pageSize: pageSize}
}

type ChannelSummary struct {
	ID   domain.ChannelID
	Name string
}

type ChannelDetails struct {
	ID      domain.ChannelID
	Name    string
	Public  bool
	Owners  []domain.Profile
	Members []domain.Profile
}

type MessagePage struct {
	Messages []domain.Message
	Start    int
	// End is the start offset of the next page, or -1 when no older
	// messages remain.
	End int
}

// Create opens a new channel whose creator is its first owner and member.
func (s *ChannelService) Create(userID domain.UserID, name string, public bool) (domain.ChannelID, error) {
	if _, ok := s.workspace.User(userID); !ok {
		return 0, errors.ErrUserNotFound
	}
	if len(name) < 1 || len(name) > 20 {
		return 0, errors.ErrInvalidChannelName
	}

	channel := domain.NewChannel(s.workspace.NextChannelID(), name, public, userID)
	s.workspace.PutChannel(channel)
	s.log.Info("channel created", "channel_id", int(channel.ID), "name", name, "public", public)
	return channel.ID, nil
}

// Join adds the user to a channel. Private channels admit only global owners.
func (s *ChannelService) Join(userID domain.UserID, channelID domain.ChannelID) error {
	user, ok := s.workspace.User(userID)
	if !ok {
		return errors.ErrUserNotFound
	}
	channel, ok := s.workspace.Channel(channelID)
	if !ok {
		return errors.ErrChannelNotFound
	}
	if channel.IsMember(userID) {
		return errors.ErrAlreadyMember
	}
	if !channel.Public && !user.IsGlobalOwner() {
		return errors.ErrPrivateChannel
	}
	channel.AddMember(userID)
	return nil
}

// Invite lets an existing member pull another user into the channel,
// regardless of the channel being private.
func (s *ChannelService) Invite(userID domain.UserID, channelID domain.ChannelID, targetID domain.UserID) error {
	if _, ok := s.workspace.User(userID); !ok {
		return errors.ErrUserNotFound
	}
	channel, ok := s.workspace.Channel(channelID)
	if !ok {
		return errors.ErrChannelNotFound
	}
	if !channel.IsMember(userID) {
		return errors.ErrNotMember
	}
	if _, ok := s.workspace.User(targetID); !ok {
		return errors.ErrUserNotFound
	}
	if channel.IsMember(targetID) {
		return errors.ErrAlreadyMember
	}
	channel.AddMember(targetID)
	return nil
}

// Leave removes the user from the channel. A leaving owner is dropped from
// the owner list too; a channel may end up ownerless this way.
func (s *ChannelService) Leave(userID domain.UserID, channelID domain.ChannelID) error {
	if _, ok := s.workspace.User(userID); !ok {
		return errors.ErrUserNotFound
	}
	channel, ok := s.workspace.Channel(channelID)
	if !ok {
		return errors.ErrChannelNotFound
	}
	if !channel.IsMember(userID) {
		return errors.ErrNotMember
	}
	channel.RemoveMember(userID)
	return nil
}

// AddOwner promotes a member to channel owner. The actor needs owner rights:
// being a channel owner, or a global owner who is a member.
func (s *ChannelService) AddOwner(userID domain.UserID, channelID domain.ChannelID, targetID domain.UserID) error {
	channel, err := s.channelForOwnerAction(userID, channelID)
	if err != nil {
		return err
	}
	if _, ok := s.workspace.User(targetID); !ok {
		return errors.ErrUserNotFound
	}
	if !channel.IsMember(targetID) {
		return errors.ErrNotMember
	}
	if channel.IsOwner(targetID) {
		return errors.ErrAlreadyOwner
	}
	channel.AddOwner(targetID)
	return nil
}

// RemoveOwner demotes a channel owner back to plain member. The last owner
// of a channel cannot be demoted.
func (s *ChannelService) RemoveOwner(userID domain.UserID, channelID domain.ChannelID, targetID domain.UserID) error {
	channel, err := s.channelForOwnerAction(userID, channelID)
	if err != nil {
		return err
	}
	if _, ok := s.workspace.User(targetID); !ok {
		return errors.ErrUserNotFound
	}
	if !channel.IsOwner(targetID) {
		return errors.ErrNotOwner
	}
	if len(channel.Owners()) == 1 {
		return errors.ErrLastOwner
	}
	channel.RemoveOwner(targetID)
	return nil
}

func (s *ChannelService) channelForOwnerAction(userID domain.UserID, channelID domain.ChannelID) (*domain.Channel, error) {
	user, ok := s.workspace.User(userID)
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	channel, ok := s.workspace.Channel(channelID)
	if !ok {
		return nil, errors.ErrChannelNotFound
	}
	if !channel.IsOwner(userID) && !(user.IsGlobalOwner() && channel.IsMember(userID)) {
		return nil, errors.ErrNotOwner
	}
	return channel, nil
}

// ListForUser returns the channels the user belongs to, in creation order.
func (s *ChannelService) ListForUser(userID domain.UserID) ([]ChannelSummary, error) {
	if _, ok := s.workspace.User(userID); !ok {
		return nil, errors.ErrUserNotFound
	}
	member := lo.Filter(s.workspace.Channels(), func(c *domain.Channel, _ int) bool {
		return c.IsMember(userID)
	})
	return lo.Map(member, func(c *domain.Channel, _ int) ChannelSummary {
		return ChannelSummary{ID: c.ID, Name: c.Name}
	}), nil
}

// ListAll returns every channel of the workspace with full member profiles,
// in creation order, regardless of the requester's memberships.
func (s *ChannelService) ListAll(userID domain.UserID) ([]ChannelDetails, error) {
	if _, ok := s.workspace.User(userID); !ok {
		return nil, errors.ErrUserNotFound
	}
	return lo.Map(s.workspace.Channels(), func(c *domain.Channel, _ int) ChannelDetails {
		return s.details(c)
	}), nil
}

// Send posts a message to a channel the user is a member of and returns the
// workspace-wide message id.
func (s *ChannelService) Send(userID domain.UserID, channelID domain.ChannelID, text string) (domain.MessageID, error) {
	if _, ok := s.workspace.User(userID); !ok {
		return 0, errors.ErrUserNotFound
	}
	channel, ok := s.workspace.Channel(channelID)
	if !ok {
		return 0, errors.ErrChannelNotFound
	}
	if !channel.IsMember(userID) {
		return 0, errors.ErrNotMember
	}
	if text == "" {
		return 0, errors.ErrEmptyMessage
	}

	message := domain.Message{
		ID:     s.workspace.NextMessageID(),
		Author: userID,
		Text:   text,
		SentAt: time.Now(),
	}
	channel.Post(message)
	return message.ID, nil
}

// Messages returns one pagination window of the channel history, newest
// first. End is start+pageSize while older messages remain, -1 otherwise.
func (s *ChannelService) Messages(userID domain.UserID, channelID domain.ChannelID, start int) (MessagePage, error) {
	if _, ok := s.workspace.User(userID); !ok {
		return MessagePage{}, errors.ErrUserNotFound
	}
	channel, ok := s.workspace.Channel(channelID)
	if !ok {
		return MessagePage{}, errors.ErrChannelNotFound
	}
	if !channel.IsMember(userID) {
		return MessagePage{}, errors.ErrNotMember
	}
	if start < 0 || start > channel.MessageCount() {
		return MessagePage{}, errors.ErrPageOutOfRange
	}

	messages, end := channel.Page(start, s.pageSize)
	return MessagePage{Messages: messages, Start: start, End: end}, nil
}

// Details returns the channel header and full owner/member profiles for a
// member of the channel.
func (s *ChannelService) Details(userID domain.UserID, channelID domain.ChannelID) (ChannelDetails, error) {
	if _, ok := s.workspace.User(userID); !ok {
		return ChannelDetails{}, errors.ErrUserNotFound
	}
	channel, ok := s.workspace.Channel(channelID)
	if !ok {
		return ChannelDetails{}, errors.ErrChannelNotFound
	}
	if !channel.IsMember(userID) {
		return ChannelDetails{}, errors.ErrNotMember
	}
	return s.details(channel), nil
}

func (s *ChannelService) details(c *domain.Channel) ChannelDetails {
	return ChannelDetails{
		ID:      c.ID,
		Name:    c.Name,
		Public:  c.Public,
		Owners:  s.profiles(c.Owners()),
		Members: s.profiles(c.Members()),
	}
}

func (s *ChannelService) profiles(ids []domain.UserID) []domain.Profile {
	return lo.FilterMap(ids, func(id domain.UserID, _ int) (domain.Profile, bool) {
		user, ok := s.workspace.User(id)
		if !ok {
			return domain.Profile{}, false
		}
		return user.Profile(), true
	})
}
