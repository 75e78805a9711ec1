package test

import (
	"log/slog"
	"testing"
	"time"

	"chat-workspace/domain"
	"chat-workspace/errors"
	"chat-workspace/repositories"
	"chat-workspace/services"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// Full workflow across both services sharing one workspace, including a
// reset back to the empty initial state.
func Test_Scenario(t *testing.T) {
	req := require.New(t)

	cfg, err := LoadConfig()
	req.NoError(err)
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := logs.GetLoggerFromLevel(level)

	workspace := repositories.NewWorkspace()
	identity := services.NewIdentityService(workspace, log, time.Hour)
	channels := services.NewChannelService(workspace, log, cfg.PageSize)

	// Register two users; the first one is the global owner.
	ada, err := identity.Register("ada@example.com", "enigma1843", "Ada", "Lovelace")
	req.NoError(err)
	alan, err := identity.Register("alan@example.com", "bombe1940", "Alan", "Turing")
	req.NoError(err)

	// Both sessions resolve back to their users.
	id, err := identity.Authenticate(ada.Token)
	req.NoError(err)
	req.Equal(ada.UserID, id)
	id, err = identity.Authenticate(alan.Token)
	req.NoError(err)
	req.Equal(alan.UserID, id)

	// Ada opens a private channel; Alan cannot walk in but can be invited.
	staff, err := channels.Create(ada.UserID, "staff", false)
	req.NoError(err)
	req.ErrorIs(channels.Join(alan.UserID, staff), errors.ErrUnauthorized)
	req.NoError(channels.Invite(ada.UserID, staff, alan.UserID))

	// Conversation, then paged read-back newest-first.
	for _, text := range []string{"standup in 5", "ack", "starting now"} {
		_, err = channels.Send(alan.UserID, staff, text)
		req.NoError(err)
	}
	page, err := channels.Messages(ada.UserID, staff, 0)
	req.NoError(err)
	req.Len(page.Messages, 3)
	req.Equal("starting now", page.Messages[0].Text)
	req.Equal(-1, page.End)

	// Channel listings agree for both members.
	mine, err := channels.ListForUser(alan.UserID)
	req.NoError(err)
	req.Equal([]services.ChannelSummary{{ID: staff, Name: "staff"}}, mine)

	details, err := channels.Details(alan.UserID, staff)
	req.NoError(err)
	req.Len(details.Members, 2)
	req.Len(details.Owners, 1)

	// Logout closes Alan's session but not Ada's.
	req.NoError(identity.Logout(alan.Token))
	_, err = identity.Authenticate(alan.Token)
	req.ErrorIs(err, errors.ErrUnauthorized)
	_, err = identity.Authenticate(ada.Token)
	req.NoError(err)

	// Reset returns the workspace to its initial state: fresh ids, no users.
	workspace.Reset()
	_, err = channels.ListForUser(ada.UserID)
	req.ErrorIs(err, errors.ErrUserNotFound)

	fresh, err := identity.Register("new@example.com", "password", "New", "User")
	req.NoError(err)
	req.Equal(domain.UserID(1), fresh.UserID)
}
