package services

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"chat-workspace/domain"
	"chat-workspace/errors"
	"chat-workspace/repositories"

	"github.com/stretchr/testify/require"
)

func newIdentityService() (*IdentityService, *repositories.Workspace) {
	ws := repositories.NewWorkspace()
	return NewIdentityService(ws, slog.Default(), time.Hour), ws
}

func TestIdentityService_Register(t *testing.T) {
	t.Run("should register and immediately authenticate with the same credentials", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newIdentityService()

		res, err := svc.Register("hello@gmail.com", "thisisapassword", "john", "doe")
		req.NoError(err)
		req.Equal(domain.UserID(1), res.UserID)
		req.NotEmpty(res.Token)

		logged, err := svc.Login("hello@gmail.com", "thisisapassword")
		req.NoError(err)
		req.Equal(res.UserID, logged.UserID)
	})

	t.Run("should make the first user a global owner and the second a member", func(t *testing.T) {
		req := require.New(t)
		svc, ws := newIdentityService()

		first, err := svc.Register("first@gmail.com", "password", "ada", "lovelace")
		req.NoError(err)
		second, err := svc.Register("second@gmail.com", "password", "alan", "turing")
		req.NoError(err)

		u1, _ := ws.User(first.UserID)
		u2, _ := ws.User(second.UserID)
		req.True(u1.IsGlobalOwner())
		req.False(u2.IsGlobalOwner())
	})

	t.Run("should reject a duplicate email without touching the first registration", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newIdentityService()

		first, err := svc.Register("hello@gmail.com", "thisisapassword", "john", "doe")
		req.NoError(err)

		_, err = svc.Register("hello@gmail.com", "differentpassword", "laurence", "cat")
		req.ErrorIs(err, errors.ErrUserAlreadyExists)
		req.ErrorIs(err, errors.ErrConflict)

		logged, err := svc.Login("hello@gmail.com", "thisisapassword")
		req.NoError(err)
		req.Equal(first.UserID, logged.UserID)
	})

	t.Run("should validate input boundaries", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newIdentityService()

		_, err := svc.Register("johngmail.com", "123456", "aa", "bb")
		req.ErrorIs(err, errors.ErrValidation)
		_, err = svc.Register("hello@yahoo", "514141", "xx", "yy")
		req.ErrorIs(err, errors.ErrValidation)
		_, err = svc.Register("short@pass.com", "hell0", "john", "doe")
		req.ErrorIs(err, errors.ErrValidation)
		_, err = svc.Register("noname@pass.com", "hello5555", "", "smith")
		req.ErrorIs(err, errors.ErrValidation)
		_, err = svc.Register("longname@pass.com", "hello5555", strings.Repeat("a", 51), "smith")
		req.ErrorIs(err, errors.ErrValidation)

		_, err = svc.Register("edge@pass.com", "hell05", strings.Repeat("a", 50), "b")
		req.NoError(err)
	})
}

func TestIdentityService_HandleGeneration(t *testing.T) {
	profileHandle := func(t *testing.T, svc *IdentityService, res AuthResult) string {
		t.Helper()
		profile, err := svc.Profile(res.UserID, res.UserID)
		require.NoError(t, err)
		return profile.Handle
	}

	t.Run("should concatenate lower-cased names", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newIdentityService()

		res, err := svc.Register("email@yahoo.com", "password", "SAMUEL", "JONES")
		req.NoError(err)
		req.Equal("samueljones", profileHandle(t, svc, res))
	})

	t.Run("should strip non-alphanumeric characters", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newIdentityService()

		res, err := svc.Register("email@yahoo.com", "password", "sa?m,UeL", "Jo*neS")
		req.NoError(err)
		req.Equal("samueljones", profileHandle(t, svc, res))
	})

	t.Run("should truncate the base handle to 20 characters", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newIdentityService()

		res, err := svc.Register("email@yahoo.com", "password", "samuel", "jonesjonesjonesjones")
		req.NoError(err)
		req.Equal("samueljonesjonesjone", profileHandle(t, svc, res))
	})

	t.Run("should suffix colliding handles with 0 then 1", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newIdentityService()

		for i, want := range []string{"samueljones", "samueljones0", "samueljones1"} {
			res, err := svc.Register(fmt.Sprintf("user%d@yahoo.com", i), "password", "samuel", "jones")
			req.NoError(err)
			req.Equal(want, profileHandle(t, svc, res))
		}
	})

	t.Run("should let the suffix exceed 20 characters", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newIdentityService()

		_, err := svc.Register("first@yahoo.com", "password", "samuel", "jonesjonesjonesjones")
		req.NoError(err)
		res, err := svc.Register("second@yahoo.com", "password", "samuel", "jonesjonesjonesjones")
		req.NoError(err)
		req.Equal("samueljonesjonesjone0", profileHandle(t, svc, res))
	})
}

func TestIdentityService_Login(t *testing.T) {
	req := require.New(t)
	svc, _ := newIdentityService()

	_, err := svc.Register("example@gmail.com", "password", "ted", "smith")
	req.NoError(err)

	t.Run("should reject a wrong password", func(t *testing.T) {
		_, err := svc.Login("example@gmail.com", "notoriginalpassword")
		require.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("should reject an unknown email with the same error", func(t *testing.T) {
		_, err := svc.Login("example1@gmail.com", "password")
		require.ErrorIs(t, err, errors.ErrInvalidCredentials)
		require.ErrorIs(t, err, errors.ErrUnauthorized)
	})
}

func TestIdentityService_Sessions(t *testing.T) {
	req := require.New(t)
	svc, _ := newIdentityService()

	res, err := svc.Register("session@gmail.com", "password", "ted", "smith")
	req.NoError(err)

	userID, err := svc.Authenticate(res.Token)
	req.NoError(err)
	req.Equal(res.UserID, userID)

	req.NoError(svc.Logout(res.Token))

	_, err = svc.Authenticate(res.Token)
	req.ErrorIs(err, errors.ErrSessionRevoked)

	// A second logout of the same session fails too.
	req.ErrorIs(svc.Logout(res.Token), errors.ErrSessionRevoked)

	// A fresh login opens an independent session.
	logged, err := svc.Login("session@gmail.com", "password")
	req.NoError(err)
	userID, err = svc.Authenticate(logged.Token)
	req.NoError(err)
	req.Equal(res.UserID, userID)
}

func TestIdentityService_Profile(t *testing.T) {
	req := require.New(t)
	svc, _ := newIdentityService()

	first, err := svc.Register("johnsmith@gmail.com", "123456", "John", "Smith")
	req.NoError(err)
	second, err := svc.Register("janedoe@gmail.com", "123456", "Jane", "Doe")
	req.NoError(err)

	t.Run("should return the target profile to any valid requester", func(t *testing.T) {
		profile, err := svc.Profile(second.UserID, first.UserID)
		require.NoError(t, err)
		require.Equal(t, domain.Profile{
			UserID:    first.UserID,
			Email:     "johnsmith@gmail.com",
			NameFirst: "John",
			NameLast:  "Smith",
			Handle:    "johnsmith",
		}, profile)
	})

	t.Run("should fail on invalid requester or target", func(t *testing.T) {
		_, err := svc.Profile(domain.UserID(999), first.UserID)
		require.ErrorIs(t, err, errors.ErrUserNotFound)
		_, err = svc.Profile(first.UserID, domain.UserID(999))
		require.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func TestIdentityService_ListUsers(t *testing.T) {
	req := require.New(t)
	svc, _ := newIdentityService()

	first, err := svc.Register("a@x.com", "password", "Ada", "Lovelace")
	req.NoError(err)
	_, err = svc.Register("b@x.com", "password", "Alan", "Turing")
	req.NoError(err)

	profiles, err := svc.ListUsers(first.UserID)
	req.NoError(err)
	req.Len(profiles, 2)
	req.Equal("adalovelace", profiles[0].Handle)
	req.Equal("alanturing", profiles[1].Handle)

	_, err = svc.ListUsers(domain.UserID(42))
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestIdentityService_SetGlobalPermission(t *testing.T) {
	req := require.New(t)
	svc, ws := newIdentityService()

	owner, err := svc.Register("owner@x.com", "password", "Grace", "Hopper")
	req.NoError(err)
	member, err := svc.Register("member@x.com", "password", "Edsger", "Dijkstra")
	req.NoError(err)

	t.Run("should reject a non global owner requester", func(t *testing.T) {
		err := svc.SetGlobalPermission(member.UserID, owner.UserID, domain.PermMember)
		require.ErrorIs(t, err, errors.ErrNotGlobalOwner)
	})

	t.Run("should reject an unknown permission level", func(t *testing.T) {
		err := svc.SetGlobalPermission(owner.UserID, member.UserID, 3)
		require.ErrorIs(t, err, errors.ErrInvalidPermission)
	})

	t.Run("should refuse to demote the last global owner", func(t *testing.T) {
		err := svc.SetGlobalPermission(owner.UserID, owner.UserID, domain.PermMember)
		require.ErrorIs(t, err, errors.ErrLastGlobalOwner)
	})

	t.Run("should promote then demote", func(t *testing.T) {
		require.NoError(t, svc.SetGlobalPermission(owner.UserID, member.UserID, domain.PermGlobalOwner))
		promoted, _ := ws.User(member.UserID)
		require.True(t, promoted.IsGlobalOwner())

		require.NoError(t, svc.SetGlobalPermission(member.UserID, owner.UserID, domain.PermMember))
		demoted, _ := ws.User(owner.UserID)
		require.False(t, demoted.IsGlobalOwner())
	})
}
