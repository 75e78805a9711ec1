package errors

import "fmt"

// Error kinds. Callers discriminate with errors.Is against these four;
// the wording of individual causes is not part of the contract.
var (
	ErrValidation   = fmt.Errorf("validation failed")
	ErrConflict     = fmt.Errorf("conflicting state")
	ErrNotFound     = fmt.Errorf("not found")
	ErrUnauthorized = fmt.Errorf("unauthorized")
)

var (
	ErrInvalidEmail       = fmt.Errorf("%w: malformed email address", ErrValidation)
	ErrInvalidPassword    = fmt.Errorf("%w: password shorter than 6 characters", ErrValidation)
	ErrInvalidName        = fmt.Errorf("%w: name length must be between 1 and 50", ErrValidation)
	ErrInvalidChannelName = fmt.Errorf("%w: channel name length must be between 1 and 20", ErrValidation)
	ErrInvalidPermission  = fmt.Errorf("%w: unknown permission level", ErrValidation)
	ErrEmptyMessage       = fmt.Errorf("%w: message text is empty", ErrValidation)
	ErrPageOutOfRange     = fmt.Errorf("%w: start is beyond the last message", ErrValidation)

	ErrUserAlreadyExists = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrAlreadyMember     = fmt.Errorf("%w: user is already a member", ErrConflict)
	ErrAlreadyOwner      = fmt.Errorf("%w: user is already an owner", ErrConflict)
	ErrLastOwner         = fmt.Errorf("%w: a channel keeps at least one owner", ErrConflict)
	ErrLastGlobalOwner   = fmt.Errorf("%w: the workspace keeps at least one global owner", ErrConflict)

	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
	ErrChannelNotFound = fmt.Errorf("%w: channel", ErrNotFound)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrNotMember          = fmt.Errorf("%w: not a member of the channel", ErrUnauthorized)
	ErrNotOwner           = fmt.Errorf("%w: owner rights required", ErrUnauthorized)
	ErrPrivateChannel     = fmt.Errorf("%w: channel is private", ErrUnauthorized)
	ErrNotGlobalOwner     = fmt.Errorf("%w: global owner rights required", ErrUnauthorized)
	ErrSessionRevoked     = fmt.Errorf("%w: session is no longer valid", ErrUnauthorized)

	ErrTokenGeneration = fmt.Errorf("token generation failed")
)
