package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	// Validation and business rules.
	ErrPlayerNameRequired     = errors.New("player name is required")
	ErrScoresEqual            = errors.New("scores must differ, a match needs a winner")
	ErrInvalidScore           = errors.New("scores must be non-negative integers")
	ErrInvalidTeamSize        = errors.New("each side must field one or two players, and both sides the same number")
	ErrDuplicatePlayer        = errors.New("a player cannot appear more than once in a match")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrNotEnoughTeams         = errors.New("a tournament needs at least two teams")
	ErrTeamPlayersInvalid     = errors.New("team roster does not match the tournament team size")
	ErrSlotNotDecided         = errors.New("bracket slot is still waiting for earlier results")
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters")
	ErrEmailRequired          = errors.New("email is required")

	// Missing entities.
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchSlotNotFound  = errors.New("bracket match not found")

	// Conflicts.
	ErrUserEmailConflict = errors.New("email address is already in use")

	// Authentication.
	ErrAuthInvalidCredentials = errors.New("invalid email or password")

	// Infrastructure.
	ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")
)
