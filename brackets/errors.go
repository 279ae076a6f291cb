package brackets

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package wraps exactly one of them.
var (
	// Static input is malformed (wrong group size, bad slot template, ...).
	ErrConfiguration = errors.New("configuration error")
	// Caller-supplied data violates a contract.
	ErrValidation = errors.New("validation error")
	// A previous stage has not been completed yet.
	ErrNotReady = errors.New("not ready")
)

var (
	ErrPenaltyWinnerRequired = fmt.Errorf("%w: penalty winner required", ErrValidation)
	ErrInvalidPenaltyWinner  = fmt.Errorf("%w: invalid penalty winner", ErrValidation)
	ErrRoundIncomplete       = fmt.Errorf("%w: round incomplete", ErrValidation)
	ErrOddBracket            = fmt.Errorf("%w: odd bracket", ErrValidation)
	ErrEmptyRound            = fmt.Errorf("%w: empty round", ErrValidation)
	ErrMatchNotFound         = fmt.Errorf("%w: match not found", ErrValidation)
	ErrMatchAlreadyResolved  = fmt.Errorf("%w: match already resolved", ErrValidation)
	ErrNegativeScore         = fmt.Errorf("%w: scores must not be negative", ErrValidation)
	ErrMissingScore          = fmt.Errorf("%w: played match without both scores", ErrValidation)
	ErrUnknownStage          = fmt.Errorf("%w: unknown stage", ErrValidation)
	ErrGroupStageStarted     = fmt.Errorf("%w: group stage already has played matches", ErrValidation)
	ErrMalformedState        = fmt.Errorf("%w: malformed tournament state", ErrValidation)
	ErrFixturesMismatch      = fmt.Errorf("%w: group fixtures do not match the roster", ErrValidation)
	ErrUnknownPlayoff        = fmt.Errorf("%w: unknown playoff block", ErrValidation)

	ErrInvalidGroupSize = fmt.Errorf("%w: group must have exactly %d teams", ErrConfiguration, groupSize)
	ErrUnknownGroup     = fmt.Errorf("%w: unknown group", ErrConfiguration)
	ErrGroupTooSmall    = fmt.Errorf("%w: group has fewer than 2 ranked teams", ErrConfiguration)
	ErrNotEnoughThirds  = fmt.Errorf("%w: more best3rd slots than qualified third-placed teams", ErrConfiguration)
	ErrInvalidSlotRule  = fmt.Errorf("%w: invalid slot rule", ErrConfiguration)
	ErrMalformedPlayoff = fmt.Errorf("%w: malformed playoff block", ErrConfiguration)
	ErrDuplicateSlot    = fmt.Errorf("%w: duplicate slot", ErrConfiguration)
	ErrEmptyConfig      = fmt.Errorf("%w: tournament has no groups", ErrConfiguration)

	ErrGroupStageIncomplete = fmt.Errorf("%w: group stage incomplete", ErrNotReady)
	ErrStageNotStarted      = fmt.Errorf("%w: stage not generated yet", ErrNotReady)
	ErrPlayoffUnresolved    = fmt.Errorf("%w: playoff has no winner", ErrNotReady)
	ErrTeamsUnknown         = fmt.Errorf("%w: match participants not known yet", ErrNotReady)
)
