package game

import "errors"

// Rule violations. Each rejects a single write; none is fatal to the process.
var (
	ErrPhaseViolation          = errors.New("another hand is still open")
	ErrGameFinished            = errors.New("game already finished")
	ErrInvalidLeader           = errors.New("leader does not play this game")
	ErrNoSuchChoice            = errors.New("word is not among the hand choices")
	ErrWordAlreadySet          = errors.New("hand word already set")
	ErrAlreadyEnded            = errors.New("hand already ended")
	ErrHandClosed              = errors.New("hand already finished")
	ErrDuplicateWriter         = errors.New("writer already has a guess in this hand")
	ErrContentTooShort         = errors.New("guess content is required")
	ErrAlreadyAdjudicated      = errors.New("guess already adjudicated")
	ErrProtectedGuess          = errors.New("the original guess cannot be adjudicated")
	ErrDuplicateVote           = errors.New("user already voted in this hand")
	ErrDuplicateMembership     = errors.New("user already plays this game")
	ErrAlreadyPlayingElsewhere = errors.New("user is playing another game")
	ErrConditionsNotMet        = errors.New("game conditions are not met")
	ErrConditionOutOfBounds    = errors.New("condition value out of bounds")
	ErrUnknownConditionTag     = errors.New("unknown condition tag")
	ErrNotMember               = errors.New("user does not play this game")
	ErrNotLeader               = errors.New("user is not the hand leader")
	ErrNotCreator              = errors.New("user did not create this game")
)

// Vocabulary validation.
var (
	ErrWordTooShort         = errors.New("word must be at least 3 characters")
	ErrLanguageTagRequired  = errors.New("language tag is required")
	ErrLanguageNameTooShort = errors.New("language name must be at least 4 characters")
	ErrTranslationTooShort  = errors.New("translation must be at least 3 characters")
	ErrDefinitionTooShort   = errors.New("definition must be at least 10 characters")
	ErrUsernameRequired     = errors.New("username is required")
	ErrDuplicateWord        = errors.New("word already exists")
	ErrDuplicateLanguage    = errors.New("language already exists")
	ErrDuplicateMeaning     = errors.New("meaning already exists for this word and language")
	ErrDuplicateUsername    = errors.New("username already taken")
)

// Missing rows.
var (
	ErrGameNotFound      = errors.New("game not found")
	ErrHandNotFound      = errors.New("hand not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrWordNotFound      = errors.New("word not found")
	ErrLanguageNotFound  = errors.New("language not found")
	ErrMeaningNotFound   = errors.New("meaning not found")
	ErrHandGuessNotFound = errors.New("hand guess not found")
)
