package service

import "errors"

// Failure taxonomy shared across services. Handlers map these onto HTTP
// statuses: validation 400, forbidden 403, not found 404, conflict 409.
var (
	ErrForbidden = errors.New("you do not have permission to perform this action")

	ErrReservedUsername = errors.New("username \"me\" is reserved")
	ErrInvalidUsername  = errors.New("username may only contain letters, digits and @/./+/-/_")
	ErrIdentityTaken    = errors.New("username or email already taken")
	ErrUnknownUsername  = errors.New("username not found")
	ErrWrongCode        = errors.New("invalid confirmation code")
	ErrUserNotFound     = errors.New("user not found")

	ErrSlugTaken        = errors.New("slug already in use")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")

	ErrTitleNotFound = errors.New("title not found")
	ErrTitleExists   = errors.New("title with this name, category and year already exists")
	ErrYearInFuture  = errors.New("year must not be later than the current year")
	ErrYearNegative  = errors.New("year must not be negative")

	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("you have already reviewed this title")

	ErrCommentNotFound = errors.New("comment not found")
)
