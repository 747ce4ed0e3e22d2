package utils

import "errors"

var (
	// Content
	ErrContentNotFound   = errors.New("content not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrTagNotFound       = errors.New("tag not found")
	ErrSlugTaken         = errors.New("slug already in use")
	ErrSlugImmutable     = errors.New("slug cannot change after publish")
	ErrContentReferenced = errors.New("content is referenced by completed purchases")

	// List contract
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")

	// Accounts
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Payments
	ErrPlanNotFound       = errors.New("plan not found")
	ErrContentNotForSale  = errors.New("content is not purchasable")
	ErrAlreadyPurchased   = errors.New("content already purchased")

	// Events
	ErrEventNotFound = errors.New("event not found")
	ErrEventFull     = errors.New("event is at capacity")
	ErrAlreadyRSVPed = errors.New("already rsvped to this event")

	// Newsletter
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrNotSubscribed     = errors.New("email is not subscribed")
	ErrNothingToSend     = errors.New("no eligible content for digest")

	// Upstream
	ErrDatabaseError  = errors.New("database error")
	ErrMailSendFailed = errors.New("mail send failed")
)
