package service

import "errors"

var (
	// ErrInvalidRequest is returned when request data is invalid or incomplete.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login email/password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden is returned when the actor's role does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrCategoryNotFound is returned when a category cannot be found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrGameNotFound is returned when a game cannot be found or is inactive.
	ErrGameNotFound = errors.New("game not found")

	// ErrPackageNotFound is returned when a package cannot be found, is
	// inactive, or does not belong to the requested game.
	ErrPackageNotFound = errors.New("package not found")

	// ErrPackageRequired is returned when ordering a package-based game
	// without a package.
	ErrPackageRequired = errors.New("package is required for this game")

	// ErrPackageNotAllowed is returned when ordering a direct-sale game
	// with a package.
	ErrPackageNotAllowed = errors.New("package is not allowed for this game")

	// ErrSlugTaken is returned when a catalog slug already exists.
	ErrSlugTaken = errors.New("slug already exists")

	// ErrCouponNotFound is returned when a coupon code cannot be found.
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponExists is returned when creating a coupon whose code already exists.
	ErrCouponExists = errors.New("coupon code already exists")

	// ErrInvalidWindow is returned when a coupon's valid_from is not before valid_to.
	ErrInvalidWindow = errors.New("valid_from must be before valid_to")

	// ErrOrderNotFound is returned when an order cannot be found.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotOrderOwner is returned when a user operates on someone else's order.
	ErrNotOrderOwner = errors.New("order belongs to another user")

	// ErrInvalidTransition is returned for a status target the state
	// machine does not allow from the order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrOrderNotCancellable is returned when cancelling an order that is
	// no longer pending.
	ErrOrderNotCancellable = errors.New("only pending orders can be cancelled")

	// ErrIntentMismatch is returned when a payment webhook's intent id does
	// not match the one stored on the order.
	ErrIntentMismatch = errors.New("payment intent mismatch")
)
