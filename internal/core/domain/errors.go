package domain

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrIncompleteRegistration = errors.New("name, email, and password are required")
	ErrUserExists             = errors.New("user already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrForbidden              = errors.New("access forbidden")
	ErrCannotDeleteSelf       = errors.New("cannot delete yourself")
	ErrMenuItemInvalid        = errors.New("invalid menu item")
	ErrFranchiseNotFound      = errors.New("franchise not found")
	ErrStoreNotFound          = errors.New("store not found")
	ErrOrderInvalid           = errors.New("invalid order")
	ErrFactoryFailure         = errors.New("order fulfillment failed")
)
