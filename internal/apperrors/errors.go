package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// It is also returned when a resource exists but is not visible to the
// caller, so visibility leaks nothing about existence.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no authenticated principal is present.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated principal lacks the capability for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientFunds indicates a redemption was attempted against a balance
// smaller than the reward cost.
var ErrInsufficientFunds = errors.New("insufficient points balance")

// ErrAlreadyApproved indicates an approval was attempted on a request that is
// already in its terminal approved state.
var ErrAlreadyApproved = errors.New("request already approved")
