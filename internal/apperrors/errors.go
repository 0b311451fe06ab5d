package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a monetary amount that violates a domain rule,
// e.g. a non-positive debit or a negative opening balance.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientBalance indicates a debit larger than the available balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrAccountNotActive indicates a balance operation on a blocked account.
var ErrAccountNotActive = errors.New("account is not active")

// ErrCurrencyMismatch indicates an operation between two monetary values of
// different currencies. There is no implicit conversion.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrInvalidIdentifier indicates a malformed or empty entity identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier")
