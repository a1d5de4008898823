package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrRemoteFetch indicates a remote data source could not be reached or
// answered with a non-2xx status.
var ErrRemoteFetch = errors.New("remote fetch failed")

// ErrParse indicates a remote data source answered with a malformed body.
var ErrParse = errors.New("malformed remote response")

// ErrUnknownCurrency indicates a currency code absent from the catalog or
// from a fetched rate set.
var ErrUnknownCurrency = errors.New("unknown currency code")

// ErrNoCurrencyAvailable indicates the catalog is empty and no currency can
// be resolved at any precedence level. This is an operator configuration
// problem and must be surfaced, never swallowed.
var ErrNoCurrencyAvailable = errors.New("no currency available")
