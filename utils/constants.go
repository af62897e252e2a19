// File: utils/constants.go
package utils

import "time"

// ProviderLockPrefix is the prefix used for Redis provider lock keys.
const ProviderLockPrefix = "lock:provider:"

// DefaultProviderLockTTL applies when PROVIDER_LOCK_TTL is unset or zero.
const DefaultProviderLockTTL = 10 * time.Second

// DateLayout is the query format for calendar dates.
const DateLayout = "2006-01-02"

// Context keys set by the auth middleware.
const (
	CtxUserID     = "userID"
	CtxProviderID = "providerID"
	CtxRole       = "role"
)
