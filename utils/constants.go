// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// SyncTokenPrefix is the prefix used for one-time sync token keys.
const SyncTokenPrefix = "synctoken:"

// SyncTokenTTL bounds how long an unanswered sync request stays valid.
const SyncTokenTTL = 24 * time.Hour
