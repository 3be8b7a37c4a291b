package constants

import "time"

const (
	NicknameMinLen = 2
	NicknameMaxLen = 12
	MaxScore       = 999999
)

const (
	DefaultQueryLimit = 10
	MinQueryLimit     = 1
	MaxQueryLimit     = 50
)

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ProbeTimeout    = 5 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
	ReadTimeout     = 15 * time.Second
	WriteTimeout    = 15 * time.Second
	IdleTimeout     = 60 * time.Second
)

const (
	MaxBodyBytes = 100 << 10
)

// rate limiter windows are swept once this many clients are tracked
const LimiterCleanupThreshold = 500
