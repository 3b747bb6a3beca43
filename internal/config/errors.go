package config

import "errors"

var (
	ErrRedisAddrMissing      = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB        = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidStore          = errors.New("STORE_BACKEND must be redis or memory")
	ErrInvalidTimezone       = errors.New("SCHEDULE_TIMEZONE must be a valid IANA location")
	ErrCalendarCredential    = errors.New("GOOGLE_CREDENTIALS_FILE or GOOGLE_CALENDAR_ENDPOINT is required when GOOGLE_CALENDAR_ID is set")
	ErrCalendarClientSecrets = errors.New("GOOGLE_CREDENTIALS_FILE must hold OAuth client secrets when GOOGLE_TOKEN_FILE is set")
)
