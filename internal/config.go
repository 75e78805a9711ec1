package internal

import "time"

type Config struct {
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	MessagePageSize   int           `env:"MESSAGE_PAGE_SIZE,default=50"`
}
