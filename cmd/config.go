package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TelegramBotToken  string
	TelegramChannelID int64

	// Timezone is the IANA zone users type pickup times in, e.g.
	// "Asia/Singapore".
	Timezone string

	AllowSelfClaim  bool
	MaxActiveClaims int
	FeeMinCents     int64
	FeeMaxCents     int64
}
