package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Long-poll timeout for Telegram updates, in seconds
	UpdateTimeout int
	// Format used when rendering calendar dates to the user
	DisplayDateFormat string
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		UpdateTimeout:     60,
		DisplayDateFormat: "02.01.2006",
	}
}
