package installer

func NewTelegramTokenStep() Step {
	return NewInputStep("PASTCAST_TELEGRAM_TOKEN", "your Telegram bot token",
		secret(),
		placeholder("123456789:ABCDEF..."),
		skipUnless((*InstallState).telegramSelected),
	)
}

// NewTelegramOwnerStep limits the bot to one user id; blank serves everyone.
func NewTelegramOwnerStep() Step {
	return NewInputStep("PASTCAST_TELEGRAM_OWNER_ID", "your Telegram user id",
		optional(),
		placeholder("123456789"),
		skipUnless((*InstallState).telegramSelected),
	)
}
