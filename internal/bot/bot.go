package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/example/prepbot/internal/planner"
	"github.com/example/prepbot/internal/scheduler"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in an inline keyboard
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Bot represents the Telegram application around the planner
type Bot struct {
	api              *tgbotapi.BotAPI
	token            string
	planner          *planner.Planner
	scheduler        *scheduler.Scheduler
	schedulerEnabled bool
	allowedUserID    int64
	reminderChatID   int64
	config           *BotConfig
}

// New creates a new bot instance
func New(p *planner.Planner) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	schedulerEnabled := os.Getenv("ENABLE_SCHEDULER") != "false"

	bot := &Bot{
		token:            token,
		planner:          p,
		schedulerEnabled: schedulerEnabled,
		config:           DefaultConfig(),
	}

	// Single-user deployment: only the configured account may talk to the bot
	if idStr := os.Getenv("ALLOWED_USER_ID"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ALLOWED_USER_ID: %v", err)
		}
		bot.allowedUserID = id
	}
	if idStr := os.Getenv("TELEGRAM_CHAT_ID"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %v", err)
		}
		bot.reminderChatID = id
	}

	return bot, nil
}

// Start connects to Telegram and processes updates until the channel closes
func (b *Bot) Start() error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.UpdateTimeout

	updates := b.api.GetUpdatesChan(updateConfig)

	if b.schedulerEnabled {
		b.scheduleReminders()
	}

	for update := range updates {
		b.handleUpdate(update)
	}

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
}

// scheduleReminders sets up the periodic due-review check
func (b *Bot) scheduleReminders() {
	log.Println("Starting reminder scheduler...")

	b.scheduler = scheduler.New(b.planner, b)
	b.scheduler.Start()

	log.Println("Reminder scheduler started successfully")
}

// SendReviewReminder implements the scheduler.Notifier interface
func (b *Bot) SendReviewReminder(dueToday, overdue int) error {
	if b.reminderChatID == 0 {
		log.Println("No reminder chat known yet, skipping reminder")
		return nil
	}

	text := fmt.Sprintf("🔔 You have %d review(s) due today", dueToday)
	if overdue > 0 {
		text += fmt.Sprintf(" and %d overdue", overdue)
	}
	text += ". Use /list to see your topics."

	msg := tgbotapi.NewMessage(b.reminderChatID, text)
	if err := b.sendMessage(msg); err != nil {
		log.Printf("Error sending reminder: %v", err)
		return err
	}
	return nil
}

// isAllowed checks whether the user may use the bot
func (b *Bot) isAllowed(userID int64) bool {
	return b.allowedUserID == 0 || b.allowedUserID == userID
}

// notify sends a user-facing notification with the given severity
func (b *Bot) notify(chatID int64, message string, severity planner.Severity) error {
	var prefix string
	switch severity {
	case planner.SeveritySuccess:
		prefix = "✅ "
	case planner.SeverityError:
		prefix = "❌ "
	default:
		prefix = "ℹ️ "
	}
	return b.sendMessage(tgbotapi.NewMessage(chatID, prefix+message))
}

// sendMessage sends a prepared message through the API
func (b *Bot) sendMessage(msg tgbotapi.Chattable) error {
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		if update.Message.From == nil || !b.isAllowed(update.Message.From.ID) {
			return
		}

		// Remember where to deliver reminders
		if b.reminderChatID == 0 {
			b.reminderChatID = update.Message.Chat.ID
		}

		if update.Message.IsCommand() {
			if err := b.HandleCommand(context.Background(), update.Message); err != nil {
				log.Printf("Error handling /%s: %v", update.Message.Command(), err)
			}
			return
		}

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, "I don't understand. Use /help to see the available commands.")
		if err := b.sendMessage(msg); err != nil {
			log.Printf("Error sending fallback message: %v", err)
		}
		return
	}

	if update.CallbackQuery != nil {
		if update.CallbackQuery.From == nil || !b.isAllowed(update.CallbackQuery.From.ID) {
			return
		}
		if err := b.HandleCallback(context.Background(), update.CallbackQuery); err != nil {
			log.Printf("Error handling callback: %v", err)
		}
	}
}
