package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/example/prepbot/internal/excel"
	"github.com/example/prepbot/internal/planner"
	"github.com/example/prepbot/internal/progress"
	"github.com/example/prepbot/internal/spaced_repetition"
	"github.com/example/prepbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Constants for callback data
const (
	callbackCompletePrefix      = "complete_"
	callbackDeletePrefix        = "delete_"
	callbackConfirmDeletePrefix = "confirm_delete_"
	callbackCancelAction        = "cancel_action"
)

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	var err error
	switch message.Command() {
	case "start":
		err = b.handleStart(message)
	case "help":
		err = b.handleHelp(message)
	case "exam":
		err = b.handleExamDate(ctx, message)
	case "add":
		err = b.handleAddTopic(ctx, message)
	case "list":
		err = b.handleListTopics(ctx, message)
	case "done":
		err = b.handleCompleteReview(ctx, message)
	case "delete":
		err = b.handleDeleteTopic(ctx, message)
	case "stats":
		err = b.handleStats(ctx, message)
	case "import":
		err = b.handleImport(ctx, message)
	case "remind":
		err = b.handleRemind(message)
	default:
		err = b.handleUnknownCommand(message)
	}
	return err
}

func (b *Bot) handleStart(message *tgbotapi.Message) error {
	welcomeText := `Welcome to the exam prep planner! 🎓

Set your exam date, add the topics you have learned, and I will schedule
spaced-repetition reviews that fit before the exam.

Available commands:
/exam YYYY-MM-DD - set the exam date
/add [YYYY-MM-DD] <name> - add a learned topic (date defaults to today)
/list - show your topics and review schedules
/done <topic number> - complete the next due review of a topic
/delete <topic number> - delete a topic
/stats - show overall progress
/import <file> - bulk-import topics from an Excel or CSV file
/remind - check for due reviews now
/help - show this message`

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	return b.sendMessage(msg)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	return b.handleStart(message)
}

func (b *Bot) handleExamDate(ctx context.Context, message *tgbotapi.Message) error {
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		plan, err := b.planner.Plan(ctx)
		if err != nil {
			return err
		}
		if plan.ExamDate == nil {
			return b.notify(message.Chat.ID, "No exam date set. Use /exam YYYY-MM-DD to set one.", planner.SeverityInfo)
		}
		days, _ := plan.DaysUntilExam(time.Now())
		text := fmt.Sprintf("Exam date: %s (%d day(s) remaining)",
			plan.ExamDate.Format(b.config.DisplayDateFormat), days)
		return b.notify(message.Chat.ID, text, planner.SeverityInfo)
	}

	date, err := models.ParseDate(args)
	if err != nil {
		return b.notify(message.Chat.ID, "Please provide the date as YYYY-MM-DD, e.g. /exam 2026-06-01", planner.SeverityError)
	}

	plan, err := b.planner.SetExamDate(ctx, date)
	if err != nil {
		return b.reportError(message.Chat.ID, err)
	}

	days, _ := plan.DaysUntilExam(time.Now())
	text := fmt.Sprintf("Exam date saved: %s (%d day(s) remaining)",
		plan.ExamDate.Format(b.config.DisplayDateFormat), days)
	return b.notify(message.Chat.ID, text, planner.SeveritySuccess)
}

func (b *Bot) handleAddTopic(ctx context.Context, message *tgbotapi.Message) error {
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		return b.notify(message.Chat.ID, "Usage: /add [YYYY-MM-DD] <topic name>", planner.SeverityError)
	}

	// An optional leading date sets when the topic was learned
	dateLearned := time.Now()
	name := args
	if fields := strings.Fields(args); len(fields) > 1 {
		if parsed, err := models.ParseDate(fields[0]); err == nil {
			dateLearned = parsed
			name = strings.TrimSpace(strings.TrimPrefix(args, fields[0]))
		}
	}

	topic, err := b.planner.AddTopic(ctx, name, dateLearned)
	if err != nil {
		return b.reportError(message.Chat.ID, err)
	}

	if err := b.notify(message.Chat.ID, fmt.Sprintf("Topic %q added with %d scheduled review(s).", topic.Name, len(topic.ReviewDates)), planner.SeveritySuccess); err != nil {
		return err
	}
	return b.sendTopicCard(message.Chat.ID, topic)
}

func (b *Bot) handleListTopics(ctx context.Context, message *tgbotapi.Message) error {
	plan, err := b.planner.Plan(ctx)
	if err != nil {
		return err
	}

	if len(plan.Topics) == 0 {
		return b.notify(message.Chat.ID, "No topics yet. Add one with /add <topic name>.", planner.SeverityInfo)
	}

	for i := range plan.Topics {
		if err := b.sendTopicCard(message.Chat.ID, &plan.Topics[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) handleCompleteReview(ctx context.Context, message *tgbotapi.Message) error {
	topicID, err := b.topicIDFromArgs(ctx, message)
	if err != nil {
		return b.notify(message.Chat.ID, err.Error(), planner.SeverityError)
	}
	return b.completeReview(ctx, message.Chat.ID, topicID)
}

func (b *Bot) handleDeleteTopic(ctx context.Context, message *tgbotapi.Message) error {
	topicID, err := b.topicIDFromArgs(ctx, message)
	if err != nil {
		return b.notify(message.Chat.ID, err.Error(), planner.SeverityError)
	}

	removed, err := b.planner.DeleteTopic(ctx, topicID)
	if err != nil {
		return b.reportError(message.Chat.ID, err)
	}
	if !removed {
		// Unknown id is a no-op, nothing to report
		return nil
	}
	return b.notify(message.Chat.ID, "Topic deleted successfully", planner.SeveritySuccess)
}

func (b *Bot) handleStats(ctx context.Context, message *tgbotapi.Message) error {
	plan, summary, err := b.planner.Summary(ctx)
	if err != nil {
		return err
	}

	if summary.TotalTopics == 0 {
		return b.notify(message.Chat.ID, "No topics yet. Add one with /add <topic name>.", planner.SeverityInfo)
	}

	var text strings.Builder
	text.WriteString("📊 Study progress\n\n")
	text.WriteString(fmt.Sprintf("Overall: %d%%\n", summary.OverallPercent))
	text.WriteString(fmt.Sprintf("Topics: %d\n", summary.TotalTopics))
	text.WriteString(fmt.Sprintf("Completed: %d\n", summary.CompletedTopics))
	text.WriteString(fmt.Sprintf("Upcoming: %d\n", summary.UpcomingTopics))
	text.WriteString(fmt.Sprintf("Overdue: %d\n", summary.OverdueTopics))

	if plan.ExamDate != nil {
		days, _ := plan.DaysUntilExam(time.Now())
		text.WriteString(fmt.Sprintf("\nExam on %s, %d day(s) remaining",
			plan.ExamDate.Format(b.config.DisplayDateFormat), days))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	return b.sendMessage(msg)
}

func (b *Bot) handleImport(ctx context.Context, message *tgbotapi.Message) error {
	path := strings.TrimSpace(message.CommandArguments())
	if path == "" {
		return b.notify(message.Chat.ID, "Usage: /import <path to .xlsx or .csv file>", planner.SeverityError)
	}

	config := excel.DefaultImportConfig()
	config.FilePath = path

	result, err := excel.ImportTopics(ctx, b.planner, config)
	if err != nil {
		return b.notify(message.Chat.ID, fmt.Sprintf("Import failed: %v", err), planner.SeverityError)
	}

	text := fmt.Sprintf("Import finished: %d row(s) processed, %d topic(s) created, %d skipped.",
		result.TotalProcessed, result.Created, result.Skipped)
	if len(result.Errors) > 0 {
		text += fmt.Sprintf("\n\nProblems:\n%s", strings.Join(result.Errors, "\n"))
	}
	return b.notify(message.Chat.ID, text, planner.SeveritySuccess)
}

func (b *Bot) handleRemind(message *tgbotapi.Message) error {
	if b.scheduler == nil {
		return b.notify(message.Chat.ID, "Reminders are disabled.", planner.SeverityInfo)
	}
	if err := b.scheduler.RunManualCheck(); err != nil {
		return err
	}
	return nil
}

func (b *Bot) handleUnknownCommand(message *tgbotapi.Message) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /help to see the available commands.")
	return b.sendMessage(msg)
}

// topicIDFromArgs resolves a 1-based topic number from the command arguments
func (b *Bot) topicIDFromArgs(ctx context.Context, message *tgbotapi.Message) (int64, error) {
	args := strings.TrimSpace(message.CommandArguments())
	if args == "" {
		return 0, fmt.Errorf("please provide a topic number, see /list")
	}
	index, err := strconv.Atoi(args)
	if err != nil {
		return 0, fmt.Errorf("please provide a valid topic number")
	}

	plan, err := b.planner.Plan(ctx)
	if err != nil {
		return 0, err
	}
	if index < 1 || index > len(plan.Topics) {
		return 0, fmt.Errorf("there is no topic number %d", index)
	}
	return plan.Topics[index-1].ID, nil
}

// completeReview marks the next due review done and reports the result
func (b *Bot) completeReview(ctx context.Context, chatID int64, topicID int64) error {
	topic, err := b.planner.CompleteNextReview(ctx, topicID)
	if err != nil {
		if errors.Is(err, spaced_repetition.ErrNoReviewDue) {
			return b.notify(chatID, "No reviews to complete yet", planner.SeverityError)
		}
		return b.reportError(chatID, err)
	}
	if topic == nil {
		// Topic vanished, silent no-op
		return nil
	}

	if err := b.notify(chatID, "Review completed!", planner.SeveritySuccess); err != nil {
		return err
	}
	return b.sendTopicCard(chatID, topic)
}

// reportError surfaces validation problems as notifications and passes
// everything else up to the caller
func (b *Bot) reportError(chatID int64, err error) error {
	var invalid *planner.ValidationError
	if errors.As(err, &invalid) {
		return b.notify(chatID, invalid.Msg, planner.SeverityError)
	}
	return err
}

// sendTopicCard renders one topic with its schedule and action buttons
func (b *Bot) sendTopicCard(chatID int64, topic *models.Topic) error {
	p := progress.ForTopic(topic, time.Now())

	var text strings.Builder
	text.WriteString(fmt.Sprintf("📚 %s %s\n", topic.Name, statusBadge(p)))
	text.WriteString(fmt.Sprintf("Learned: %s\n", topic.DateLearned.Format(b.config.DisplayDateFormat)))
	text.WriteString(fmt.Sprintf("Progress: %d%% (%d of %d reviews)\n", p.Percent, p.Completed, p.Total))

	if len(topic.CompletedReviews) > 0 {
		text.WriteString("\nCompleted reviews:\n")
		for _, c := range topic.CompletedReviews {
			text.WriteString(fmt.Sprintf("  ✔ %s\n", c.Date.Format(b.config.DisplayDateFormat)))
		}
	}

	if len(topic.ReviewDates) > 0 {
		today := models.DateOnly(time.Now())
		text.WriteString("\nUpcoming reviews:\n")
		for _, d := range topic.ReviewDates {
			if d.Before(today) {
				text.WriteString(fmt.Sprintf("  • %s (overdue)\n", d.Format(b.config.DisplayDateFormat)))
			} else {
				text.WriteString(fmt.Sprintf("  • %s\n", d.Format(b.config.DisplayDateFormat)))
			}
		}
	}

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{
		{Text: "✅ Complete", CallbackData: fmt.Sprintf("%s%d", callbackCompletePrefix, topic.ID)},
		{Text: "🗑 Delete", CallbackData: fmt.Sprintf("%s%d", callbackDeletePrefix, topic.ID)},
	}})
	return b.sendMessage(msg)
}

// statusBadge renders the card status label
func statusBadge(p progress.TopicProgress) string {
	switch p.Status {
	case progress.StatusCompleted:
		return "[Completed]"
	case progress.StatusOverdue:
		return "[Overdue]"
	case progress.StatusDueSoon:
		if p.DaysUntilReview == 1 {
			return "[Due in 1 day]"
		}
		return fmt.Sprintf("[Due in %d days]", p.DaysUntilReview)
	default:
		return "[Upcoming]"
	}
}

// HandleCallback handles inline keyboard button presses
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if callback.Message == nil || callback.From == nil {
		return fmt.Errorf("invalid callback data: required fields are missing")
	}

	// Always answer the callback query to remove the loading state
	answer := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(answer); err != nil {
		log.Printf("Warning: Failed to answer callback: %v", err)
	}

	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch {
	case strings.HasPrefix(data, callbackConfirmDeletePrefix):
		topicID, err := strconv.ParseInt(strings.TrimPrefix(data, callbackConfirmDeletePrefix), 10, 64)
		if err != nil {
			return fmt.Errorf("bad callback data %q: %w", data, err)
		}
		removed, err := b.planner.DeleteTopic(ctx, topicID)
		if err != nil {
			return b.reportError(chatID, err)
		}
		if !removed {
			return nil
		}
		return b.notify(chatID, "Topic deleted successfully", planner.SeveritySuccess)

	case strings.HasPrefix(data, callbackCompletePrefix):
		topicID, err := strconv.ParseInt(strings.TrimPrefix(data, callbackCompletePrefix), 10, 64)
		if err != nil {
			return fmt.Errorf("bad callback data %q: %w", data, err)
		}
		return b.completeReview(ctx, chatID, topicID)

	case strings.HasPrefix(data, callbackDeletePrefix):
		topicID, err := strconv.ParseInt(strings.TrimPrefix(data, callbackDeletePrefix), 10, 64)
		if err != nil {
			return fmt.Errorf("bad callback data %q: %w", data, err)
		}
		msg := tgbotapi.NewMessage(chatID, "Are you sure you want to delete this topic?")
		msg.ReplyMarkup = createKeyboard([][]MenuButton{{
			{Text: "Delete", CallbackData: fmt.Sprintf("%s%d", callbackConfirmDeletePrefix, topicID)},
			{Text: "Cancel", CallbackData: callbackCancelAction},
		}})
		return b.sendMessage(msg)

	case data == callbackCancelAction:
		return b.notify(chatID, "Cancelled.", planner.SeverityInfo)

	default:
		log.Printf("Unknown callback data: %q", data)
		return nil
	}
}
