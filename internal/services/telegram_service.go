package services

import (
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskhub/internal/models"
)

// TaskNotifier pushes task events to a user's linked chat. Delivery is
// best-effort; failures are logged and never surfaced to the request.
type TaskNotifier interface {
	TaskCreated(chatID int64, task *models.Task)
	TaskCompleted(chatID int64, task *models.Task)
}

type telegramNotifier struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramNotifier connects the bot. Returns an error when the token
// is rejected; callers pass a nil TaskNotifier to disable the feature.
func NewTelegramNotifier(botToken string) (TaskNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &telegramNotifier{bot: bot}, nil
}

func (n *telegramNotifier) TaskCreated(chatID int64, task *models.Task) {
	n.send(chatID, formatTask("New task", task))
}

func (n *telegramNotifier) TaskCompleted(chatID int64, task *models.Task) {
	n.send(chatID, formatTask("Task completed", task))
}

func (n *telegramNotifier) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", chatID, err)
	}
}

func formatTask(prefix string, t *models.Task) string {
	due := "-"
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02")
	}
	return prefix + "\n" +
		"<b>" + html.EscapeString(t.Title) + "</b>\n" +
		"Status: <code>" + string(t.Status) + "</code>\n" +
		"Priority: <code>" + string(t.Priority) + "</code>\n" +
		"Due: <code>" + due + "</code>"
}
