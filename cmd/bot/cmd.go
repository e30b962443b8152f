package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fintrackhq/backend/internal/config"
	"github.com/fintrackhq/backend/pkg/logger"
)

// sessions maps a chat to the JWT obtained via /link. In-memory only; a bot
// restart requires re-linking.
type sessions struct {
	mu     sync.RWMutex
	tokens map[int64]string
}

func (s *sessions) get(chatID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[chatID]
	return t, ok
}

func (s *sessions) set(chatID int64, jwt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[chatID] = jwt
}

func main() {
	cfg := config.New()
	log := logger.New(cfg.LogLevel, logger.NewJSONHandler)

	if cfg.TelegramToken == "" {
		log.Error("TELEGRAMTOKEN is required")
		os.Exit(1)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}
	log.Info("bot authorized", "username", bot.Self.UserName)

	api := newAPIClient(cfg.APIBaseURL)
	sess := &sessions{tokens: make(map[int64]string)}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	for update := range bot.GetUpdatesChan(u) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		reply := handleCommand(update.Message, api, sess, log)
		msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
		if _, err := bot.Send(msg); err != nil {
			log.Warn("failed to send reply", "chat_id", update.Message.Chat.ID, "error", err)
		}
	}
}

func handleCommand(m *tgbotapi.Message, api *apiClient, sess *sessions, log *slog.Logger) string {
	switch m.Command() {
	case "start":
		return "Hi! Link your account first: open the web app, request a bot token " +
			"and send it here as /link <token>. Then use /add and /balance."

	case "link":
		oneTime := strings.TrimSpace(m.CommandArguments())
		if oneTime == "" {
			return "Usage: /link <token>"
		}
		jwt, err := api.Exchange(oneTime)
		if err != nil {
			log.Warn("link failed", "chat_id", m.Chat.ID, "error", err)
			return "Linking failed. The token may be expired; request a new one."
		}
		sess.set(m.Chat.ID, jwt)
		return "Linked! You can now use /add and /balance."

	case "add":
		jwt, ok := sess.get(m.Chat.ID)
		if !ok {
			return "Not linked yet. Use /link <token> first."
		}
		args := strings.Fields(m.CommandArguments())
		if len(args) < 2 {
			return "Usage: /add <amount> <description>"
		}
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil || amount <= 0 {
			return "Amount must be a positive number."
		}
		description := strings.Join(args[1:], " ")
		date := time.Now().Format("2006-01-02")
		if err := api.CreateTransaction(jwt, amount, description, date); err != nil {
			log.Warn("add failed", "chat_id", m.Chat.ID, "error", err)
			return "Could not save the transaction, try again."
		}
		return fmt.Sprintf("Saved: %.2f — %s", amount, description)

	case "balance":
		jwt, ok := sess.get(m.Chat.ID)
		if !ok {
			return "Not linked yet. Use /link <token> first."
		}
		totals, err := api.Dashboard(jwt)
		if err != nil {
			log.Warn("balance failed", "chat_id", m.Chat.ID, "error", err)
			return "Could not fetch your balance, try again."
		}
		return fmt.Sprintf(
			"Balance: %.2f\nIncome: %.2f\nExpenses: %.2f\nThis month: +%.2f / -%.2f",
			totals.Balance, totals.TotalIncome, totals.TotalExpense,
			totals.MonthIncome, totals.MonthExpense,
		)

	default:
		return "Unknown command. Available: /start, /link, /add, /balance."
	}
}
