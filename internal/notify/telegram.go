package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Announcer broadcasts newly published competitions to the community
// channel. Implementations must not block the request path on failure.
type Announcer interface {
	AnnounceCompetition(kind, title, prize string)
}

type TelegramAnnouncer struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramAnnouncer(token string, chatID int64) (*TelegramAnnouncer, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramAnnouncer{bot: bot, chatID: chatID}, nil
}

func (a *TelegramAnnouncer) AnnounceCompetition(kind, title, prize string) {
	text := fmt.Sprintf("🚀 New %s: %s", kind, title)
	if prize != "" {
		text += fmt.Sprintf("\n🏆 Prize: %s", prize)
	}

	go func() {
		msg := tgbotapi.NewMessage(a.chatID, text)
		if _, err := a.bot.Send(msg); err != nil {
			log.Printf("telegram announce failed: %v", err)
		}
	}()
}
