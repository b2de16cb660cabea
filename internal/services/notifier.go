package services

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"partnerleads/internal/models"
)

// TelegramNotifier posts a message to the sales channel when a lead
// converts. Failures are the caller's problem to log, never to surface.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) LeadConverted(lead *models.Lead) error {
	text := fmt.Sprintf("Lead converted: %s (%s), estimated value %.2f",
		lead.CompanyName, lead.ContactName, lead.EstimatedValue)
	if lead.ReferralCode != "" {
		text += fmt.Sprintf("\nReferral: %s", lead.ReferralCode)
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
