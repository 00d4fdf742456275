package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-contact-bot/internal/domain/ports/adapter"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start": r.handleStartCommand,
	}
}

// handleStartCommand always sends a fresh main menu. Pending input is left alone.
func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.SendButtons(ctx, message.Chat.ID, r.translator.T("menu_greeting"), r.mainMenuRows())
}

// mainMenuRows is the idle menu shared by /start and the Back button.
// choose_language has no route yet; pressing it only answers the callback.
func (r *RealTelegramBotAdapter) mainMenuRows() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{{
		{Text: r.translator.T("button_change_language"), Data: cbChooseLanguage},
		{Text: r.translator.T("button_contact_me"), Data: cbContactMe},
	}}
}
