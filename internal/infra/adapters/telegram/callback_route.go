package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-contact-bot/internal/domain/ports/adapter"
	"telegram-contact-bot/internal/infra/logging"
	"telegram-contact-bot/internal/infra/metrics"
)

const (
	cbContactMe            = "contact_me"
	cbMenuBack             = "menu_back"
	cbChooseLanguage       = "choose_language"
	cbLanguageChosenPrefix = "choosen_language"
)

type cbHandler func(ctx context.Context, query *tgbotapi.CallbackQuery) error
type prefixCB struct {
	Prefix string
	Fn     cbHandler
}

func (r *RealTelegramBotAdapter) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		cbContactMe: r.contactMeCBRoute,
		cbMenuBack:  r.menuBackCBRoute,
	}
}

// Prefix-match callbacks
func (r *RealTelegramBotAdapter) cbPrefixRoutes() []prefixCB {
	return []prefixCB{
		{
			Prefix: cbLanguageChosenPrefix,
			Fn:     r.languageChosenCBRoute,
		},
	}
}

// handleQuery dispatches a button press. Unknown payloads are ignored.
func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}
	ctx = logging.WithTgID(ctx, query.From.ID)
	log := logging.With(ctx, r.log)

	// Stop telegram spinner when we return
	defer func() {
		if _, err := r.bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
			log.Debug().Err(err).Msg("answer callback query")
		}
	}()

	data := strings.TrimSpace(query.Data)

	if fn, ok := r.cbRoutes()[data]; ok {
		metrics.IncCallback(data)
		return fn(ctx, query)
	}
	for _, pr := range r.cbPrefixRoutes() {
		if strings.HasPrefix(data, pr.Prefix) {
			metrics.IncCallback(pr.Prefix)
			return pr.Fn(ctx, query)
		}
	}
	metrics.IncCallback("unknown")
	log.Debug().Str("data", data).Msg("no route for callback data")
	return nil
}

// contactMeCBRoute waits for the user's next message and turns the menu into a prompt.
func (r *RealTelegramBotAdapter) contactMeCBRoute(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	r.inputs.ListenFor(query.From.ID, AnswerFunc(r.onContactMessage))

	rows := [][]adapter.InlineButton{{{Text: r.translator.T("button_back"), Data: cbMenuBack}}}
	return r.editButtons(ctx, query, r.translator.T("contact_prompt"), rows)
}

// menuBackCBRoute cancels a pending contact message and shows the main menu again.
func (r *RealTelegramBotAdapter) menuBackCBRoute(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	r.inputs.Remove(query.From.ID)
	return r.editButtons(ctx, query, r.translator.T("menu_greeting"), r.mainMenuRows())
}

func (r *RealTelegramBotAdapter) languageChosenCBRoute(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	return r.editButtons(ctx, query, r.translator.T("menu_greeting"), r.mainMenuRows())
}
