package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-contact-bot/internal/config"
	"telegram-contact-bot/internal/domain/model"
	"telegram-contact-bot/internal/domain/ports/adapter"
	"telegram-contact-bot/internal/domain/ports/repository"
	"telegram-contact-bot/internal/infra/i18n"
	"telegram-contact-bot/internal/infra/logging"
	"telegram-contact-bot/internal/infra/metrics"
	"telegram-contact-bot/internal/infra/worker"
)

const (
	// OperatorChatID receives every contact submission.
	OperatorChatID int64 = 229856560
	// OperatorName is shown to users next to relayed answers.
	OperatorName = "SuperMarcomen"
)

// BotClient is the part of *tgbotapi.BotAPI the adapter talks to.
type BotClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

var _ BotClient = (*tgbotapi.BotAPI)(nil)

// RealTelegramBotAdapter polls Telegram and routes updates to the menu,
// start, contact and operator-answer handlers.
type RealTelegramBotAdapter struct {
	bot        BotClient
	cfg        *config.BotConfig
	inputs     *InputListener
	links      repository.ForwardLinkRepository
	translator *i18n.Translator
	log        *zerolog.Logger

	cancelPolling context.CancelFunc
}

func NewRealTelegramBotAdapter(cfg *config.BotConfig, links repository.ForwardLinkRepository, translator *i18n.Translator, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if links == nil {
		return nil, errors.New("forward link repository is nil")
	}
	if translator == nil {
		return nil, errors.New("translator is nil")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	bot.Debug = cfg.Debug

	r := newAdapter(bot, cfg, links, translator, logger)
	r.log.Info().Str("username", bot.Self.UserName).Msg("authorized on telegram")
	return r, nil
}

func newAdapter(bot BotClient, cfg *config.BotConfig, links repository.ForwardLinkRepository, translator *i18n.Translator, logger *zerolog.Logger) *RealTelegramBotAdapter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &RealTelegramBotAdapter{
		bot:        bot,
		cfg:        cfg,
		inputs:     NewInputListener(),
		links:      links,
		translator: translator,
		log:        logger,
	}
}

// StartPolling long-polls Telegram until ctx is canceled. Updates from the
// same user are handled in order by one worker; different users run in parallel.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = r.cfg.PollTimeout

	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel
	defer cancel()

	pool := worker.NewPool(r.cfg.Workers, r.log)
	pool.OnError = func(error) { metrics.IncHandlerError() }
	pool.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			pool.Stop()
			return nil
		case update, ok := <-updates:
			if !ok {
				pool.Stop()
				return nil
			}
			if err := pool.Submit(ctx, updateKey(update), func(ctx context.Context) error {
				return r.handleUpdate(ctx, update)
			}); err != nil {
				r.log.Warn().Err(err).Int("update_id", update.UpdateID).Msg("update dropped")
			}
		}
	}
}

// StopPolling stops the polling loop gracefully.
func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// updateKey picks the worker shard: the acting user, else the chat.
func updateKey(update tgbotapi.Update) int64 {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID
	}
	return int64(update.UpdateID)
}

// handleUpdate processes a single Telegram update.
func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithUpdateID(ctx, update.UpdateID)

	switch {
	case update.CallbackQuery != nil:
		metrics.IncUpdate("callback")
		return r.handleQuery(ctx, update.CallbackQuery)
	case update.Message != nil:
		metrics.IncUpdate("message")
		return r.handleMessage(ctx, update.Message)
	default:
		metrics.IncUpdate("other")
		return nil
	}
}

// handleMessage routes commands first. Every other message is offered to the
// pending input listener of its sender and then to the operator-answer handler.
func (r *RealTelegramBotAdapter) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message.From == nil || message.Chat == nil {
		return nil
	}
	ctx = logging.WithTgID(ctx, message.From.ID)
	defer logging.TraceDuration(logging.With(ctx, r.log), "handleMessage")()

	if message.IsCommand() {
		if fn, ok := r.commandRoutes()[message.Command()]; ok {
			metrics.IncTelegramCommand(message.Command())
			return fn(ctx, message)
		}
	}

	var errs []error
	if h, ok := r.inputs.Consume(message.From.ID); ok {
		if err := h.OnInputReceived(ctx, message); err != nil {
			errs = append(errs, fmt.Errorf("input listener: %w", err))
		}
	}
	if err := r.handleAdminAnswer(ctx, message); err != nil {
		errs = append(errs, fmt.Errorf("admin answer: %w", err))
	}
	return errors.Join(errs...)
}

// SendButtons sends an HTML message with inline buttons.
func (r *RealTelegramBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	_, err := r.sendHTML(ctx, chatID, text, 0, rows)
	return err
}

// sendHTML sends text with parse mode HTML, optionally as a reply and with buttons.
func (r *RealTelegramBotAdapter) sendHTML(ctx context.Context, chatID int64, text string, replyTo int, rows [][]adapter.InlineButton) (tgbotapi.Message, error) {
	select {
	case <-ctx.Done():
		return tgbotapi.Message{}, ctx.Err()
	default:
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyToMessageID = replyTo
	if len(rows) > 0 {
		msg.ReplyMarkup = inlineKeyboard(rows)
	}
	return r.bot.Send(msg)
}

// editButtons replaces the text and keyboard of the message a callback came from.
func (r *RealTelegramBotAdapter) editButtons(ctx context.Context, query *tgbotapi.CallbackQuery, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	markup := inlineKeyboard(rows)
	var edit tgbotapi.EditMessageTextConfig
	switch {
	case query.Message != nil && query.Message.Chat != nil:
		edit = tgbotapi.NewEditMessageTextAndMarkup(query.Message.Chat.ID, query.Message.MessageID, text, markup)
	case query.InlineMessageID != "":
		edit = tgbotapi.EditMessageTextConfig{
			BaseEdit: tgbotapi.BaseEdit{InlineMessageID: query.InlineMessageID, ReplyMarkup: &markup},
			Text:     text,
		}
	default:
		return errors.New("callback query has no message to edit")
	}
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := r.bot.Request(edit)
	return err
}

// inlineKeyboard builds callback/URL buttons; a button with neither uses its label as data.
func inlineKeyboard(rows [][]adapter.InlineButton) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kr := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			switch {
			case btn.URL != "":
				kr = append(kr, tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL))
			case btn.Data != "":
				kr = append(kr, tgbotapi.NewInlineKeyboardButtonData(label, btn.Data))
			default:
				kr = append(kr, tgbotapi.NewInlineKeyboardButtonData(label, label))
			}
		}
		kbRows = append(kbRows, kr)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}

func userFromTelegram(u *tgbotapi.User) model.User {
	if u == nil {
		return model.User{}
	}
	return model.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.UserName,
	}
}
