package telegram

import (
	"context"
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-contact-bot/internal/domain/model"
	"telegram-contact-bot/internal/domain/ports/adapter"
	"telegram-contact-bot/internal/infra/logging"
	"telegram-contact-bot/internal/infra/metrics"
)

// onContactMessage delivers a contact submission: acknowledge the user, forward
// the message to the operator, then reply to the forward with who sent it.
func (r *RealTelegramBotAdapter) onContactMessage(ctx context.Context, message *tgbotapi.Message) error {
	log := logging.With(ctx, r.log)
	user := userFromTelegram(message.From)

	back := [][]adapter.InlineButton{{{Text: r.translator.T("button_back"), Data: cbMenuBack}}}
	if _, err := r.sendHTML(ctx, message.Chat.ID, r.translator.T("contact_sent"), 0, back); err != nil {
		metrics.IncContactSubmission("failed")
		return fmt.Errorf("acknowledge contact message: %w", err)
	}

	fwd, err := r.bot.Send(tgbotapi.NewForward(OperatorChatID, message.Chat.ID, message.MessageID))
	if err != nil {
		metrics.IncContactSubmission("failed")
		return fmt.Errorf("forward to operator: %w", err)
	}
	if err := r.links.Save(ctx, fwd.MessageID, message.Chat.ID); err != nil {
		// the forward header usually carries the origin anyway
		log.Warn().Err(err).Int("operator_msg_id", fwd.MessageID).Msg("failed to save forward link")
	}

	if _, err := r.sendHTML(ctx, OperatorChatID, r.contactCard(user), fwd.MessageID, nil); err != nil {
		metrics.IncContactSubmission("failed")
		return fmt.Errorf("send contact card: %w", err)
	}

	metrics.IncContactSubmission("sent")
	log.Info().Str("from", user.DisplayName()).Int("operator_msg_id", fwd.MessageID).Msg("contact message forwarded to operator")
	return nil
}

// contactCard renders the sender info; missing names render as empty strings.
func (r *RealTelegramBotAdapter) contactCard(u model.User) string {
	return r.translator.T("contact_card",
		u.MentionURL(),
		html.EscapeString(u.FirstName),
		html.EscapeString(u.LastName),
		html.EscapeString(u.Username),
		u.ID,
	)
}
