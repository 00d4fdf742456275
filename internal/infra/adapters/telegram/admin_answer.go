package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-contact-bot/internal/domain"
	"telegram-contact-bot/internal/domain/model"
	"telegram-contact-bot/internal/infra/logging"
	"telegram-contact-bot/internal/infra/metrics"
)

// handleAdminAnswer relays an operator reply to the user whose forwarded
// message it answers. Anything else is a no-op.
func (r *RealTelegramBotAdapter) handleAdminAnswer(ctx context.Context, message *tgbotapi.Message) error {
	if message.Chat.ID != OperatorChatID {
		return nil
	}
	replied := message.ReplyToMessage
	if replied == nil || !isForward(replied) {
		return nil
	}
	log := logging.With(ctx, r.log)

	origin, err := r.forwardOrigin(ctx, replied)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrigin) {
			log.Warn().Int("replied_msg_id", replied.MessageID).Msg("operator replied to a forward with unknown origin")
			return nil
		}
		return err
	}

	operator := model.User{ID: OperatorChatID, FirstName: OperatorName}
	kind := contentKindOf(message)
	switch kind {
	case KindText:
		text := r.translator.T("answer_text", operator.MentionURL(), html.EscapeString(operator.FirstName), entitiesToHTML(message.Text, message.Entities))
		if _, err := r.sendHTML(ctx, origin, text, 0, nil); err != nil {
			metrics.IncOperatorReply(kind.String(), "failed")
			return fmt.Errorf("relay text answer to %d: %w", origin, err)
		}
	case KindUnsupported:
		metrics.IncOperatorReply(kind.String(), "failed")
		log.Error().Int("msg_id", message.MessageID).Msg("operator answer has no relayable content")
		return fmt.Errorf("relay answer to %d: %w", origin, domain.ErrUnsupportedContent)
	default:
		sent, err := r.bot.Send(mediaConfig(kind, message, origin))
		if err != nil {
			metrics.IncOperatorReply(kind.String(), "failed")
			return fmt.Errorf("relay %s answer to %d: %w", kind, origin, err)
		}
		notice := r.translator.T("answer_media", operator.MentionURL(), html.EscapeString(operator.FirstName))
		if _, err := r.sendHTML(ctx, origin, notice, sent.MessageID, nil); err != nil {
			metrics.IncOperatorReply(kind.String(), "failed")
			return fmt.Errorf("send answer notice to %d: %w", origin, err)
		}
	}

	metrics.IncOperatorReply(kind.String(), "sent")
	log.Info().Int64("origin", origin).Str("kind", kind.String()).Msg("operator answer relayed")
	return nil
}

func isForward(m *tgbotapi.Message) bool {
	return m.ForwardDate != 0 || m.ForwardFrom != nil || m.ForwardFromChat != nil || m.ForwardSenderName != ""
}

// forwardOrigin finds the user chat a forwarded operator-side message came from.
// Telegram omits ForwardFrom for users who hide their account in forwards, so
// the link saved at forward time is the fallback.
func (r *RealTelegramBotAdapter) forwardOrigin(ctx context.Context, forwarded *tgbotapi.Message) (int64, error) {
	if forwarded.ForwardFrom != nil {
		return forwarded.ForwardFrom.ID, nil
	}
	origin, err := r.links.Find(ctx, forwarded.MessageID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, domain.ErrNoOrigin
	}
	if err != nil {
		return 0, fmt.Errorf("find forward link %d: %w", forwarded.MessageID, err)
	}
	return origin, nil
}
