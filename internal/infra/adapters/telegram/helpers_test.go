package telegram

import (
	"context"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-contact-bot/internal/config"
	"telegram-contact-bot/internal/infra/i18n"
	"telegram-contact-bot/internal/infra/memory"
)

type testEnv struct {
	r     *RealTelegramBotAdapter
	bot   *NoopBotClient
	links *memory.ForwardLinkRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tr, err := i18n.NewTranslator(i18n.LocalesFS, i18n.DefaultLang)
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	bot := NewNoopBotClient(nil)
	links := memory.NewForwardLinkRepo(time.Hour)
	cfg := &config.BotConfig{Token: "test", Workers: 2, PollTimeout: 1}
	return &testEnv{r: newAdapter(bot, cfg, links, tr, nil), bot: bot, links: links}
}

func (e *testEnv) handle(t *testing.T, u tgbotapi.Update) error {
	t.Helper()
	return e.r.handleUpdate(context.Background(), u)
}

func tgUser(id int64, first string) *tgbotapi.User {
	return &tgbotapi.User{ID: id, FirstName: first}
}

func textMessage(msgID int, from *tgbotapi.User, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: msgID,
		From:      from,
		Chat:      &tgbotapi.Chat{ID: chatID, Type: "private"},
		Text:      text,
	}
}

func commandMessage(msgID int, from *tgbotapi.User, command string) *tgbotapi.Message {
	m := textMessage(msgID, from, from.ID, "/"+command)
	m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command) + 1}}
	return m
}

func callbackUpdate(from *tgbotapi.User, chatID int64, menuMsgID int, data string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-1",
			From:    from,
			Message: &tgbotapi.Message{MessageID: menuMsgID, Chat: &tgbotapi.Chat{ID: chatID}},
			Data:    data,
		},
	}
}

// operatorReply builds an operator message replying to forwardedID, a forward of origin.
func operatorReply(forwardedID int, origin *tgbotapi.User) *tgbotapi.Message {
	operator := tgUser(OperatorChatID, "Op")
	m := &tgbotapi.Message{
		MessageID: 5000,
		From:      operator,
		Chat:      &tgbotapi.Chat{ID: OperatorChatID, Type: "private"},
		ReplyToMessage: &tgbotapi.Message{
			MessageID:   forwardedID,
			Chat:        &tgbotapi.Chat{ID: OperatorChatID},
			ForwardFrom: origin,
			ForwardDate: 1700000000,
		},
	}
	return m
}

func messagesOf(calls []tgbotapi.Chattable) []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, c := range calls {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func buttonLabels(markup interface{}) [][]string {
	kb, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		return nil
	}
	var rows [][]string
	for _, row := range kb.InlineKeyboard {
		var labels []string
		for _, b := range row {
			labels = append(labels, b.Text)
		}
		rows = append(rows, labels)
	}
	return rows
}
