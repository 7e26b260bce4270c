package gateway

import (
	"context"
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Long-poll settings
const (
	updateTimeoutSec = 30
	updateBuffer     = 64
)

// Telegram implements Messenger over the Telegram Bot API.
type Telegram struct {
	api    *tgbotapi.BotAPI
	logger zerolog.Logger
}

// NewTelegram authenticates against the Bot API with the given token.
func NewTelegram(token string, logger zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	logger.Info().Str("bot", api.Self.UserName).Msg("authenticated with Telegram")
	return &Telegram{api: api, logger: logger}, nil
}

// Poll starts long polling and translates transport updates into bot events.
// The returned channel closes when ctx is cancelled.
func (t *Telegram) Poll(ctx context.Context) <-chan Update {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeoutSec

	raw := t.api.GetUpdatesChan(cfg)
	out := make(chan Update, updateBuffer)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				t.api.StopReceivingUpdates()
				return
			case upd, ok := <-raw:
				if !ok {
					return
				}
				if ev, ok := translate(upd); ok {
					out <- ev
				}
			}
		}
	}()

	return out
}

// translate maps a transport update onto the bot event union. Updates the
// bot does not handle (edits, inline queries, joins) are dropped.
func translate(upd tgbotapi.Update) (Update, bool) {
	switch {
	case upd.Message != nil && upd.Message.Text != "":
		msg := &TextMessage{
			ChatID: upd.Message.Chat.ID,
			Text:   upd.Message.Text,
		}
		if upd.Message.IsCommand() {
			msg.Command = upd.Message.Command()
		}
		return Update{Message: msg}, true
	case upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil:
		return Update{Callback: &CallbackEvent{
			ChatID: upd.CallbackQuery.Message.Chat.ID,
			Message: MessageRef{
				ChatID:    upd.CallbackQuery.Message.Chat.ID,
				MessageID: upd.CallbackQuery.Message.MessageID,
			},
			CallbackID: upd.CallbackQuery.ID,
			Data:       upd.CallbackQuery.Data,
		}}, true
	default:
		return Update{}, false
	}
}

// SendText sends a plain text message.
func (t *Telegram) SendText(chatID int64, text string) (MessageRef, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := t.api.Send(msg)
	if err != nil {
		return MessageRef{}, fmt.Errorf("send text: %w", err)
	}
	return MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// SendOffers renders the offer keyboard, as a captioned photo when a
// thumbnail is available.
func (t *Telegram) SendOffers(chatID int64, photoURL, caption string, buttons []Button) (MessageRef, error) {
	markup := buildKeyboard(buttons)

	if photoURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
		photo.Caption = caption
		photo.ReplyMarkup = markup
		sent, err := t.api.Send(photo)
		if err != nil {
			return MessageRef{}, fmt.Errorf("send offer photo: %w", err)
		}
		return MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
	}

	msg := tgbotapi.NewMessage(chatID, caption)
	msg.ReplyMarkup = markup
	sent, err := t.api.Send(msg)
	if err != nil {
		return MessageRef{}, fmt.Errorf("send offer text: %w", err)
	}
	return MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// EditText replaces message text. Offer messages sent as photos carry their
// text in the caption, so a text edit failure falls back to a caption edit.
func (t *Telegram) EditText(ref MessageRef, text string) error {
	edit := tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, text)
	if _, err := t.api.Request(edit); err == nil {
		return nil
	}
	captionEdit := tgbotapi.NewEditMessageCaption(ref.ChatID, ref.MessageID, text)
	if _, err := t.api.Request(captionEdit); err != nil {
		return fmt.Errorf("edit message %d: %w", ref.MessageID, err)
	}
	return nil
}

// DeleteMessage removes a previously sent message.
func (t *Telegram) DeleteMessage(ref MessageRef) error {
	del := tgbotapi.NewDeleteMessage(ref.ChatID, ref.MessageID)
	if _, err := t.api.Request(del); err != nil {
		return fmt.Errorf("delete message %d: %w", ref.MessageID, err)
	}
	return nil
}

// SendAudio delivers an audio file with an explicit filename.
func (t *Telegram) SendAudio(chatID int64, path, title, filename string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio artifact: %w", err)
	}
	defer f.Close()

	audio := tgbotapi.NewAudio(chatID, tgbotapi.FileReader{Name: filename, Reader: f})
	audio.Title = title
	if _, err := t.api.Send(audio); err != nil {
		return fmt.Errorf("send audio: %w", err)
	}
	return nil
}

// SendVideo delivers a video file with streaming enabled.
func (t *Telegram) SendVideo(chatID int64, path, filename string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open video artifact: %w", err)
	}
	defer f.Close()

	video := tgbotapi.NewVideo(chatID, tgbotapi.FileReader{Name: filename, Reader: f})
	video.SupportsStreaming = true
	if _, err := t.api.Send(video); err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges a button tap.
func (t *Telegram) AnswerCallback(callbackID, text string) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	if _, err := t.api.Request(cb); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

// buildKeyboard lays out one button per row, matching tap targets on phones.
func buildKeyboard(buttons []Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
