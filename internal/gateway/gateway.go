package gateway

// Package gateway defines the messaging boundary: the event types the bot
// consumes and the Messenger interface it drives. The Telegram implementation
// lives in telegram.go; tests inject fakes.

// MessageRef identifies one sent message so it can be edited or deleted.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Button is one tappable inline control carrying opaque callback data.
type Button struct {
	Label string
	Data  string
}

// TextMessage is an inbound chat message.
type TextMessage struct {
	ChatID  int64
	Text    string
	Command string // bot command without the slash, empty for plain text
}

// CallbackEvent is an inbound button tap.
type CallbackEvent struct {
	ChatID     int64
	Message    MessageRef // the message carrying the tapped keyboard
	CallbackID string     // transport token for the acknowledgment
	Data       string     // opaque selection token
}

// Update is one inbound event; exactly one field is non-nil.
type Update struct {
	Message  *TextMessage
	Callback *CallbackEvent
}

// Messenger is the outbound surface of the chat transport.
type Messenger interface {
	// SendText sends a plain text message.
	SendText(chatID int64, text string) (MessageRef, error)

	// SendOffers sends the offer list: a photo with caption when photoURL is
	// non-empty, plain text otherwise, with one button per row.
	SendOffers(chatID int64, photoURL, caption string, buttons []Button) (MessageRef, error)

	// EditText replaces the text (or caption) of a previously sent message.
	EditText(ref MessageRef, text string) error

	// DeleteMessage removes a previously sent message.
	DeleteMessage(ref MessageRef) error

	// SendAudio delivers an audio artifact with a track title and filename.
	SendAudio(chatID int64, path, title, filename string) error

	// SendVideo delivers a streamable video artifact.
	SendVideo(chatID int64, path, filename string) error

	// AnswerCallback acknowledges a button tap, optionally with a toast.
	AnswerCallback(callbackID, text string) error
}
