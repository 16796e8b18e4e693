package core

import "net/mail"

type (
	// EmailService sends email messages asynchronously (fire-and-forget).
	EmailService interface {
		SendMessages(messages ...*EmailMessage)
	}

	// EmailMessage is a plain email; HTMLContent is optional.
	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		TextContent string
		HTMLContent string
	}
)

func (msg *EmailMessage) HasRecipients() bool {
	return len(msg.To) > 0 || len(msg.Cc) > 0 || len(msg.Bcc) > 0
}

func (msg *EmailMessage) HasContent() bool {
	return msg.TextContent != "" || msg.HTMLContent != ""
}
