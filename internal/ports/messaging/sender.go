package messaging

import "context"

// Sender entrega un texto a un chat/canal. Cualquier respuesta no exitosa es error.
type Sender interface {
	SendText(ctx context.Context, chatID, text string) error
}
