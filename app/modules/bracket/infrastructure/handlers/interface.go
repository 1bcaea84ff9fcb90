package brackethandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers is the bracket module's message-handling surface.
type Handlers interface {
	HandleTournamentCreateRequest(msg *message.Message) ([]*message.Message, error)
	HandleWinnerRecordRequest(msg *message.Message) ([]*message.Message, error)
	HandleResultUndoRequest(msg *message.Message) ([]*message.Message, error)
}
