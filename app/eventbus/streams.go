package eventbus

import (
	"context"
	"fmt"
)

// Stream names and subject filters. One stream per module keeps
// retention and replay policies independent.
const (
	BracketStreamName     = "bracket"
	BracketStreamSubjects = "bracket.>"
)

// InitializeStreams creates the streams the application needs during
// startup. Safe to call repeatedly.
func InitializeStreams(ctx context.Context, bus EventBus) error {
	if err := bus.CreateStream(ctx, BracketStreamName, BracketStreamSubjects); err != nil {
		return fmt.Errorf("failed to initialize %s stream: %w", BracketStreamName, err)
	}
	return nil
}
