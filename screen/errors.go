package screen

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrRenderPartFailure marks every PartError
	ErrRenderPartFailure = errors.New("render part failure")
	// ErrProducerPanic wraps a recovered producer panic
	ErrProducerPanic = errors.New("producer panicked")
	// ErrNoActiveScreen is returned by Pop on an empty stack
	ErrNoActiveScreen = errors.New("no active screen")
)

// PartError reports one failed producer in a render pass
type PartError struct {
	ScreenID uuid.UUID
	Screen   string
	Part     string
	Segment  int
	Err      error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("screen %s (%s): part %q segment %d: %v", e.Screen, e.ScreenID, e.Part, e.Segment, e.Err)
}

// Unwrap exposes both ErrRenderPartFailure and the producer error to errors.Is
func (e *PartError) Unwrap() []error {
	return []error{ErrRenderPartFailure, e.Err}
}
