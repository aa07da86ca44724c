package lantern

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/LanternTeam/Lantern/discord"
	"github.com/LanternTeam/Lantern/lanternjson"
)

// DispatchHandler consumes one gateway event against a state. The returned
// result carries the payload to forward plus any derived extras; ok reports
// whether the event should continue downstream.
type DispatchHandler func(ctx context.Context, s *State, msg *discord.GatewayPayload) (result DispatchResult, ok bool, err error)

type DispatchResult struct {
	Data  any
	Extra *Extra
}

// Extra carries derived values alongside a dispatched payload, such as the
// entity state before an update was applied.
type Extra map[string]jsoniter.RawMessage

func NewExtra() *Extra {
	e := make(Extra)
	return &e
}

func (e *Extra) Set(key string, value any) *Extra {
	data, err := lanternjson.Marshal(value)
	if err != nil {
		panic(fmt.Sprintf("extra.Set(%s, %v): %v", key, value, err))
	}

	(*e)[key] = data

	return e
}

var dispatchHandlers = make(map[string]DispatchHandler)

// RegisterDispatchHandler binds a handler to a gateway event type,
// replacing any previous binding.
func RegisterDispatchHandler(eventType string, handler DispatchHandler) {
	dispatchHandlers[eventType] = handler
}

// Dispatch routes a gateway payload to its registered handler and records
// the event metric. Events without a handler return ErrNoDispatchHandler.
func (s *State) Dispatch(ctx context.Context, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	recordEvent(msg.Type)

	if handler, ok := dispatchHandlers[msg.Type]; ok {
		return handler(ctx, s, msg)
	}

	s.Logger.Debug("No dispatch handler for event", "event_type", msg.Type)

	return DispatchResult{nil, nil}, false, ErrNoDispatchHandler
}

func unmarshalPayload(payload *discord.GatewayPayload, out any) error {
	err := lanternjson.Unmarshal(payload.Data, out)
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}
