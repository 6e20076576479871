package domain

import (
	"context"

	"phonefield/platform/events"
)

// DigitsChanged is published after the raw text of a field changes.
type DigitsChanged struct {
	events.BaseEvent
	RawDigits  string `json:"rawDigits"`
	FullNumber string `json:"fullNumber"`
}

func (e DigitsChanged) EventName() string { return "phonefield.digits.changed" }

// CountryChanged is published after a new country is selected.
type CountryChanged struct {
	events.BaseEvent
	Previous string `json:"previous"`
	Selected string `json:"selected"`
}

func (e CountryChanged) EventName() string { return "phonefield.country.changed" }

// Field wraps a State and publishes change events synchronously after each
// successful mutation.
type Field struct {
	state *State
	bus   events.Bus
}

// NewField wraps state. Events go to bus.
func NewField(state *State, bus events.Bus) *Field {
	return &Field{state: state, bus: bus}
}

// State returns the wrapped state for reads.
func (f *Field) State() *State {
	return f.state
}

// SetRawDigits updates the raw text and publishes DigitsChanged.
func (f *Field) SetRawDigits(ctx context.Context, text string) error {
	f.state.SetRawDigits(text)
	return f.bus.PublishSync(ctx, DigitsChanged{
		BaseEvent:  events.NewBaseEvent(),
		RawDigits:  text,
		FullNumber: f.state.FullNumber(),
	})
}

// SetCountry selects a country and publishes CountryChanged. A rejected code
// publishes nothing.
func (f *Field) SetCountry(ctx context.Context, code string) error {
	previous := f.state.SelectedCountryCode()
	if err := f.state.SetCountry(code); err != nil {
		return err
	}
	return f.bus.PublishSync(ctx, CountryChanged{
		BaseEvent: events.NewBaseEvent(),
		Previous:  previous,
		Selected:  code,
	})
}
