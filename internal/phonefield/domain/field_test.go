package domain

import (
	"context"
	"testing"

	"phonefield/platform/apperr"
	"phonefield/platform/events"
)

func TestFieldPublishesChanges(t *testing.T) {
	bus := events.NewInMemoryBus(nil)
	var got []events.Event
	record := events.HandlerFunc(func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})
	bus.Subscribe(DigitsChanged{}.EventName(), record)
	bus.Subscribe(CountryChanged{}.EventName(), record)

	f := NewField(newKenya(t, ""), bus)
	ctx := context.Background()

	if err := f.SetRawDigits(ctx, "0772123456"); err != nil {
		t.Fatalf("SetRawDigits: %v", err)
	}
	if err := f.SetCountry(ctx, "ug"); err != nil {
		t.Fatalf("SetCountry: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	digits, ok := got[0].(DigitsChanged)
	if !ok || digits.FullNumber != "+254772123456" {
		t.Fatalf("unexpected first event %#v", got[0])
	}
	country, ok := got[1].(CountryChanged)
	if !ok || country.Previous != "ke" || country.Selected != "ug" {
		t.Fatalf("unexpected second event %#v", got[1])
	}
	if f.State().FullNumber() != "+256772123456" {
		t.Fatalf("unexpected full number %q", f.State().FullNumber())
	}
}

func TestFieldRejectedCountryPublishesNothing(t *testing.T) {
	bus := events.NewInMemoryBus(nil)
	calls := 0
	bus.Subscribe(CountryChanged{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		calls++
		return nil
	}))

	f := NewField(newKenya(t, ""), bus)
	if err := f.SetCountry(context.Background(), "zz"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no events, got %d", calls)
	}
}
