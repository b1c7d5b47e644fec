// Package models defines data structures and domain types.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DrinkEvent is a single recorded intake of fluid.
type DrinkEvent struct {
	Timestamp time.Time
	AmountMl  int
}

// drinkEventJSON is the persisted layout of a drink event.
// Amount is the field name written by older exports.
type drinkEventJSON struct {
	AmountMl  *int   `json:"amountMl,omitempty"`
	Amount    *int   `json:"amount,omitempty"`
	Timestamp string `json:"timestamp"`
}

// MarshalJSON encodes the event as {"amountMl": n, "timestamp": "<RFC3339>"}.
func (e DrinkEvent) MarshalJSON() ([]byte, error) {
	amount := e.AmountMl
	return json.Marshal(drinkEventJSON{
		AmountMl:  &amount,
		Timestamp: e.Timestamp.Format(time.RFC3339Nano),
	})
}

// UnmarshalJSON decodes both the current and the legacy layout.
func (e *DrinkEvent) UnmarshalJSON(data []byte) error {
	var raw drinkEventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.AmountMl != nil:
		e.AmountMl = *raw.AmountMl
	case raw.Amount != nil:
		e.AmountMl = *raw.Amount
	default:
		return fmt.Errorf("drink event missing amountMl")
	}

	ts, err := time.Parse(time.RFC3339Nano, raw.Timestamp)
	if err != nil {
		return fmt.Errorf("invalid drink timestamp %q: %w", raw.Timestamp, err)
	}
	e.Timestamp = ts
	return nil
}

// EncodeHistory serializes events (newest-first) to the persisted JSON array.
func EncodeHistory(events []DrinkEvent) (string, error) {
	if events == nil {
		events = []DrinkEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("failed to marshal drink history: %w", err)
	}
	return string(data), nil
}

// DecodeHistory parses the persisted JSON array. An empty string is an empty history.
func DecodeHistory(data string) ([]DrinkEvent, error) {
	if data == "" {
		return []DrinkEvent{}, nil
	}
	var events []DrinkEvent
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, fmt.Errorf("failed to parse drink history: %w", err)
	}
	if events == nil {
		events = []DrinkEvent{}
	}
	return events, nil
}
