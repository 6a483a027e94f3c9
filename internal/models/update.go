package models

import (
	"encoding/json"
	"maps"
	"slices"
)

// Update is one event from the feed. Only UpdateID is interpreted by the
// polling core; the rest of the payload belongs to the handler.
type Update struct {
	UpdateID int64 `json:"update_id"`
	// Message is decoded for convenience when the update carries one.
	Message *Message `json:"message,omitempty"`
	// Raw holds the full update object exactly as received.
	Raw json.RawMessage `json:"-"`
}

func (u *Update) UnmarshalJSON(data []byte) error {
	type plain Update
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = Update(p)
	u.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Kind reports the payload field present next to update_id, e.g. "message"
// or "callback_query". Empty when the payload has no extra field. If more
// than one field is present the alphabetically first wins.
func (u Update) Kind() string {
	if len(u.Raw) == 0 {
		if u.Message != nil {
			return "message"
		}
		return ""
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(u.Raw, &fields); err != nil {
		return ""
	}
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if k != "update_id" {
			return k
		}
	}
	return ""
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}
