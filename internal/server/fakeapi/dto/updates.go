package dto

import "encoding/json"

type GetUpdatesRequest struct {
	Offset         int64    `json:"offset" query:"offset" form:"offset"`
	Limit          int      `json:"limit" query:"limit" form:"limit" validate:"gte=0,lte=100"`
	Timeout        int      `json:"timeout" query:"timeout" form:"timeout" validate:"gte=0"`
	AllowedUpdates []string `json:"allowed_updates" query:"allowed_updates" form:"allowed_updates"`
}

// InjectUpdateRequest queues an arbitrary update, e.g. a callback_query
type InjectUpdateRequest struct {
	Kind    string          `json:"kind" validate:"required"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

// InjectMessageRequest queues a text message update from a private chat
type InjectMessageRequest struct {
	ChatID   int64  `json:"chat_id" validate:"required"`
	Text     string `json:"text" validate:"required"`
	FromID   int64  `json:"from_id"`
	Username string `json:"username"`
}

type InjectUpdateResponse struct {
	UpdateID int64 `json:"update_id"`
}
