package dto

import (
	"encoding/json"
	"time"
)

type SendMessageRequest struct {
	ChatID           int64  `json:"chat_id" validate:"required"`
	Text             string `json:"text" validate:"required,max=4096"`
	ParseMode        string `json:"parse_mode" validate:"omitempty,oneof=HTML Markdown MarkdownV2"`
	ReplyToMessageID int64  `json:"reply_to_message_id"`
}

type CallRecord struct {
	ID        int64           `json:"id"`
	Method    string          `json:"method"`
	Params    json.RawMessage `json:"params"`
	PlainText string          `json:"plain_text,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// FloodRequest makes the next calls of Method fail with 429 and retry_after
type FloodRequest struct {
	Method     string `json:"method" validate:"required"`
	RetryAfter int    `json:"retry_after" validate:"gte=1"`
	Times      int    `json:"times" validate:"gte=0"`
}
