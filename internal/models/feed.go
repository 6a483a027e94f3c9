package models

import "time"

// FeedUpdate is an update queued by the fake Bot API server
type FeedUpdate struct {
	UpdateID  int64     `gorm:"primaryKey;autoIncrement;column:update_id"`
	Kind      string    `gorm:"column:kind;index"`
	Payload   string    `gorm:"column:payload"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (FeedUpdate) TableName() string {
	return "feed_updates"
}

// OutboundCall is a method call the fake Bot API server received
type OutboundCall struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Method    string    `gorm:"column:method;index"`
	Params    string    `gorm:"column:params"`
	PlainText string    `gorm:"column:plain_text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (OutboundCall) TableName() string {
	return "outbound_calls"
}
