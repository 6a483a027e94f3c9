package repository

import (
	"context"
	"encoding/json"

	"github.com/Alwanly/service-feed-poller/internal/models"
)

// IRepository stores the fake feed and the calls made against it
type IRepository interface {
	// AppendUpdate queues a new update and assigns its update_id
	AppendUpdate(ctx context.Context, kind string, payload json.RawMessage) (*models.FeedUpdate, error)
	// ConfirmUpdates forgets every update below offset
	ConfirmUpdates(ctx context.Context, offset int64) error
	// ListUpdates returns pending updates from offset on, ascending, optionally filtered by kind
	ListUpdates(ctx context.Context, offset int64, limit int, kinds []string) ([]models.FeedUpdate, error)
	// RecordCall stores an outbound method call
	RecordCall(ctx context.Context, call *models.OutboundCall) error
	// ListCalls returns recorded calls, all of them when method is empty
	ListCalls(ctx context.Context, method string) ([]models.OutboundCall, error)
}
