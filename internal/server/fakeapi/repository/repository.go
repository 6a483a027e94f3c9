package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/Alwanly/service-feed-poller/internal/models"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) AppendUpdate(ctx context.Context, kind string, payload json.RawMessage) (*models.FeedUpdate, error) {
	u := &models.FeedUpdate{Kind: kind, Payload: string(payload)}
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, fmt.Errorf("failed to append update: %w", err)
	}
	return u, nil
}

func (r *Repository) ConfirmUpdates(ctx context.Context, offset int64) error {
	result := r.DB.WithContext(ctx).Where("update_id < ?", offset).Delete(&models.FeedUpdate{})
	if result.Error != nil {
		return fmt.Errorf("failed to confirm updates below %d: %w", offset, result.Error)
	}
	return nil
}

func (r *Repository) ListUpdates(ctx context.Context, offset int64, limit int, kinds []string) ([]models.FeedUpdate, error) {
	q := r.DB.WithContext(ctx).Where("update_id >= ?", offset)
	if len(kinds) > 0 {
		q = q.Where("kind IN ?", kinds)
	}

	var updates []models.FeedUpdate
	if err := q.Order("update_id ASC").Limit(limit).Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}
	return updates, nil
}

func (r *Repository) RecordCall(ctx context.Context, call *models.OutboundCall) error {
	if err := r.DB.WithContext(ctx).Create(call).Error; err != nil {
		return fmt.Errorf("failed to record %s call: %w", call.Method, err)
	}
	return nil
}

func (r *Repository) ListCalls(ctx context.Context, method string) ([]models.OutboundCall, error) {
	q := r.DB.WithContext(ctx)
	if method != "" {
		q = q.Where("method = ?", method)
	}

	var calls []models.OutboundCall
	if err := q.Order("id ASC").Find(&calls).Error; err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	return calls, nil
}
