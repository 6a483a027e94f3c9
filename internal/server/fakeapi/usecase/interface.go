package usecase

import (
	"context"

	"github.com/Alwanly/service-feed-poller/internal/server/fakeapi/dto"
	"github.com/Alwanly/service-feed-poller/pkg/wrapper"
)

type IUseCase interface {
	GetUpdates(ctx context.Context, req *dto.GetUpdatesRequest) wrapper.APIResponse
	CallMethod(ctx context.Context, method string, params map[string]any) wrapper.APIResponse
	InjectUpdate(ctx context.Context, req *dto.InjectUpdateRequest) wrapper.APIResponse
	InjectMessage(ctx context.Context, req *dto.InjectMessageRequest) wrapper.APIResponse
	ListCalls(ctx context.Context, method string) wrapper.APIResponse
	Flood(ctx context.Context, req *dto.FloodRequest) wrapper.APIResponse
}
