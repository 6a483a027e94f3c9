package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Alwanly/service-feed-poller/internal/config"
	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/internal/server/fakeapi/dto"
	"github.com/Alwanly/service-feed-poller/internal/server/fakeapi/repository"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/validator"
	"github.com/Alwanly/service-feed-poller/pkg/wrapper"
)

const defaultLimit = 100

type UseCase struct {
	Repo   repository.IRepository
	Config *config.FakeAPIConfig
	Logger *logger.CanonicalLogger

	mu     sync.Mutex
	notify chan struct{}
	floods map[string]flood
	msgSeq atomic.Int64
}

type flood struct {
	retryAfter int
	remaining  int
}

var _ IUseCase = (*UseCase)(nil)

func NewUseCase(repo repository.IRepository, cfg *config.FakeAPIConfig, log *logger.CanonicalLogger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		Repo:   repo,
		Config: cfg,
		Logger: log,
		notify: make(chan struct{}),
		floods: make(map[string]flood),
	}
}

// waiter returns a channel closed on the next appended update
func (uc *UseCase) waiter() <-chan struct{} {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.notify
}

func (uc *UseCase) broadcast() {
	uc.mu.Lock()
	close(uc.notify)
	uc.notify = make(chan struct{})
	uc.mu.Unlock()
}

// GetUpdates confirms everything below the offset, then returns pending
// updates, holding the request up to timeout seconds while none exist.
func (uc *UseCase) GetUpdates(ctx context.Context, req *dto.GetUpdatesRequest) wrapper.APIResponse {
	logger.AddToContext(ctx,
		zap.Int64(logger.FieldOffset, req.Offset),
		zap.Int("timeout", req.Timeout),
	)

	if res, limited := uc.throttled(ctx, "getUpdates"); limited {
		return res
	}

	if req.Offset > 0 {
		if err := uc.Repo.ConfirmUpdates(ctx, req.Offset); err != nil {
			logger.AddToContext(ctx, zap.Error(err))
			return wrapper.ResponseFailed(http.StatusInternalServerError, "Internal Server Error: failed to confirm updates")
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	hold := time.Duration(req.Timeout) * time.Second
	if uc.Config != nil && hold > uc.Config.MaxHold {
		hold = uc.Config.MaxHold
	}
	timer := time.NewTimer(hold)
	defer timer.Stop()

	for {
		wait := uc.waiter()

		pending, err := uc.Repo.ListUpdates(ctx, req.Offset, limit, req.AllowedUpdates)
		if err != nil {
			logger.AddToContext(ctx, zap.Error(err))
			return wrapper.ResponseFailed(http.StatusInternalServerError, "Internal Server Error: failed to list updates")
		}
		if len(pending) > 0 || hold <= 0 {
			logger.AddToContext(ctx, zap.Int(logger.FieldBatchSize, len(pending)))
			return wrapper.ResponseSuccess(render(pending))
		}

		select {
		case <-wait:
		case <-timer.C:
			logger.AddToContext(ctx, zap.Int(logger.FieldBatchSize, 0))
			return wrapper.ResponseSuccess([]json.RawMessage{})
		case <-ctx.Done():
			return wrapper.ResponseSuccess([]json.RawMessage{})
		}
	}
}

// render rebuilds each stored update as {"update_id": N, "<kind>": payload}
func render(updates []models.FeedUpdate) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(updates))
	for _, u := range updates {
		id, _ := json.Marshal(u.UpdateID)
		obj := map[string]json.RawMessage{"update_id": id}
		if u.Kind != "" {
			obj[u.Kind] = json.RawMessage(u.Payload)
		}
		data, _ := json.Marshal(obj)
		out = append(out, data)
	}
	return out
}

// CallMethod answers an outbound bot method. getMe and sendMessage are
// modelled; every other method is recorded and acknowledged with true.
func (uc *UseCase) CallMethod(ctx context.Context, method string, params map[string]any) wrapper.APIResponse {
	logger.AddToContext(ctx, zap.String(logger.FieldMethod, method))

	if res, limited := uc.throttled(ctx, method); limited {
		return res
	}

	switch method {
	case "getMe":
		return wrapper.ResponseSuccess(uc.me())
	case "sendMessage":
		return uc.sendMessage(ctx, params)
	}

	if _, err := uc.record(ctx, method, params, ""); err != nil {
		logger.AddToContext(ctx, zap.Error(err))
		return wrapper.ResponseFailed(http.StatusInternalServerError, "Internal Server Error: failed to record call")
	}
	return wrapper.ResponseSuccess(true)
}

func (uc *UseCase) me() models.User {
	username := "echo_bot"
	if uc.Config != nil && uc.Config.BotUsername != "" {
		username = uc.Config.BotUsername
	}
	return models.User{ID: 1, IsBot: true, FirstName: "Echo", Username: username}
}

func (uc *UseCase) sendMessage(ctx context.Context, params map[string]any) wrapper.APIResponse {
	chatID, err := int64Param(params, "chat_id")
	if err != nil {
		return wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: invalid chat_id")
	}
	replyTo, err := int64Param(params, "reply_to_message_id")
	if err != nil {
		return wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: invalid reply_to_message_id")
	}

	req := &dto.SendMessageRequest{
		ChatID:           chatID,
		Text:             stringParam(params, "text"),
		ParseMode:        stringParam(params, "parse_mode"),
		ReplyToMessageID: replyTo,
	}
	if err := validator.ValidateStruct(req); err != nil {
		logger.AddToContext(ctx, zap.Error(err))
		return wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: "+validator.Describe(err))
	}

	text := req.Text
	if req.ParseMode == "HTML" {
		text, err = plainText(req.Text)
		if err != nil {
			return wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: can't parse entities")
		}
	}

	if _, err := uc.record(ctx, "sendMessage", params, text); err != nil {
		logger.AddToContext(ctx, zap.Error(err))
		return wrapper.ResponseFailed(http.StatusInternalServerError, "Internal Server Error: failed to record call")
	}

	me := uc.me()
	return wrapper.ResponseSuccess(models.Message{
		MessageID: uc.msgSeq.Add(1),
		From:      &me,
		Chat:      models.Chat{ID: req.ChatID, Type: "private"},
		Date:      time.Now().Unix(),
		Text:      text,
	})
}

func (uc *UseCase) record(ctx context.Context, method string, params map[string]any, plain string) (*models.OutboundCall, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	call := &models.OutboundCall{Method: method, Params: string(raw), PlainText: plain}
	if err := uc.Repo.RecordCall(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

func (uc *UseCase) InjectUpdate(ctx context.Context, req *dto.InjectUpdateRequest) wrapper.APIResponse {
	if !json.Valid(req.Payload) {
		return wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: payload is not valid JSON")
	}
	return uc.enqueue(ctx, req.Kind, req.Payload)
}

func (uc *UseCase) InjectMessage(ctx context.Context, req *dto.InjectMessageRequest) wrapper.APIResponse {
	fromID := req.FromID
	if fromID == 0 {
		fromID = req.ChatID
	}
	msg := models.Message{
		MessageID: uc.msgSeq.Add(1),
		From:      &models.User{ID: fromID, FirstName: "User", Username: req.Username},
		Chat:      models.Chat{ID: req.ChatID, Type: "private"},
		Date:      time.Now().Unix(),
		Text:      req.Text,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return wrapper.ResponseFailed(http.StatusInternalServerError, "Internal Server Error: failed to encode message")
	}
	return uc.enqueue(ctx, "message", payload)
}

func (uc *UseCase) enqueue(ctx context.Context, kind string, payload json.RawMessage) wrapper.APIResponse {
	u, err := uc.Repo.AppendUpdate(ctx, kind, payload)
	if err != nil {
		logger.AddToContext(ctx, zap.Error(err))
		return wrapper.ResponseFailed(http.StatusInternalServerError, "Internal Server Error: failed to append update")
	}
	uc.broadcast()

	logger.AddToContext(ctx, zap.Int64(logger.FieldUpdateID, u.UpdateID), zap.String("kind", kind))
	return wrapper.ResponseSuccess(dto.InjectUpdateResponse{UpdateID: u.UpdateID})
}

func (uc *UseCase) ListCalls(ctx context.Context, method string) wrapper.APIResponse {
	calls, err := uc.Repo.ListCalls(ctx, method)
	if err != nil {
		logger.AddToContext(ctx, zap.Error(err))
		return wrapper.ResponseFailed(http.StatusInternalServerError, "Internal Server Error: failed to list calls")
	}

	out := make([]dto.CallRecord, 0, len(calls))
	for _, c := range calls {
		out = append(out, dto.CallRecord{
			ID:        c.ID,
			Method:    c.Method,
			Params:    json.RawMessage(c.Params),
			PlainText: c.PlainText,
			CreatedAt: c.CreatedAt,
		})
	}
	return wrapper.ResponseSuccess(out)
}

// Flood arms a flood wait for a method. Times 0 means a single call.
func (uc *UseCase) Flood(ctx context.Context, req *dto.FloodRequest) wrapper.APIResponse {
	times := req.Times
	if times == 0 {
		times = 1
	}

	uc.mu.Lock()
	uc.floods[req.Method] = flood{retryAfter: req.RetryAfter, remaining: times}
	uc.mu.Unlock()

	logger.AddToContext(ctx,
		zap.String(logger.FieldMethod, req.Method),
		zap.Int("retry_after", req.RetryAfter),
		zap.Int("times", times),
	)
	return wrapper.ResponseSuccess(true)
}

// throttled consumes one armed flood wait for method, if any
func (uc *UseCase) throttled(ctx context.Context, method string) (wrapper.APIResponse, bool) {
	uc.mu.Lock()
	f, ok := uc.floods[method]
	if ok {
		f.remaining--
		if f.remaining <= 0 {
			delete(uc.floods, method)
		} else {
			uc.floods[method] = f
		}
	}
	uc.mu.Unlock()

	if !ok {
		return wrapper.APIResponse{}, false
	}
	logger.AddToContext(ctx, zap.Int("retry_after", f.retryAfter))
	return wrapper.ResponseRetryAfter(f.retryAfter), true
}
