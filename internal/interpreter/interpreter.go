package interpreter

import (
	"context"

	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
)

// UpdateHandler turns an update into a result
type UpdateHandler interface {
	OnUpdate(ctx context.Context, update models.Update) models.HandlerResult
}

// MethodCaller issues one call against the feed API
type MethodCaller interface {
	CallMethod(ctx context.Context, method string, params map[string]any) (any, error)
}

// Interpreter runs the handler for an update and performs the call it asks
// for, if any. Call errors are logged and never retried.
type Interpreter struct {
	handler UpdateHandler
	caller  MethodCaller
	logger  *logger.CanonicalLogger
}

func New(handler UpdateHandler, caller MethodCaller, log *logger.CanonicalLogger) *Interpreter {
	return &Interpreter{
		handler: handler,
		caller:  caller,
		logger:  log.Component("interpreter"),
	}
}

// Process handles one update. It runs inside a dispatcher unit; a panicking
// handler unwinds straight out of it.
func (i *Interpreter) Process(ctx context.Context, update models.Update) {
	result := i.handler.OnUpdate(ctx, update)
	log := i.logger.Ctx(ctx).WithUpdateID(update.UpdateID)

	switch result.Kind {
	case models.ResultIgnore:
		log.Debug("update ignored")
	case models.ResultDispatch:
		if result.Method == "" {
			log.Warn("handler returned a dispatch result without a method", logger.Any(logger.FieldParams, result.Params))
			return
		}
		if _, err := i.caller.CallMethod(ctx, result.Method, result.Params); err != nil {
			log.WithMethod(result.Method).WithError(err).Error("failed to call method",
				logger.Any(logger.FieldParams, result.Params),
			)
			return
		}
		log.WithMethod(result.Method).Debug("method called")
	default:
		log.Warn("handler returned an unrecognized result", logger.String("kind", result.Kind.String()), logger.Int("kind_value", int(result.Kind)))
	}
}
