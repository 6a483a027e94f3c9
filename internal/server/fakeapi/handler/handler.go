package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Alwanly/service-feed-poller/internal/config"
	"github.com/Alwanly/service-feed-poller/internal/server/fakeapi/dto"
	"github.com/Alwanly/service-feed-poller/internal/server/fakeapi/repository"
	"github.com/Alwanly/service-feed-poller/internal/server/fakeapi/usecase"
	"github.com/Alwanly/service-feed-poller/pkg/deps"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/middleware"
	"github.com/Alwanly/service-feed-poller/pkg/validator"
	"github.com/Alwanly/service-feed-poller/pkg/wrapper"
)

type Handler struct {
	Logger  *logger.CanonicalLogger
	UseCase usecase.IUseCase
	Config  *config.FakeAPIConfig
}

func NewHandler(d deps.App, cfg *config.FakeAPIConfig) *Handler {
	repo := repository.NewRepository(d.Database)
	uc := usecase.NewUseCase(repo, cfg, d.Logger)

	h := &Handler{
		Logger:  d.Logger,
		UseCase: uc,
		Config:  cfg,
	}

	d.Fiber.Get("/health", h.health)

	// Test drivers push updates and inspect what the bot sent
	admin := d.Fiber.Group("/admin")
	admin.Post("/updates", h.injectUpdate)
	admin.Post("/messages", h.injectMessage)
	admin.Post("/flood", h.flood)
	admin.Get("/calls", h.listCalls)

	auth := middleware.BotTokenAuth(cfg.BotToken, d.Logger)
	d.Fiber.All("/:bot/getUpdates", auth, h.getUpdates)
	d.Fiber.All("/:bot/:method", auth, h.callMethod)

	return h
}

// health godoc
// @Summary      Health check
// @Description  Reports that the fake Bot API is up
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string "Service is healthy"
// @Router       /health [get]
func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "service": "fakeapi"})
}

// getUpdates godoc
// @Summary      Receive pending updates
// @Description  Confirms every update below offset, then returns pending updates in ascending update_id order. Holds the request up to timeout seconds while none are pending.
// @Tags         bot
// @Accept       json
// @Produce      json
// @Param        bot path string true "bot followed by the bot token"
// @Param        request body dto.GetUpdatesRequest false "Cursor parameters"
// @Success      200 {object} wrapper.APIResponse "Array of updates in result"
// @Failure      400 {object} wrapper.APIResponse "Invalid parameters"
// @Failure      401 {object} wrapper.APIResponse "Wrong bot token"
// @Failure      429 {object} wrapper.APIResponse "Flood wait armed through /admin/flood"
// @Router       /{bot}/getUpdates [post]
func (h *Handler) getUpdates(c *fiber.Ctx) error {
	logger.AddToContext(c.UserContext(), logger.String(logger.FieldOperation, "get_updates"))

	req := new(dto.GetUpdatesRequest)
	parse := c.QueryParser
	if len(c.Body()) > 0 {
		parse = c.BodyParser
	}
	if err := parse(req); err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		return reply(c, wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: invalid parameters"))
	}

	if err := validator.ValidateStruct(req); err != nil {
		return reply(c, badRequest(c, err))
	}

	return reply(c, h.UseCase.GetUpdates(c.UserContext(), req))
}

// callMethod godoc
// @Summary      Call a bot method
// @Description  getMe and sendMessage are modelled. Any other method is recorded and answered with true. Parameters come from a JSON body, the query string or form fields.
// @Tags         bot
// @Accept       json
// @Produce      json
// @Param        bot path string true "bot followed by the bot token"
// @Param        method path string true "Bot API method name"
// @Param        request body dto.SendMessageRequest false "Method parameters, sendMessage shown"
// @Success      200 {object} wrapper.APIResponse "Method result"
// @Failure      400 {object} wrapper.APIResponse "Invalid parameters"
// @Failure      401 {object} wrapper.APIResponse "Wrong bot token"
// @Failure      429 {object} wrapper.APIResponse "Flood wait armed through /admin/flood"
// @Router       /{bot}/{method} [post]
func (h *Handler) callMethod(c *fiber.Ctx) error {
	logger.AddToContext(c.UserContext(), logger.String(logger.FieldOperation, "call_method"))

	params, err := methodParams(c)
	if err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		return reply(c, wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: invalid parameters"))
	}

	return reply(c, h.UseCase.CallMethod(c.UserContext(), c.Params("method"), params))
}

// injectUpdate godoc
// @Summary      Queue an arbitrary update
// @Description  Appends an update of the given kind, e.g. callback_query, and wakes pending long polls
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body dto.InjectUpdateRequest true "Update kind and payload"
// @Success      200 {object} wrapper.APIResponse "Assigned update_id in result"
// @Failure      400 {object} wrapper.APIResponse "Invalid body or validation error"
// @Router       /admin/updates [post]
func (h *Handler) injectUpdate(c *fiber.Ctx) error {
	logger.AddToContext(c.UserContext(), logger.String(logger.FieldOperation, "inject_update"))

	req := new(dto.InjectUpdateRequest)
	if err := c.BodyParser(req); err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		return reply(c, wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: invalid body"))
	}
	if err := validator.ValidateStruct(req); err != nil {
		return reply(c, badRequest(c, err))
	}

	return reply(c, h.UseCase.InjectUpdate(c.UserContext(), req))
}

// injectMessage godoc
// @Summary      Queue a text message
// @Description  Appends a message update from a private chat and wakes pending long polls
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body dto.InjectMessageRequest true "Chat and text"
// @Success      200 {object} wrapper.APIResponse "Assigned update_id in result"
// @Failure      400 {object} wrapper.APIResponse "Invalid body or validation error"
// @Router       /admin/messages [post]
func (h *Handler) injectMessage(c *fiber.Ctx) error {
	logger.AddToContext(c.UserContext(), logger.String(logger.FieldOperation, "inject_message"))

	req := new(dto.InjectMessageRequest)
	if err := c.BodyParser(req); err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		return reply(c, wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: invalid body"))
	}
	if err := validator.ValidateStruct(req); err != nil {
		return reply(c, badRequest(c, err))
	}

	return reply(c, h.UseCase.InjectMessage(c.UserContext(), req))
}

// flood godoc
// @Summary      Arm a flood wait
// @Description  The next calls of the method answer 429 with parameters.retry_after
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body dto.FloodRequest true "Method, retry_after seconds and number of calls"
// @Success      200 {object} wrapper.APIResponse "Flood wait armed"
// @Failure      400 {object} wrapper.APIResponse "Invalid body or validation error"
// @Router       /admin/flood [post]
func (h *Handler) flood(c *fiber.Ctx) error {
	logger.AddToContext(c.UserContext(), logger.String(logger.FieldOperation, "arm_flood"))

	req := new(dto.FloodRequest)
	if err := c.BodyParser(req); err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		return reply(c, wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: invalid body"))
	}
	if err := validator.ValidateStruct(req); err != nil {
		return reply(c, badRequest(c, err))
	}

	return reply(c, h.UseCase.Flood(c.UserContext(), req))
}

// listCalls godoc
// @Summary      List recorded calls
// @Description  Returns every method call the bot made, oldest first
// @Tags         admin
// @Produce      json
// @Param        method query string false "Only calls of this method"
// @Success      200 {object} wrapper.APIResponse "Array of dto.CallRecord in result"
// @Failure      500 {object} wrapper.APIResponse "Internal server error"
// @Router       /admin/calls [get]
func (h *Handler) listCalls(c *fiber.Ctx) error {
	logger.AddToContext(c.UserContext(), logger.String(logger.FieldOperation, "list_calls"))
	return reply(c, h.UseCase.ListCalls(c.UserContext(), c.Query("method")))
}

func reply(c *fiber.Ctx, res wrapper.APIResponse) error {
	return c.Status(res.Code).JSON(res)
}

func badRequest(c *fiber.Ctx, err error) wrapper.APIResponse {
	logger.AddToContext(c.UserContext(), zap.Error(err))
	return wrapper.ResponseFailed(http.StatusBadRequest, "Bad Request: "+validator.Describe(err))
}

// methodParams collects parameters from a JSON body, or from the query
// string and form fields when the body is not JSON
func methodParams(c *fiber.Ctx) (map[string]any, error) {
	params := make(map[string]any)

	body := c.Body()
	if len(body) > 0 && strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&params); err != nil {
			return nil, err
		}
		return params, nil
	}

	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		params[string(k)] = string(v)
	})
	c.Context().PostArgs().VisitAll(func(k, v []byte) {
		params[string(k)] = string(v)
	})
	return params, nil
}
