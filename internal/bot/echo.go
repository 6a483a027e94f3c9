package bot

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"

	"github.com/Alwanly/service-feed-poller/internal/hooks"
	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/poll"
	"github.com/Alwanly/service-feed-poller/pkg/pubsub"
)

const startReply = "Hi! Send me any text and I will send it back."

// EchoBot replies to every text message with the same text
type EchoBot struct {
	poll     poll.Config
	mirror   pubsub.Publisher
	channel  string
	logger   *logger.CanonicalLogger
	failures atomic.Int64
}

// NewEchoBot creates the bot. mirror may be nil, in which case updates are
// not copied anywhere.
func NewEchoBot(cfg poll.Config, mirror pubsub.Publisher, channel string, log *logger.CanonicalLogger) *EchoBot {
	return &EchoBot{
		poll:    cfg,
		mirror:  mirror,
		channel: channel,
		logger:  log.Component("echo-bot"),
	}
}

// Hooks exposes the bot as lifecycle hooks
func (b *EchoBot) Hooks() hooks.Hooks {
	return hooks.New(hooks.Funcs{
		Boot:    b.boot,
		Init:    b.init,
		Update:  b.handle,
		Failure: b.failure,
	}, b.logger)
}

// Failures returns how many fetches have failed so far
func (b *EchoBot) Failures() int64 {
	return b.failures.Load()
}

func (b *EchoBot) boot(ctx context.Context) poll.Config {
	return b.poll
}

func (b *EchoBot) init(ctx context.Context, state map[string]any) error {
	b.logger.Info("echo bot ready", logger.Any("state", state), logger.Bool("mirror", b.mirror != nil))
	return nil
}

func (b *EchoBot) handle(ctx context.Context, u models.Update) models.HandlerResult {
	b.publish(ctx, u)

	msg := u.Message
	if msg == nil || msg.Text == "" {
		return models.Ignore()
	}

	text := msg.Text
	if isCommand(text, "start") {
		text = startReply
	}

	return models.Dispatch("sendMessage", map[string]any{
		"chat_id":             msg.Chat.ID,
		"text":                text,
		"reply_to_message_id": msg.MessageID,
	})
}

func (b *EchoBot) failure(ctx context.Context, err error) {
	total := b.failures.Add(1)
	b.logger.WithError(err).Error("failed to fetch updates", logger.Int64("failures_total", total))
}

func (b *EchoBot) publish(ctx context.Context, u models.Update) {
	if b.mirror == nil {
		return
	}
	payload := []byte(u.Raw)
	if len(payload) == 0 {
		var err error
		if payload, err = json.Marshal(u); err != nil {
			b.logger.WithUpdateID(u.UpdateID).WithError(err).Warn("failed to encode update for mirror")
			return
		}
	}
	if err := b.mirror.Publish(ctx, b.channel, payload); err != nil {
		b.logger.Ctx(ctx).WithUpdateID(u.UpdateID).WithError(err).Warn("failed to mirror update")
	}
}

// isCommand reports whether text starts with /name, optionally addressed
// as /name@botname
func isCommand(text, name string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd == "/"+name
}
