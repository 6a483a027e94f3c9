package main

import (
	"context"
	"os"

	"github.com/kardianos/service"

	"github.com/Alwanly/service-feed-poller/internal/app"
	"github.com/Alwanly/service-feed-poller/internal/bot"
	"github.com/Alwanly/service-feed-poller/internal/botapi"
	"github.com/Alwanly/service-feed-poller/internal/config"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/pubsub"
)

// program adapts the poller to the host service manager
type program struct {
	log    *logger.CanonicalLogger
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *program) Start(s service.Service) error {
	cfg, err := config.LoadPollerConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		if err := p.run(ctx, cfg); err != nil {
			p.log.WithError(err).Fatal("poller stopped with error")
		}
	}()
	return nil
}

func (p *program) Stop(s service.Service) error {
	p.log.Info("shutdown requested")
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
	p.log.Info("poller stopped gracefully")
	return nil
}

func (p *program) run(ctx context.Context, cfg *config.PollerConfig) error {
	p.log.Info("configuration loaded",
		logger.String("api_url", cfg.APIURL),
		logger.Int("limit", cfg.Limit),
		logger.Int("timeout", cfg.Timeout),
		logger.Int("interval_ms", cfg.IntervalMS),
		logger.Strings("allowed_updates", cfg.AllowedUpdates),
	)

	var mirror pubsub.Publisher
	if cfg.Redis.Enabled() {
		pub, err := pubsub.NewRedisPublisher(ctx, pubsub.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, p.log)
		if err != nil {
			p.log.WithError(err).Error("failed to initialize Redis, continuing without update mirror")
		} else {
			mirror = pub
			defer pub.Close()
			p.log.Info("update mirror enabled", logger.String("channel", cfg.Redis.UpdatesChannel))
		}
	}

	client := botapi.NewClient(botapi.Config{
		BaseURL:        cfg.APIURL,
		Token:          cfg.BotToken,
		RequestTimeout: cfg.RequestTimeout,
	}, p.log)

	echo := bot.NewEchoBot(cfg.Poll(), mirror, cfg.Redis.UpdatesChannel, p.log)

	return app.Run(ctx, echo.Hooks(), client, app.Options{
		MaxInFlight:   cfg.MaxInFlight,
		ShutdownGrace: cfg.ShutdownGrace,
		BootRetry:     cfg.BootRetry(),
	}, p.log)
}

func main() {
	log, err := logger.NewLoggerFromEnv("poller")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	svcConfig := &service.Config{
		Name:        "feed-poller",
		DisplayName: "Feed Poller",
		Description: "Long-polls a Bot API update feed and answers with the echo bot.",
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		svcConfig.EnvVars = map[string]string{"CONFIG_FILE": path}
	}

	svc, err := service.New(&program{log: log}, svcConfig)
	if err != nil {
		log.WithError(err).Fatal("failed to create service")
	}

	// install, uninstall, start, stop, restart
	if len(os.Args) > 1 {
		if err := service.Control(svc, os.Args[1]); err != nil {
			log.WithError(err).Fatal("service control failed",
				logger.String("action", os.Args[1]),
				logger.Strings("valid_actions", service.ControlAction[:]),
			)
		}
		log.Info("service control executed", logger.String("action", os.Args[1]))
		return
	}

	log.Info("starting poller service", logger.Bool("interactive", service.Interactive()))
	if err := svc.Run(); err != nil {
		log.WithError(err).Fatal("poller service encountered an error")
	}
}
