package bootstrap

import (
	"context"
	"log"

	"care-intake-be/internal/config"
	"care-intake-be/internal/controller"
	"care-intake-be/internal/faq"
	"care-intake-be/internal/metrics"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/internal/pkg/mailer"
	"care-intake-be/internal/repository/memory"
	"care-intake-be/internal/service"
	"care-intake-be/internal/websocket"
	"care-intake-be/pkg/llm/factory"
	pktNats "care-intake-be/pkg/nats"
	"care-intake-be/pkg/ratelimit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	IntakeController controller.IIntakeController
	FAQController    controller.IFAQController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Metrics *metrics.Metrics
	Logger  logger.ILogger

	closers []func()
}

func NewContainer(cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	m := metrics.New("care_intake")
	c.Logger = sysLogger
	c.Metrics = m

	corpus, err := faq.Load(cfg.App.FAQCorpusPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load FAQ corpus: %v", err)
	}
	log.Printf("[INFO] Loaded FAQ corpus: %d entries", corpus.Len())

	// 2. LLM Provider
	llmProvider, err := factory.NewLLMProvider(factory.Params{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		Timeout:       cfg.Ai.LLMTimeout,
		GroqAPIKey:    cfg.Keys.Groq,
		GroqBaseURL:   cfg.Ai.GroqBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", llmProvider.Name(), cfg.Ai.LLMModel)
	instrumented := metrics.InstrumentProvider(llmProvider, m)

	// 3. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 4. Optional Infrastructure
	rdb := c.connectRedis(cfg.Infra.RedisURL)

	var sinks []service.EventSink
	if cfg.Infra.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Infra.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			sinks = append(sinks, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	wsLogger := logger.NewIsolatedLogger(cfg.App.StreamLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)
	sinks = append(sinks, c.WebSocketHub)

	var emailService mailer.IEmailService
	if cfg.SMTP.AlertsEnabled() {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			cfg.SMTP.AlertTo,
			sysLogger,
		)
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Infra.EventTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Infra.EventTopic, sysLogger, sinks...)

	intakeService := service.NewIntakeService(instrumented, publisherService, emailService, m, sysLogger)
	faqService := service.NewFAQService(instrumented, corpus, m, sysLogger)
	queryLogService := service.NewQueryLogService(memory.NewQueryLogRepository(), corpus, publisherService, m, sysLogger)

	// 6. Controllers
	c.IntakeController = controller.NewIntakeController(intakeService)
	c.FAQController = controller.NewFAQController(faqService, queryLogService, controller.FAQControllerOptions{
		Limiter:       newFAQLimiter(cfg, rdb),
		LogReadSecret: cfg.Security.LogReadJWTSecret,
		Hub:           c.WebSocketHub,
	}, sysLogger)

	return c
}

// Close releases infrastructure connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func (c *Container) connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Continuing without it", err)
		rdb.Close()
		return nil
	}

	c.closers = append(c.closers, func() { rdb.Close() })
	return rdb
}

func newFAQLimiter(cfg *config.Config, rdb *redis.Client) ratelimit.Limiter {
	if cfg.App.FAQRateLimit <= 0 {
		return nil
	}
	if cfg.App.RateLimitBackend == "redis" && rdb != nil {
		log.Printf("[INFO] FAQ rate limit: %s per IP (redis)", cfg.App.FAQRateLimit)
		return ratelimit.NewRedisLimiter(rdb, "care_intake:faq:", cfg.App.FAQRateLimit)
	}
	log.Printf("[INFO] FAQ rate limit: %s per IP (memory)", cfg.App.FAQRateLimit)
	return ratelimit.NewMemoryLimiter(cfg.App.FAQRateLimit)
}
