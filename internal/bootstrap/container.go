package bootstrap

import (
	"context"
	"log"

	"ai-travelmate-be/internal/config"
	"ai-travelmate-be/internal/controller"
	"ai-travelmate-be/internal/pkg/logger"
	"ai-travelmate-be/internal/pkg/serverutils"
	"ai-travelmate-be/internal/repository/memory"
	"ai-travelmate-be/internal/repository/unitofwork"
	"ai-travelmate-be/internal/service"
	"ai-travelmate-be/internal/websocket"
	"ai-travelmate-be/pkg/llm/factory"
	"ai-travelmate-be/pkg/nlu/engine"
	"ai-travelmate-be/pkg/nlu/extract"
	"ai-travelmate-be/pkg/nlu/intent"
	"ai-travelmate-be/pkg/nlu/learned"
	"ai-travelmate-be/pkg/search"
	"ai-travelmate-be/pkg/weather"

	pktNats "ai-travelmate-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const turnCompletedTopic = "TURN_COMPLETED"

type Container struct {
	// Controllers
	ChatController        controller.IChatController
	DestinationController controller.IDestinationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
	ChatService  service.IChatService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (optional mirror for turn analytics)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		redisUp = false
	}

	// 3. Understanding pipeline
	var remote *intent.RemoteClassifier
	if cfg.Nlu.RemoteLLMEnabled {
		llmProvider, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Keys.GoogleGemini,
			cfg.Ai.OllamaBaseURL,
		)
		if err != nil {
			log.Printf("[WARN] Failed to initialize LLM provider, using local tiers only: %v", err)
		} else {
			remote = intent.NewRemoteClassifier(llmProvider, cfg.Nlu.RemoteLLMTimeout, log.Default())
			log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
		}
	}

	var resultCache engine.ResultCache
	if cfg.Nlu.UseRedisNluCache && redisUp {
		resultCache = engine.NewRedisCache(rdb, cfg.Nlu.ResultCacheTTL)
		log.Printf("[INFO] NLU result cache: Redis")
	} else {
		resultCache = engine.NewMemoryCache(cfg.Nlu.ResultCacheTTL)
		log.Printf("[INFO] NLU result cache: in-memory")
	}

	patterns := learned.NewStore(cfg.Nlu.PatternCapacity, learned.DefaultThreshold)
	nluEngine := engine.New(extract.NewExtractor(), remote, patterns, resultCache, log.Default())

	// 4. Domain services
	var weatherClient *weather.Client
	if redisUp {
		weatherClient = weather.NewClient(cfg.Keys.OpenWeather, rdb, cfg.Nlu.WeatherCacheTTL)
	} else {
		weatherClient = weather.NewClient(cfg.Keys.OpenWeather, nil, cfg.Nlu.WeatherCacheTTL)
	}

	destinationService := service.NewDestinationService(uowFactory, weatherClient, sysLogger)
	planner := search.NewPlanner(destinationService, search.DefaultConfig(), log.Default())
	contexts := memory.NewContextRepository()

	publisherService := service.NewPublisherService(turnCompletedTopic, pubSub)
	chatService := service.NewChatService(
		uowFactory,
		nluEngine,
		planner,
		contexts,
		weatherClient,
		publisherService,
		sysLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		turnCompletedTopic,
		uowFactory,
		natsPub,
	)

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	var hubRedis *redis.Client
	if redisUp {
		hubRedis = rdb
	}
	wsHub := websocket.NewHub(hubRedis, wsLogger)
	go wsHub.Run()

	auth := serverutils.JwtMiddleware(cfg.App.JwtSecret)

	return &Container{
		ChatController:        controller.NewChatController(chatService, auth),
		DestinationController: controller.NewDestinationController(destinationService, auth),
		ConsumerService:       consumerService,
		WebSocketHub:          wsHub,
		ChatService:           chatService,
	}
}
