package bootstrap

import (
	"context"

	"trustlens-be/internal/config"
	"trustlens-be/internal/constant"
	"trustlens-be/internal/controller"
	"trustlens-be/internal/pkg/logger"
	"trustlens-be/internal/repository/contract"
	"trustlens-be/internal/repository/implementation"
	"trustlens-be/internal/repository/memory"
	"trustlens-be/internal/service"
	"trustlens-be/pkg/embedding"
	"trustlens-be/pkg/llm"
	"trustlens-be/pkg/llm/factory"
	pktNats "trustlens-be/pkg/nats"
	"trustlens-be/pkg/parser"
	"trustlens-be/pkg/vectorstore/qdrant"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DriftController controller.IDriftController

	// Exposed for cmd entrypoints
	PipelineService service.IPipelineService
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

// NewContainer wires capabilities once at process start. External
// capabilities that fail to construct are held as nil and every call site
// falls back to its sentinel value instead of crashing.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// Segment store backend
	clauseRepo := newClauseRepository(db, cfg, sysLogger)

	// Embedding capability
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewCachedProvider(embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
			cfg.Ai.EmbeddingTimeout,
		))
		sysLogger.Info("bootstrap", "Using embedding provider: OLLAMA", map[string]interface{}{
			"model": cfg.Ai.EmbeddingModel,
		})
	} else {
		sysLogger.Warn("bootstrap", "No embedding provider configured, drift detection degraded", map[string]interface{}{
			"provider": cfg.Ai.EmbeddingProvider,
		})
	}

	// Judgment capability
	var llmProvider llm.LLMProvider
	if p, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL, cfg.Ai.JudgmentTimeout); err != nil {
		sysLogger.Warn("bootstrap", "LLM provider unavailable, risk labels will be Unknown", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		llmProvider = p
		sysLogger.Info("bootstrap", "Using LLM provider", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"model":    cfg.Ai.LLMModel,
		})
	}

	// NATS is auxiliary: a failed connection only disables forwarding.
	var natsPublisher *pktNats.Publisher
	if pub, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		sysLogger.Warn("bootstrap", "Failed to connect NATS publisher", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		natsPublisher = pub
	}

	// Services
	docParser := parser.NewPlaintextParser(cfg.Drift.MinClauseLength, sysLogger)
	extractorService := service.NewExtractorService()
	driftService := service.NewDriftService(
		clauseRepo,
		service.DriftThresholds{
			SimHigh: cfg.Drift.SimHigh,
			SimLow:  cfg.Drift.SimLow,
			TopK:    cfg.Drift.TopK,
		},
		cfg.Vector.QueryTimeout,
		sysLogger,
	)
	riskService := service.NewRiskService(llmProvider, cfg.Ai.JudgmentTimeout, sysLogger)
	explainService := service.NewExplainService(llmProvider, cfg.Ai.JudgmentTimeout, sysLogger)
	publisherService := service.NewPublisherService(pubSub, constant.DriftEventTopic)

	pipelineService := service.NewPipelineService(
		docParser,
		extractorService,
		driftService,
		riskService,
		explainService,
		clauseRepo,
		embeddingProvider,
		publisherService,
		cfg.Ai.EmbeddingTimeout,
		sysLogger,
	)

	consumerService := service.NewConsumerService(pubSub, constant.DriftEventTopic, natsPublisher, sysLogger)

	return &Container{
		DriftController: controller.NewDriftController(pipelineService),
		PipelineService: pipelineService,
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}

func newClauseRepository(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) contract.ClauseRepository {
	switch cfg.Vector.Backend {
	case "pgvector":
		if db != nil {
			return implementation.NewClauseRepository(db)
		}
		sysLogger.Warn("bootstrap", "Database unavailable, falling back to in-memory store", nil)
		return memory.NewClauseRepository()

	case "qdrant":
		storage := qdrant.NewStorage(qdrant.Config{
			URL:        cfg.Vector.QdrantURL,
			APIKey:     cfg.Vector.QdrantAPIKey,
			Collection: cfg.Vector.QdrantCollection,
			Timeout:    cfg.Vector.QueryTimeout,
		})
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Vector.QueryTimeout)
		defer cancel()
		if err := storage.EnsureCollection(ctx, cfg.Vector.Dimension); err != nil {
			sysLogger.Warn("bootstrap", "Qdrant collection check failed, queries will degrade", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return storage

	default:
		return memory.NewClauseRepository()
	}
}
