package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	config "github.com/DRSN-tech/match-engine/internal/cfg"
	v1Grpc "github.com/DRSN-tech/match-engine/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/match-engine/internal/delivery/v1/http"
	"github.com/DRSN-tech/match-engine/internal/extractor"
	"github.com/DRSN-tech/match-engine/internal/infrastructure/kafka"
	"github.com/DRSN-tech/match-engine/internal/matching"
	"github.com/DRSN-tech/match-engine/internal/proto"
	s3Repo "github.com/DRSN-tech/match-engine/internal/repository/minio"
	"github.com/DRSN-tech/match-engine/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/match-engine/internal/repository/pgdb/converter/generated"
	qdrantRepo "github.com/DRSN-tech/match-engine/internal/repository/qdrant"
	redisRepo "github.com/DRSN-tech/match-engine/internal/repository/redis"
	redisConv "github.com/DRSN-tech/match-engine/internal/repository/redis/converter/generated"
	"github.com/DRSN-tech/match-engine/internal/retriever"
	"github.com/DRSN-tech/match-engine/internal/retriever/local"
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/clients"
	"github.com/DRSN-tech/match-engine/pkg/closer"
	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
	"github.com/DRSN-tech/match-engine/pkg/postgres"
)

// Run собирает и запускает движок сопоставления; возвращается после
// останова всех компонентов.
func Run(cfg *config.Config, logger logger.Logger) error {
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	shutdownCloser := closer.NewCloser(5 * time.Second)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		return err
	}
	shutdownCloser.Add(func(_ context.Context) error {
		db.Close()
		return nil
	})

	assetConv := pgdbConv.NewAssetConverterImpl()
	matchConv := pgdbConv.NewMatchConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	verdictConv := redisConv.NewVerdictConverterImpl()

	assetRepo := pgdb.NewAssetRepo(db.Pool, assetConv)
	matchRepo := pgdb.NewMatchRepo(db.Pool, matchConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		return err
	}

	minioCtx, minioCancel := context.WithTimeout(rootCtx, 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		logger.Errorf(err, "failed to initialize MinIO bucket")
		return err
	}
	minioCancel()

	blobRepo := s3Repo.NewKeypointRepo(minioClient, cfg.Minio)

	index, err := initVectorIndex(rootCtx, cfg, logger, shutdownCloser)
	if err != nil {
		logger.Errorf(err, "failed to initialize vector index")
		return err
	}

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(rootCtx, 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		return err
	}
	redisCancel()
	shutdownCloser.Add(func(_ context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redisRepo.NewCacheRepo(redisClient, verdictConv, cfg.Redis, logger)

	conn, err := grpc.NewClient(
		cfg.Extractor.Addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()), // экстрактор живёт в той же сети, без TLS
	)
	if err != nil {
		logger.Errorf(err, "failed to initialize grpc client")
		return err
	}
	shutdownCloser.Add(func(_ context.Context) error {
		return conn.Close()
	})

	modelClient := extractor.NewGRPCModelClient(proto.NewFeatureExtractorServiceClient(conn))
	governor := extractor.NewGovernor(extractor.GovernorCfg{
		MemoryThreshold: cfg.Extractor.MemoryThreshold,
		MinConcurrent:   cfg.Extractor.MinConcurrent,
		MaxConcurrent:   cfg.Extractor.MaxConcurrent,
		ReclaimEvery:    cfg.Extractor.ReclaimEvery,
		SampleInterval:  cfg.Extractor.SampleInterval,
	}, modelClient, modelClient, logger)
	worker := extractor.NewWorker(modelClient, governor, logger)

	mergedRetriever := retriever.NewMergedRetriever(index, logger)

	fusion := matching.NewFusion(matching.FusionWeights{
		Embedding: cfg.Matching.EmbeddingWeight,
		Geometric: cfg.Matching.GeometricWeight,
		Edge:      cfg.Matching.EdgeWeight,
	}, cfg.Matching.AcceptThreshold)

	policy := initAggregationPolicy(cfg.Matching)

	verifierCfg := matching.VerifierCfg{
		RatioThreshold:  cfg.Matching.RatioThreshold,
		ReprojThreshold: cfg.Matching.ReprojThreshold,
		MaxIterations:   cfg.Matching.MaxIterations,
		Confidence:      cfg.Matching.Confidence,
	}

	featureUC := usecase.NewFeatureUC(assetRepo, index, cacheRepo, logger)
	extractionUC := usecase.NewExtractionUC(worker, blobRepo, featureUC, logger)
	matchingUC := usecase.NewMatchingUC(
		assetRepo,
		matchRepo,
		outboxRepo,
		blobRepo,
		cacheRepo,
		mergedRetriever,
		db.Pool,
		fusion,
		policy,
		verifierCfg,
		cfg.Matching.TopK,
		logger,
	)
	searchUC := usecase.NewSearchUC(mergedRetriever, governor, logger)

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		logger.Errorf(err, "failed to initialize kafka producer")
		return err
	}
	if err := producer.EnsureTopics(15 * time.Second); err != nil {
		logger.Errorf(err, "failed to ensure kafka topics")
		return err
	}
	shutdownCloser.Add(func(_ context.Context) error {
		return producer.Close()
	})

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, cfg.Kafka, db.Dsn)
	outboxWorker.Start(rootCtx)
	shutdownCloser.Add(func(_ context.Context) error {
		outboxWorker.Stop()
		return nil
	})

	matchConsumer := kafka.NewMatchRequestConsumer(matchingUC, logger, cfg.Kafka)
	go matchConsumer.Run(rootCtx)
	shutdownCloser.Add(func(_ context.Context) error {
		return matchConsumer.Close()
	})

	featuresConsumer := kafka.NewFeaturesReadyConsumer(featureUC, logger, cfg.Kafka)
	go featuresConsumer.Run(rootCtx)
	shutdownCloser.Add(func(_ context.Context) error {
		return featuresConsumer.Close()
	})

	grpcSrv := v1Grpc.NewGRPCServer(cfg.Grpc)
	grpcSrv.RegisterServices(searchUC, logger)

	grpcErrCh := make(chan error, 1)
	go func() {
		logger.Infof("gRPC server starting on %s:%s", cfg.Grpc.NetworkMode, cfg.Grpc.Port)
		if err := grpcSrv.Start(); err != nil {
			logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()
	shutdownCloser.Add(func(ctx context.Context) error {
		return grpcSrv.Stop(ctx)
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(searchUC, extractionUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()
	shutdownCloser.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	rootCancel()

	// === Graceful shutdown: ресурсы закрываются в обратном порядке ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := shutdownCloser.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	}

	logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// initVectorIndex выбирает бэкенд ANN-индекса: внешний Qdrant либо
// встраиваемый HNSW для запуска без внешних зависимостей.
func initVectorIndex(ctx context.Context, cfg *config.Config, logger logger.Logger, shutdownCloser *closer.Closer) (usecase.VectorIndex, error) {
	switch cfg.Index.Backend {
	case "local":
		logger.Infof("using embedded hnsw vector index")
		return local.NewIndex(int(cfg.Qdrant.VectorSize)), nil
	default:
		qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		qdrantCtx, qdrantCancel := context.WithTimeout(ctx, 10*time.Second)
		defer qdrantCancel()
		if err := clients.EnsureCollection(qdrantCtx, qdrantClient); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		shutdownCloser.Add(func(_ context.Context) error {
			return qdrantClient.Client.Close()
		})

		return qdrantRepo.NewEmbeddingRepo(qdrantClient.Client, cfg.Qdrant), nil
	}
}

func initAggregationPolicy(cfg *config.MatchingCfg) matching.AggregationPolicy {
	if cfg.AggregationPolicy == "corroborating" {
		return matching.NewCorroboratingFramesPolicy(cfg.AcceptThreshold, cfg.SecondaryThreshold, cfg.MinFrames)
	}
	return matching.NewBestPairPolicy(cfg.AcceptThreshold)
}
