// Package cfg загружает конфигурацию движка сопоставления из переменных окружения.
package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jimlawless/whereami"

	"github.com/DRSN-tech/match-engine/pkg/e"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

type Config struct {
	Minio     *MinIOCfg
	Http      *HTTPConfig
	Grpc      *GRPCConfig
	Db        *PGDBCfg
	Qdrant    *QdrantCfg
	Redis     *RedisCfg
	Extractor *ExtractorCfg
	Kafka     *KafkaCfg
	Matching  *MatchingCfg
	Index     *IndexCfg
}

type KafkaCfg struct {
	Brokers                  []string
	MatchRequestTopic        string // входящие запросы сопоставления
	FeaturesReadyTopic       string // уведомления о готовности признаков
	MatchResultTopic         string // исходящие вердикты
	MatchResultEnrichedTopic string // вердикты с артефактом доказательств
	GroupID                  string
	NetworkMode              string
	Partitions               int
	ReplicationFactor        int
	OutboxBatchSize          int
}

type MinIOCfg struct {
	MinioEndpoint     string
	BucketName        string // бакет блобов ключевых точек и артефактов доказательств
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type QdrantCfg struct {
	Port                 int
	Host                 string
	ApiKey               string
	QdrantCollectionName string
	UseTLS               bool
	VectorSize           uint64
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	VerdictTTL  time.Duration // срок жизни кэша вердиктов
	ReadyTTL    time.Duration // срок жизни отметок готовности признаков
}

// ExtractorCfg — сервис извлечения признаков и допуск задач к ускорителю.
type ExtractorCfg struct {
	Addr            string
	MemoryThreshold float64
	MinConcurrent   int
	MaxConcurrent   int
	ReclaimEvery    int
	SampleInterval  time.Duration
}

// MatchingCfg — веса слияния, порог принятия и параметры верификации.
type MatchingCfg struct {
	EmbeddingWeight    float64
	GeometricWeight    float64
	EdgeWeight         float64
	AcceptThreshold    float64
	RatioThreshold     float64
	ReprojThreshold    float64
	MaxIterations      int
	Confidence         float64
	TopK               int
	AggregationPolicy  string // best-pair | corroborating
	SecondaryThreshold float64
	MinFrames          int
}

// IndexCfg выбирает бэкенд ANN-индекса: внешний Qdrant или встраиваемый HNSW.
type IndexCfg struct {
	Backend string // qdrant | local
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	extractor, err := loadExtractorCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	matching, err := loadMatchingCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Minio:     minio,
		Http:      http,
		Grpc:      loadGRPCConfig(),
		Db:        db,
		Qdrant:    qdrant,
		Redis:     redis,
		Extractor: extractor,
		Kafka:     kafka,
		Matching:  matching,
		Index:     loadIndexCfg(),
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultGroupID           = "match-engine"
		defaultOutboxBatchSize   = 50
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	matchRequestTopic := os.Getenv("KAFKA_MATCH_REQUEST_TOPIC")
	if matchRequestTopic == "" {
		return nil, fmt.Errorf("KAFKA_MATCH_REQUEST_TOPIC environment variable is required")
	}

	featuresReadyTopic := os.Getenv("KAFKA_FEATURES_READY_TOPIC")
	if featuresReadyTopic == "" {
		return nil, fmt.Errorf("KAFKA_FEATURES_READY_TOPIC environment variable is required")
	}

	matchResultTopic := os.Getenv("KAFKA_MATCH_RESULT_TOPIC")
	if matchResultTopic == "" {
		return nil, fmt.Errorf("KAFKA_MATCH_RESULT_TOPIC environment variable is required")
	}

	matchResultEnrichedTopic := getEnvOrDefault("KAFKA_MATCH_RESULT_ENRICHED_TOPIC", matchResultTopic+"-enriched")

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	outboxBatchSize, err := parseIntEnv("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize)
	if err != nil {
		return nil, e.Wrap("OUTBOX_BATCH_SIZE", err)
	}

	return &KafkaCfg{
		Brokers:                  brokers,
		MatchRequestTopic:        matchRequestTopic,
		FeaturesReadyTopic:       featuresReadyTopic,
		MatchResultTopic:         matchResultTopic,
		MatchResultEnrichedTopic: matchResultEnrichedTopic,
		GroupID:                  getEnvOrDefault("KAFKA_GROUP_ID", defaultGroupID),
		Partitions:               partitions,
		ReplicationFactor:        replicationFactor,
		NetworkMode:              getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		OutboxBatchSize:          outboxBatchSize,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnv("BUCKET_NAME"),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadQdrantCfg(logger logger.Logger) (*QdrantCfg, error) {
	const (
		defaultQdrantGRPCPort = "6334"
		defaultUseTLS         = false
		defaultVectorSize     = "512"
	)

	strPort := getEnvOrDefault("QDRANT_GRPC_PORT", defaultQdrantGRPCPort)
	port, err := strconv.Atoi(strPort)
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := strconv.ParseBool(getEnvOrDefault("QDRANT_USE_TLS", strconv.FormatBool(defaultUseTLS)))
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	strVectorSize := getEnvOrDefault("VECTOR_SIZE", defaultVectorSize)
	vectorSize, err := strconv.ParseUint(strVectorSize, 10, 64)
	if err != nil {
		logger.Errorf(err, "invalid VECTOR_SIZE")
		return nil, err
	}

	return &QdrantCfg{
		Host:                 getEnv("QDRANT_HOST"),
		Port:                 port,
		ApiKey:               getEnv("QDRANT__SERVICE__API_KEY"),
		QdrantCollectionName: getEnv("COLLECTION_NAME"),
		UseTLS:               useTLS,
		VectorSize:           vectorSize,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultVerdictTTL   = 10 * time.Minute
		defaultReadyTTL     = 24 * time.Hour
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	verdictTTL, err := parseDurationEnv("VERDICT_TTL", defaultVerdictTTL)
	if err != nil {
		log.Errorf(err, "invalid VERDICT_TTL")
		return nil, err
	}

	readyTTL, err := parseDurationEnv("READY_TTL", defaultReadyTTL)
	if err != nil {
		log.Errorf(err, "invalid READY_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		VerdictTTL:  verdictTTL,
		ReadyTTL:    readyTTL,
	}, nil
}

func loadExtractorCfg(log logger.Logger) (*ExtractorCfg, error) {
	const (
		defaultHost            = "feature-extractor"
		defaultPort            = "50051"
		defaultMemoryThreshold = 0.85
		defaultMinConcurrent   = 1
		defaultMaxConcurrent   = 8
		defaultReclaimEvery    = 50
		defaultSampleInterval  = 200 * time.Millisecond
	)

	host := getEnvOrDefault("EXTRACTOR_HOST", defaultHost)
	port := getEnvOrDefault("EXTRACTOR_PORT", defaultPort)

	threshold, err := parseFloatEnv("EXTRACTOR_MEMORY_THRESHOLD", defaultMemoryThreshold)
	if err != nil {
		log.Errorf(err, "invalid EXTRACTOR_MEMORY_THRESHOLD")
		return nil, err
	}

	minConcurrent, err := parseIntEnv("EXTRACTOR_MIN_CONCURRENT", defaultMinConcurrent)
	if err != nil {
		log.Errorf(err, "invalid EXTRACTOR_MIN_CONCURRENT")
		return nil, err
	}

	maxConcurrent, err := parseIntEnv("EXTRACTOR_MAX_CONCURRENT", defaultMaxConcurrent)
	if err != nil {
		log.Errorf(err, "invalid EXTRACTOR_MAX_CONCURRENT")
		return nil, err
	}

	reclaimEvery, err := parseIntEnv("EXTRACTOR_RECLAIM_EVERY", defaultReclaimEvery)
	if err != nil {
		log.Errorf(err, "invalid EXTRACTOR_RECLAIM_EVERY")
		return nil, err
	}

	sampleInterval, err := parseDurationEnv("EXTRACTOR_SAMPLE_INTERVAL", defaultSampleInterval)
	if err != nil {
		log.Errorf(err, "invalid EXTRACTOR_SAMPLE_INTERVAL")
		return nil, err
	}

	return &ExtractorCfg{
		Addr:            host + ":" + port,
		MemoryThreshold: threshold,
		MinConcurrent:   minConcurrent,
		MaxConcurrent:   maxConcurrent,
		ReclaimEvery:    reclaimEvery,
		SampleInterval:  sampleInterval,
	}, nil
}

func loadMatchingCfg(log logger.Logger) (*MatchingCfg, error) {
	const (
		defaultEmbeddingWeight    = 0.35
		defaultGeometricWeight    = 0.55
		defaultEdgeWeight         = 0.10
		defaultAcceptThreshold    = 0.80
		defaultRatioThreshold     = 0.75
		defaultReprojThreshold    = 3.0
		defaultMaxIterations      = 2000
		defaultConfidence         = 0.995
		defaultTopK               = 20
		defaultPolicy             = "best-pair"
		defaultSecondaryThreshold = 0.65
		defaultMinFrames          = 2
	)

	embeddingWeight, err := parseFloatEnv("FUSION_EMBEDDING_WEIGHT", defaultEmbeddingWeight)
	if err != nil {
		log.Errorf(err, "invalid FUSION_EMBEDDING_WEIGHT")
		return nil, err
	}

	geometricWeight, err := parseFloatEnv("FUSION_GEOMETRIC_WEIGHT", defaultGeometricWeight)
	if err != nil {
		log.Errorf(err, "invalid FUSION_GEOMETRIC_WEIGHT")
		return nil, err
	}

	edgeWeight, err := parseFloatEnv("FUSION_EDGE_WEIGHT", defaultEdgeWeight)
	if err != nil {
		log.Errorf(err, "invalid FUSION_EDGE_WEIGHT")
		return nil, err
	}

	acceptThreshold, err := parseFloatEnv("ACCEPT_THRESHOLD", defaultAcceptThreshold)
	if err != nil {
		log.Errorf(err, "invalid ACCEPT_THRESHOLD")
		return nil, err
	}

	ratioThreshold, err := parseFloatEnv("RATIO_THRESHOLD", defaultRatioThreshold)
	if err != nil {
		log.Errorf(err, "invalid RATIO_THRESHOLD")
		return nil, err
	}

	reprojThreshold, err := parseFloatEnv("REPROJ_THRESHOLD", defaultReprojThreshold)
	if err != nil {
		log.Errorf(err, "invalid REPROJ_THRESHOLD")
		return nil, err
	}

	maxIterations, err := parseIntEnv("RANSAC_MAX_ITERATIONS", defaultMaxIterations)
	if err != nil {
		log.Errorf(err, "invalid RANSAC_MAX_ITERATIONS")
		return nil, err
	}

	confidence, err := parseFloatEnv("RANSAC_CONFIDENCE", defaultConfidence)
	if err != nil {
		log.Errorf(err, "invalid RANSAC_CONFIDENCE")
		return nil, err
	}

	topK, err := parseIntEnv("RETRIEVAL_TOP_K", defaultTopK)
	if err != nil {
		log.Errorf(err, "invalid RETRIEVAL_TOP_K")
		return nil, err
	}

	secondaryThreshold, err := parseFloatEnv("SECONDARY_THRESHOLD", defaultSecondaryThreshold)
	if err != nil {
		log.Errorf(err, "invalid SECONDARY_THRESHOLD")
		return nil, err
	}

	minFrames, err := parseIntEnv("MIN_CORROBORATING_FRAMES", defaultMinFrames)
	if err != nil {
		log.Errorf(err, "invalid MIN_CORROBORATING_FRAMES")
		return nil, err
	}

	return &MatchingCfg{
		EmbeddingWeight:    embeddingWeight,
		GeometricWeight:    geometricWeight,
		EdgeWeight:         edgeWeight,
		AcceptThreshold:    acceptThreshold,
		RatioThreshold:     ratioThreshold,
		ReprojThreshold:    reprojThreshold,
		MaxIterations:      maxIterations,
		Confidence:         confidence,
		TopK:               topK,
		AggregationPolicy:  getEnvOrDefault("AGGREGATION_POLICY", defaultPolicy),
		SecondaryThreshold: secondaryThreshold,
		MinFrames:          minFrames,
	}, nil
}

func loadIndexCfg() *IndexCfg {
	const defaultBackend = "qdrant"

	return &IndexCfg{
		Backend: getEnvOrDefault("INDEX_BACKEND", defaultBackend),
	}
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", e.ErrIncorrectEnvVariable, key, raw)
	}
	return value, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", e.ErrIncorrectEnvVariable, key, raw)
	}
	return value, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", e.ErrIncorrectEnvVariable, key, raw)
	}
	return value, nil
}
