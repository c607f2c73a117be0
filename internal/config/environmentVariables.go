package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, jobs fall back to the in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	JobExecutionTimeout             = 5 * time.Minute

	//serverTimeouts - generation can take minutes on a local model
	ReadTimeout            = 30 * time.Second
	WriteTimeout           = 5 * time.Minute
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//uploads
	UploadDir         = "./uploads"
	FixedUploadName   = "book.pdf"
	MaxUploadSize     = 32 << 20 //32mb
	PageExtractTimout = 10 * time.Second

	//pipeline
	DefaultChunkSize         = 700
	DefaultChunkOverlap      = 20
	DefaultRetrievalK        = 4
	DefaultNumQuestions      = 5
	DefaultGenerationTimeout = 120 * time.Second

	//index backends
	IndexBackendMemory = "memory"
	IndexBackendQdrant = "qdrant"

	//vectorDB
	QdrantHost             = "localhost"
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false //set for https
	QdrantPoolSize         = 1     //2-5 is preferred for prod according to documentation
	QdrantCollectionPrefix = "quiz-"

	//providers
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	//ollama defaults
	OllamaBaseURL        = "http://localhost:11434"
	OllamaChatModel      = "llama3.2:3b"
	OllamaEmbeddingModel = "nomic-embed-text"

	//gemini
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	EmbeddingOutputDimensionality int32 = 768

	//openai compatible
	OpenAIModelName = "gpt-4o-mini"

	//sampling
	ModelTemperature float64 = 0.7
	ModelTopK                = 80
	ModelTopP        float64 = 0.9
	ModelSeed                = 0

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//snapshot sink
	SnapshotBackendFile  = "file"
	SnapshotBackendRedis = "redis"
	SnapshotBackendNone  = "none"
	SnapshotFilePath     = "questions.json"
	SnapshotRedisKey     = "quiz:last-snapshot"

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore      = 0
	RedisSnapshotStore = 1

	//redis timeouts
	RedisJobStoreTTL = 24 * time.Hour
)
