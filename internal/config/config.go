package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Sampling SamplingConfig `yaml:"sampling"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Index    IndexConfig    `yaml:"index"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	UploadDir  string `yaml:"upload_dir"`
	RateLimit  bool   `yaml:"rate_limit"`
}

// BackendConfig selects the model backends. Embedding and generation can point
// at different providers, both default to a local Ollama.
type BackendConfig struct {
	Provider          string `yaml:"provider"`
	EmbeddingProvider string `yaml:"embedding_provider"`
	BaseURL           string `yaml:"base_url"`
	EmbeddingBaseURL  string `yaml:"embedding_base_url"`
	APIKey            string `yaml:"api_key"`
	ChatModel         string `yaml:"chat_model"`
	EmbeddingModel    string `yaml:"embedding_model"`
	EmbeddingDim      int32  `yaml:"embedding_dimensions"`
}

type SamplingConfig struct {
	Temperature float64 `yaml:"temperature"`
	TopK        int     `yaml:"top_k"`
	TopP        float64 `yaml:"top_p"`
	Seed        int     `yaml:"seed"`
}

type PipelineConfig struct {
	ChunkSize         int           `yaml:"chunk_size"`
	ChunkOverlap      int           `yaml:"chunk_overlap"`
	RetrievalK        int           `yaml:"retrieval_k"`
	NumQuestions      int           `yaml:"num_questions"`
	GenerationTimeout time.Duration `yaml:"generation_timeout"`
}

type IndexConfig struct {
	Backend    string `yaml:"backend"`
	QdrantHost string `yaml:"qdrant_host"`
	QdrantPort int    `yaml:"qdrant_port"`
}

type SnapshotConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Prod  bool   `yaml:"prod"`
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: ServerListenAddr,
			UploadDir:  UploadDir,
			RateLimit:  true,
		},
		Backend: BackendConfig{
			Provider:          ProviderOllama,
			EmbeddingProvider: ProviderOllama,
			EmbeddingDim:      EmbeddingOutputDimensionality,
		},
		Sampling: SamplingConfig{
			Temperature: ModelTemperature,
			TopK:        ModelTopK,
			TopP:        ModelTopP,
			Seed:        ModelSeed,
		},
		Pipeline: PipelineConfig{
			ChunkSize:         DefaultChunkSize,
			ChunkOverlap:      DefaultChunkOverlap,
			RetrievalK:        DefaultRetrievalK,
			NumQuestions:      DefaultNumQuestions,
			GenerationTimeout: DefaultGenerationTimeout,
		},
		Index: IndexConfig{
			Backend:    IndexBackendMemory,
			QdrantHost: QdrantHost,
			QdrantPort: QdrantGrpcPort,
		},
		Snapshot: SnapshotConfig{
			Backend: SnapshotBackendFile,
			Path:    SnapshotFilePath,
		},
		Redis: RedisConfig{
			Addr:     RedisAddr,
			Password: RedisPassword,
		},
		Log: LogConfig{Prod: IS_PROD},
	}
}

// Load starts from the defaults, overlays the YAML file at path when one is given
// and then the environment. Models and URLs left empty get the defaults of the
// selected provider.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, quizErrors.NewConfigError("config file", "%w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, quizErrors.NewConfigError("config file", "%w", err)
		}
	}
	applyEnv(cfg)
	resolveProviderDefaults(&cfg.Backend)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.ListenAddr, "QUIZ_LISTEN_ADDR")
	setString(&cfg.Server.UploadDir, "QUIZ_UPLOAD_DIR")
	setString(&cfg.Backend.Provider, "QUIZ_PROVIDER")
	setString(&cfg.Backend.EmbeddingProvider, "QUIZ_EMBEDDING_PROVIDER")
	setString(&cfg.Backend.BaseURL, "QUIZ_BASE_URL")
	setString(&cfg.Backend.EmbeddingBaseURL, "QUIZ_EMBEDDING_BASE_URL")
	setString(&cfg.Backend.ChatModel, "QUIZ_CHAT_MODEL")
	setString(&cfg.Backend.EmbeddingModel, "QUIZ_EMBEDDING_MODEL")
	setString(&cfg.Index.Backend, "QUIZ_INDEX_BACKEND")
	setString(&cfg.Snapshot.Backend, "QUIZ_SNAPSHOT_BACKEND")
	setString(&cfg.Snapshot.Path, "QUIZ_SNAPSHOT_PATH")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Index.QdrantHost, "QDRANT_HOST")

	if port, err := strconv.Atoi(os.Getenv("QDRANT_PORT")); err == nil {
		cfg.Index.QdrantPort = port
	}
	if d, err := time.ParseDuration(os.Getenv("QUIZ_GENERATION_TIMEOUT")); err == nil {
		cfg.Pipeline.GenerationTimeout = d
	}
	if os.Getenv("QUIZ_PROD") == "true" {
		cfg.Log.Prod = true
	}

	//api keys only apply to the provider that needs them
	switch cfg.Backend.Provider {
	case ProviderGemini:
		setString(&cfg.Backend.APIKey, "GEMINI_API_KEY")
	case ProviderOpenAI:
		setString(&cfg.Backend.APIKey, "OPENAI_API_KEY")
	}
	if cfg.Backend.EmbeddingProvider == ProviderGemini && cfg.Backend.APIKey == "" {
		setString(&cfg.Backend.APIKey, "GEMINI_API_KEY")
	}
}

func resolveProviderDefaults(b *BackendConfig) {
	if b.ChatModel == "" {
		switch b.Provider {
		case ProviderOllama:
			b.ChatModel = OllamaChatModel
		case ProviderGemini:
			b.ChatModel = GeminiModelName
		case ProviderOpenAI:
			b.ChatModel = OpenAIModelName
		}
	}
	if b.BaseURL == "" && b.Provider == ProviderOllama {
		b.BaseURL = OllamaBaseURL
	}

	if b.EmbeddingModel == "" {
		switch b.EmbeddingProvider {
		case ProviderOllama:
			b.EmbeddingModel = OllamaEmbeddingModel
		case ProviderGemini:
			b.EmbeddingModel = GoogleEmbeddingModel
		}
	}
	if b.EmbeddingBaseURL == "" && b.EmbeddingProvider == ProviderOllama {
		b.EmbeddingBaseURL = OllamaBaseURL
	}
}

func setString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func (c *Config) Validate() error {
	p := c.Pipeline
	if p.ChunkSize <= 0 {
		return quizErrors.NewConfigError("chunk_size", "must be positive, got %d", p.ChunkSize)
	}
	if p.ChunkOverlap < 0 || p.ChunkOverlap >= p.ChunkSize {
		return quizErrors.NewConfigError("chunk_overlap", "must be in [0, %d), got %d", p.ChunkSize, p.ChunkOverlap)
	}
	if p.RetrievalK <= 0 {
		return quizErrors.NewConfigError("retrieval_k", "must be positive, got %d", p.RetrievalK)
	}
	if p.NumQuestions <= 0 {
		return quizErrors.NewConfigError("num_questions", "must be positive, got %d", p.NumQuestions)
	}
	if p.GenerationTimeout <= 0 {
		return quizErrors.NewConfigError("generation_timeout", "must be positive, got %s", p.GenerationTimeout)
	}

	switch c.Backend.Provider {
	case ProviderOllama, ProviderGemini, ProviderOpenAI:
	default:
		return quizErrors.NewConfigError("provider", "unknown provider %q", c.Backend.Provider)
	}
	switch c.Backend.EmbeddingProvider {
	case ProviderOllama, ProviderGemini:
	default:
		return quizErrors.NewConfigError("embedding_provider", "unknown embedding provider %q", c.Backend.EmbeddingProvider)
	}
	if (c.Backend.Provider == ProviderGemini || c.Backend.EmbeddingProvider == ProviderGemini) && c.Backend.APIKey == "" {
		return quizErrors.NewConfigError("api_key", "%w", errors.New("gemini requires an api key"))
	}

	switch c.Index.Backend {
	case IndexBackendMemory, IndexBackendQdrant:
	default:
		return quizErrors.NewConfigError("index backend", "unknown backend %q", c.Index.Backend)
	}
	switch c.Snapshot.Backend {
	case SnapshotBackendFile, SnapshotBackendRedis, SnapshotBackendNone:
	default:
		return quizErrors.NewConfigError("snapshot backend", "unknown backend %q", c.Snapshot.Backend)
	}
	return nil
}
