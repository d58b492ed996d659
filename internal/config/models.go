package config

// ClassifierConfig selects and tunes the classifier
type ClassifierConfig struct {
	Provider  string
	ModelPath string
	Threshold float64
}

// LexiconConfig points at the reference word lists
type LexiconConfig struct {
	SpamWordsPath string
	HamWordsPath  string
	StopwordsPath string
}

// AnalysisConfig bounds per-message analysis
type AnalysisConfig struct {
	MaxInputSize int
	DisplayLimit int
}

// HeadersConfig names the headers the mail filter writes
type HeadersConfig struct {
	Spam       string
	Score      string
	Reason     string
	Indicators string
}

// ServerConfig represents the mail filter configuration
type ServerConfig struct {
	FilterType    string
	ListenAddress string
	BlockSpam     bool
	Headers       HeadersConfig
	PostfixAddr   string
	PostfixPort   int
	PostfixOn     bool
	ModifySubject bool
	SubjectPrefix string
}

// HTTPConfig represents the HTTP API configuration
type HTTPConfig struct {
	ListenAddress string
	Mode          string
}

// RedisConfig represents the redis connection used by the redis cache
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		Provider:  c.GetString("classifier.provider"),
		ModelPath: c.GetString("classifier.model_path"),
		Threshold: c.GetFloat64("classifier.threshold"),
	}
}

// GetLexicon returns the reference word list configuration
func (c *Config) GetLexicon() LexiconConfig {
	return LexiconConfig{
		SpamWordsPath: c.GetString("lexicon.spam_words_path"),
		HamWordsPath:  c.GetString("lexicon.ham_words_path"),
		StopwordsPath: c.GetString("nlp.stopwords_path"),
	}
}

// GetAnalysis returns the analysis limits
func (c *Config) GetAnalysis() AnalysisConfig {
	return AnalysisConfig{
		MaxInputSize: c.GetInt("analysis.max_input_size"),
		DisplayLimit: c.GetInt("analysis.display_limit"),
	}
}

// GetServer returns the mail filter configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		FilterType:    c.GetString("server.filter_type"),
		ListenAddress: c.GetString("server.listen_address"),
		BlockSpam:     c.GetBool("server.block_spam"),
		Headers: HeadersConfig{
			Spam:       c.GetString("server.headers.spam"),
			Score:      c.GetString("server.headers.score"),
			Reason:     c.GetString("server.headers.reason"),
			Indicators: c.GetString("server.headers.indicators"),
		},
		PostfixAddr:   c.GetString("server.postfix.address"),
		PostfixPort:   c.GetInt("server.postfix.port"),
		PostfixOn:     c.GetBool("server.postfix.enabled"),
		ModifySubject: c.GetBool("server.modify_subject"),
		SubjectPrefix: c.GetString("server.subject_prefix"),
	}
}

// GetHTTP returns the HTTP API configuration
func (c *Config) GetHTTP() HTTPConfig {
	return HTTPConfig{
		ListenAddress: c.GetString("http.listen_address"),
		Mode:          c.GetString("http.mode"),
	}
}

// GetRedis returns the redis configuration
func (c *Config) GetRedis() RedisConfig {
	return RedisConfig{
		Address:  c.GetString("redis.address"),
		Password: c.GetString("redis.password"),
		DB:       c.GetInt("redis.db"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}
