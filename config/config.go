package config

import "time"

// Config is the complete toolchain configuration.
type Config struct {
	// Server configures the HTTP service.
	Server ServerConfig `yaml:"server" env:"SERVER"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log" env:"LOG"`

	// Parser configures the DSL front end.
	Parser ParserConfig `yaml:"parser" env:"PARSER"`

	// Executor configures the interpreter.
	Executor ExecutorConfig `yaml:"executor" env:"EXECUTOR"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	// Listen address, e.g. ":8080".
	Addr string `yaml:"addr" env:"ADDR"`
	// Read timeout for incoming requests.
	ReadTimeout time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	// Write timeout for responses.
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	// Graceful shutdown timeout.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	// Rate limit in requests per second; 0 disables limiting.
	RateLimitRPS float64 `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
	// Rate limiter burst size.
	RateLimitBurst int `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL"`
	// Format: json or console.
	Format string `yaml:"format" env:"FORMAT"`
}

// ParserConfig configures the DSL front end.
type ParserConfig struct {
	// Strict promotes skipping of unknown top-level tokens to a syntax
	// error.
	Strict bool `yaml:"strict" env:"STRICT"`
}

// ExecutorConfig configures the interpreter.
type ExecutorConfig struct {
	// TraceVariables includes variable bindings in the debug log.
	TraceVariables bool `yaml:"trace_variables" env:"TRACE_VARIABLES"`
}

// Default returns the configuration defaults applied before any file or
// environment override.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimitRPS:    50,
			RateLimitBurst:  100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Parser: ParserConfig{
			Strict: false,
		},
		Executor: ExecutorConfig{
			TraceVariables: true,
		},
	}
}
