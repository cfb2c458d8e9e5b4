// Command tradeflow is the TradeFlow DSL toolchain entry point.
//
// Usage:
//
//	tradeflow run <file>       # execute a workflow file with a trace
//	tradeflow check <file>     # validate, exit 1 when invalid
//	tradeflow graph <file>     # emit the React Flow graph JSON
//	tradeflow convert <file>   # graph JSON back to DSL source
//	tradeflow serve            # start the HTTP service
//	tradeflow version          # print version information
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trademinutes/tradeflow"
	"github.com/trademinutes/tradeflow/config"
	"github.com/trademinutes/tradeflow/dsl"
	"github.com/trademinutes/tradeflow/executor"
	"github.com/trademinutes/tradeflow/graph"
)

// Version information, injected at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runExecute(os.Args[2:])
	case "check":
		runCheck(os.Args[2:])
	case "graph":
		runGraph(os.Args[2:])
	case "convert":
		runConvert(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`TradeFlow - workflow DSL toolchain

Usage:
  tradeflow run <file>       Execute a workflow file and print the trace
  tradeflow check <file>     Validate a workflow file
  tradeflow graph <file>     Print the graph JSON for a workflow file
  tradeflow convert <file>   Convert graph JSON back to DSL source
  tradeflow serve            Start the HTTP service
  tradeflow version          Print version information

Flags:
  --config <path>     Config file (serve)
  --log-level <lvl>   Log level: debug, info, warn, error
  --strict            Reject unknown top-level tokens
  --pretty            Indent JSON output`)
}

func printVersion() {
	fmt.Printf("tradeflow %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
}

// toolFlags are the flags shared by the file-based subcommands.
type toolFlags struct {
	logLevel string
	strict   bool
	pretty   bool
}

func parseToolFlags(name string, args []string) (*toolFlags, []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := &toolFlags{}
	fs.StringVar(&flags.logLevel, "log-level", "info", "log level")
	fs.BoolVar(&flags.strict, "strict", false, "reject unknown top-level tokens")
	fs.BoolVar(&flags.pretty, "pretty", false, "indent JSON output")
	fs.Parse(args)
	return flags, fs.Args()
}

func readWorkflowFile(args []string) string {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "a workflow file is required")
		os.Exit(1)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", args[0], err)
		os.Exit(1)
	}
	return string(data)
}

func parseSource(source string, strict bool) *dsl.Program {
	tokens, err := dsl.NewLexer(source).Tokenize()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	parser := dsl.NewParser(tokens)
	parser.Strict = strict
	prog, err := parser.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return prog
}

func runExecute(args []string) {
	flags, rest := parseToolFlags("run", args)
	source := readWorkflowFile(rest)
	prog := parseSource(source, flags.strict)

	logger := buildLogger(flags.logLevel, "console")
	defer logger.Sync()

	trace := executor.New().WithLogger(logger).Execute(prog)
	writeJSON(trace, flags.pretty)
}

func runCheck(args []string) {
	flags, rest := parseToolFlags("check", args)
	source := readWorkflowFile(rest)
	prog := parseSource(source, flags.strict)

	result := dsl.Validate(prog)
	writeJSON(result, flags.pretty)
	if !result.Valid {
		os.Exit(1)
	}
}

func runGraph(args []string) {
	flags, rest := parseToolFlags("graph", args)
	source := readWorkflowFile(rest)

	result := tradeflow.ParseDSL(source)
	if !result.Success {
		writeJSON(result, flags.pretty)
		os.Exit(1)
	}
	writeJSON(result.Graph, flags.pretty)
}

func runConvert(args []string) {
	_, rest := parseToolFlags("convert", args)
	data := readWorkflowFile(rest)

	var g graph.Graph
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		fmt.Fprintf(os.Stderr, "parse graph JSON: %v\n", err)
		os.Exit(1)
	}

	source, err := graph.ToDSL(&g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(source)
}

func writeJSON(v any, pretty bool) {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.Encode(v)
}

// buildLogger creates the zap logger per log configuration.
func buildLogger(level, format string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func loadConfig(path string) *config.Config {
	loader := config.NewLoader()
	if path != "" {
		loader = loader.WithConfigPath(path)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
