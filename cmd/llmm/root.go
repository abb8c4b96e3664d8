package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"llmm/internal/config"
	"llmm/internal/logging"
)

// cliFlags are the command-line overrides shared by serve and check.
type cliFlags struct {
	configPath  string
	addr        string
	ollamaURL   string
	basePath    string
	logLevel    string
	logFormat   string
	corsOrigins []string
}

func (f *cliFlags) overrides() config.Config {
	o := config.Config{
		Addr:      f.addr,
		OllamaURL: f.ollamaURL,
		BasePath:  f.basePath,
		LogLevel:  f.logLevel,
		LogFormat: f.logFormat,
	}
	if len(f.corsOrigins) > 0 {
		o.CORS.Enabled = true
		o.CORS.AllowedOrigins = f.corsOrigins
	}
	return o
}

// resolve builds the effective configuration and the process logger.
func (f *cliFlags) resolve(cmd *cobra.Command, getenv func(string) string) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Resolve(f.configPath, getenv, f.overrides())
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()), nil
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	flags := &cliFlags{}
	root := &cobra.Command{
		Use:           "llmm",
		Short:         "Management UI and API proxy for a local Ollama daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (.yaml, .yml, .json, .toml)")
	pf.StringVar(&flags.ollamaURL, "ollama-url", "", "Ollama base URL (defaults OLLAMA_URL or "+config.DefaultOllamaURL+")")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults LLMM_LOG_LEVEL or info)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: json|console (defaults LLMM_LOG_FORMAT or json)")

	serve := newServeCmd(flags, getenv)
	serve.Flags().StringVar(&flags.addr, "addr", "", "HTTP listen address (defaults LLMM_ADDR or "+config.DefaultAddr+")")
	serve.Flags().StringVar(&flags.basePath, "base-path", "", "Mount prefix behind a reverse proxy (defaults BASE_PATH)")
	serve.Flags().StringSliceVar(&flags.corsOrigins, "cors-origins", nil, "Comma-separated allowed origins; enables CORS (defaults LLMM_CORS_ORIGINS)")

	root.AddCommand(serve, newCheckCmd(flags, getenv), newVersionCmd())
	return root
}
