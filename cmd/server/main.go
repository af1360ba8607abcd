package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jira_adapter/internal/config"
	"jira_adapter/internal/logger"
	"jira_adapter/internal/service/jira"
	mcpserver "jira_adapter/internal/service/mcp-server"
)

func main() {
	// Best-effort .env for local development
	_ = godotenv.Load()

	cfg, missing := config.Load()
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if len(missing) > 0 {
		logger.GetLogger().Warn("missing Jira environment variables; remote calls will fail",
			zap.Strings("vars", missing))
	}

	adapter := jira.NewAdapter(jira.Config{
		BaseURL:    jira.BaseURL(cfg.JiraDomain),
		ProjectKey: cfg.JiraProjectKey,
		Email:      cfg.JiraEmail,
		APIToken:   cfg.JiraAPIToken,
	})

	// Create new MCP server
	server, err := mcpserver.NewServer(adapter)
	if err != nil {
		logger.GetLogger().Fatal("Failed to create server", zap.Error(err))
	}

	// Serve on stdio; stdout belongs to the transport, so startup and
	// error reporting stay on stderr.
	logger.GetLogger().Info("Starting Jira Adapter MCP server")
	if err := mcpserver.Serve(server); err != nil {
		logger.GetLogger().Fatal("Server error", zap.Error(err))
	}
}
