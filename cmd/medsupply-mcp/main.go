// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// medsupply-mcp is an MCP (Model Context Protocol) server that exposes a
// hospital supply chain toolset: inventory lookups, supplier availability
// checks, and a draft/approve purchase order workflow over an in-memory
// ledger.
//
// It communicates with MCP clients (like Claude Desktop, VS Code) over
// stdio (JSON-RPC).
//
// Usage:
//
//	medsupply-mcp [--config config.yaml] [--log-file medsupply.log] [--log-level debug]
//
// Claude Desktop configuration (claude_desktop_config.json):
//
//	{
//	  "mcpServers": {
//	    "medsupply": {
//	      "command": "/path/to/medsupply-mcp"
//	    }
//	  }
//	}
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teradata-labs/medsupply/internal/config"
	"github.com/teradata-labs/medsupply/internal/log"
	"github.com/teradata-labs/medsupply/internal/pubsub"
	"github.com/teradata-labs/medsupply/internal/version"
	"github.com/teradata-labs/medsupply/pkg/mcp/server"
	"github.com/teradata-labs/medsupply/pkg/mcp/transport"
	"github.com/teradata-labs/medsupply/pkg/supply"
	"github.com/teradata-labs/medsupply/pkg/supply/toolset"
	"github.com/teradata-labs/medsupply/pkg/tools"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serverName = "medsupply-mcp"

func main() {
	configPath := flag.String("config", "", "Config file path (defaults to config.yaml in the data dir)")
	logFile := flag.String("log-file", "", "Log file path (defaults to stderr)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over config file values.
	if *logFile == "" {
		*logFile = cfg.Log.File
	}
	if *logLevel == "" {
		*logLevel = cfg.Log.Level
	}

	// Configure logging -- CRITICAL: never write to stdout (that's the MCP transport)
	logger := setupLogger(*logFile, *logLevel)
	defer func() { _ = logger.Sync() }()
	log.SetLogger(logger)

	logger.Info("starting medsupply-mcp server", zap.String("version", version.Get()))

	catalog, err := catalogFromConfig(cfg.Catalog)
	if err != nil {
		logger.Fatal("invalid catalog configuration", zap.Error(err))
	}

	broker := pubsub.NewBroker[supply.PurchaseOrder]()
	defer broker.Shutdown()

	ledger := supply.NewLedger(
		supply.WithSeedID(cfg.Ledger.SeedID),
		supply.WithBroker(broker),
	)
	svc := supply.NewService(catalog, ledger, logger)

	registry := tools.NewRegistry()
	toolset.Register(registry, svc)
	logger.Info("registered supply tools", zap.Int("count", registry.Count()))

	bridge := server.NewSupplyBridge(svc, registry, logger)

	mcpServer := server.NewMCPServer(serverName, version.Get(), logger,
		server.WithToolProvider(bridge),
		server.WithResourceProvider(bridge),
	)

	// Wire MCP server to bridge so ledger changes trigger resource update notifications.
	bridge.SetMCPServer(mcpServer)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go bridge.WatchOrders(ctx, broker.Subscribe())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	// Create stdio transport (reads from stdin, writes to stdout)
	stdioTransport := transport.NewStdioServerTransport(os.Stdin, os.Stdout)

	// Run the MCP server
	logger.Info("MCP server ready, awaiting client connections on stdio")
	if err := mcpServer.Serve(ctx, stdioTransport); err != nil {
		if ctx.Err() != nil {
			logger.Info("server stopped gracefully")
		} else {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}
}

// catalogFromConfig converts the configured reference data into a supply
// catalog. The catalog constructor enforces full item coverage, so a config
// file that drops an item fails here rather than at call time.
func catalogFromConfig(cfg config.CatalogConfig) (*supply.Catalog, error) {
	inventory := make(map[supply.ItemKind]int, len(cfg.Items))
	suppliers := make(map[supply.ItemKind]supply.SupplierRecord, len(cfg.Items))
	for name, item := range cfg.Items {
		kind := supply.ItemKind(name)
		inventory[kind] = item.Stock
		suppliers[kind] = supply.SupplierRecord{
			Name:         item.Supplier.Name,
			LeadTimeDays: item.Supplier.LeadTimeDays,
			AvailableQty: item.Supplier.AvailableQty,
		}
	}
	return supply.NewCatalog(inventory, suppliers)
}

// setupLogger creates a zap logger that writes to a file (or stderr if no file specified).
// IMPORTANT: The logger must NEVER write to stdout because stdout is the MCP stdio transport.
func setupLogger(logFile, logLevel string) *zap.Logger {
	logger, err := buildLogger(logFile, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// buildLogger is the testable core of setupLogger. It returns an error instead
// of calling os.Exit so tests can exercise all code paths.
func buildLogger(logFile, logLevel string) (*zap.Logger, error) {
	level := parseLogLevel(logLevel)

	var output zapcore.WriteSyncer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 -- log file path from CLI flag
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", logFile, err)
		}
		output = zapcore.AddSync(f)
	} else {
		// Write to stderr (not stdout!) as a fallback
		output = zapcore.AddSync(os.Stderr)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		output,
		level,
	)

	return zap.New(core), nil
}

// parseLogLevel converts a string log level to a zapcore.Level.
func parseLogLevel(logLevel string) zapcore.Level {
	switch logLevel {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
