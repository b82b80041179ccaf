package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	agenda "github.com/goliatone/go-agenda"
	"github.com/goliatone/go-agenda/internal/config"
	"github.com/goliatone/go-agenda/pkg/api"
	"github.com/goliatone/go-agenda/pkg/panels"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	envFile := flag.String("env", ".env", "dotenv file loaded before AGENDA_* overrides")
	snapshot := flag.String("snapshot", "", "render the HTML dashboard to this file instead of starting the menu (- for stdout)")
	region := flag.String("region", "", "render a single region in snapshot mode (calendar, modal, list, history, stats, toasts)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := agenda.LoadConfig(config.WithFile(*configPath), config.WithEnvFile(*envFile))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := agenda.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := agenda.NewClient(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build API client", zap.Error(err))
	}

	if *snapshot != "" {
		if err := writeSnapshot(ctx, cfg, client, logger, *snapshot, *region); err != nil {
			logger.Fatal("snapshot failed", zap.Error(err))
		}
		return
	}

	session, err := agenda.NewTerminalSession(cfg, client, logger, os.Stdout)
	if err != nil {
		logger.Fatal("failed to build terminal session", zap.Error(err))
	}
	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("session ended with error", zap.Error(err))
	}
}

func writeSnapshot(ctx context.Context, cfg *agenda.Config, client *api.Client, logger *zap.Logger, output, rawRegion string) error {
	doc, ctrl, err := agenda.NewHTMLDashboard(cfg, client, logger, nil)
	if err != nil {
		return err
	}
	if err := ctrl.Bootstrap(ctx); err != nil {
		logger.Warn("bootstrap incomplete", zap.Error(err))
	}

	var markup string
	if strings.TrimSpace(rawRegion) != "" {
		region, err := panels.ParseRegion(rawRegion)
		if err != nil {
			return err
		}
		markup = doc.Region(region)
	} else {
		markup, err = doc.Page(ctrl.Role())
		if err != nil {
			return err
		}
	}

	if output == "-" {
		fmt.Println(markup)
		return nil
	}
	if err := os.WriteFile(output, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Printf("Dashboard written to %s\n", output)
	return nil
}
