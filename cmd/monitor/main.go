// Command monitor is the consensus alert monitor CLI.
//
// Usage:
//
//	consensus-monitor run
//	consensus-monitor scrape
//	consensus-monitor events
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomasvidela/consensus-alerts/internal/api"
	"github.com/tomasvidela/consensus-alerts/internal/config"
	"github.com/tomasvidela/consensus-alerts/internal/monitor"
	"github.com/tomasvidela/consensus-alerts/internal/notify"
	"github.com/tomasvidela/consensus-alerts/internal/source/covers"
	"github.com/tomasvidela/consensus-alerts/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "consensus-monitor",
		Short: "Over/under consensus pre-game alert monitor",
	}

	root.AddCommand(runCmd())
	root.AddCommand(scrapeCmd())
	root.AddCommand(eventsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the perpetual scan loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMonitor(func(ctx context.Context, cfg *config.Config, m *monitor.Monitor, st *store.Store) error {
				if cfg.APIAddr != "" {
					srv := &http.Server{
						Addr:         cfg.APIAddr,
						Handler:      api.NewRouter(st, cfg.CORSAllowOrigins, logger),
						ReadTimeout:  10 * time.Second,
						WriteTimeout: 30 * time.Second,
						IdleTimeout:  60 * time.Second,
					}
					go func() {
						logger.Info("Status API listening", "addr", cfg.APIAddr)
						if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
							logger.Error("Status API failed", "error", err)
						}
					}()
					defer func() {
						shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
						defer cancel()
						_ = srv.Shutdown(shutdownCtx)
					}()
				}

				m.Run(ctx)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// scrape command
// --------------------------------------------------------------------------

func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Fetch today's slate once, persist it, and send the informational messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMonitor(func(ctx context.Context, cfg *config.Config, m *monitor.Monitor, st *store.Store) error {
				return m.Refresh(ctx)
			})
		},
	}
}

// --------------------------------------------------------------------------
// events command
// --------------------------------------------------------------------------

func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print the stored slate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			events, err := store.New(cfg.StorePath).Load()
			if err != nil {
				return fmt.Errorf("load slate: %w", err)
			}
			if len(events) == 0 {
				fmt.Println("no stored events")
				return nil
			}

			loc := cfg.Location()
			for _, ev := range events {
				status := "pending"
				if _, ok := ev.StartTime(loc); !ok {
					status = "inert"
				} else if ev.Alerted {
					status = "alerted"
				}
				fmt.Printf("%-8s %-30s %s %s  total=%-6s picks=%-3d %s\n",
					ev.Sport, ev.Matchup(), ev.EventDate, ev.EventTime,
					ev.TotalLine, ev.ExpertCount, status)
			}
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// withMonitor handles config loading, dependency wiring, and context
// cancellation.
func withMonitor(fn func(ctx context.Context, cfg *config.Config, m *monitor.Monitor, st *store.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required")
	}

	st := store.New(cfg.StorePath)
	src := covers.New(cfg.Sport, time.Duration(cfg.SourceOffsetHours)*time.Hour,
		cfg.SourceRequestsPerMinute, logger)
	notifier := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)

	m := monitor.New(monitor.Config{
		RolloverHour: cfg.RolloverHour,
		WindowLow:    cfg.WindowLowMinutes,
		WindowHigh:   cfg.WindowHighMinutes,
		ScanInterval: cfg.ScanInterval,
		Location:     cfg.Location(),
	}, st, src, notifier, logger)

	return fn(ctx, cfg, m, st)
}
