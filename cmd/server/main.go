package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/serroba/shortlinks/internal/container"
	"github.com/serroba/shortlinks/internal/messaging"
	"github.com/serroba/shortlinks/internal/shortener"
	"github.com/serroba/shortlinks/internal/sweeper"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startBackground starts the janitor and the in-process lifecycle consumers.
func startBackground(ctx context.Context, injector *do.Injector, options *container.Options) error {
	repo := do.MustInvoke[shortener.Repository](injector)
	if _, ok := repo.(shortener.Sweeper); ok {
		if err := do.MustInvoke[*sweeper.Janitor](injector).Start(ctx); err != nil {
			return fmt.Errorf("start janitor: %w", err)
		}
	}

	if options.Events == container.EventsMemory {
		if err := do.MustInvoke[*messaging.ConsumerGroup](injector).Start(ctx); err != nil {
			return fmt.Errorf("start consumers: %w", err)
		}
	}

	return nil
}

func main() {
	_ = godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := do.New()
		container.RegisterServer(injector, options)

		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			if err := options.Validate(); err != nil {
				logger.Fatal("invalid configuration", zap.Error(err))
			}

			router := do.MustInvoke[*chi.Mux](injector)

			// Invoke API to trigger route registration
			_ = do.MustInvoke[huma.API](injector)

			if err := startBackground(context.Background(), injector, options); err != nil {
				logger.Fatal("failed to start background workers", zap.Error(err))
			}

			server = &http.Server{
				Addr:              fmt.Sprintf(":%d", options.ListenPort()),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("server starting",
				zap.Int("port", options.ListenPort()),
				zap.String("backend", options.Backend),
				zap.String("events", options.Events),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("server shutdown error", zap.Error(err))
				}
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("service shutdown error", zap.Error(err))
			}

			_ = logger.Sync()
		})
	})

	cli.Root().AddCommand(&cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI spec",
		Run: humacli.WithOptions(func(_ *cobra.Command, _ []string, options *container.Options) {
			injector := do.New()
			container.RegisterServer(injector, options)

			api := do.MustInvoke[huma.API](injector)

			out, err := json.MarshalIndent(api.OpenAPI(), "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}

			fmt.Println(string(out))
		}),
	})

	cli.Run()
}
