package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowdraw/internal/server"
	"github.com/matzehuels/flowdraw/pkg/buildinfo"
	"github.com/matzehuels/flowdraw/pkg/observability"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  POST /v1/layout              workflow JSON in, layout JSON out
  POST /v1/render?format=svg   workflow JSON in, rendered artifact out
  GET  /healthz                liveness

The server uses the configured cache backend (file, redis or mongo) and,
when tracing.enabled is set, exports spans over OTLP.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	tc := c.Config.Tracing
	if tc.Enabled {
		tp, err := observability.InitTracing(ctx, observability.TracingConfig{
			ServiceName:    tc.ServiceName,
			ServiceVersion: buildinfo.Version,
			Endpoint:       tc.Endpoint,
			Insecure:       tc.Insecure,
			SampleRatio:    tc.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		tp.Register()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				c.Logger.Warn("tracing shutdown", "err", err)
			}
		}()
		c.Logger.Info("tracing enabled", "endpoint", tc.Endpoint)
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	printInfo("Serving on %s", StyleHighlight.Render(c.Config.Server.Addr))
	printDetail("cache: %s", c.Config.Cache.Backend)
	return server.New(runner, c.Config, c.Logger).ListenAndServe(ctx)
}
