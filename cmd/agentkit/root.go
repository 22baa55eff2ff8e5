package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/agentkit/agentkit/internal/config"
	"github.com/agentkit/agentkit/internal/db/migrations"
	"github.com/agentkit/agentkit/internal/logging"
	"github.com/agentkit/agentkit/internal/server"
	"github.com/agentkit/agentkit/internal/svc"
)

// Version is set at build time via -ldflags
var Version = "dev"

// ServerConfig holds the loaded server configuration (set by main)
var ServerConfig *config.Config

var quiet bool

// SetupRootCmd configures the root command with all subcommands and flags
func SetupRootCmd(c *config.Config) *cobra.Command {
	ServerConfig = c

	rootCmd := &cobra.Command{
		Use:   "agentkit",
		Short: "AgentKit - multi-persona AI chat backend",
		Long: `AgentKit is a web chat backend for AI agent personas.

Just type 'agentkit' to start the server.`,
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress startup and request logging")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(VersionCmd())

	return rootCmd
}

// ServeCmd creates the serve command
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	}
}

// VersionCmd prints the build version
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}
}

func runServe() {
	if quiet {
		logging.Disable()
		migrations.QuietMode = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	svcCtx, err := svc.NewServiceContext(*ServerConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize services: %v\n", err)
		os.Exit(1)
	}
	svcCtx.Version = Version
	defer svcCtx.Close()

	startMaintenance(ctx, svcCtx)

	if err := server.Run(ctx, *ServerConfig, server.ServerOptions{
		SvcCtx: svcCtx,
		Quiet:  quiet,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// startMaintenance schedules background housekeeping: expired refresh tokens
// are purged hourly.
func startMaintenance(ctx context.Context, svcCtx *svc.ServiceContext) {
	scheduler := cron.New()
	scheduler.AddFunc("@hourly", func() {
		removed, err := svcCtx.DB.DeleteExpiredRefreshTokens(context.Background())
		if err != nil {
			logging.Errorf("Refresh token purge failed: %v", err)
			return
		}
		if removed > 0 {
			logging.Infof("Purged %d expired refresh tokens", removed)
		}
	})
	scheduler.Start()

	go func() {
		<-ctx.Done()
		scheduler.Stop()
	}()
}
