package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dtroode/interview-coach/internal/config"
	"github.com/dtroode/interview-coach/internal/logger"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	if err := newRootCommand(serve).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(run serveFunc) *cobra.Command {
	serveCmd := newServeCommand(run)

	// Running the binary without a subcommand starts the server.
	root := &cobra.Command{
		Use:          "interview-coach",
		Short:        "Cover letter feedback and mock interview API",
		Version:      buildVersion,
		RunE:         serveCmd.RunE,
		SilenceUsage: true,
	}
	root.Flags().AddFlagSet(serveCmd.Flags())
	root.AddCommand(serveCmd, newMigrateCommand())

	return root
}

// bootstrap loads an optional .env file, then configuration and the logger.
func bootstrap() (*config.Config, *logger.Logger) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env file: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg, logger.New(cfg.LogLevel)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
