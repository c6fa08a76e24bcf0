package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/edgarhsanchez/gitlab-ops/internal/adapters/gitlab"
	"github.com/edgarhsanchez/gitlab-ops/internal/browser"
	"github.com/edgarhsanchez/gitlab-ops/internal/config"
	"github.com/edgarhsanchez/gitlab-ops/internal/logging"
)

// browseOptions collects the flags shared by the root and browse commands.
type browseOptions struct {
	configPath string
	host       string
	pageSize   int
	noDetails  bool
}

func newRootCmd() *cobra.Command {
	opts := &browseOptions{}

	rootCmd := &cobra.Command{
		Use:   "gitlab-ops",
		Short: "Browse GitLab projects from the terminal",
		Long: `gitlab-ops fetches the projects visible to your token from a GitLab
instance over its GraphQL API and lets you browse them interactively.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.gitlab-ops/config.yaml)")
	rootCmd.Flags().StringVar(&opts.host, "host", "", "GitLab host (overrides GITLAB_HOST)")
	rootCmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "projects requested per page (default from config)")
	rootCmd.Flags().BoolVar(&opts.noDetails, "no-details", false, "hide the details pane")

	rootCmd.AddCommand(
		newBrowseCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

func newBrowseCmd(root *browseOptions) *cobra.Command {
	opts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Fetch projects and browse them interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath = root.configPath
			return runBrowse(opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "GitLab host (overrides GITLAB_HOST)")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "projects requested per page (default from config)")
	cmd.Flags().BoolVar(&opts.noDetails, "no-details", false, "hide the details pane")

	return cmd
}

// runBrowse resolves credentials, fetches all projects, then hands the
// terminal to the browser. Any failure before the browser starts is reported
// on stderr with a non-zero exit and no partial UI.
func runBrowse(opts *browseOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	runID := uuid.NewString()
	log := logging.WithRunID(runID)

	supplier := config.NewEnvSupplier()
	supplier.Overrides = config.Credentials{Host: opts.host}
	supplier.Defaults = config.Credentials{
		Token: cfg.GitLab.Token,
		Host:  cfg.GitLab.Host,
	}

	creds, err := supplier.Credentials()
	if err != nil {
		return err
	}

	client := gitlab.NewClient(creds.Token, creds.Host)
	if opts.pageSize > 0 {
		client.SetPageSize(opts.pageSize)
	} else {
		client.SetPageSize(cfg.GitLab.PageSize)
	}

	// Ctrl-C during the fetch cancels cleanly; once the browser owns the
	// terminal, bubbletea handles signals itself.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("fetching projects", slog.String("host", creds.Host))
	projects, err := client.FetchProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}
	log.Info("fetch complete", slog.Int("projects", len(projects)))

	// Silence logs before the TUI takes the alternate screen.
	logging.Suppress()

	showDetails := cfg.Browser == nil || cfg.Browser.ShowDetails
	if opts.noDetails {
		showDetails = false
	}
	return browser.Run(projects, showDetails)
}

func newConfigCmd(root *browseOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gitlab-ops configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if path == "" {
				return fmt.Errorf("cannot determine config path")
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := config.Save(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configPath)
			if err != nil {
				return err
			}
			fmt.Printf("host: %s\n", cfg.GitLab.Host)
			fmt.Printf("page_size: %d\n", cfg.GitLab.PageSize)
			fmt.Printf("log_level: %s\n", cfg.Logging.Level)
			fmt.Printf("show_details: %v\n", cfg.Browser.ShowDetails)
			return nil
		},
	})

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show gitlab-ops version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gitlab-ops v%s\n", version)
		},
	}
}

// loadConfig loads the config file, falling back to the default location.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}
