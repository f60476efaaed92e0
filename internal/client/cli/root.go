package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/wikireader/internal/buildinfo"
	"github.com/dmitrijs2005/wikireader/internal/client/config"
	"github.com/dmitrijs2005/wikireader/internal/client/models"
	"github.com/dmitrijs2005/wikireader/internal/logging"
	"github.com/spf13/cobra"
)

// Run restores the stored session, starts the connectivity watcher and
// blocks in the prompt until the user leaves or the input ends.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to Wiki Reader (type 'help' for commands)")
	a.restore(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// newAppFn is a test seam for NewApp.
var newAppFn = NewApp

// withApp loads the configuration from the command's flags, builds the
// App and hands it to fn. Everything is released when fn returns.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LoggingOptions())
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	a, err := newAppFn(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(ctx)
	a.out = cmd.OutOrStdout()

	return fn(ctx, a)
}

// NewRootCommand builds the twr command tree. Without a subcommand the
// interactive prompt starts.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "twr",
		Short: "Terminal client for the Wiki Reader summarization service",
		Long: `twr looks up Wikipedia articles through the Wiki Reader backend,
summarizes them and reads the summaries aloud.

Run it without a subcommand for the interactive prompt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				a.Run(ctx)
				return nil
			})
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newSummarizeCmd(),
		newHistoryCmd(),
		newVoicesCmd(),
		newVersionCmd(),
	)
	return root
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Login(ctx)
			})
		},
	}
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Register(ctx)
			})
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Logout(ctx)
			})
		},
	}
}

func newSummarizeCmd() *cobra.Command {
	var (
		section   string
		maxLength int
		download  bool
		bookmark  bool
	)

	cmd := &cobra.Command{
		Use:   "summarize <title>",
		Short: "Summarize one article and exit",
		Long: `Summarize scrapes the named article and prints its summary. The
stored session is used; run 'twr login' first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				if !a.authService.Verify(ctx) {
					return errors.New("not logged in: run 'twr login' first")
				}
				a.updateForm(func(f *models.Form) {
					f.Title = strings.Join(args, " ")
					f.Section = section
					f.MaxLength = maxLength
				})

				if err := a.Submit(ctx, nil); err != nil {
					return err
				}
				if download {
					if err := a.Download(ctx); err != nil {
						return err
					}
				}
				if bookmark {
					if err := a.Bookmark(ctx); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Only summarize this section of the article")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "Truncate the scraped content to this many characters")
	cmd.Flags().BoolVar(&download, "download", false, "Also store the summary audio")
	cmd.Flags().BoolVar(&bookmark, "bookmark", false, "Also bookmark the summary")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recent local queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.History(ctx)
			})
		},
	}
}

func newVoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List supported voices and languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Voices(ctx)
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
