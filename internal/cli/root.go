package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"shoplist-cli/internal/auth"
	"shoplist-cli/internal/config"
	"shoplist-cli/internal/format"
	"shoplist-cli/internal/liststore"
	"shoplist-cli/internal/logging"
	"shoplist-cli/internal/model"
	"shoplist-cli/internal/store"
	"shoplist-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	DataDir    string
	LogFile    string
	Glyphs     string
	PrettyJSON bool
	Format     string
	Persist    bool
	Demo       bool
	SkipLogin  bool
	Email      string

	cfg config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "shoplist",
		Short:        "Shopping lists in the terminal (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  shoplist

  # Start signed in, with sample lists, saving changes to disk
  shoplist --skip-login --demo --persist

  # Scriptable commands
  shoplist lists create --name "Weekly groceries" --item "Milk:Dairy" --item "Bread:Bakery"
  shoplist lists ls --format text

  # Direct list lookup (shortcut for: shoplist lists show <list-id>)
  shoplist list-3f2a9c01bd
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.log != nil {
			_ = app.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", envOr("SHOPLIST_DATA_DIR", ""), "Directory holding the list snapshot (default: ~/.shoplist/data)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("SHOPLIST_LOG_FILE", ""), "Write JSON logs to this file")
	cmd.PersistentFlags().StringVar(&app.Glyphs, "glyphs", envOr("SHOPLIST_GLYPHS", ""), "TUI glyph set (unicode|ascii)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SHOPLIST_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.Persist, "persist", false, "TUI: load lists from and save them to the data dir")
	cmd.PersistentFlags().BoolVar(&app.Demo, "demo", false, "TUI: start with sample lists when there are none")
	cmd.PersistentFlags().BoolVar(&app.SkipLogin, "skip-login", false, "TUI: start signed in")
	cmd.PersistentFlags().StringVar(&app.Email, "email", envOr("SHOPLIST_EMAIL", ""), "TUI: email to pre-fill (or sign in as with --skip-login)")

	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// init resolves the effective configuration: flags win over the env/file/defaults
// merge done by config.Load.
func (app *App) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return writeErr(cmd, err)
	}
	if v := strings.TrimSpace(app.DataDir); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(app.LogFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(app.Glyphs); v != "" {
		cfg.Glyphs = v
	}
	flags := cmd.Flags()
	if flags.Changed("persist") {
		cfg.Persist = app.Persist
	}
	if flags.Changed("demo") {
		cfg.Demo = app.Demo
	}
	app.cfg = cfg

	lg, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		// A bad logging setup must not block the commands that repair it.
		if !isConfigCmd(cmd) {
			return writeErr(cmd, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: logging disabled:", err.Error())
		lg = zap.NewNop()
	}
	app.log = lg.With(zap.String("cmd", cmd.CommandPath()))
	return nil
}

func isConfigCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" && c.HasParent() && !c.Parent().HasParent() {
			return true
		}
	}
	return false
}

func (app *App) logger() *zap.Logger {
	if app.log == nil {
		return zap.NewNop()
	}
	return app.log
}

func (app *App) snapshot() store.Store {
	return store.Store{Dir: app.cfg.DataDir}
}

func (app *App) newListStore(lists []model.ShoppingList) *liststore.Store {
	return liststore.New(
		liststore.WithLists(lists),
		liststore.WithLogger(app.logger()),
	)
}

// loadLists reads the snapshot into a fresh list store.
func (app *App) loadLists(ctx context.Context) (*liststore.Store, error) {
	lists, err := app.snapshot().Load(ctx)
	if err != nil {
		return nil, err
	}
	return app.newListStore(lists), nil
}

// mutate runs fn against the current snapshot and saves the result, holding the
// cross-process lock for the whole cycle. Nothing is saved when fn fails.
func (app *App) mutate(ctx context.Context, fn func(*liststore.Store) error) error {
	return app.snapshot().Update(ctx, func(cur []model.ShoppingList) ([]model.ShoppingList, error) {
		ls := app.newListStore(cur)
		if err := fn(ls); err != nil {
			return nil, err
		}
		return ls.Lists(), nil
	})
}

func runTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := app.cfg
	lg := app.logger()

	var initial []model.ShoppingList
	snap := app.snapshot()
	state := &store.TUIState{Version: 1}
	if cfg.Persist {
		lists, err := snap.Load(ctx)
		if err != nil {
			return err
		}
		initial = lists
		if st, err := snap.LoadTUIState(); err == nil {
			state = st
		} else {
			lg.Warn("load tui state", zap.Error(err))
		}
	}
	if cfg.Demo && len(initial) == 0 {
		initial = liststore.SampleLists(time.Now().UTC())
	}
	lists := app.newListStore(initial)

	var watcher *store.Watcher
	if cfg.Persist {
		// Pick up edits made by scriptable commands while the TUI is open.
		w, err := snap.Watch(ctx, lg)
		if err != nil {
			lg.Warn("watch snapshot", zap.Error(err))
		} else {
			defer w.Close()
			watcher = w
		}
		lists.OnChange(func(ls []model.ShoppingList) {
			saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := snap.WithLock(saveCtx, func() error {
				if err := snap.Save(saveCtx, ls); err != nil {
					return err
				}
				if watcher == nil {
					return nil
				}
				rev, err := snap.Revision(saveCtx)
				if err != nil {
					return err
				}
				watcher.Observe(rev)
				return nil
			})
			if err != nil {
				lg.Error("save snapshot", zap.Error(err), zap.String("dir", snap.Dir))
			}
		})
	}

	mock, err := auth.NewMock()
	if err != nil {
		return err
	}

	email := strings.TrimSpace(app.Email)
	if email == "" {
		email = state.LastEmail
	}
	opts := tui.Options{
		Lists:          lists,
		Auth:           mock,
		Email:          email,
		SelectedListID: state.SelectedListID,
		LoginDelay:     cfg.LoginDelay,
		Glyphs:         cfg.Glyphs,
		Logger:         lg,
		OnLogin: func(s auth.Session) {
			if err := mock.VerifySession(s); err != nil {
				lg.Error("session rejected", zap.Error(err), zap.String("email", s.Email))
				return
			}
			lg.Debug("session issued", zap.String("email", s.Email), zap.Time("expires_at", s.ExpiresAt))
		},
		OnLogout: func() {
			lg.Debug("session ended")
		},
	}
	if watcher != nil {
		opts.Changes = watcher.Changes()
		opts.Reload = snap.Load
	}
	if app.SkipLogin {
		if email == "" {
			email = "guest@shoplist.local"
		}
		s, err := mock.Authenticate(email, "skip-login")
		if err != nil {
			return err
		}
		if err := mock.VerifySession(s); err != nil {
			return err
		}
		opts.Session = &s
	}

	lg.Info("starting tui", zap.Bool("persist", cfg.Persist), zap.Int("lists", lists.Len()))
	res, err := tui.Run(ctx, opts)
	if err != nil {
		return err
	}
	if cfg.Persist {
		state.LastEmail = res.Email
		state.SelectedListID = res.SelectedListID
		if err := snap.SaveTUIState(state); err != nil {
			lg.Warn("save tui state", zap.Error(err))
		}
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
