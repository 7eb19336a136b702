package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/agenda/internal/config"
	"github.com/balkashynov/agenda/internal/db"
	"github.com/balkashynov/agenda/internal/logger"
	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type storeKey struct{}

// WithStore returns a context in which commands use st instead of opening
// storage from configuration. The caller keeps ownership of st.
func WithStore(ctx context.Context, st *store.Store) context.Context {
	return context.WithValue(ctx, storeKey{}, st)
}

// NewRootCmd assembles the agenda command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agenda",
		Short: "A terminal task manager that understands dates like \"el viernes\"",
		Long: `agenda keeps tasks, lists and projects on your machine and shows them as
a board, a calendar and an overview. Titles are scanned for Spanish date
phrases (hoy, mañana, el lunes, próximo viernes) and dd/mm/yyyy dates.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "Config file (default ~/.agenda/config.yaml)")
	root.PersistentFlags().Bool("ephemeral", false, "Keep everything in memory for this run")

	root.AddCommand(
		newAddCmd(),
		newListTasksCmd(),
		newSearchCmd(),
		newShowCmd(),
		newEditCmd(),
		newDoneCmd(),
		newUndoneCmd(),
		newRemoveCmd(),
		newMoveCmd(),
		newBoardCmd(),
		newCalendarCmd(),
		newStatsCmd(),
		newListCmd(),
		newProjectCmd(),
		newSuggestCmd(),
		newVersionCmd(),
	)
	root.SetHelpCommand(newHelpCmd())

	return root
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

type storeRunFunc func(cmd *cobra.Command, args []string, st *store.Store) error

// withStore wraps a command function to open the store first and release it afterwards
func withStore(fn storeRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st, release, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer release()
		return fn(cmd, args, st)
	}
}

func openStore(cmd *cobra.Command) (*store.Store, func(), error) {
	ctx := cmd.Context()
	if st, ok := ctx.Value(storeKey{}).(*store.Store); ok {
		return st, func() {}, nil
	}

	path, _ := cmd.Flags().GetString("config")
	ephemeral, _ := cmd.Flags().GetBool("ephemeral")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, err
	}

	medium, err := openMedium(ctx, cfg.Storage)
	if err != nil {
		log.Error("storage unavailable", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
		_ = log.Sync()
		return nil, nil, err
	}
	log.Debug("storage opened", zap.String("backend", cfg.Storage.Backend), zap.String("command", cmd.Name()))

	st := store.New(medium, store.WithLogger(log), store.WithUserID(cfg.App.UserID))
	release := func() {
		if err := st.Close(); err != nil {
			log.Warn("failed to close storage", zap.Error(err))
		}
		_ = log.Sync()
	}
	return st, release, nil
}

func openMedium(ctx context.Context, cfg config.StorageConfig) (db.Medium, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return db.NewMemory(), nil
	case config.BackendRedis:
		return db.OpenRedis(ctx, db.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	default:
		return db.OpenSQLite(cfg.Path)
	}
}

// findTask loads a task or reports that it does not exist
func findTask(ctx context.Context, st *store.Store, id string) (models.Task, error) {
	task, ok, err := st.Task(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if !ok {
		return models.Task{}, fmt.Errorf("task %s not found", id)
	}
	return task, nil
}

func resolveList(ctx context.Context, st *store.Store, ref string) (models.CustomList, error) {
	list, ok, err := st.ResolveList(ctx, ref)
	if err != nil {
		return models.CustomList{}, err
	}
	if !ok {
		return models.CustomList{}, fmt.Errorf("list %q not found", ref)
	}
	return list, nil
}

func resolveProject(ctx context.Context, st *store.Store, ref string) (models.Project, error) {
	project, ok, err := st.ResolveProject(ctx, ref)
	if err != nil {
		return models.Project{}, err
	}
	if !ok {
		return models.Project{}, fmt.Errorf("project %q not found", ref)
	}
	return project, nil
}
