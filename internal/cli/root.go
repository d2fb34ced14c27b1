// Package cli implements the oracle command line tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/cards"
	"github.com/cardforge/oracle-engine/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "oracle",
	Short: "Oracle - card text compiler and resolution engine",
	Long: `Oracle compiles card rules text into a canonical effect tree and
resolves it against a game state: stack, triggers, continuous-effect
layers and combat.

The parse command shows the compiled tree for arbitrary text; the card
command looks a card up in the configured store and compiles its
oracle text.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("oracle v0.3.0")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

func openStore(cfg *config.Config) (cards.Store, error) {
	switch cfg.Cards.Backend {
	case "file":
		return cards.NewFileStore(cfg.Cards.Path)
	case "sqlite":
		return cards.NewSQLiteStore(cfg.Cards.Path)
	case "postgres":
		return cards.NewPostgresStore(rootCmd.Context(), cfg.Cards.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown cards backend %q", cfg.Cards.Backend)
	}
}

func openRepository(log *zap.Logger) (*cards.Repository, func() error, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []cards.RepositoryOption{cards.WithCacheTTL(cfg.Cards.CacheTTL)}
	if cfg.Catalog.Enabled {
		catalog := cards.NewCatalog(cfg.Catalog.BaseURL, cfg.Catalog.RequestsPerSecond, log)
		opts = append(opts, cards.WithCatalog(catalog))
	}
	return cards.NewRepository(store, log, opts...), store.Close, nil
}
