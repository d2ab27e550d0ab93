// Package cli implements the vendia command line: it loads catalog files into
// an identity map, prints the resulting entity tree and exports it as
// DynamoDB batch write requests.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacentio/vendia/catalog"
	"github.com/jacentio/vendia/store"
)

// NewRootCommand returns the vendia root command. Flags may also be set
// through VENDIA_* environment variables (e.g., VENDIA_TABLE).
func NewRootCommand() *cobra.Command {
	defaults := store.DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("vendia")
	v.AutomaticEnv()
	v.SetDefault("table", defaults.TableName)
	v.SetDefault("shards", defaults.NumShards)

	root := &cobra.Command{
		Use:           "vendia",
		Short:         "Inspect and export entity catalogs",
		Long:          `Load catalog files into an identity map, print the entity tree and export it as DynamoDB write requests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("table", defaults.TableName, "DynamoDB table name for exported items")
	root.PersistentFlags().Int("shards", defaults.NumShards, "number of identity map shards (1-256)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log entity creation to stderr")

	_ = v.BindPFlag("table", root.PersistentFlags().Lookup("table"))
	_ = v.BindPFlag("shards", root.PersistentFlags().Lookup("shards"))
	_ = v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(newTreeCommand(v), newExportCommand(v))
	return root
}

// Execute runs the root command.
func Execute(version string) error {
	root := NewRootCommand()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return err
	}
	return nil
}

// loadCatalog reads the catalog file at path into a fresh store.
func loadCatalog(cmd *cobra.Command, v *viper.Viper, path string) (*store.Factory, []*catalog.Product, error) {
	level := slog.LevelWarn
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	reg := store.NewRegistry()
	if err := catalog.Register(reg); err != nil {
		return nil, nil, err
	}
	s := store.New(store.Config{
		TableName: v.GetString("table"),
		NumShards: v.GetInt("shards"),
	}, logger)
	f := store.NewFactory(s, reg, logger)

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	products, err := catalog.Load(f, file)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return f, products, nil
}
