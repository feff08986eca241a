package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/filelink/internal/config"
	"github.com/papapumpkin/filelink/internal/filestore"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the build root into the File record store",
	Long: "Index walks root_dir with the configured source globs and upserts a File " +
		"record for every match. With the sqlite driver the index persists between runs.",
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	printer := printerFor(cmd)
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	rootDir, err := absRoot(cfg.RootDir)
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	store, where, err := openStore(ctx, cfg, rootDir)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	defer store.Close()

	count, err := filestore.Index(ctx, store, rootDir, cfg.Sources)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	printer.Indexed(count, cfg.Store.Driver, where)
	return nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
