package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/filelink/internal/config"
	"github.com/papapumpkin/filelink/internal/filestore"
	"github.com/papapumpkin/filelink/internal/plugin"
	"github.com/papapumpkin/filelink/internal/schema"
)

var extensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "List the field extensions the dirs option registers",
	Args:  cobra.NoArgs,
	RunE:  runExtensions,
}

func runExtensions(cmd *cobra.Command, args []string) error {
	printer := printerFor(cmd)

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

	rep := plugin.Setup(schema.NewRegistry(), plugin.Options{
		Dirs:       cfg.Dirs,
		Production: true,
		RootDir:    rootDir,
		Store:      filestore.NewMemoryStore(),
	})
	printer.Extensions(rep)
	return nil
}

func init() {
	rootCmd.AddCommand(extensionsCmd)
}
