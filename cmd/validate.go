package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/filelink/internal/config"
	"github.com/papapumpkin/filelink/internal/filestore"
	"github.com/papapumpkin/filelink/internal/plugin"
	"github.com/papapumpkin/filelink/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dirs option and field bindings against the build root",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	printer := printerFor(cmd)

	cfg, err := config.Load()
	if err != nil {
		printer.Error(err.Error())
		return fmt.Errorf("failed to load config: %w", err)
	}
	rootDir, err := absRoot(cfg.RootDir)
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	registry := schema.NewRegistry()
	rep := plugin.Setup(registry, plugin.Options{
		Dirs:       cfg.Dirs,
		Production: true,
		RootDir:    rootDir,
		Store:      filestore.NewMemoryStore(),
	})

	problems := len(rep.Skipped)
	for _, sk := range rep.Skipped {
		printer.Error(sk.Err.Error())
	}
	for _, binding := range cfg.Fields {
		if _, ok := registry.Lookup(binding.Extension); !ok {
			printer.Error(fmt.Sprintf("field %q uses unregistered extension @%s", binding.Field, binding.Extension))
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("validation failed with %d problem(s)", problems)
	}
	printer.Success(fmt.Sprintf("%d extension(s), %d field binding(s), no problems", len(rep.Registered), len(cfg.Fields)))
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
