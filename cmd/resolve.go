package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/filelink/internal/content"
	"github.com/papapumpkin/filelink/internal/ui"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <content-file>...",
	Short: "Resolve the configured path fields of content files",
	Long: "Resolve parses each content file, runs the field extension bound to every " +
		"configured field present in its frontmatter, and prints the linked File records.",
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	printer := printerFor(cmd)
	ctx := cmd.Context()

	b, err := openBuild(ctx, printer)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	defer b.Close()

	if len(b.cfg.Fields) == 0 {
		printer.Warn("no [[fields]] bindings configured; nothing to resolve")
		return nil
	}

	results := ui.NewWriter(outFor(cmd))
	failed := 0
	for _, file := range args {
		rec, err := content.Load(file)
		if err != nil {
			printer.Error(err.Error())
			failed++
			continue
		}
		for _, binding := range b.cfg.Fields {
			if _, ok := rec.Fields[binding.Field]; !ok {
				continue
			}
			var extArgs map[string]string
			if binding.Path != "" {
				extArgs = map[string]string{"path": binding.Path}
			}
			res, err := b.registry.Resolve(ctx, binding.Extension, rec.Fields, binding.Field, extArgs)
			if err != nil {
				printer.Error(fmt.Sprintf("%s: %s: %v", file, binding.Field, err))
				failed++
				continue
			}
			results.Resolved(file, binding.Field, binding.Extension, res)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d resolution(s) failed", failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
