package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/filelink/internal/config"
	"github.com/papapumpkin/filelink/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "filelink",
	Short: "Link content fields to file records by relative path",
	Long: "Filelink registers field extensions that turn relative path strings in " +
		"content frontmatter into links to the matching File records of a build.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .filelink.toml)")
	rootCmd.PersistentFlags().String("root", "", "build root directory (overrides root_dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every resolution")
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".filelink")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(config.EnvKeyReplacer())
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	if flags.Changed("verbose") {
		_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	}
	if flags.Changed("root") {
		_ = viper.BindPFlag("root_dir", flags.Lookup("root"))
	}

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// printerFor returns a Printer on the command's error stream, with terminal
// colors when that stream is stderr.
func printerFor(cmd *cobra.Command) *ui.Printer {
	w := cmd.ErrOrStderr()
	if f, ok := w.(*os.File); ok && f == os.Stderr {
		return ui.New()
	}
	return ui.NewWriter(w)
}

// outFor returns the stream results are written to.
func outFor(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
