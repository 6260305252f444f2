package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// noColor disables ANSI colors in CLI output. Set from --no-color,
// AUTOPRO_NO_COLOR or NO_COLOR.
var noColor bool

var rootCmd = &cobra.Command{
	Use:           "autopro",
	Short:         "Dealership catalog, used-car search and configurator",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		noColor = viper.GetBool("no-color") || os.Getenv("NO_COLOR") != ""
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the autopro version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("autopro version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "API base URL (default http://127.0.0.1:<server.port>)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	viper.SetEnvPrefix("AUTOPRO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(versionCmd, startCmd, stopCmd, statusCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
