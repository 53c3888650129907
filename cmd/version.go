package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Annotations: map[string]string{
		ui.AnnotationSkipBackendCheck: "true",
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.FullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
