// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/sharevault/pkg/app"
	"github.com/yeisme/sharevault/pkg/configs"
)

var (
	// configPath 配置文件搜索路径，由 --config 指定.
	configPath string
	// debug 附加调试输出开关.
	debug bool

	rootCmd = &cobra.Command{
		Use:     "sharevault",
		Short:   "A file storage and sharing service",
		Version: configs.AppVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp(configPath).Run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./", "config file search path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(serveCmd)

	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
	registerBlobCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
