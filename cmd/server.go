package cmd

import (
	"Sampler/config"
	"Sampler/logger"
	"Sampler/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动Sampler服务器",
	Long:  `启动HTTP服务器，提供音效面板Web界面、API和WebSocket状态同步`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg := config.Load()
	logger.InitLogger(logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	defer logger.Sync()

	return server.Start(cfg)
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
