package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Sampler/config"
	"Sampler/pubsub"

	"github.com/spf13/cobra"
)

var redisFollow bool

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Redis连接测试",
	Long:  `测试Redis连接是否成功；使用 --follow 持续打印播放状态频道上的消息。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR 未配置")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Redis配置: %s, DB: %d\n", cfg.RedisAddr, cfg.RedisDB)

		client, err := pubsub.ConnectRedis(cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		fmt.Fprintln(out, "Redis连接成功！")

		if !redisFollow {
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sub := client.Subscribe(ctx, pubsub.PlaybackChannel)
		defer sub.Close()
		fmt.Fprintf(out, "订阅频道 %s ...\n", pubsub.PlaybackChannel)

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				fmt.Fprintln(out, msg.Payload)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
	redisCmd.Flags().BoolVarP(&redisFollow, "follow", "f", false, "持续打印播放状态变化")
}
