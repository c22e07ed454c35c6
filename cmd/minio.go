package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"Sampler/config"
	"Sampler/storage"

	"github.com/spf13/cobra"
)

var minioPrefix string

var minioCmd = &cobra.Command{
	Use:   "minio BUCKET",
	Short: "列出MinIO存储桶中的音频",
	Long:  `列出存储桶中可播放的音频对象，并打印可直接用作音效来源的 minio:// 地址。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket := args[0]
		cfg := config.Load()

		client, err := storage.NewMinioClient(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		clips, err := storage.ListClips(ctx, client, bucket, minioPrefix)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(clips) == 0 {
			fmt.Fprintln(out, "未找到音频文件")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SIZE\tMODIFIED\tSOURCE")
		for _, c := range clips {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", storage.FormatSize(c.Size), c.LastModified.Format(time.RFC3339), c.Source(bucket))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)
	minioCmd.Flags().StringVarP(&minioPrefix, "prefix", "p", "", "按前缀过滤文件")

	minioCmd.Example = `  # 列出所有音频
  sampler minio sounds

  # 按前缀过滤
  sampler minio sounds -p "pads/"`
}
