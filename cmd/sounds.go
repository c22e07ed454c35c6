package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"Sampler/core/catalog"
	"Sampler/model"

	"github.com/spf13/cobra"
)

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "列出默认音效",
	Long:  `打印启动时加载的默认音效列表（编号、标签、名称、来源）。`,
	Run: func(cmd *cobra.Command, args []string) {
		printSounds(cmd.OutOrStdout(), catalog.New(catalog.Seed()).List())
	},
}

func printSounds(w io.Writer, sounds []model.Sound) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tNAME\tSOURCE")
	for _, s := range sounds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Label, s.Name, s.Source)
	}
	tw.Flush()
}

func init() {
	rootCmd.AddCommand(soundsCmd)
}
