package cli

import "github.com/spf13/cobra"

// snippetCmd groups snippet management commands.
var snippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "管理补全片段",
	Long:  "添加、移除与列出作为补全推荐的命令片段（snippets.json）。",
}

func init() {
	rootCmd.AddCommand(snippetCmd)
}
