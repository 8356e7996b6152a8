package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cfg "commas/internal/config"
	"commas/internal/store"
)

func init() {
	snippetCmd.AddCommand(snippetRemoveCmd)
}

var snippetRemoveCmd = &cobra.Command{
	Use:     "rm <command>...",
	Aliases: []string{"remove"},
	Short:   "移除补全片段",
	Long:    "按完整命令文本移除片段；含空格的片段请加引号。",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items := make([]string, 0, len(args))
		for _, a := range args {
			a = strings.TrimSpace(a)
			if a != "" {
				items = append(items, a)
			}
		}
		if len(items) == 0 {
			fmt.Println("未提供有效片段")
			return nil
		}
		path, err := cfg.SnippetsPath()
		if err != nil {
			return err
		}
		removed, missing, err := store.RemoveSnippets(path, items)
		if err != nil {
			return err
		}
		for _, s := range removed {
			fmt.Printf("✓ 已移除：%s\n", s)
		}
		for _, s := range missing {
			fmt.Printf("• 未找到：%s\n", s)
		}
		if len(removed) == 0 && len(missing) == 0 {
			fmt.Println("无变更")
		}
		return nil
	},
}
