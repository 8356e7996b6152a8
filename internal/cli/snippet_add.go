package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cfg "commas/internal/config"
	"commas/internal/store"
)

func init() {
	snippetCmd.AddCommand(snippetAddCmd)
	snippetAddCmd.Flags().StringP("description", "d", "", "description shown next to the snippet")
}

var snippetAddCmd = &cobra.Command{
	Use:   "add <command>...",
	Short: "添加补全片段",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := strings.TrimSpace(strings.Join(args, " "))
		if value == "" {
			fmt.Println("未提供有效片段")
			return nil
		}
		desc, _ := cmd.Flags().GetString("description")
		path, err := cfg.SnippetsPath()
		if err != nil {
			return err
		}
		existed, err := store.AddSnippet(path, store.Snippet{Value: value, Description: desc})
		if err != nil {
			return err
		}
		if existed {
			fmt.Printf("• 已更新：%s\n", value)
		} else {
			fmt.Printf("✓ 已添加：%s\n", value)
		}
		return nil
	},
}
