package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"commas/internal/shellint"
)

func init() {
	rootCmd.AddCommand(quickfixCmd)
	quickfixCmd.Flags().StringP("command", "c", "", "the command line that failed")
}

var quickfixCmd = &cobra.Command{
	Use:     "quickfix",
	Short:   "根据失败命令的输出给出修复建议",
	Long:    "从标准输入读取失败命令的输出，按内置规则输出建议的修复命令，每行一条。",
	Example: "  git push 2>&1 | commas quickfix -c 'git push'",
	RunE: func(cmd *cobra.Command, args []string) error {
		command, _ := cmd.Flags().GetString("command")
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		actions := shellint.QuickFixActions(command, string(b))
		if len(actions) == 0 {
			fmt.Fprintln(os.Stderr, "(无建议)")
			return nil
		}
		for _, a := range actions {
			fmt.Println(a.Command)
		}
		return nil
	},
}
