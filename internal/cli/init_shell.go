package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"commas/internal/shellscript"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:       "init <bash|zsh>",
	Short:     "输出 shell 集成脚本",
	Long:      "打印 bash 或 zsh 的 shell 集成脚本，可在 rc 文件中使用：eval \"$(commas init zsh)\"。",
	Args:      cobra.ExactArgs(1),
	ValidArgs: shellscript.Shells,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := shellscript.Script(args[0])
		if err != nil {
			return err
		}
		fmt.Print(s)
		return nil
	},
}
