package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"commas/internal/shellint"
	"commas/internal/ui"
)

func init() {
	rootCmd.AddCommand(protocolCmd)
	protocolCmd.Flags().Bool("raw", false, "print the Markdown source")
}

var protocolCmd = &cobra.Command{
	Use:   "protocol",
	Short: "查看 OSC 633 shell 集成协议说明",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			fmt.Print(shellint.ProtocolDoc)
			return nil
		}
		width := 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		fmt.Println(ui.RenderMarkdown(shellint.ProtocolDoc, width))
		return nil
	},
}
