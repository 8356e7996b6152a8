package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"commas/internal/system"
)

func init() {
	rootCmd.AddCommand(freeCmd)
}

var freeCmd = &cobra.Command{
	Use:   "free <port>",
	Short: "结束监听指定端口的进程",
	Long:  "向监听该 TCP 端口的进程发送 SIGTERM，对应 \"address already in use\" 的快速修复。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid port %q", args[0])
		}
		pids, err := system.FreePort(cmd.Context(), port)
		if errors.Is(err, system.ErrNoListener) {
			fmt.Printf("• 端口 %d 没有监听进程\n", port)
			return nil
		}
		for _, pid := range pids {
			fmt.Printf("✓ 已结束进程 %d（端口 %d）\n", pid, port)
		}
		return err
	},
}
