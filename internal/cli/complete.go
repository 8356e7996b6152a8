package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"commas/internal/completion"
	cfg "commas/internal/config"
	"commas/internal/settings"
)

func init() {
	rootCmd.AddCommand(completeCmd)
	completeCmd.Flags().String("cwd", "", "working directory (default: current)")
	completeCmd.Flags().Bool("json", false, "print candidates as JSON")
}

var completeCmd = &cobra.Command{
	Use:   "complete <input>...",
	Short: "对输入行给出排序后的补全候选",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := cmd.Flags().GetString("cwd")
		asJSON, _ := cmd.Flags().GetBool("json")
		if cwd == "" {
			cwd, _ = os.Getwd()
		}
		list, err := completeLine(cmd.Context(), strings.Join(args, " "), cwd)
		if err != nil {
			return err
		}
		if asJSON {
			b, err := json.MarshalIndent(list, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		for _, c := range list {
			if c.Description != "" {
				fmt.Printf("%s\t%s\n", c.Value, c.Description)
			} else {
				fmt.Println(c.Value)
			}
		}
		return nil
	},
}

func completeLine(ctx context.Context, input, cwd string) ([]completion.Candidate, error) {
	snip, err := cfg.SnippetsPath()
	if err != nil {
		return nil, err
	}
	timeout := settings.Default().Timeout()
	if p, err := cfg.SettingsPath(); err == nil {
		if s, err := settings.Load(p); err == nil {
			timeout = s.Timeout()
		}
	}
	local := completion.NewLocal(snip)
	local.Refresh()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	res, _ := completion.Safe(local).Complete(ctx, input, cwd)
	return completion.Rank(res), nil
}
