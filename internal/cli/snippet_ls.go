package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cfg "commas/internal/config"
	"commas/internal/store"
)

func init() {
	snippetCmd.AddCommand(snippetLsCmd)
}

var snippetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "列出补全片段",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfg.SnippetsPath()
		if err != nil {
			return err
		}
		list, err := store.LoadSnippets(path)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("(空)")
			return nil
		}
		for _, s := range list {
			if s.Description != "" {
				fmt.Printf("%s  # %s\n", s.Value, s.Description)
			} else {
				fmt.Println(s.Value)
			}
		}
		return nil
	},
}
