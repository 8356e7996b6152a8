package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cfg "commas/internal/config"
	"commas/internal/settings"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSchemaCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "打开设置界面（编辑 settings.json）",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfg.SettingsPath()
		if err != nil {
			return err
		}
		return settings.Run(path)
	},
}

var settingsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "输出 settings.json 的 JSON Schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := settings.MarshalSchema(settings.Schema())
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}
