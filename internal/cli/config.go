package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfg "commas/internal/config"
	"commas/internal/settings"
	"commas/internal/shellscript"
	"commas/internal/store"
)

func init() { rootCmd.AddCommand(configCmd) }

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "初始化并显示配置位置",
	Long:  "创建 commas 配置目录，写入默认 settings.json 与 snippets.json，安装 shell 集成脚本，然后打印配置目录位置。",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cfg.Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		// 1) settings.json: defaults when missing, normalized otherwise
		setPath, err := cfg.SettingsPath()
		if err != nil {
			return err
		}
		existed := fileExists(setPath)
		s, err := settings.Load(setPath)
		if errors.Is(err, settings.ErrInvalid) {
			fmt.Printf("! settings.json 无法解析，保持原文件：%v\n", err)
		} else if err != nil {
			return err
		} else {
			if err := settings.Save(setPath, s); err != nil {
				return err
			}
			if existed {
				fmt.Printf("• settings.json 已规范化：%s\n", setPath)
			} else {
				fmt.Printf("✓ 已创建 settings.json：%s\n", setPath)
			}
		}

		// 2) snippets.json
		snipPath, err := cfg.SnippetsPath()
		if err != nil {
			return err
		}
		if fileExists(snipPath) {
			fmt.Printf("• 保持现有 snippets.json：%s\n", snipPath)
		} else {
			if err := store.SaveSnippets(snipPath, nil); err != nil {
				return err
			}
			fmt.Printf("✓ 已创建 snippets.json：%s\n", snipPath)
		}

		// 3) shell integration scripts
		intDir, err := cfg.IntegrationDir()
		if err != nil {
			return err
		}
		if err := shellscript.Install(intDir); err != nil {
			return err
		}
		fmt.Printf("✓ 已安装 shell 集成脚本：%s\n", intDir)

		fmt.Printf("\n配置目录：%s\n", dir)
		return nil
	},
}

func fileExists(path string) bool {
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		return true
	}
	return false
}
