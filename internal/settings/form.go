package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Run launches an interactive form over settings.json at path and saves the
// result on submit.
func Run(path string) error {
	cur, err := Load(path)
	if err != nil {
		return err
	}

	// Light theme tweaks inspired by freeze/interactive.go
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(22).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(22).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)

	args := strings.Join(cur.ShellArgs, " ")
	scrollback := strconv.Itoa(cur.Scrollback)
	timeout := strconv.Itoa(cur.CompletionTimeout)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Settings").Description("终端与 shell 集成设置，保存到 settings.json"),
			huh.NewConfirm().Title("Auto completion").Value(&cur.AutoCompletion),
			huh.NewConfirm().Title("Highlight errors").Value(&cur.HighlightErrors),
			huh.NewConfirm().Title("Shell integration").Value(&cur.Integration),
		),
		huh.NewGroup(
			huh.NewInput().Title("Shell path").Placeholder("$SHELL").Value(&cur.ShellPath),
			huh.NewInput().Title("Shell args").Value(&args),
			huh.NewInput().Title("Scrollback").Value(&scrollback).Validate(nonNegative),
			huh.NewInput().Title("Completion timeout (ms)").Value(&timeout).Validate(nonNegative),
		),
	).WithTheme(theme).WithWidth(60)

	if err := form.Run(); err != nil {
		return err // form canceled or failed
	}

	cur.ShellArgs = strings.Fields(args)
	cur.Scrollback, _ = strconv.Atoi(strings.TrimSpace(scrollback))
	cur.CompletionTimeout, _ = strconv.Atoi(strings.TrimSpace(timeout))
	if err := Save(path, cur); err != nil {
		return err
	}
	fmt.Printf("\n✓ 已保存 %s\n\n", path)
	return nil
}

func nonNegative(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("需要非负整数")
	}
	return nil
}
