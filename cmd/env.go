package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/coursecast/coursecast/color"
	"github.com/coursecast/coursecast/config"
	"github.com/coursecast/coursecast/style"
	"github.com/coursecast/coursecast/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envVar is a supported environment variable and the default it overrides.
type envVar struct {
	name     string
	fallback mo.Option[any]
}

// envVars lists every supported variable sorted by name.
func envVars() []envVar {
	vars := lo.Map(lo.Values(config.Default), func(f config.Field, _ int) envVar {
		return envVar{name: f.Env(), fallback: mo.Some(f.Value)}
	})
	vars = append(vars, envVar{name: where.EnvConfigPath, fallback: mo.None[any]()})

	slices.SortFunc(vars, func(a, b envVar) int {
		return strings.Compare(a.name, b.name)
	})
	return vars
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env [filter]",
	Short: "Display the collection of supported environment variables",
	Long:  `Display the supported environment variables and their current values. An optional filter narrows the list, e.g. "coursecast env progress".`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		var filter string
		if len(args) > 0 {
			filter = strings.ToUpper(config.EnvKeyReplacer.Replace(args[0]))
		}

		for _, env := range envVars() {
			if filter != "" && !strings.Contains(env.name, filter) {
				continue
			}

			value, present := os.LookupEnv(env.name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env.name))
			cmd.Print("=")

			switch {
			case present:
				cmd.Println(style.Fg(color.Green)(value))
			case env.fallback.IsPresent():
				cmd.Println(style.Fg(color.Red)("unset") + " " + style.Faint(fmt.Sprintf("(default %v)", env.fallback.MustGet())))
			default:
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
