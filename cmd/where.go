package cmd

import (
	"encoding/json"
	"os"

	"github.com/coursecast/coursecast/color"
	"github.com/coursecast/coursecast/style"
	"github.com/coursecast/coursecast/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// whereTarget is a path printed by the where command. Hidden targets are
// only printed when asked for by flag.
type whereTarget struct {
	name   string
	flag   string
	short  string
	path   func() string
	hidden bool
}

var wherePaths = []whereTarget{
	{name: "Config", flag: "config", short: "c", path: where.Config},
	{name: "Progress", flag: "progress", short: "p", path: where.Progress},
	{name: "Catalog", flag: "catalog", path: where.Catalog},
	{name: "Logs", flag: "logs", short: "l", path: where.Logs},
	{name: "Cache", flag: "cache", path: where.Cache, hidden: true},
	{name: "Volume", flag: "volume", path: where.Volume, hidden: true},
	{name: "Queries", flag: "queries", path: where.Queries, hidden: true},
	{name: "Temp", flag: "temp", path: where.Temp, hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range wherePaths {
		whereCmd.Flags().BoolP(t.flag, t.short, false, t.name+" path")
		if t.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(t.flag))
		}
	}

	whereCmd.Flags().BoolP("json", "j", false, "Print every path as a JSON object")
	whereCmd.MarkFlagsMutuallyExclusive(append(lo.Map(wherePaths, func(t whereTarget, _ int) string {
		return t.flag
	}), "json")...)

	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints where settings, progress and caches are kept.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where settings, watch progress and caches are kept",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(t.flag)) {
				cmd.Println(t.path())
				return
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(wherePaths, func(t whereTarget) (string, string) {
				return t.flag, t.path()
			})
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(paths))
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(wherePaths, func(t whereTarget, _ int) bool { return t.hidden })

		for i, t := range visible {
			cmd.Printf("%s %s\n", header(t.name+"?"), style.Fg(color.Yellow)("--"+t.flag))
			cmd.Println(t.path())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}
