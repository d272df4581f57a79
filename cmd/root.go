// Package cmd implements the coursecast command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/color"
	"github.com/coursecast/coursecast/config"
	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/icon"
	"github.com/coursecast/coursecast/key"
	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/style"
	"github.com/coursecast/coursecast/tui"
	"github.com/coursecast/coursecast/util"
	"github.com/coursecast/coursecast/version"
	"github.com/coursecast/coursecast/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("catalog", "C", "", "Path to a JSON course catalog")
	lo.Must0(viper.BindPFlag(key.CatalogPath, rootCmd.PersistentFlags().Lookup("catalog")))

	addQueryFlags(rootCmd)

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Player sockets left behind by a crashed session.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// addQueryFlags registers the listing filters shared by the root and courses commands.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "Search titles, descriptions and instructors")
	cmd.Flags().String("category", "", "Only list courses of this category")
	cmd.Flags().String("level", "", "Only list courses of this level ("+strings.Join(catalog.Levels, ", ")+")")
	cmd.Flags().String("sort", string(catalog.SortNewest), "Listing order")

	lo.Must0(cmd.RegisterFlagCompletionFunc("level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return catalog.Levels, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(catalog.Sorts, func(s catalog.Sort, _ int) string { return string(s) }), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		courses, err := catalog.Load()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return courses.Categories(), cobra.ShellCompDirectiveNoFileComp
	}))
}

// queryFromFlags reads the listing filters registered by addQueryFlags.
func queryFromFlags(cmd *cobra.Command) catalog.Query {
	q := catalog.Query{
		Search:   lo.Must(cmd.Flags().GetString("query")),
		Category: lo.Must(cmd.Flags().GetString("category")),
		Level:    lo.Must(cmd.Flags().GetString("level")),
		Sort:     catalog.Sort(lo.Must(cmd.Flags().GetString("sort"))),
	}
	handleErr(q.Validate())
	return q
}

// rootCmd defines the entry point for the coursecast application.
var rootCmd = &cobra.Command{
	Use:   constant.Coursecast,
	Short: "Browse, buy and watch video courses from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Browse, buy and watch video courses from the terminal"),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		for _, err := range config.Rejected() {
			_, _ = fmt.Fprintf(os.Stderr, "%s %s, using the default\n", style.Fg(color.Yellow)("warning:"), err)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			Query: queryFromFlags(cmd),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
