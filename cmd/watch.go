package cmd

import (
	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchCmd opens the player for a single course.
var watchCmd = &cobra.Command{
	Use:               "watch <course-id>",
	Short:             "Open the player for a course",
	Long:              "Open the player for a course, resuming from saved progress when there is any.",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionCourseIDs,
	Run: func(cmd *cobra.Command, args []string) {
		courses, err := catalog.Load()
		handleErr(err)

		_, err = courses.Course(args[0])
		handleErr(err)

		CheckDependencies()
		handleErr(tui.Run(&tui.Options{CourseID: args[0]}))
	},
}

func completionCourseIDs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	courses, err := catalog.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var ids []string
	for _, c := range courses.Courses() {
		ids = append(ids, c.ID+"\t"+c.Title)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
