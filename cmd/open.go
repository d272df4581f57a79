package cmd

import (
	"fmt"

	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/icon"
	"github.com/coursecast/coursecast/open"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().StringP("app", "a", "", "Open with this application instead of the default one")
}

// openCmd hands the course video to an external application. Progress is not tracked there.
var openCmd = &cobra.Command{
	Use:               "open <course-id>",
	Short:             "Open the course video with an external application",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionCourseIDs,
	Run: func(cmd *cobra.Command, args []string) {
		courses, err := catalog.Load()
		handleErr(err)

		course, err := courses.Course(args[0])
		handleErr(err)

		handleErr(open.URL(course.VideoURL, lo.Must(cmd.Flags().GetString("app"))))
		fmt.Printf("%s opened %s\n", icon.Get(icon.Success), course.Title)
	},
}
