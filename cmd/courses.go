package cmd

import (
	"encoding/json"
	"os"
	"text/template"

	"github.com/coursecast/coursecast/auth"
	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/color"
	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/icon"
	"github.com/coursecast/coursecast/progress"
	"github.com/coursecast/coursecast/query"
	"github.com/coursecast/coursecast/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var templateFuncs = template.FuncMap{
	"purple": style.Fg(color.Purple),
	"yellow": style.Fg(color.Yellow),
	"green":  style.Fg(color.Green),
	"cyan":   style.Fg(color.Cyan),
	"faint":  style.Faint,
	"bold":   style.Bold,
	"level":  style.Level,
	"price":  style.Price,
}

var courseTemplate = lo.Must(template.New("course").Funcs(templateFuncs).Parse(constant.CourseTemplate))

// courseEntry is a catalog course as listed by the CLI.
type courseEntry struct {
	*catalog.Course
	Owned    bool                     `json:"owned"`
	Progress *progress.CourseProgress `json:"progress,omitempty"`
}

func newCourseEntries(courses []*catalog.Course) []courseEntry {
	user := auth.Current()

	var saved map[string]*progress.CourseProgress
	if store, err := progress.NewStore(); err == nil {
		saved, _ = store.All()
	}

	return lo.Map(courses, func(c *catalog.Course, _ int) courseEntry {
		return courseEntry{
			Course:   c,
			Owned:    user.IsPresent() && user.MustGet().Owns(c.ID),
			Progress: saved[c.ID],
		}
	})
}

func printCourses(cmd *cobra.Command, courses []*catalog.Course, asJson bool) {
	entries := newCourseEntries(courses)

	if asJson {
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
		return
	}

	if len(entries) == 0 {
		cmd.Println(style.Faint("No courses found"))
		return
	}

	for i, entry := range entries {
		handleErr(courseTemplate.Execute(cmd.OutOrStdout(), entry))
		if i < len(entries)-1 {
			cmd.Println()
		}
	}
}

func init() {
	rootCmd.AddCommand(coursesCmd)
	addQueryFlags(coursesCmd)
	coursesCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	coursesCmd.SetOut(os.Stdout)
}

// coursesCmd lists the catalog without starting the interface.
var coursesCmd = &cobra.Command{
	Use:     "courses",
	Aliases: []string{"ls"},
	Short:   "List courses of the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		q := queryFromFlags(cmd)

		courses, err := catalog.Load()
		handleErr(err)

		if q.Search != "" {
			handleErr(query.Remember(q.Search, 1))
		}

		printCourses(cmd, courses.Find(q), lo.Must(cmd.Flags().GetBool("json")))
	},
}

func init() {
	coursesCmd.AddCommand(coursesCategoriesCmd)
	coursesCategoriesCmd.SetOut(os.Stdout)
}

var coursesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List course categories",
	Run: func(cmd *cobra.Command, args []string) {
		courses, err := catalog.Load()
		handleErr(err)

		for _, category := range courses.Categories() {
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(icon.Get(icon.Mark)), category)
		}
	},
}
