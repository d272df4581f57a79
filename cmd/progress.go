package cmd

import (
	"encoding/json"
	"os"
	"sort"
	"text/template"

	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/progress"
	"github.com/coursecast/coursecast/style"
	"github.com/coursecast/coursecast/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var progressTemplate = lo.Must(template.New("progress").Funcs(templateFuncs).Parse(constant.ProgressTemplate))

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	progressCmd.SetOut(os.Stdout)
}

// progressCmd prints the saved watch progress, most recent first.
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved watch progress",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := progress.NewStore()
		handleErr(err)

		saved, err := store.All()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(saved))
			return
		}

		if len(saved) == 0 {
			cmd.Println(style.Faint("Nothing watched yet"))
			return
		}

		courses, err := catalog.Load()
		handleErr(err)

		ids := lo.Keys(saved)
		sort.Slice(ids, func(i, j int) bool {
			return saved[ids[i]].LastWatched.After(saved[ids[j]].LastWatched)
		})

		for i, id := range ids {
			p := saved[id]

			title := id
			if course, err := courses.Course(id); err == nil {
				title = course.Title
			}

			handleErr(progressTemplate.Execute(cmd.OutOrStdout(), struct {
				ID, Title, Elapsed, Total, LastWatched string
				Percent                                int
				Completed                              bool
			}{
				ID:          id,
				Title:       title,
				Elapsed:     util.FormatSeconds(p.CurrentTime),
				Total:       util.FormatSeconds(p.Duration),
				LastWatched: p.LastWatched.Local().Format("2006-01-02 15:04"),
				Percent:     p.Percent(),
				Completed:   p.Completed,
			}))

			if i < len(ids)-1 {
				cmd.Println()
			}
		}
	},
}

func init() {
	progressCmd.AddCommand(progressSchemaCmd)
	progressSchemaCmd.SetOut(os.Stdout)
}

// progressSchemaCmd prints the JSON schema of the progress file.
var progressSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the progress file",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		schema := reflector.Reflect(map[string]*progress.CourseProgress{})
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}
