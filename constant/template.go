// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// CourseTemplate is a Go text/template for rendering a single catalog entry in the CLI.
const CourseTemplate = `{{ purple .Title }} {{ faint (printf "#%s" .ID) }}
  {{ faint "by" }} {{ .Instructor }} {{ faint "•" }} {{ .Category }} {{ faint "•" }} {{ level .Level }}
  {{ yellow (printf "★ %.1f" .Rating) }} {{ faint (printf "(%d students)" .StudentsCount) }} {{ faint "•" }} {{ .Duration }} {{ faint "•" }} {{ price .Price }}{{ if .Owned }} {{ cyan "owned" }}{{ end }}{{ if .Progress }} {{ .Progress }}{{ end }}
`

// ProgressTemplate is a Go text/template for rendering a persisted watch record.
const ProgressTemplate = `{{ purple .Title }} {{ faint (printf "#%s" .ID) }}
  {{ .Elapsed }} / {{ .Total }} {{ faint "•" }} {{ .Percent }}%{{ if .Completed }} {{ green "completed" }}{{ end }}
  {{ faint "last watched" }} {{ .LastWatched }}
`
