// Package config registers every setting with its default and rule, and loads
// overrides from the config file and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/coursecast/coursecast/color"
	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/key"
	"github.com/coursecast/coursecast/style"
	"github.com/coursecast/coursecast/validate"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	// Rule is a validator tag every new value must satisfy. Empty accepts anything.
	Rule string
}

// Check reports whether v is an acceptable value for the field.
func (f *Field) Check(v any) error {
	if f.Rule == "" {
		return nil
	}
	return validate.Var(f.Key, v, f.Rule)
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Coursecast + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case float64:
		return "float64"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string, rule ...string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		if len(rule) > 0 {
			f.Rule = rule[0]
		}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.Player, "mpv", "Media player backend to use.\nAvailable options are: mpv", "oneof=mpv")
	register(key.PlayerAutoplay, true, "Start playback as soon as the media is ready")
	register(key.PlayerResumeThreshold, 30, "Resume from saved progress only when it is past this many seconds", "gte=0")
	register(key.PlayerSaveInterval, 5, "Seconds without a time update before progress is written", "gte=1")
	register(key.PlayerSkipSeconds, 10, "Seconds to skip forward or backward", "gte=1")
	register(key.PlayerVolumeStep, 5, "Volume step in percent for volume up/down", "gte=1,lte=100")
	register(key.PlayerDefaultVolume, 100, "Initial volume in percent when no volume was saved before", "gte=0,lte=100")
	register(key.TransportMaxBandwidth, 0, "Highest HLS variant bandwidth in bits per second.\n0 means no limit", "gte=0")
	register(key.TransportTimeout, 15, "Manifest request timeout in seconds", "gte=1")
	register(key.TransportRetries, 2, "Number of retries for failed manifest requests", "gte=0,lte=10")
	register(key.ProgressBackend, "disk", "Where watch progress is kept.\nAvailable options are: disk, redis, memory", "oneof=disk redis memory")
	register(key.ProgressRedisAddr, "localhost:6379", "Redis address for the redis progress backend", "hostname_port")
	register(key.ProgressRedisPassword, "", "Redis password for the redis progress backend")
	register(key.ProgressRedisDB, 0, "Redis database index for the redis progress backend", "gte=0,lte=15")
	register(key.CatalogPath, "", "Path to a JSON course catalog.\nThe built-in catalog is used when empty")
	register(key.SearchShowQuerySuggestions, true, "Suggest previous course searches while typing")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)", "oneof=emoji kaomoji plain squares nerd")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI", "gte=0,lte=3")
	register(key.TUIShowProgress, true, "Show watch progress under course titles")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace", "oneof=panic fatal error warn info debug trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Look for a newer release when showing help and version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ if .Rule }}
{{ blue "Rule:" }}    {{ .Rule }}{{ end }}`))
