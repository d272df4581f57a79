package progress

import (
	"fmt"

	"github.com/coursecast/coursecast/key"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Store is the durable key-value home of watch records and the last used volume.
// Writes replace the whole record. Records are only ever removed all at once.
type Store interface {
	// Read returns the record of a course, if any. Read failures are reported as absence.
	Read(courseID string) mo.Option[*CourseProgress]

	// Write replaces the record of a course.
	Write(courseID string, p *CourseProgress) error

	// All returns every stored record keyed by course id.
	All() (map[string]*CourseProgress, error)

	// ClearAll removes every record.
	ClearAll() error

	// Volume returns the last saved volume scalar in [0, 1], if any.
	Volume() mo.Option[float64]

	// SetVolume saves the volume scalar.
	SetVolume(v float64) error
}

// Backend identifiers accepted by the progress.backend setting.
const (
	BackendDisk   = "disk"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// AvailableBackends lists the supported backend identifiers.
func AvailableBackends() []string {
	return []string{BackendDisk, BackendRedis, BackendMemory}
}

// NewStore opens the backend selected in the configuration.
func NewStore() (Store, error) {
	switch backend := viper.GetString(key.ProgressBackend); backend {
	case BackendDisk, "":
		return NewDisk(), nil
	case BackendRedis:
		return NewRedis(&RedisOptions{
			Addr:     viper.GetString(key.ProgressRedisAddr),
			Password: viper.GetString(key.ProgressRedisPassword),
			DB:       viper.GetInt(key.ProgressRedisDB),
		})
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown progress backend %q", backend)
	}
}
