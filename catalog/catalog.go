// Package catalog provides the read-only list of courses on sale.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coursecast/coursecast/filesystem"
	"github.com/coursecast/coursecast/key"
	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/validate"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

//go:embed courses.json
var embedded []byte

// ErrNotFound is returned for ids the catalog does not contain.
var ErrNotFound = errors.New("course not found")

// Course is a course on sale.
type Course struct {
	ID            string    `json:"id" validate:"required"`
	Title         string    `json:"title" validate:"required"`
	Description   string    `json:"description"`
	VideoURL      string    `json:"videoUrl" validate:"required"`
	Price         float64   `json:"price" validate:"gte=0"`
	Thumbnail     string    `json:"thumbnail"`
	Duration      string    `json:"duration"`
	Instructor    string    `json:"instructor" validate:"required"`
	Category      string    `json:"category" validate:"required"`
	Level         string    `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Rating        float64   `json:"rating" validate:"gte=0,lte=5"`
	StudentsCount int       `json:"studentsCount" validate:"gte=0"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (c *Course) String() string {
	return c.Title
}

// Catalog is an immutable set of courses.
type Catalog struct {
	courses []*Course
	byID    map[string]*Course
}

// New validates courses and indexes them by id.
func New(courses []*Course) (*Catalog, error) {
	byID := make(map[string]*Course, len(courses))

	for i, c := range courses {
		if c == nil {
			return nil, fmt.Errorf("course #%d is empty", i)
		}
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("course %q: %w", c.ID, err)
		}
		if _, ok := byID[c.ID]; ok {
			return nil, fmt.Errorf("duplicate course id %q", c.ID)
		}
		byID[c.ID] = c
	}

	return &Catalog{courses: courses, byID: byID}, nil
}

// Parse decodes a JSON array of courses.
func Parse(data []byte) (*Catalog, error) {
	var courses []*Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(courses)
}

// Embedded returns the catalog compiled into the binary.
func Embedded() *Catalog {
	return lo.Must(Parse(embedded))
}

var (
	loaded  *Catalog
	loadErr error
	once    sync.Once
)

// Load returns the configured catalog: the file at catalog.path when set,
// the embedded one otherwise. The result is cached.
func Load() (*Catalog, error) {
	once.Do(func() {
		path := viper.GetString(key.CatalogPath)
		if path == "" {
			loaded = Embedded()
			return
		}

		log.Infof("loading catalog from %s", path)
		data, err := filesystem.API().ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("read catalog: %w", err)
			return
		}
		loaded, loadErr = Parse(data)
	})

	return loaded, loadErr
}

// Course returns the course with the given id.
func (c *Catalog) Course(id string) (*Course, error) {
	course, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return course, nil
}

// Courses returns every course in catalog order.
func (c *Catalog) Courses() []*Course {
	return append([]*Course(nil), c.courses...)
}

// Len returns the number of courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Categories returns the distinct categories in order of first appearance.
func (c *Catalog) Categories() []string {
	return lo.Uniq(lo.Map(c.courses, func(course *Course, _ int) string { return course.Category }))
}
