package progress

import (
	"sync"

	"github.com/coursecast/coursecast/filesystem"
	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// diskStore keeps records in a JSON file under the config directory.
type diskStore struct {
	mu      sync.Mutex
	records *gache.Cache[map[string]*CourseProgress]
	volume  *gache.Cache[*float64]
}

// NewDisk returns a Store backed by files in the configuration directory.
func NewDisk() Store {
	return &diskStore{
		records: gache.New[map[string]*CourseProgress](&gache.Options{
			Path:       where.Progress(),
			FileSystem: &filesystem.GacheFs{},
		}),
		volume: gache.New[*float64](&gache.Options{
			Path:       where.Volume(),
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (d *diskStore) load() (map[string]*CourseProgress, error) {
	cached, expired, err := d.records.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*CourseProgress), nil
	}
	return cached, nil
}

func (d *diskStore) Read(courseID string) mo.Option[*CourseProgress] {
	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.load()
	if err != nil {
		log.Warnf("read progress of course %s: %v", courseID, err)
		return mo.None[*CourseProgress]()
	}

	record, ok := records[courseID]
	if !ok || record == nil {
		return mo.None[*CourseProgress]()
	}

	copied := *record
	return mo.Some(&copied)
}

func (d *diskStore) Write(courseID string, p *CourseProgress) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.load()
	if err != nil {
		return err
	}

	copied := *p
	records[courseID] = &copied
	return d.records.Set(records)
}

func (d *diskStore) All() (map[string]*CourseProgress, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.load()
	if err != nil {
		return nil, err
	}

	all := make(map[string]*CourseProgress, len(records))
	for id, record := range records {
		if record == nil {
			continue
		}
		copied := *record
		all[id] = &copied
	}
	return all, nil
}

func (d *diskStore) ClearAll() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.records.Set(make(map[string]*CourseProgress))
}

func (d *diskStore) Volume() mo.Option[float64] {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, expired, err := d.volume.Get()
	if err != nil {
		log.Warnf("read volume: %v", err)
		return mo.None[float64]()
	}
	if expired || v == nil {
		return mo.None[float64]()
	}
	return mo.Some(*v)
}

func (d *diskStore) SetVolume(v float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.volume.Set(&v)
}
