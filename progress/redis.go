package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coursecast/coursecast/constant"
	"github.com/coursecast/coursecast/log"
	"github.com/redis/go-redis/v9"
	"github.com/samber/mo"
)

const redisTimeout = 3 * time.Second

// RedisOptions configures the redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// redisStore keeps all records in a single hash so that ClearAll is one DEL.
type redisStore struct {
	rc *redis.Client
}

// NewRedis connects to redis and verifies the connection.
func NewRedis(opts *RedisOptions) (Store, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	return &redisStore{rc: rc}, nil
}

func (r *redisStore) progressKey() string {
	return constant.Coursecast + ":" + "progress"
}

func (r *redisStore) volumeKey() string {
	return constant.Coursecast + ":" + "volume"
}

func (r *redisStore) Read(courseID string) mo.Option[*CourseProgress] {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	raw, err := r.rc.HGet(ctx, r.progressKey(), courseID).Bytes()
	if errors.Is(err, redis.Nil) {
		return mo.None[*CourseProgress]()
	}
	if err != nil {
		log.Warnf("read progress of course %s: %v", courseID, err)
		return mo.None[*CourseProgress]()
	}

	var record CourseProgress
	if err := json.Unmarshal(raw, &record); err != nil {
		log.Warnf("decode progress of course %s: %v", courseID, err)
		return mo.None[*CourseProgress]()
	}
	return mo.Some(&record)
}

func (r *redisStore) Write(courseID string, p *CourseProgress) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.rc.HSet(ctx, r.progressKey(), courseID, raw).Err()
}

func (r *redisStore) All() (map[string]*CourseProgress, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	raw, err := r.rc.HGetAll(ctx, r.progressKey()).Result()
	if err != nil {
		return nil, err
	}

	all := make(map[string]*CourseProgress, len(raw))
	for id, value := range raw {
		var record CourseProgress
		if err := json.Unmarshal([]byte(value), &record); err != nil {
			log.Warnf("decode progress of course %s: %v", id, err)
			continue
		}
		all[id] = &record
	}
	return all, nil
}

func (r *redisStore) ClearAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	return r.rc.Del(ctx, r.progressKey()).Err()
}

func (r *redisStore) Volume() mo.Option[float64] {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	raw, err := r.rc.Get(ctx, r.volumeKey()).Result()
	if errors.Is(err, redis.Nil) {
		return mo.None[float64]()
	}
	if err != nil {
		log.Warnf("read volume: %v", err)
		return mo.None[float64]()
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return mo.None[float64]()
	}
	return mo.Some(v)
}

func (r *redisStore) SetVolume(v float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	return r.rc.Set(ctx, r.volumeKey(), strconv.FormatFloat(v, 'f', -1, 64), 0).Err()
}
