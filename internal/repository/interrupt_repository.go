package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"exam_ai_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

const interruptKeyPrefix = "exam_ai:interrupt:"

// ErrInterruptMissing 中断事件不存在或已过期
var ErrInterruptMissing = errors.New("pending interrupt not found")

// InterruptRepository 暂存等待用户回复的工作流中断，带过期时间
type InterruptRepository struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewInterruptRepository(rdb *redis.Client, ttl time.Duration) *InterruptRepository {
	return &InterruptRepository{Redis: rdb, TTL: ttl}
}

func (r *InterruptRepository) Save(ctx context.Context, p *model.PendingInterrupt) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, interruptKeyPrefix+p.EventID, data, r.TTL).Err()
}

// Take 取出并删除中断记录，同一事件只能续跑一次
func (r *InterruptRepository) Take(ctx context.Context, eventID string) (*model.PendingInterrupt, error) {
	key := interruptKeyPrefix + eventID

	var get *redis.StringCmd
	_, err := r.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.Get(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, ErrInterruptMissing
	}
	if err != nil {
		return nil, err
	}

	var p model.PendingInterrupt
	if err := json.Unmarshal([]byte(get.Val()), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
