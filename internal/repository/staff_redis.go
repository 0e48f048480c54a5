package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nwoyi/staffing-api/internal/domain"
)

const redisMaxTxRetries = 5

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// redisStaffRepository stores each record as a JSON document, a sorted set ordered by
// creation time, and a hash enforcing email uniqueness.
type redisStaffRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisStaffRepository builds a repository on top of an existing client.
func NewRedisStaffRepository(client *redis.Client, keyPrefix string) StaffRepository {
	if keyPrefix == "" {
		keyPrefix = "staffing"
	}
	return &redisStaffRepository{client: client, prefix: keyPrefix}
}

func (r *redisStaffRepository) recordKey(id string) string {
	return r.prefix + ":staff:" + id
}

func (r *redisStaffRepository) indexKey() string {
	return r.prefix + ":staff:by_created"
}

func (r *redisStaffRepository) emailKey() string {
	return r.prefix + ":staff:emails"
}

func (r *redisStaffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	payload, err := json.Marshal(staff)
	if err != nil {
		return fmt.Errorf("encode staff: %w", err)
	}

	claimed, err := r.client.HSetNX(ctx, r.emailKey(), staff.Email, staff.ID).Result()
	if err != nil {
		return fmt.Errorf("claim email: %w", err)
	}
	if !claimed {
		return ErrDuplicateEmail
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.recordKey(staff.ID), payload, 0)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{
			Score:  float64(staff.CreatedAt.UnixMicro()),
			Member: staff.ID,
		})
		return nil
	})
	if err != nil {
		_ = r.client.HDel(ctx, r.emailKey(), staff.Email).Err()
		return fmt.Errorf("store staff: %w", err)
	}
	return nil
}

func (r *redisStaffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, int, error) {
	filter, err := filter.normalized()
	if err != nil {
		return nil, 0, err
	}

	total, err := r.client.ZCard(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("count staff: %w", err)
	}

	start := int64(filter.Offset)
	stop := start + int64(filter.Limit) - 1
	if stop < start {
		stop = math.MaxInt64
	}
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), start, stop).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("list staff ids: %w", err)
	}
	result := make([]domain.StaffMember, 0, len(ids))
	if len(ids) == 0 {
		return result, int(total), nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("load staff: %w", err)
	}
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			// deleted between ZREVRANGE and MGET
			continue
		}
		var staff domain.StaffMember
		if err := json.Unmarshal([]byte(raw), &staff); err != nil {
			return nil, 0, fmt.Errorf("decode staff: %w", err)
		}
		result = append(result, staff)
	}
	return result, int(total), nil
}

func (r *redisStaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	return r.load(ctx, r.client, id)
}

func (r *redisStaffRepository) Update(ctx context.Context, id string, patch domain.StaffPatch, updatedAt time.Time) (*domain.StaffMember, error) {
	key := r.recordKey(id)
	var updated *domain.StaffMember

	txf := func(tx *redis.Tx) error {
		staff, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		oldEmail := staff.Email
		staff.Apply(patch, updatedAt)

		emailChanged := staff.Email != oldEmail
		if emailChanged {
			owner, err := tx.HGet(ctx, r.emailKey(), staff.Email).Result()
			switch {
			case err == nil && owner != id:
				return ErrDuplicateEmail
			case err != nil && !errors.Is(err, redis.Nil):
				return fmt.Errorf("check email: %w", err)
			}
		}

		payload, err := json.Marshal(staff)
		if err != nil {
			return fmt.Errorf("encode staff: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			if emailChanged {
				pipe.HDel(ctx, r.emailKey(), oldEmail)
				pipe.HSet(ctx, r.emailKey(), staff.Email, id)
			}
			return nil
		})
		if err != nil {
			return err
		}
		updated = staff
		return nil
	}

	if err := r.withRetries(ctx, txf, key, r.emailKey()); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *redisStaffRepository) Delete(ctx context.Context, id string) error {
	key := r.recordKey(id)

	txf := func(tx *redis.Tx) error {
		staff, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, r.indexKey(), id)
			pipe.HDel(ctx, r.emailKey(), staff.Email)
			return nil
		})
		return err
	}
	return r.withRetries(ctx, txf, key)
}

func (r *redisStaffRepository) Close() error {
	return r.client.Close()
}

func (r *redisStaffRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisStaffRepository) load(ctx context.Context, cmd stringGetter, id string) (*domain.StaffMember, error) {
	raw, err := cmd.Get(ctx, r.recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load staff %s: %w", id, err)
	}
	var staff domain.StaffMember
	if err := json.Unmarshal(raw, &staff); err != nil {
		return nil, fmt.Errorf("decode staff %s: %w", id, err)
	}
	return &staff, nil
}

// withRetries runs an optimistic WATCH transaction, retrying when a watched key changed.
func (r *redisStaffRepository) withRetries(ctx context.Context, txf func(*redis.Tx) error, keys ...string) error {
	for i := 0; i < redisMaxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("staff transaction aborted after %d retries", redisMaxTxRetries)
}
