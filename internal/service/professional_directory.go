package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"healthconnect/internal/domain/entity"
	"healthconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisDirectoryKey holds the JSON encoded list of active professionals.
	RedisDirectoryKey = "directory:professionals"

	// Timeout for individual Redis operations
	directoryRedisTimeout = 2 * time.Second
)

// ProfessionalDirectory is the read-only view of bookable health professionals.
type ProfessionalDirectory interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ListActive(ctx context.Context) ([]entity.User, error)
	Invalidate(ctx context.Context)
}

type professionalDirectory struct {
	log         *logrus.Logger
	userRepo    repository.UserRepository
	redisClient *redis.Client
	ttl         time.Duration
}

// NewProfessionalDirectory builds the directory. A nil redisClient or a zero
// ttl disables the list cache.
func NewProfessionalDirectory(log *logrus.Logger, userRepo repository.UserRepository, redisClient *redis.Client, ttl time.Duration) ProfessionalDirectory {
	return &professionalDirectory{
		log:         log,
		userRepo:    userRepo,
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// FindActiveByID always reads the store so a deactivated professional cannot
// be booked from a stale cache entry.
func (d *professionalDirectory) FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := d.userRepo.FindActiveProfessionalByID(ctx, id)
	if err != nil {
		d.log.Warnf("Failed to find professional %s: %+v", id, err)
		return nil, err
	}
	return user, nil
}

func (d *professionalDirectory) ListActive(ctx context.Context) ([]entity.User, error) {
	if cached, ok := d.readCache(ctx); ok {
		return cached, nil
	}

	professionals, err := d.userRepo.FindActiveProfessionals(ctx)
	if err != nil {
		d.log.Warnf("Failed to list professionals: %+v", err)
		return nil, err
	}

	d.writeCache(ctx, professionals)
	return professionals, nil
}

func (d *professionalDirectory) Invalidate(ctx context.Context) {
	if !d.cacheEnabled() {
		return
	}

	redisCtx, cancel := context.WithTimeout(ctx, directoryRedisTimeout)
	defer cancel()

	if err := d.redisClient.Del(redisCtx, RedisDirectoryKey).Err(); err != nil {
		d.log.Warnf("Failed to invalidate professional directory cache: %+v", err)
	}
}

func (d *professionalDirectory) cacheEnabled() bool {
	return d.redisClient != nil && d.ttl > 0
}

// readCache treats every Redis failure as a miss.
func (d *professionalDirectory) readCache(ctx context.Context) ([]entity.User, bool) {
	if !d.cacheEnabled() {
		return nil, false
	}

	redisCtx, cancel := context.WithTimeout(ctx, directoryRedisTimeout)
	defer cancel()

	raw, err := d.redisClient.Get(redisCtx, RedisDirectoryKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			d.log.Warnf("Failed to read professional directory cache: %+v", err)
		}
		return nil, false
	}

	var professionals []entity.User
	if err := json.Unmarshal(raw, &professionals); err != nil {
		d.log.Warnf("Discarding corrupt professional directory cache: %+v", err)
		return nil, false
	}
	return professionals, true
}

func (d *professionalDirectory) writeCache(ctx context.Context, professionals []entity.User) {
	if !d.cacheEnabled() {
		return
	}

	raw, err := json.Marshal(professionals)
	if err != nil {
		d.log.Warnf("Failed to encode professional directory: %+v", err)
		return
	}

	redisCtx, cancel := context.WithTimeout(ctx, directoryRedisTimeout)
	defer cancel()

	if err := d.redisClient.Set(redisCtx, RedisDirectoryKey, raw, d.ttl).Err(); err != nil {
		d.log.Warnf("Failed to cache professional directory: %+v", err)
	}
}
