package entities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	// Key patterns
	entityKeyPattern      = "entity:%s"
	effectsKeyPattern     = "entity:%s:effects"
	effectNamesKeyPattern = "entity:%s:effect_names"
	ownerEntitiesKey      = "owner:%s:entities"

	// maxUpdateAttempts bounds optimistic retries of a watched effect update
	maxUpdateAttempts = 3
)

// Data is the serialized form of an entity header in Redis. Effects live in
// their own hash so a single effect can change without rewriting the entity.
type Data struct {
	ID         string         `json:"id"`
	OwnerID    string         `json:"owner_id"`
	Name       string         `json:"name"`
	Attributes map[string]int `json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

// redisRepo implements Repository using Redis
type redisRepo struct {
	client redis.UniversalClient
	clock  TimeProvider
}

// NewRedisRepository creates a new Redis-backed entity repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	clock := cfg.TimeProvider
	if clock == nil {
		clock = SystemTime()
	}

	return &redisRepo{
		client: cfg.Client,
		clock:  clock,
	}
}

func entityKey(id string) string      { return fmt.Sprintf(entityKeyPattern, id) }
func effectsKey(id string) string     { return fmt.Sprintf(effectsKeyPattern, id) }
func effectNamesKey(id string) string { return fmt.Sprintf(effectNamesKeyPattern, id) }

// Create stores a new entity and its initial effects
func (r *redisRepo) Create(ctx context.Context, e *entity.Entity) error {
	if e == nil {
		return dnderr.InvalidArgument("entity cannot be nil")
	}
	if e.ID == "" {
		return dnderr.InvalidArgument("entity ID is required")
	}

	exists, err := r.client.Exists(ctx, entityKey(e.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check entity existence: %w", err)
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("entity with ID '%s' already exists", e.ID).
			WithMeta("entity_id", e.ID)
	}

	stored := e.Clone()
	stored.NormalizeAttributes()
	now := r.clock.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	headerJSON, err := json.Marshal(toData(stored))
	if err != nil {
		return fmt.Errorf("failed to marshal entity data: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, entityKey(e.ID), string(headerJSON), 0)
	if stored.OwnerID != "" {
		pipe.SAdd(ctx, fmt.Sprintf(ownerEntitiesKey, stored.OwnerID), e.ID)
	}

	seen := make(map[string]bool, len(stored.Effects))
	for _, effect := range stored.Effects {
		key := entity.NormalizeName(effect.Name)
		if seen[key] {
			return dnderr.AlreadyExistsf("entity '%s' carries effect '%s' twice", e.ID, effect.Name)
		}
		seen[key] = true

		effectJSON, err := json.Marshal(effect)
		if err != nil {
			return fmt.Errorf("failed to marshal effect %s: %w", effect.ID, err)
		}
		pipe.HSet(ctx, effectsKey(e.ID), effect.ID, string(effectJSON))
		pipe.HSet(ctx, effectNamesKey(e.ID), key, effect.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create entity: %w", err)
	}

	return nil
}

// Get retrieves an entity with its effects
func (r *redisRepo) Get(ctx context.Context, id string) (*entity.Entity, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("entity ID is required")
	}

	headerJSON, err := r.client.Get(ctx, entityKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("entity with ID '%s' not found", id).
				WithMeta("entity_id", id)
		}
		return nil, fmt.Errorf("failed to get entity from Redis: %w", err)
	}

	var data Data
	if err := json.Unmarshal(headerJSON, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity data: %w", err)
	}

	rawEffects, err := r.client.HGetAll(ctx, effectsKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get effects from Redis: %w", err)
	}

	result := fromData(&data)
	for effectID, raw := range rawEffects {
		var effect entity.Effect
		if err := json.Unmarshal([]byte(raw), &effect); err != nil {
			// One corrupt effect must not hide the rest of the entity
			log.Printf("[ENTITIES] Skipping unreadable effect %s on %s: %v", effectID, id, err)
			continue
		}
		result.Effects = append(result.Effects, &effect)
	}
	result.SortEffects()

	return result, nil
}

// Delete removes an entity and its effects
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, entityKey(id), effectsKey(id), effectNamesKey(id))
	if existing.OwnerID != "" {
		pipe.SRem(ctx, fmt.Sprintf(ownerEntitiesKey, existing.OwnerID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	return nil
}

// ListByOwner retrieves all entities owned by a participant
func (r *redisRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Entity, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, fmt.Sprintf(ownerEntitiesKey, ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get owner entities from Redis: %w", err)
	}

	result := make([]*entity.Entity, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			found, err := r.Get(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to get entity %s: %w", id, err)
			}
			result[i] = found
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateEffect attaches a new effect, claiming its name first so two
// concurrent creates of the same name cannot both succeed
func (r *redisRepo) CreateEffect(ctx context.Context, entityID string, effect *entity.Effect) error {
	if effect == nil {
		return dnderr.InvalidArgument("effect cannot be nil")
	}
	name := entity.NormalizeName(effect.Name)
	if effect.ID == "" || name == "" {
		return dnderr.InvalidArgument("effect ID and name are required")
	}

	exists, err := r.client.Exists(ctx, entityKey(entityID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check entity existence: %w", err)
	}
	if exists == 0 {
		return dnderr.NotFoundf("entity with ID '%s' not found", entityID).
			WithMeta("entity_id", entityID)
	}

	claimed, err := r.client.HSetNX(ctx, effectNamesKey(entityID), name, effect.ID).Result()
	if err != nil {
		return fmt.Errorf("failed to claim effect name: %w", err)
	}
	if !claimed {
		return dnderr.AlreadyExistsf("entity '%s' already has effect '%s'", entityID, effect.Name).
			WithMeta("entity_id", entityID).
			WithMeta("effect_name", effect.Name)
	}

	effectJSON, err := json.Marshal(effect)
	if err != nil {
		r.releaseName(ctx, entityID, name)
		return fmt.Errorf("failed to marshal effect: %w", err)
	}

	if err := r.client.HSet(ctx, effectsKey(entityID), effect.ID, string(effectJSON)).Err(); err != nil {
		r.releaseName(ctx, entityID, name)
		return fmt.Errorf("failed to store effect: %w", err)
	}

	return nil
}

// UpdateEffect merges a patch into an existing effect. The effects hash is
// watched so a delete landing between read and write aborts the write
// instead of resurrecting the effect.
func (r *redisRepo) UpdateEffect(ctx context.Context, entityID, effectID string, patch *entity.Patch) (*entity.Effect, error) {
	if entityID == "" || effectID == "" {
		return nil, dnderr.InvalidArgument("entity ID and effect ID are required")
	}
	key := effectsKey(entityID)

	var updated *entity.Effect
	txf := func(tx *redis.Tx) error {
		effect, err := r.getEffect(ctx, tx, entityID, effectID)
		if err != nil {
			return err
		}

		patch.ApplyTo(effect, r.clock.Now())

		effectJSON, err := json.Marshal(effect)
		if err != nil {
			return fmt.Errorf("failed to marshal effect: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, effectID, string(effectJSON))
			return nil
		})
		if err != nil {
			return err
		}

		updated = effect
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			log.Printf("[ENTITIES] Effects of %s changed during update of %s, retrying", entityID, effectID)
			continue
		}
		if err != nil {
			var appErr *dnderr.Error
			if errors.As(err, &appErr) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to update effect: %w", err)
		}
		return updated, nil
	}

	return nil, dnderr.WrapWithCode(redis.TxFailedErr, dnderr.CodeUnavailable,
		fmt.Sprintf("effect %s on %s kept changing during update", effectID, entityID)).
		WithMeta("entity_id", entityID).
		WithMeta("effect_id", effectID)
}

// DeleteEffect removes an effect and releases its name
func (r *redisRepo) DeleteEffect(ctx context.Context, entityID, effectID string) error {
	effect, err := r.getEffect(ctx, r.client, entityID, effectID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.HDel(ctx, effectsKey(entityID), effectID)
	pipe.HDel(ctx, effectNamesKey(entityID), entity.NormalizeName(effect.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete effect: %w", err)
	}

	return nil
}

func (r *redisRepo) getEffect(ctx context.Context, c redis.Cmdable, entityID, effectID string) (*entity.Effect, error) {
	if entityID == "" || effectID == "" {
		return nil, dnderr.InvalidArgument("entity ID and effect ID are required")
	}

	raw, err := c.HGet(ctx, effectsKey(entityID), effectID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.EffectNotFound(entityID, effectID)
		}
		return nil, fmt.Errorf("failed to get effect from Redis: %w", err)
	}

	var effect entity.Effect
	if err := json.Unmarshal(raw, &effect); err != nil {
		return nil, fmt.Errorf("failed to unmarshal effect: %w", err)
	}

	return &effect, nil
}

func (r *redisRepo) releaseName(ctx context.Context, entityID, name string) {
	if err := r.client.HDel(ctx, effectNamesKey(entityID), name).Err(); err != nil {
		log.Printf("[ENTITIES] Failed to release effect name %q on %s: %v", name, entityID, err)
	}
}

func toData(e *entity.Entity) *Data {
	return &Data{
		ID:         e.ID,
		OwnerID:    e.OwnerID,
		Name:       e.Name,
		Attributes: e.Attributes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func fromData(data *Data) *entity.Entity {
	return &entity.Entity{
		ID:         data.ID,
		OwnerID:    data.OwnerID,
		Name:       data.Name,
		Attributes: data.Attributes,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
