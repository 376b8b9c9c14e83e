package entities

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type RedisRepoTestSuite struct {
	suite.Suite
	ctx        context.Context
	mockClient *redis.Client
	mock       redismock.ClientMock
	now        time.Time
	repo       Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockClient, s.mock = redismock.NewClientMock()
	s.now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:       s.mockClient,
		TimeProvider: fixedTime{now: s.now},
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) marshal(v any) string {
	data, err := json.Marshal(v)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestGet() {
	header := Data{
		ID:         "char-1",
		OwnerID:    "user-1",
		Name:       "Grunk",
		Attributes: map[string]int{"strength": 4},
		CreatedAt:  s.now,
		UpdatedAt:  s.now,
	}
	older := &entity.Effect{ID: "eff-b", Name: "injury", Counter: 2, CreatedAt: s.now.Add(-time.Hour)}
	newer := &entity.Effect{ID: "eff-a", Name: "Bless", Bonuses: map[string]int{"strength": 1}, CreatedAt: s.now}

	// Happy path
	s.mock.ExpectGet("entity:char-1").SetVal(s.marshal(header))
	s.mock.ExpectHGetAll("entity:char-1:effects").SetVal(map[string]string{
		"eff-a": s.marshal(newer),
		"eff-b": s.marshal(older),
	})

	result, err := s.repo.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Equal("user-1", result.OwnerID)
	s.Require().Len(result.Effects, 2)
	s.Equal("eff-b", result.Effects[0].ID, "effects come back in creation order")
	s.Equal(2, result.FindEffect("Injury").Counter)

	// Not found
	s.mock.ExpectGet("entity:ghost").RedisNil()
	_, err = s.repo.Get(s.ctx, "ghost")
	s.True(dnderr.IsNotFound(err))

	// Dependency error
	s.mock.ExpectGet("entity:char-1").SetErr(errors.New("redis error"))
	_, err = s.repo.Get(s.ctx, "char-1")
	s.Error(err)

	// Input validation
	_, err = s.repo.Get(s.ctx, "")
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestCreate() {
	e := &entity.Entity{
		ID:         "char-1",
		OwnerID:    "user-1",
		Name:       "Grunk",
		Attributes: map[string]int{"Strength": 4},
	}
	expected := Data{
		ID:         "char-1",
		OwnerID:    "user-1",
		Name:       "Grunk",
		Attributes: map[string]int{"strength": 4},
		CreatedAt:  s.now,
		UpdatedAt:  s.now,
	}

	s.mock.ExpectExists("entity:char-1").SetVal(0)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("entity:char-1", s.marshal(expected), 0).SetVal("OK")
	s.mock.ExpectSAdd("owner:user-1:entities", "char-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.Require().NoError(s.repo.Create(s.ctx, e))

	// Already exists
	s.mock.ExpectExists("entity:char-1").SetVal(1)
	s.True(dnderr.IsAlreadyExists(s.repo.Create(s.ctx, e)))
}

func (s *RedisRepoTestSuite) TestCreateEffect() {
	effect := &entity.Effect{ID: "eff-1", Name: "Injury", Counter: 1, CreatedAt: s.now}

	// Happy path
	s.mock.ExpectExists("entity:char-1").SetVal(1)
	s.mock.ExpectHSetNX("entity:char-1:effect_names", "injury", "eff-1").SetVal(true)
	s.mock.ExpectHSet("entity:char-1:effects", "eff-1", s.marshal(effect)).SetVal(1)

	s.Require().NoError(s.repo.CreateEffect(s.ctx, "char-1", effect))

	// Name already claimed
	s.mock.ExpectExists("entity:char-1").SetVal(1)
	s.mock.ExpectHSetNX("entity:char-1:effect_names", "injury", "eff-1").SetVal(false)

	s.True(dnderr.IsAlreadyExists(s.repo.CreateEffect(s.ctx, "char-1", effect)))

	// Store failure releases the claimed name
	s.mock.ExpectExists("entity:char-1").SetVal(1)
	s.mock.ExpectHSetNX("entity:char-1:effect_names", "injury", "eff-1").SetVal(true)
	s.mock.ExpectHSet("entity:char-1:effects", "eff-1", s.marshal(effect)).SetErr(errors.New("redis error"))
	s.mock.ExpectHDel("entity:char-1:effect_names", "injury").SetVal(1)

	s.Error(s.repo.CreateEffect(s.ctx, "char-1", effect))

	// Unknown entity
	s.mock.ExpectExists("entity:ghost").SetVal(0)
	s.True(dnderr.IsNotFound(s.repo.CreateEffect(s.ctx, "ghost", effect)))
}

func (s *RedisRepoTestSuite) TestUpdateEffect() {
	stored := &entity.Effect{
		ID:      "eff-1",
		Name:    "Mana Maintenance",
		Counter: 1,
		Tags:    map[string]string{entity.TagCaster: "char-1"},
	}
	expected := stored.Clone()
	expected.Counter = 2
	expected.UpdatedAt = s.now

	s.mock.ExpectWatch("entity:char-1:effects")
	s.mock.ExpectHGet("entity:char-1:effects", "eff-1").SetVal(s.marshal(stored))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectHSet("entity:char-1:effects", "eff-1", s.marshal(expected)).SetVal(0)
	s.mock.ExpectTxPipelineExec()

	updated, err := s.repo.UpdateEffect(s.ctx, "char-1", "eff-1", entity.CounterPatch(2))
	s.Require().NoError(err)
	s.Equal(2, updated.Counter)
	s.Equal("char-1", updated.Tag(entity.TagCaster))

	// Already removed when the watch starts
	s.mock.ExpectWatch("entity:char-1:effects")
	s.mock.ExpectHGet("entity:char-1:effects", "eff-1").RedisNil()
	_, err = s.repo.UpdateEffect(s.ctx, "char-1", "eff-1", entity.CounterPatch(2))
	s.True(dnderr.IsEffectNotFound(err))
}

// A delete committed between the read and the write aborts the transaction;
// the retry sees the effect gone and never writes it back.
func (s *RedisRepoTestSuite) TestUpdateEffect_DeletedDuringUpdate() {
	stored := &entity.Effect{ID: "eff-1", Name: "Injury", Counter: 2}
	expected := stored.Clone()
	expected.Counter = 1
	expected.UpdatedAt = s.now

	s.mock.ExpectWatch("entity:char-1:effects")
	s.mock.ExpectHGet("entity:char-1:effects", "eff-1").SetVal(s.marshal(stored))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectHSet("entity:char-1:effects", "eff-1", s.marshal(expected)).SetVal(0)
	s.mock.ExpectTxPipelineExec().SetErr(redis.TxFailedErr)

	s.mock.ExpectWatch("entity:char-1:effects")
	s.mock.ExpectHGet("entity:char-1:effects", "eff-1").RedisNil()

	_, err := s.repo.UpdateEffect(s.ctx, "char-1", "eff-1", entity.CounterPatch(1))
	s.True(dnderr.IsEffectNotFound(err))
}

func (s *RedisRepoTestSuite) TestUpdateEffect_GivesUpAfterRepeatedConflicts() {
	stored := &entity.Effect{ID: "eff-1", Name: "Injury", Counter: 2}
	expected := stored.Clone()
	expected.Counter = 3
	expected.UpdatedAt = s.now

	for i := 0; i < 3; i++ {
		s.mock.ExpectWatch("entity:char-1:effects")
		s.mock.ExpectHGet("entity:char-1:effects", "eff-1").SetVal(s.marshal(stored))
		s.mock.ExpectTxPipeline()
		s.mock.ExpectHSet("entity:char-1:effects", "eff-1", s.marshal(expected)).SetVal(0)
		s.mock.ExpectTxPipelineExec().SetErr(redis.TxFailedErr)
	}

	_, err := s.repo.UpdateEffect(s.ctx, "char-1", "eff-1", entity.CounterPatch(3))
	s.Require().Error(err)
	s.Equal(dnderr.CodeUnavailable, dnderr.GetCode(err))
}

func (s *RedisRepoTestSuite) TestDeleteEffect() {
	stored := &entity.Effect{ID: "eff-1", Name: "Injury", Counter: 1}

	s.mock.ExpectHGet("entity:char-1:effects", "eff-1").SetVal(s.marshal(stored))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectHDel("entity:char-1:effects", "eff-1").SetVal(1)
	s.mock.ExpectHDel("entity:char-1:effect_names", "injury").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.Require().NoError(s.repo.DeleteEffect(s.ctx, "char-1", "eff-1"))

	// Second removal reports the effect as gone
	s.mock.ExpectHGet("entity:char-1:effects", "eff-1").RedisNil()
	s.True(dnderr.IsEffectNotFound(s.repo.DeleteEffect(s.ctx, "char-1", "eff-1")))
}
