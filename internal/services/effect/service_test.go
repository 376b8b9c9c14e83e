package effect_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/effects"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
	"github.com/KirkDiggler/macro-relay/internal/relay"
	mockrelay "github.com/KirkDiggler/macro-relay/internal/relay/mock"
	"github.com/KirkDiggler/macro-relay/internal/repositories/entities"
	mockentities "github.com/KirkDiggler/macro-relay/internal/repositories/entities/mock"
	"github.com/KirkDiggler/macro-relay/internal/services/effect"
	"github.com/KirkDiggler/macro-relay/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	mockRelay *mockrelay.MockRelay
	repo      *entities.InMemoryRepository
	executor  *effects.Executor
	service   effect.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRelay = mockrelay.NewMockRelay(s.ctrl)
	s.repo = entities.NewInMemoryRepository()
	s.executor = effects.NewExecutor(&effects.ExecutorConfig{Repository: s.repo})
	s.service = effect.NewService(&effect.ServiceConfig{
		Repository: s.repo,
		Executor:   s.executor,
		Relay:      s.mockRelay,
	})

	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestEntity("char-1", "user-1", "Grunk")))
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestEntity("npc-1", "gm", "Goblin")))
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) TestOwnedEntityNeverTouchesRelay() {
	// No expectations on the relay: any call fails the test
	outcome, err := s.service.Increment(s.ctx, &effect.CounterInput{
		CallerID: "user-1",
		EntityID: "char-1",
		Effect:   &entity.Effect{Name: "injury"},
		Amount:   1,
	})
	s.Require().NoError(err)
	s.Equal(effects.ActionCreated, outcome.Action)

	res, err := s.service.Resolve(s.ctx, "char-1", "strength")
	s.Require().NoError(err)
	s.Equal(3, res.Final)
}

func (s *ServiceTestSuite) TestNonOwnedEntityGoesThroughRelay() {
	local := relay.NewLocal(relay.NewHandler(s.executor))

	s.mockRelay.EXPECT().Available(s.ctx).Return(true)
	s.mockRelay.EXPECT().Execute(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *relay.Request) (*relay.Response, error) {
			s.Equal("user-1", req.CallerID)
			s.Equal("npc-1", req.EntityID)
			return local.Execute(ctx, req)
		})

	outcome, err := s.service.Apply(s.ctx, &effect.ApplyInput{
		CallerID: "user-1",
		EntityID: "npc-1",
		Effect:   &entity.Effect{Name: "injury", Counter: 2},
	})
	s.Require().NoError(err)
	s.Equal(effects.ActionCreated, outcome.Action)

	stored, err := s.repo.Get(s.ctx, "npc-1")
	s.Require().NoError(err)
	s.Equal(2, stored.FindEffect("injury").Counter)
}

func (s *ServiceTestSuite) TestRemoveTwiceIsSuccess() {
	applied, err := s.service.Apply(s.ctx, &effect.ApplyInput{
		CallerID: "user-1",
		EntityID: "char-1",
		Effect:   &entity.Effect{Name: "bless"},
	})
	s.Require().NoError(err)

	input := &effect.RemoveInput{CallerID: "user-1", EntityID: "char-1", EffectID: applied.Effect.ID}

	first, err := s.service.Remove(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(effects.ActionRemoved, first.Action)

	second, err := s.service.Remove(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(effects.ActionNone, second.Action)
}

func (s *ServiceTestSuite) TestUpdateOfRemovedEffectFails() {
	_, err := s.service.Update(s.ctx, &effect.UpdateInput{
		CallerID: "user-1",
		EntityID: "char-1",
		EffectID: "gone",
		Patch:    entity.CounterPatch(2),
	})
	s.True(dnderr.IsEffectNotFound(err))
}

func (s *ServiceTestSuite) TestCounterLifecycle() {
	input := &effect.CounterInput{
		CallerID: "user-1",
		EntityID: "char-1",
		Effect:   &entity.Effect{Name: "Charges"},
		Amount:   3,
	}
	_, err := s.service.SetCounter(s.ctx, input)
	s.Require().NoError(err)

	outcome, err := s.service.Decrement(s.ctx, &effect.DecrementInput{
		CallerID: "user-1",
		EntityID: "char-1",
		Name:     "charges",
		Amount:   2,
	})
	s.Require().NoError(err)
	s.Equal(1, outcome.Effect.Counter)

	outcome, err = s.service.Decrement(s.ctx, &effect.DecrementInput{
		CallerID: "user-1",
		EntityID: "char-1",
		Name:     "charges",
		Amount:   1,
	})
	s.Require().NoError(err)
	s.Equal(effects.ActionRemoved, outcome.Action)
}

func (s *ServiceTestSuite) TestPairedRoutesEachSideIndependently() {
	local := relay.NewLocal(relay.NewHandler(s.executor))
	s.mockRelay.EXPECT().Available(s.ctx).Return(true).AnyTimes()
	s.mockRelay.EXPECT().Execute(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *relay.Request) (*relay.Response, error) {
			s.Equal("npc-1", req.EntityID, "only the target is delegated")
			return local.Execute(ctx, req)
		}).AnyTimes()

	input := &effect.PairedInput{
		CallerID:  "user-1",
		CasterID:  "char-1",
		TargetID:  "npc-1",
		Aggregate: "Mind Control",
		Instance:  "Controlled",
	}

	attached, err := s.service.AttachPaired(s.ctx, input)
	s.Require().NoError(err)
	s.Require().NoError(attached.Warning)
	s.Equal(effects.ActionCreated, attached.Aggregate.Action)

	detached, err := s.service.DetachPaired(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(effects.ActionRemoved, detached.Instance.Action)
	s.Equal(effects.ActionRemoved, detached.Aggregate.Action)
}

func (s *ServiceTestSuite) TestDetachPairedReadsCasterFromInstance() {
	local := relay.NewLocal(relay.NewHandler(s.executor))
	s.mockRelay.EXPECT().Available(s.ctx).Return(true).AnyTimes()
	s.mockRelay.EXPECT().Execute(s.ctx, gomock.Any()).
		DoAndReturn(local.Execute).AnyTimes()
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestEntity("char-2", "user-2", "Vex")))

	_, err := s.service.AttachPaired(s.ctx, &effect.PairedInput{
		CallerID:  "user-1",
		CasterID:  "char-1",
		TargetID:  "npc-1",
		Aggregate: "Mind Control",
		Instance:  "Controlled",
	})
	s.Require().NoError(err)

	// A different caster named explicitly is refused
	_, err = s.service.DetachPaired(s.ctx, &effect.PairedInput{
		CallerID:  "user-2",
		CasterID:  "char-2",
		TargetID:  "npc-1",
		Aggregate: "Mind Control",
		Instance:  "Controlled",
	})
	s.True(dnderr.IsPermissionDenied(err))

	detached, err := s.service.DetachPaired(s.ctx, &effect.PairedInput{
		CallerID: "user-1",
		TargetID: "npc-1",
		Instance: "Controlled",
	})
	s.Require().NoError(err)
	s.Equal(effects.ActionRemoved, detached.Instance.Action)
	s.Equal(effects.ActionRemoved, detached.Aggregate.Action)

	caster, err := s.repo.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Nil(caster.FindEffect("Mind Control"))

	// Already released
	detached, err = s.service.DetachPaired(s.ctx, &effect.PairedInput{
		CallerID: "user-1",
		TargetID: "npc-1",
		Instance: "Controlled",
	})
	s.Require().NoError(err)
	s.Equal(effects.ActionNone, detached.Instance.Action)
	s.Nil(detached.Aggregate)
}

func (s *ServiceTestSuite) TestRequiresCaller() {
	_, err := s.service.Apply(s.ctx, &effect.ApplyInput{EntityID: "char-1", Effect: &entity.Effect{Name: "x"}})
	s.True(dnderr.IsInvalidArgument(err))
}

func TestService_DelegationUnavailableNeverCallsSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockentities.NewMockRepository(ctrl)
	mockRelay := mockrelay.NewMockRelay(ctrl)
	ctx := context.Background()

	svc := effect.NewService(&effect.ServiceConfig{
		Repository: repo,
		Executor:   effects.NewExecutor(&effects.ExecutorConfig{Repository: repo}),
		Relay:      mockRelay,
	})

	// Only reads are expected; CreateEffect/UpdateEffect/DeleteEffect would fail the test
	repo.EXPECT().Get(ctx, "npc-1").Return(testutils.CreateTestEntity("npc-1", "gm", "Goblin"), nil).AnyTimes()
	mockRelay.EXPECT().Available(ctx).Return(false).AnyTimes()

	_, err := svc.Apply(ctx, &effect.ApplyInput{
		CallerID: "user-1",
		EntityID: "npc-1",
		Effect:   &entity.Effect{Name: "injury", Counter: 1},
	})
	require.Error(t, err)
	assert.True(t, dnderr.IsDelegationUnavailable(err))

	_, err = svc.Decrement(ctx, &effect.DecrementInput{CallerID: "user-1", EntityID: "npc-1", Name: "injury", Amount: 1})
	assert.True(t, dnderr.IsDelegationUnavailable(err))
}

func TestService_NilRelayIsUnavailable(t *testing.T) {
	ctx := context.Background()
	repo := entities.NewInMemoryRepository()
	require.NoError(t, repo.Create(ctx, testutils.CreateTestEntity("npc-1", "gm", "Goblin")))

	svc := effect.NewService(&effect.ServiceConfig{
		Repository: repo,
		Executor:   effects.NewExecutor(&effects.ExecutorConfig{Repository: repo}),
	})

	_, err := svc.Remove(ctx, &effect.RemoveInput{CallerID: "user-1", EntityID: "npc-1", EffectID: "eff-1"})
	assert.True(t, dnderr.IsDelegationUnavailable(err))

	stored, err := repo.Get(ctx, "npc-1")
	require.NoError(t, err)
	assert.Empty(t, stored.Effects)
}
