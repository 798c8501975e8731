package util_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/util"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := util.NewEventBus()
	var calls atomic.Int32

	id := bus.Subscribe(util.EventRuleCreated, func(_ context.Context, e util.Event) error {
		assert.Equal(t, util.EventRuleCreated, e.Type)
		calls.Add(1)
		return nil
	})
	bus.Subscribe(util.EventRuleCreated, func(context.Context, util.Event) error {
		calls.Add(1)
		return nil
	})

	bus.Publish(context.Background(), util.EventRuleCreated, model.Rule{ID: "RULE-001"})
	bus.Wait()
	assert.Equal(t, int32(2), calls.Load())

	bus.Unsubscribe(util.EventRuleCreated, id)
	bus.Publish(context.Background(), util.EventRuleCreated, model.Rule{ID: "RULE-002"})
	bus.Wait()
	assert.Equal(t, int32(3), calls.Load())

	bus.Publish(context.Background(), util.EventRuleUpdated, model.Rule{ID: "RULE-003"})
	bus.Wait()
	assert.Equal(t, int32(3), calls.Load())
}

func TestEventBus_HandlersOutliveCallerCancellation(t *testing.T) {
	bus := util.NewEventBus()
	var sawCancel atomic.Bool

	bus.Subscribe(util.EventTransactionBlocked, func(ctx context.Context, _ util.Event) error {
		time.Sleep(10 * time.Millisecond)
		sawCancel.Store(ctx.Err() != nil)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, util.EventTransactionBlocked, model.AuditEntry{})
	cancel()
	bus.Wait()

	assert.False(t, sawCancel.Load())
}

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	previous := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = previous })
	return logs
}

func TestNotificationService_Register(t *testing.T) {
	logs := withObservedLogger(t)
	bus := util.NewEventBus()
	util.NewNotificationService().Register(bus)

	ctx := context.Background()
	bus.Publish(ctx, util.EventRuleToggled, model.Rule{ID: "RULE-005", Enabled: true})
	bus.Publish(ctx, util.EventTransactionBlocked, model.AuditEntry{
		ID: "audit-1",
		EvaluationResult: model.EvaluationResult{
			TransactionID:  "TXN-C",
			TriggeredRules: []model.TriggeredRule{{RuleID: "RULE-003"}},
		},
	})
	bus.Wait()

	toggled := logs.FilterMessage("NOTIFICATION: Rule toggled").All()
	require.Len(t, toggled, 1)
	assert.Equal(t, "RULE-005", toggled[0].ContextMap()["ruleID"])

	blocked := logs.FilterMessage("NOTIFICATION: Transaction blocked").All()
	require.Len(t, blocked, 1)
	assert.Equal(t, zapcore.WarnLevel, blocked[0].Level)
	assert.Equal(t, "TXN-C", blocked[0].ContextMap()["transactionID"])
}

func TestNotificationService_UnknownChange(t *testing.T) {
	err := util.NewNotificationService().NotifyRuleChange(context.Background(), "rule.deleted", model.Rule{})
	assert.Error(t, err)
}
