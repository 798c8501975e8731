// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
)

// NotificationService reports rule changes and blocked transactions to the
// compliance team. Delivery is the structured log for now.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Register subscribes the notification handlers on bus.
func (n *NotificationService) Register(bus *EventBus) {
	for _, eventType := range []string{EventRuleCreated, EventRuleUpdated, EventRuleToggled} {
		bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
			rule, ok := event.Payload.(model.Rule)
			if !ok {
				return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
			}
			return n.NotifyRuleChange(ctx, event.Type, rule)
		})
	}
	bus.Subscribe(EventTransactionBlocked, func(ctx context.Context, event Event) error {
		entry, ok := event.Payload.(model.AuditEntry)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
		}
		return n.NotifyBlockedTransaction(ctx, entry)
	})
}

func (n *NotificationService) NotifyRuleChange(ctx context.Context, changeType string, rule model.Rule) error {
	switch changeType {
	case EventRuleCreated:
		logger.Info("NOTIFICATION: New rule created",
			zap.String("ruleID", rule.ID),
			zap.String("ruleName", rule.Name),
			zap.String("severity", string(rule.Severity)))
	case EventRuleUpdated:
		logger.Info("NOTIFICATION: Rule updated",
			zap.String("ruleID", rule.ID),
			zap.String("ruleName", rule.Name),
			zap.Int("version", rule.Version))
	case EventRuleToggled:
		logger.Info("NOTIFICATION: Rule toggled",
			zap.String("ruleID", rule.ID),
			zap.Bool("enabled", rule.Enabled))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) NotifyBlockedTransaction(ctx context.Context, entry model.AuditEntry) error {
	logger.Warn("NOTIFICATION: Transaction blocked",
		zap.String("transactionID", entry.TransactionID),
		zap.String("auditID", entry.ID),
		zap.Strings("ruleIDs", entry.RuleIDs()),
		zap.String("reason", entry.Message))
	return nil
}
