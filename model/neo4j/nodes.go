// model/neo4j/nodes.go
package rulemind_neo4j

// Node Labels
const (
	// LabelRule represents a compliance rule
	LabelRule = "RULE"

	// LabelRuleSequence holds the counter that records rule creation order
	LabelRuleSequence = "RULE_SEQ"
)

// Node properties
const (
	PropID         = "id"
	PropSequence   = "seq"
	PropName       = "name"
	PropConditions = "conditions"
	PropSeverity   = "severity"
	PropAction     = "action"
	PropSource     = "source"
	PropMessage    = "message"
	PropEnabled    = "enabled"
	PropVersion    = "version"
	PropCreatedAt  = "createdAt"
	PropUpdatedAt  = "updatedAt"
)
