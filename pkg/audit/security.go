// Package audit provides security audit logging for SIEM consumption.
// It logs security-relevant events in structured JSON format for easy parsing
// and integration with security information and event management systems.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/hortechia/hortechia-engine/pkg/auth"
	"github.com/hortechia/hortechia-engine/pkg/validation"
)

// SecurityEventType categorizes security-relevant events for filtering and alerting.
type SecurityEventType string

const (
	// EventInjectionAttempt is logged when libinjection flags a free-text
	// field (feedback comment, garden notes).
	EventInjectionAttempt SecurityEventType = "free_text_injection_attempt"
	// EventRateLimitExceeded is logged when a user exhausts their
	// generation quota.
	EventRateLimitExceeded SecurityEventType = "rate_limit_exceeded"
)

// SecurityEvent represents an auditable security event with all relevant
// context for SIEM ingestion and analysis.
type SecurityEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType SecurityEventType `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Details   any               `json:"details"`
	Severity  string            `json:"severity"` // info, warning, critical
}

// InjectionDetails contains specifics of a detected injection attempt.
type InjectionDetails struct {
	FieldName   string `json:"field_name"`
	Value       string `json:"value"`
	Kind        string `json:"kind"` // sqli or xss
	Fingerprint string `json:"fingerprint,omitempty"`
}

// RateLimitDetails identifies the throttled operation.
type RateLimitDetails struct {
	Operation string `json:"operation"`
}

// SecurityAuditor logs security events for SIEM consumption.
// Events are logged in structured JSON format with appropriate severity levels.
type SecurityAuditor struct {
	logger *zap.Logger
}

// NewSecurityAuditor creates a new security auditor with a dedicated logger
// namespace. The "security_audit" namespace makes filtering easy in SIEM
// systems.
func NewSecurityAuditor(logger *zap.Logger) *SecurityAuditor {
	return &SecurityAuditor{logger: logger.Named("security_audit")}
}

// LogInjectionAttempt records a free-text value that tripped libinjection.
// Logged at WARN level with "warning" severity: hostile-looking input was
// rejected before persistence, so no data was at risk, but repeated hits
// from one user are worth alerting on.
//
// The context is used to extract the user ID from JWT claims if available.
func (a *SecurityAuditor) LogInjectionAttempt(ctx context.Context, details *validation.InjectionError) {
	event := SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventInjectionAttempt,
		UserID:    userIDFromContext(ctx),
		Details: InjectionDetails{
			FieldName:   details.Field,
			Value:       details.Value,
			Kind:        details.Kind,
			Fingerprint: details.Fingerprint,
		},
		Severity: "warning",
	}

	// Marshaling known types should never fail.
	eventJSON, _ := json.Marshal(event)

	a.logger.Warn("Injection attempt detected in free text",
		zap.String("event_json", string(eventJSON)),
		zap.String("field_name", details.Field),
		zap.String("kind", details.Kind),
		zap.String("fingerprint", details.Fingerprint),
		zap.String("user_id", event.UserID),
		zap.String("severity", event.Severity),
	)
}

// LogRateLimitExceeded records a user exhausting their quota for an
// operation. Logged at INFO level: quota exhaustion is normal behavior,
// but sustained bursts can indicate automation.
func (a *SecurityAuditor) LogRateLimitExceeded(ctx context.Context, operation string) {
	event := SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventRateLimitExceeded,
		UserID:    userIDFromContext(ctx),
		Details:   RateLimitDetails{Operation: operation},
		Severity:  "info",
	}

	eventJSON, _ := json.Marshal(event)

	a.logger.Info("Rate limit exceeded",
		zap.String("event_json", string(eventJSON)),
		zap.String("operation", operation),
		zap.String("user_id", event.UserID),
		zap.String("severity", event.Severity),
	)
}

func userIDFromContext(ctx context.Context) string {
	userID, err := auth.UserUUIDFromContext(ctx)
	if err != nil {
		return ""
	}
	return userID.String()
}
