package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event.
// It is derived from the EventType, never supplied by the caller.
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap defines the fixed severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventContactSent:             SeverityINFO,
	EventContactValidationFailed: SeverityINFO,
	EventDeliveryFailed:          SeverityMEDIUM,
	EventRateLimitTriggered:      SeverityMEDIUM,
	EventRateLimitStoreError:     SeverityMEDIUM,
	EventCSRFViolation:           SeverityHIGH,
}

// GetSeverity returns the severity for an event type, MEDIUM when unknown
func GetSeverity(eventType EventType) Severity {
	if s, ok := EventSeverityMap[eventType]; ok {
		return s
	}
	return SeverityMEDIUM
}

func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
