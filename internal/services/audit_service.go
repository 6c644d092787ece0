package services

import (
	"context"
	"encoding/json"
	"time"

	"budgetboard/internal/logger"
	"budgetboard/internal/models"
	"budgetboard/internal/store"
)

// auditWriteTimeout bounds the audit insert so a slow store cannot stall the
// request that triggered it.
const auditWriteTimeout = 5 * time.Second

// auditService handles audit log recording.
type auditService struct {
	audit store.AuditStore
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(audit store.AuditStore) AuditServicer {
	return &auditService{audit: audit}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(userID, action, resourceType, ipAddress string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
	defer cancel()

	if err := s.audit.Append(ctx, entry); err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
		)
	}
}
