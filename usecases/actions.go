package usecases

import (
	"log/slog"

	"inventory-server/apperrors"
	"inventory-server/entities"
	"inventory-server/repositories"
)

// AuditNotifier receives successfully appended audit entries, e.g. to push
// them to a live feed. Implementations must not block.
type AuditNotifier interface {
	NotifyAction(userID string, entry *entities.ActionHistory)
}

// ActionHistoryUseCase is the append-only audit trail.
type ActionHistoryUseCase struct {
	store    repositories.RecordStore[entities.ActionHistory]
	notifier AuditNotifier
}

func NewActionHistoryUseCase(store repositories.RecordStore[entities.ActionHistory]) *ActionHistoryUseCase {
	return &ActionHistoryUseCase{store: store}
}

// SetNotifier attaches an optional live-feed notifier. Call before serving.
func (uc *ActionHistoryUseCase) SetNotifier(n AuditNotifier) {
	uc.notifier = n
}

// Append records an action. It never fails the originating operation: a
// failed insert is logged and swallowed so audit durability cannot block a
// committed mutation.
func (uc *ActionHistoryUseCase) Append(userID, actionType, details string) {
	entry := &entities.ActionHistory{
		UserID:     userID,
		ActionType: actionType,
		Details:    details,
	}
	if err := uc.store.Create(entry); err != nil {
		slog.Error("failed to append action history", "user_id", userID, "action_type", actionType, "error", err)
		return
	}
	if uc.notifier != nil {
		uc.notifier.NotifyAction(userID, entry)
	}
}

// ListByUser returns every entry recorded for one user.
func (uc *ActionHistoryUseCase) ListByUser(userID string) ([]entities.ActionHistory, error) {
	if userID == "" {
		return nil, apperrors.Validation("user id is required")
	}
	return uc.store.FilterBy(map[string]any{"user_id": userID}, 0, 0, "id")
}

// ListByType returns every entry with the given action type, across users.
// Callers presenting the result must re-filter by the requesting user.
func (uc *ActionHistoryUseCase) ListByType(actionType string) ([]entities.ActionHistory, error) {
	if actionType == "" {
		return nil, apperrors.Validation("action type is required")
	}
	return uc.store.FilterBy(map[string]any{"action_type": actionType}, 0, 0, "id")
}

// GetByID returns one entry, or nil if absent.
func (uc *ActionHistoryUseCase) GetByID(id uint) (*entities.ActionHistory, error) {
	return uc.store.GetByID(id)
}

// DeleteByID removes one entry, returning its prior state or nil.
func (uc *ActionHistoryUseCase) DeleteByID(id uint) (*entities.ActionHistory, error) {
	return uc.store.Delete(id)
}
