package entities

import "time"

// Action types recorded in the audit trail.
const (
	ActionCreateUser       = "CREATE_USER"
	ActionUpdateUser       = "UPDATE_USER"
	ActionDeleteUser       = "DELETE_USER"
	ActionCreateDrawer     = "CREATE_DRAWER"
	ActionUpdateDrawer     = "UPDATE_DRAWER"
	ActionDeleteDrawer     = "DELETE_DRAWER"
	ActionCreateObject     = "CREATE_OBJECT"
	ActionUpdateObject     = "UPDATE_OBJECT"
	ActionDeleteObject     = "DELETE_OBJECT"
	ActionMoveObject       = "MOVE_OBJECT"
	ActionCreateObjectType = "CREATE_OBJECT_TYPE"
	ActionUpdateObjectType = "UPDATE_OBJECT_TYPE"
	ActionDeleteObjectType = "DELETE_OBJECT_TYPE"
	ActionAIRecommendation = "AI_RECOMMENDATION"
	ActionApplyAIRecommend = "APPLY_AI_RECOMMENDATION"
)

// ActionHistory is one append-only audit entry. Rows are never updated.
type ActionHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"index;not null;size:20" json:"user_id"`
	ActionType string    `gorm:"index;not null;size:50" json:"action_type"`
	Details    string    `gorm:"size:500" json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ActionHistory) TableName() string { return "action_history" }
