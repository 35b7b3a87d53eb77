package model

// Dashboard is the aggregate view a patient sees on their home screen.
type Dashboard struct {
	ActiveGoals   int               `json:"active_goals"`
	TodayProgress []*DailyProgress  `json:"today_progress"`
	UpcomingCare  []*PreventiveCare `json:"upcoming_care"`
	HealthTip     *HealthTip        `json:"health_tip,omitempty"`
}
