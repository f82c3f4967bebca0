package dto

import "github.com/shopspring/decimal"

// DashboardSummary resumen del panel de administración (GET /api/v1/dashboard).
type DashboardSummary struct {
	Projects              map[string]int  `json:"projects"` // por estado
	TotalProjects         int             `json:"total_projects"`
	AvgAvance             int             `json:"avg_avance"`
	MonthPaid             decimal.Decimal `json:"month_paid"`
	MonthPending          decimal.Decimal `json:"month_pending"`
	MonthOverdue          decimal.Decimal `json:"month_overdue"`
	UnreadMessages        int             `json:"unread_messages"`
	PendingModificaciones int             `json:"pending_modificaciones"`
	UpcomingMeetings      int             `json:"upcoming_meetings"`
	DateLabel             string          `json:"date_label"`
}
