package domain

type AnalyticsSummary struct {
	TotalAlerts       int64            `json:"total_alerts"`
	TotalDeliveries   int64            `json:"total_deliveries"`
	DeliveryByAlert   map[string]int64 `json:"delivery_by_alert"`
	ReadByAlert       map[string]int64 `json:"read_by_alert"`
	SnoozedByAlert    map[string]int64 `json:"snoozed_by_alert"`
	SeverityBreakdown map[string]int64 `json:"severity_breakdown"`
}

type SeedSnapshot struct {
	Teams []Team `json:"teams"`
	Users []User `json:"users"`
}
