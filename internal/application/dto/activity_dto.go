package dto

import "time"

// ActivityResponse entrada del registro de actividad.
type ActivityResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityListResponse listado de actividad, más reciente primero (máx. 100).
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Total int                `json:"total"`
}
