package dto

// ScheduleRequest sets the user's daily reminder
type ScheduleRequest struct {
	Enabled bool   `json:"enabled"`
	Hour    int    `json:"hour" binding:"min=0,max=23"`
	Minute  int    `json:"minute" binding:"min=0,max=59"`
	Message string `json:"message"`
}

// ScheduleResponse represents a reminder schedule in API responses
type ScheduleResponse struct {
	Enabled bool   `json:"enabled"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Message string `json:"message"`
}
