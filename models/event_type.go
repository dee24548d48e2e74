package models

// EventType is a catering occasion offered on the site (wedding, birthday...).
type EventType struct {
	ID            int64  `json:"event_type_id"`
	Name          string `json:"event_name"`
	MinimumGuests int    `json:"minimum_guests"`
	Description   string `json:"description"`
	IconURL       string `json:"icon_url"`
	ImageURL      string `json:"image_url"`
	IsActive      bool   `json:"is_active"`
}
