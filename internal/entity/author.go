package entity

import "time"

type Author struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Biography   string    `json:"biography,omitempty"`
	Nationality string    `json:"nationality,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
