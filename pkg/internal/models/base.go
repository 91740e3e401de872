package models

import "time"

// BaseModel is embedded by every persisted record. Deletes are hard deletes;
// cascading cleanup is responsible for the references, not the database.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
