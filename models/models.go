package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"unique" json:"email"`
	PasswordHash string    `json:"-"`
	Mobile       string    `json:"mobile"`
	DOB          time.Time `json:"dob"`
	Age          int       `json:"age"`
	Height       float64   `json:"height"`
	Weight       float64   `json:"weight"`
	Role         string    `gorm:"default:user" json:"role"`
	Picture      string    `gorm:"default:'/uploads/default.png'" json:"picture"`
	IsDeleted    bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Activities []ActivityRecord `gorm:"foreignKey:UserID" json:"-"`
}

// ActivityRecord - одна запись активности за день. Максимум одна строка на
// (user_id, day_number), все записи идут через upsert в challenge store.
type ActivityRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex:idx_activity_user_day" json:"user_id"`
	DayNumber       int       `gorm:"uniqueIndex:idx_activity_user_day" json:"day_number"`
	Images          string    `json:"images"` // comma-separated upload paths
	ActivityPoint   int       `gorm:"default:0" json:"activity_point"`
	IsCompleted     bool      `gorm:"default:false" json:"is_completed"`
	IsAdminApproved bool      `gorm:"default:false" json:"is_admin_approved"`
	Date            time.Time `json:"date"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
