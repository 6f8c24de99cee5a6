package users

import "time"

// User is one application-level player record. Guests carry no email and are
// identified purely by their generated or requested username.
type User struct {
	ID          string    `gorm:"column:id;primaryKey;size:190;not null"`
	Username    string    `gorm:"column:username;size:190;not null;uniqueIndex:idx_users_username"`
	Email       string    `gorm:"column:email;size:320;index:idx_users_email"`
	DisplayName string    `gorm:"column:display_name;size:320;not null"`
	IsGuest     bool      `gorm:"column:is_guest;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName exposes the table backing user records.
func (User) TableName() string {
	return "users"
}
