// file: internals/features/users/auth/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`

	UserName string `gorm:"column:user_name;type:varchar(60);not null;uniqueIndex" json:"user_name"`
	Email    string `gorm:"column:email;type:varchar(160);not null;uniqueIndex" json:"email"`
	Password string `gorm:"column:password;type:varchar(100);not null" json:"-"`

	Role     string `gorm:"column:role;type:varchar(30);not null;default:'staff'" json:"role"`
	IsActive bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
