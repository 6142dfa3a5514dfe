package model

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `json:"email" gorm:"size:50;uniqueIndex;not null"`
	Name         string `json:"name" gorm:"size:50;not null"`
	PasswordHash string `json:"-" gorm:"size:64;not null"`
}
