package models

import "time"

// PendingVerification kayıt penceresi boyunca yaşayan geçici doğrulama kaydı.
// E-posta başına tek kayıt tutulur; tekrar kayıt denemesi üzerine yazar,
// başarılı doğrulama kaydı siler.
type PendingVerification struct {
	BaseModel
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	OTP          string    `gorm:"type:char(6);not null" json:"-"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"-"`
}
