package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// contextUserIDKey audit kolonlarını doldurmak için context'e yazılan anahtar.
const contextUserIDKey contextKey = "user_id"

// ContextWithUserID işlemi yapan kullanıcının ID'sini context'e ekler.
// Servis katmanı transaction başlatırken bunu kullanır; GORM hookları
// CreatedBy/UpdatedBy/DeletedBy alanlarını buradan okur.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, contextUserIDKey, userID)
}

func userIDFromContext(ctx context.Context) *uint {
	if ctx == nil {
		return nil
	}
	if id, ok := ctx.Value(contextUserIDKey).(uint); ok && id != 0 {
		return &id
	}
	return nil
}

// BaseModel tüm modellerde ortak olan ID, zaman damgaları ve audit alanları.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// BeforeCreate context'teki kullanıcı ID'si ile CreatedBy alanını doldurur.
// Anonim işlemlerde (ör. yanıt gönderimi) alan boş kalır.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if id := userIDFromContext(tx.Statement.Context); id != nil {
		m.CreatedBy = id
	}
	return nil
}

// BeforeUpdate context'teki kullanıcı ID'si ile UpdatedBy alanını doldurur.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if id := userIDFromContext(tx.Statement.Context); id != nil {
		m.UpdatedBy = id
	}
	return nil
}
