package models

import "time"

// Form anonim geri bildirim formunun ana kaydıdır.
type Form struct {
	BaseModel
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	StartTime   time.Time `gorm:"index;type:timestamptz;not null" json:"startTime"`
	EndTime     time.Time `gorm:"index;type:timestamptz;not null" json:"endTime"`
	Theme       string    `gorm:"type:varchar(50)" json:"theme"`
	ShareKey    string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"shareKey"`
	CreatorID   uint      `gorm:"index;not null" json:"creatorId"`

	// GORM İlişkileri
	Creator   User       `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Questions []Question `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"questions,omitempty"`
	Responses []Response `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// IsActiveAt formun verilen anda yanıt kabul edip etmediğini döndürür.
// Sınır anları dahildir: startTime <= now <= endTime.
func (f *Form) IsActiveAt(now time.Time) bool {
	return !now.Before(f.StartTime) && !now.After(f.EndTime)
}
