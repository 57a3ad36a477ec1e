package models

// User doğrulanmış bir hesabı temsil eder. Kayıt yalnızca OTP doğrulaması
// (veya sistem seeder'ı) üzerinden oluşur; görünür hiçbir akışta silinmez.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
}
