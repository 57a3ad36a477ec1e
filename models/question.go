package models

// QuestionType sorunun yanıt biçimini belirler.
type QuestionType string

const (
	QuestionTypeParagraph QuestionType = "PARAGRAPH" // Serbest metin
	QuestionTypeMCQ       QuestionType = "MCQ"       // Sabit seçenekli
)

// Question bir forma ait tek bir soruyu temsil eder. Form güncellemesinde
// soru seti komple silinip yeniden oluşturulur; soru ID'leri düzenlemeler
// arasında sabit değildir.
type Question struct {
	BaseModel
	FormID       uint         `gorm:"index;not null" json:"formId"`
	QuestionText string       `gorm:"type:text;not null" json:"questionText"`
	Type         QuestionType `gorm:"type:varchar(20);not null" json:"type"`
	Options      []string     `gorm:"serializer:json;type:text" json:"options"`
	Position     int          `gorm:"not null;default:0" json:"position"`

	// GORM İlişkileri
	Answers []Answer `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
