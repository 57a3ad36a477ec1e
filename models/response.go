package models

import "time"

// Response tek bir anonim form gönderimini temsil eder. Kullanıcı bağlantısı
// tutulmaz; form başına N yanıt, yanıt başına soru sayısı kadar Answer oluşur.
type Response struct {
	BaseModel
	FormID      uint      `gorm:"index;not null" json:"formId"`
	SubmittedAt time.Time `gorm:"index;type:timestamptz;not null" json:"submittedAt"`

	// GORM İlişkileri
	Answers []Answer `gorm:"foreignKey:ResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"answers,omitempty"`
}

// Answer bir yanıtın tek bir soruya karşılık gelen girdisidir. PARAGRAPH
// sorularda AnswerText, MCQ sorularda Options dizisine indeks olan
// SelectedOption dolu olur.
type Answer struct {
	BaseModel
	ResponseID     uint    `gorm:"index;not null" json:"respId"`
	QuestionID     uint    `gorm:"index;not null" json:"quesId"`
	AnswerText     *string `gorm:"type:text" json:"answerText"`
	SelectedOption *int    `json:"selectedOption"`
}
