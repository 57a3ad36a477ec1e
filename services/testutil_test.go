package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"revuea.app/configs/configsdatabase"
	"revuea.app/configs/configslog"
	"revuea.app/models"
	"revuea.app/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// setupTestDB her test için temiz bir in-memory SQLite veritabanı kurar ve
// global bağlantıyı ona yönlendirir. Tek bağlantı kullanılır ki GORM havuzu
// ayrı boş veritabanları açmasın.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test bağlantısı alınamadı: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.PendingVerification{},
		&models.Form{},
		&models.Question{},
		&models.Response{},
		&models.Answer{},
	)
	if err != nil {
		t.Fatalf("test migrasyonu başarısız: %v", err)
	}

	configsdatabase.SetDB(db)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// fakeMailer IMailer'ın testlerde kullanılan implementasyonu.
type fakeMailer struct {
	sentTo []string
	codes  []string
	fail   bool
}

func (m *fakeMailer) SendVerificationCode(to, code string) error {
	if m.fail {
		return errors.New("smtp kapalı")
	}
	m.sentTo = append(m.sentTo, to)
	m.codes = append(m.codes, code)
	return nil
}

// createTestUser doğrulanmış bir kullanıcıyı doğrudan veritabanına yazar.
func createTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("şifre hashlenemedi: %v", err)
	}
	user := &models.User{Name: "Test User", Email: email, PasswordHash: string(hashed)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("test kullanıcısı oluşturulamadı: %v", err)
	}
	return user
}

// validFormInput bir PARAGRAPH ve bir iki seçenekli MCQ sorusu içeren,
// şu an aktif olan geçerli bir form girdisi üretir.
func validFormInput(now time.Time) FormInput {
	return FormInput{
		Title:       "Ders Değerlendirmesi",
		Description: "Dönem sonu anonim geri bildirim",
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(24 * time.Hour),
		Theme:       "indigo",
		Questions: []QuestionInput{
			{QuestionText: "Dersi genel olarak nasıl buldunuz?", Type: models.QuestionTypeParagraph},
			{QuestionText: "Tekrar alır mıydınız?", Type: models.QuestionTypeMCQ, Options: []string{"Evet", "Hayır"}},
		},
	}
}

// createTestForm formu servis üzerinden oluşturur ve sorularıyla döndürür.
func createTestForm(t *testing.T, svc IFormService, creatorID uint) *models.Form {
	t.Helper()
	form, err := svc.CreateForm(context.Background(), creatorID, validFormInput(time.Now()))
	if err != nil {
		t.Fatalf("test formu oluşturulamadı: %v", err)
	}
	return form
}

// submitAnswers forma servis üzerinden anonim bir yanıt gönderir.
func submitAnswers(t *testing.T, form *models.Form, input SubmitInput) {
	t.Helper()
	if err := NewResponseService().SubmitResponse(context.Background(), form.ID, input); err != nil {
		t.Fatalf("test yanıtı gönderilemedi: %v", err)
	}
}

// newAuthService testlerde saat kontrolü için doğrudan struct kurar.
func newAuthService(m *fakeMailer, now func() time.Time) *AuthService {
	return &AuthService{
		userRepo:         repositories.NewUserRepository(),
		verificationRepo: repositories.NewVerificationRepository(),
		mailer:           m,
		db:               configsdatabase.GetDB(),
		secret:           []byte("test-secret"),
		now:              now,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
