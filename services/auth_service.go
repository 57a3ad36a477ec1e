package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"revuea.app/configs"
	"revuea.app/configs/configslog"
	"revuea.app/models"
	"revuea.app/pkg/mailer"
	"revuea.app/repositories"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrAuthInvalidInput      AuthServiceError = "geçersiz girdi verisi"
	ErrEmailAlreadyExists    AuthServiceError = "bu e-posta ile kayıtlı bir kullanıcı zaten var"
	ErrInvalidOTP            AuthServiceError = "geçersiz veya süresi dolmuş OTP"
	ErrInvalidCredentials    AuthServiceError = "e-posta veya şifre hatalı"
	ErrOTPDeliveryFailed     AuthServiceError = "doğrulama e-postası gönderilemedi"
	ErrPasswordHashingFailed AuthServiceError = "şifre oluşturulamadı"
	ErrTokenCreationFailed   AuthServiceError = "oturum tokenı oluşturulamadı"
	ErrVerificationFailed    AuthServiceError = "hesap doğrulama tamamlanamadı"
)

const (
	minPasswordLength = 6
	otpTTL            = 10 * time.Minute
	sessionTokenTTL   = 7 * 24 * time.Hour
)

// AuthResult başarılı verify/login sonucunu taşır.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// IAuthService kayıt/doğrulama/giriş işlemleri için arayüz.
type IAuthService interface {
	Signup(ctx context.Context, name, email, password string) (string, error)
	Verify(ctx context.Context, email, otp string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo         repositories.IUserRepository
	verificationRepo repositories.IVerificationRepository
	mailer           mailer.IMailer
	db               *gorm.DB
	secret           []byte
	now              func() time.Time
}

// NewAuthService yeni bir AuthService örneği oluşturur. Mailer dışarıdan
// verilir; testlerde sahte implementasyon geçilir.
func NewAuthService(m mailer.IMailer) IAuthService {
	return &AuthService{
		userRepo:         repositories.NewUserRepository(),
		verificationRepo: repositories.NewVerificationRepository(),
		mailer:           m,
		db:               configs.GetDB(),
		secret:           configs.GetJWTSecret(),
		now:              time.Now,
	}
}

// --- Yardımcı Fonksiyonlar ---

// generateOTP kriptografik rastgelelikle tam 6 haneli kod üretir.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validOTP(otp string) bool {
	if len(otp) != 6 {
		return false
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SignSessionToken kullanıcı ID'sini subject olarak taşıyan 7 gün geçerli
// HS256 token üretir.
func SignSessionToken(userID uint, secret []byte, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// --- Servis Metodları ---

// Signup doğrulama kaydı oluşturur ve OTP e-postasını gönderir. Hesap bu
// aşamada henüz oluşmaz; doğrulanmış bir kullanıcı aynı e-postayı
// kullanıyorsa işlem reddedilir.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || !validEmail(email) || len(password) < minPasswordLength {
		return "", ErrAuthInvalidInput
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return "", ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return "", err
	}

	otp, err := generateOTP()
	if err != nil {
		configslog.Log.Error("OTP üretilemedi", zap.Error(err))
		return "", ErrVerificationFailed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrPasswordHashingFailed
	}

	pending := &models.PendingVerification{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashed),
		OTP:          otp,
		ExpiresAt:    s.now().Add(otpTTL),
	}
	if err := s.verificationRepo.Upsert(ctx, pending); err != nil {
		configslog.Log.Error("Doğrulama kaydı yazılamadı", zap.String("email", email), zap.Error(err))
		return "", ErrVerificationFailed
	}

	// Gönderim bekletilir: e-posta çıkmadıysa kullanıcıya başarı dönülmez.
	if err := s.mailer.SendVerificationCode(email, otp); err != nil {
		return "", ErrOTPDeliveryFailed
	}
	return email, nil
}

// Verify OTP eşleşirse bekleyen kaydı kullanıcıya dönüştürür, kaydı siler ve
// oturum tokenı üretir. Yanlış OTP bekleyen kaydı değiştirmez.
func (s *AuthService) Verify(ctx context.Context, email, otp string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !validEmail(email) || !validOTP(otp) {
		return nil, ErrAuthInvalidInput
	}

	pending, err := s.verificationRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	if pending.OTP != otp || s.now().After(pending.ExpiresAt) {
		return nil, ErrInvalidOTP
	}

	user := &models.User{
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
	}
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewUserRepositoryTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return repositories.NewVerificationRepositoryTx(tx).DeleteByEmail(ctx, email)
	})
	if txErr != nil {
		configslog.Log.Error("Doğrulama transaction'ı başarısız", zap.String("email", email), zap.Error(txErr))
		return nil, ErrVerificationFailed
	}

	token, err := SignSessionToken(user.ID, s.secret, s.now())
	if err != nil {
		configslog.Log.Error("Oturum tokenı imzalanamadı", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, ErrTokenCreationFailed
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login kimlik bilgilerini doğrular. Bilinmeyen e-posta ile hatalı şifre aynı
// hatayı döndürür; hangisinin yanlış olduğu dışarı sızdırılmaz.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !validEmail(email) || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := SignSessionToken(user.ID, s.secret, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenCreationFailed, err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
