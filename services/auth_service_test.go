package services

import (
	"context"
	"testing"
	"time"

	"revuea.app/models"
	"revuea.app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndVerifyFlow(t *testing.T) {
	db := setupTestDB(t)
	mail := &fakeMailer{}
	svc := newAuthService(mail, time.Now)
	ctx := context.Background()

	email, err := svc.Signup(ctx, "Ayşe Yılmaz", "ayse@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ayse@example.com", email)

	// OTP e-postası gönderilmiş ve tam 6 haneli olmalı.
	require.Len(t, mail.codes, 1)
	assert.Len(t, mail.codes[0], 6)
	assert.Equal(t, []string{"ayse@example.com"}, mail.sentTo)

	// Henüz hesap yok, yalnızca bekleyen kayıt var.
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.EqualValues(t, 0, userCount)

	result, err := svc.Verify(ctx, "ayse@example.com", mail.codes[0])
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Ayşe Yılmaz", result.User.Name)
	assert.Equal(t, "ayse@example.com", result.User.Email)

	// Bekleyen kayıt tüketildi.
	_, err = repositories.NewVerificationRepository().FindByEmail(ctx, "ayse@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Doğrulanan hesapla giriş yapılabilmeli.
	login, err := svc.Login(ctx, "ayse@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestVerifyWrongOTPLeavesPendingIntact(t *testing.T) {
	db := setupTestDB(t)
	mail := &fakeMailer{}
	svc := newAuthService(mail, time.Now)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ali Veli", "ali@example.com", "secret123")
	require.NoError(t, err)

	wrong := "000000"
	if mail.codes[0] == wrong {
		wrong = "000001"
	}

	_, err = svc.Verify(ctx, "ali@example.com", wrong)
	assert.ErrorIs(t, err, ErrInvalidOTP)

	// Kullanıcı oluşmadı, bekleyen kayıt değişmedi.
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.EqualValues(t, 0, userCount)

	pending, err := repositories.NewVerificationRepository().FindByEmail(ctx, "ali@example.com")
	require.NoError(t, err)
	assert.Equal(t, mail.codes[0], pending.OTP)

	// Doğru OTP hâlâ çalışıyor.
	_, err = svc.Verify(ctx, "ali@example.com", mail.codes[0])
	assert.NoError(t, err)
}

func TestVerifyExpiredOTP(t *testing.T) {
	setupTestDB(t)
	mail := &fakeMailer{}
	svc := newAuthService(mail, time.Now)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ali Veli", "ali@example.com", "secret123")
	require.NoError(t, err)

	// Saat OTP penceresinin dışına alınır.
	svc.now = func() time.Time { return time.Now().Add(otpTTL + time.Minute) }

	_, err = svc.Verify(ctx, "ali@example.com", mail.codes[0])
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestRepeatSignupOverwritesPending(t *testing.T) {
	setupTestDB(t)
	mail := &fakeMailer{}
	svc := newAuthService(mail, time.Now)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ali", "ali@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "Ali Veli", "ali@example.com", "yenisifre")
	require.NoError(t, err)

	require.Len(t, mail.codes, 2)

	// İlk OTP artık geçersiz; e-posta başına tek bekleyen kayıt var.
	if mail.codes[0] != mail.codes[1] {
		_, err = svc.Verify(ctx, "ali@example.com", mail.codes[0])
		assert.ErrorIs(t, err, ErrInvalidOTP)
	}

	result, err := svc.Verify(ctx, "ali@example.com", mail.codes[1])
	require.NoError(t, err)
	assert.Equal(t, "Ali Veli", result.User.Name)
}

func TestSignupRejectsExistingUser(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "mevcut@example.com", "secret123")
	svc := newAuthService(&fakeMailer{}, time.Now)

	_, err := svc.Signup(context.Background(), "Biri", "mevcut@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSignupValidation(t *testing.T) {
	setupTestDB(t)
	svc := newAuthService(&fakeMailer{}, time.Now)
	ctx := context.Background()

	cases := []struct {
		name, userName, email, password string
	}{
		{"bozuk e-posta", "Ali", "e-posta-degil", "secret123"},
		{"kısa şifre", "Ali", "ali@example.com", "12345"},
		{"boş ad", "", "ali@example.com", "secret123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.userName, tc.email, tc.password)
			assert.ErrorIs(t, err, ErrAuthInvalidInput)
		})
	}
}

func TestSignupMailFailureSurfaces(t *testing.T) {
	setupTestDB(t)
	svc := newAuthService(&fakeMailer{fail: true}, time.Now)

	_, err := svc.Signup(context.Background(), "Ali", "ali@example.com", "secret123")
	assert.ErrorIs(t, err, ErrOTPDeliveryFailed)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "ali@example.com", "secret123")
	svc := newAuthService(&fakeMailer{}, time.Now)
	ctx := context.Background()

	// Bilinmeyen e-posta ile yanlış şifre aynı hatayı döndürür.
	_, err := svc.Login(ctx, "yok@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ali@example.com", "yanlis-sifre")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
