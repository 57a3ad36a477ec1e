package services

import (
	"context"
	"testing"
	"time"

	"revuea.app/models"
	"revuea.app/pkg/queryparams"
	"revuea.app/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateForm(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olusturan@example.com", "secret123")
	svc := NewFormService()

	form, err := svc.CreateForm(context.Background(), user.ID, validFormInput(time.Now()))
	require.NoError(t, err)

	assert.NotZero(t, form.ID)
	assert.Equal(t, user.ID, form.CreatorID)
	require.NoError(t, uuid.Validate(form.ShareKey))
	require.Len(t, form.Questions, 2)
	assert.Equal(t, 0, form.Questions[0].Position)
	assert.Equal(t, 1, form.Questions[1].Position)
	assert.Equal(t, models.QuestionTypeMCQ, form.Questions[1].Type)

	// Audit kolonları transaction context'inden dolmalı.
	var stored models.Form
	require.NoError(t, db.First(&stored, form.ID).Error)
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, user.ID, *stored.CreatedBy)
}

func TestCreateFormValidation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olusturan@example.com", "secret123")
	svc := NewFormService()
	ctx := context.Background()
	now := time.Now()

	cases := []struct {
		name   string
		mutate func(*FormInput)
	}{
		{"kısa başlık", func(in *FormInput) { in.Title = "ab" }},
		{"kısa açıklama", func(in *FormInput) { in.Description = "x" }},
		{"bitiş başlangıçtan önce", func(in *FormInput) { in.EndTime = in.StartTime.Add(-time.Minute) }},
		{"sorusuz form", func(in *FormInput) { in.Questions = nil }},
		{"boş soru metni", func(in *FormInput) { in.Questions[0].QuestionText = "" }},
		{"tek seçenekli MCQ", func(in *FormInput) { in.Questions[1].Options = []string{"Evet"} }},
		{"boş seçenek", func(in *FormInput) { in.Questions[1].Options = []string{"Evet", ""} }},
		{"bilinmeyen soru tipi", func(in *FormInput) { in.Questions[0].Type = "RATING" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validFormInput(now)
			tc.mutate(&input)
			_, err := svc.CreateForm(ctx, user.ID, input)
			assert.ErrorIs(t, err, ErrFormInvalidInput)
		})
	}
}

func TestCreateFormClearsParagraphOptions(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olusturan@example.com", "secret123")
	svc := NewFormService()

	input := validFormInput(time.Now())
	input.Questions[0].Options = []string{"gereksiz", "seçenek"}

	form, err := svc.CreateForm(context.Background(), user.ID, input)
	require.NoError(t, err)
	assert.Empty(t, form.Questions[0].Options)
}

func TestGetFormByShareKey(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olusturan@example.com", "secret123")
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, user.ID)

	found, err := svc.GetFormByShareKey(ctx, form.ShareKey)
	require.NoError(t, err)
	assert.Equal(t, form.ID, found.ID)
	assert.Len(t, found.Questions, 2)

	_, err = svc.GetFormByShareKey(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestGetFormsForUserPagination(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	other := createTestUser(t, db, "baskasi@example.com", "secret123")
	svc := NewFormService()
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 3; i++ {
		input := validFormInput(now)
		input.StartTime = now.Add(time.Duration(-i-1) * time.Hour)
		_, err := svc.CreateForm(ctx, owner.ID, input)
		require.NoError(t, err)
	}
	createTestForm(t, svc, other.ID)

	result, err := svc.GetFormsForUser(ctx, owner.ID, queryparams.ListParams{Page: 1, PerPage: 2})
	require.NoError(t, err)

	forms, ok := result.Data.([]models.Form)
	require.True(t, ok)
	assert.Len(t, forms, 2)
	assert.EqualValues(t, 3, result.Meta.TotalItems)
	assert.Equal(t, 2, result.Meta.TotalPages)

	// Varsayılan sıralama start_time desc: en yeni form önce gelir.
	assert.True(t, !forms[0].StartTime.Before(forms[1].StartTime))

	// Başka kullanıcının formları listeye karışmaz.
	for _, f := range forms {
		assert.Equal(t, owner.ID, f.CreatorID)
	}
}

func TestGetFormsForUserTitleFilter(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	svc := NewFormService()
	ctx := context.Background()

	now := time.Now()
	a := validFormInput(now)
	a.Title = "Algoritma Anketi"
	_, err := svc.CreateForm(ctx, owner.ID, a)
	require.NoError(t, err)

	b := validFormInput(now)
	b.Title = "Veritabanı Anketi"
	_, err = svc.CreateForm(ctx, owner.ID, b)
	require.NoError(t, err)

	result, err := svc.GetFormsForUser(ctx, owner.ID, queryparams.ListParams{Title: "algoritma"})
	require.NoError(t, err)
	forms := result.Data.([]models.Form)
	require.Len(t, forms, 1)
	assert.Equal(t, "Algoritma Anketi", forms[0].Title)
}

func TestUpdateFormReplacesQuestions(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, owner.ID)

	input := validFormInput(time.Now())
	input.Title = "Güncellenmiş Başlık"
	input.Questions = []QuestionInput{
		{QuestionText: "Yeni tek soru", Type: models.QuestionTypeParagraph},
	}

	updated, err := svc.UpdateForm(ctx, form.ID, owner.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Güncellenmiş Başlık", updated.Title)
	assert.Equal(t, form.ShareKey, updated.ShareKey)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "Yeni tek soru", updated.Questions[0].QuestionText)

	// Eski sorular aktif küme dışına çıkar.
	var liveQuestions int64
	db.Model(&models.Question{}).Where("form_id = ?", form.ID).Count(&liveQuestions)
	assert.EqualValues(t, 1, liveQuestions)
}

func TestUpdateFormForbiddenForNonOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	intruder := createTestUser(t, db, "davetsiz@example.com", "secret123")
	svc := NewFormService()

	form := createTestForm(t, svc, owner.ID)

	_, err := svc.UpdateForm(context.Background(), form.ID, intruder.ID, validFormInput(time.Now()))
	assert.ErrorIs(t, err, ErrFormForbidden)
}

func TestUpdateFormBlockedAfterResponses(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, owner.ID)
	submitAnswers(t, form, SubmitInput{Answers: []AnswerInput{
		{QuesID: form.Questions[0].ID, AnswerText: strPtr("Gayet iyiydi")},
		{QuesID: form.Questions[1].ID, SelectedOption: intPtr(0)},
	}})

	_, err := svc.UpdateForm(ctx, form.ID, owner.ID, validFormInput(time.Now()))
	assert.ErrorIs(t, err, ErrFormHasResponses)

	// Sorular olduğu gibi durmalı.
	reloaded, err := svc.GetFormByID(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Questions, 2)
	assert.Equal(t, form.Questions[0].QuestionText, reloaded.Questions[0].QuestionText)
}

func TestEndFormClosesImmediately(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	fixed := time.Now().Truncate(time.Second)
	svc := &FormService{
		repo: repositories.NewFormRepository(),
		db:   db,
		now:  func() time.Time { return fixed },
	}

	form := createTestForm(t, svc, owner.ID)
	require.True(t, form.IsActiveAt(fixed.Add(time.Minute)))

	ended, err := svc.EndForm(context.Background(), form.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ended.EndTime.Equal(fixed))
	assert.False(t, ended.IsActiveAt(fixed.Add(time.Minute)))
}

func TestDeleteFormCascades(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, owner.ID)
	submitAnswers(t, form, SubmitInput{Answers: []AnswerInput{
		{QuesID: form.Questions[0].ID, AnswerText: strPtr("Bir görüş")},
	}})

	require.NoError(t, svc.DeleteForm(ctx, form.ID, owner.ID))

	_, err := svc.GetFormByID(ctx, form.ID)
	assert.ErrorIs(t, err, ErrFormNotFound)

	// Bağlı kayıtların hepsi soft-delete edildi.
	for table, model := range map[string]interface{}{
		"questions": &models.Question{},
		"responses": &models.Response{},
	} {
		var count int64
		db.Model(model).Where("form_id = ?", form.ID).Count(&count)
		assert.EqualValues(t, 0, count, "tablo: %s", table)
	}
}

func TestDeleteFormNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	svc := NewFormService()

	err := svc.DeleteForm(context.Background(), 9999, owner.ID)
	assert.ErrorIs(t, err, ErrFormNotFound)
}
