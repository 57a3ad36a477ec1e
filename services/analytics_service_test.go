package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"revuea.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedResponses üç yanıt gönderir: MCQ'da iki kez ilk, bir kez ikinci
// seçenek işaretlenir.
func seedResponses(t *testing.T, form *models.Form) {
	t.Helper()
	texts := []string{"Çok faydalıydı", "Tempo biraz hızlıydı", "Örnekler iyiydi"}
	picks := []int{0, 0, 1}
	for i := range texts {
		submitAnswers(t, form, SubmitInput{Answers: []AnswerInput{
			{QuesID: form.Questions[0].ID, AnswerText: strPtr(texts[i])},
			{QuesID: form.Questions[1].ID, SelectedOption: intPtr(picks[i])},
		}})
	}
}

func TestFormAnalytics(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	form := createTestForm(t, NewFormService(), owner.ID)
	seedResponses(t, form)

	svc := NewAnalyticsService()
	analytics, err := svc.FormAnalytics(context.Background(), form.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, analytics, 2)

	// Paragraf: cevaplar gönderim sırasıyla listelenir.
	texts, ok := analytics[0].Responses.([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"Çok faydalıydı", "Tempo biraz hızlıydı", "Örnekler iyiydi"}, texts)

	// MCQ: her seçenek için sayaç, hiç seçilmemiş olsa bile mevcut.
	counts, ok := analytics[1].Responses.(map[string]int)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"0": 2, "1": 1}, counts)
}

func TestFormAnalyticsEmptyForm(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	form := createTestForm(t, NewFormService(), owner.ID)

	analytics, err := NewAnalyticsService().FormAnalytics(context.Background(), form.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, analytics, 2)

	assert.Equal(t, []string{}, analytics[0].Responses)
	assert.Equal(t, map[string]int{"0": 0, "1": 0}, analytics[1].Responses)
}

func TestFormAnalyticsForbidden(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	intruder := createTestUser(t, db, "davetsiz@example.com", "secret123")
	form := createTestForm(t, NewFormService(), owner.ID)

	_, err := NewAnalyticsService().FormAnalytics(context.Background(), form.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrFormForbidden)

	_, _, err = NewAnalyticsService().ExportCSV(context.Background(), form.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrFormForbidden)
}

func TestExportCSV(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	form := createTestForm(t, NewFormService(), owner.ID)
	seedResponses(t, form)

	filename, data, err := NewAnalyticsService().ExportCSV(context.Background(), form.ID, owner.ID)
	require.NoError(t, err)
	assert.Contains(t, filename, "responses.csv")

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// Başlık + yanıt başına bir satır.
	require.Len(t, records, 4)
	assert.Equal(t, []string{
		"Response No.",
		form.Questions[0].QuestionText,
		form.Questions[1].QuestionText,
		"Timestamp",
	}, records[0])

	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Çok faydalıydı", records[1][1])
	assert.Equal(t, "Evet", records[1][2])
	assert.NotEmpty(t, records[1][3])
	assert.Equal(t, "Hayır", records[3][2])
}

func TestExportCSVNoResponses(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "sahip@example.com", "secret123")
	form := createTestForm(t, NewFormService(), owner.ID)

	_, _, err := NewAnalyticsService().ExportCSV(context.Background(), form.ID, owner.ID)
	assert.ErrorIs(t, err, ErrNoResponsesToExport)
}
