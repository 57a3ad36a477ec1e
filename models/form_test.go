package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormIsActiveAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	form := Form{StartTime: start, EndTime: end}

	cases := []struct {
		name   string
		at     time.Time
		active bool
	}{
		{"başlangıçtan önce", start.Add(-time.Second), false},
		{"tam başlangıç anı", start, true},
		{"aralığın ortası", start.Add(24 * time.Hour), true},
		{"tam bitiş anı", end, true},
		{"bitişten sonra", end.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.active, form.IsActiveAt(tc.at))
		})
	}
}
