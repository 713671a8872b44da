package service

import (
	"testing"
	"time"

	"hiregate_backend/internal/model"
)

func TestIsOpen(t *testing.T) {
	today := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name     string
		lastDate string
		want     bool
	}{
		{"closes in the future", "2026-09-15", true},
		{"closes today", "2026-08-29", true},
		{"closed yesterday", "2026-08-28", false},
		{"missing date stays open", "", true},
		{"malformed date stays open", "soon", true},
		{"wrong format stays open", "29/08/2026", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := model.JobPosting{LastDate: tc.lastDate}
			if got := IsOpen(job, today); got != tc.want {
				t.Errorf("IsOpen(%q) = %v, want %v", tc.lastDate, got, tc.want)
			}
		})
	}
}
