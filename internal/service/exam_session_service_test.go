package service

import (
	"testing"

	"hiregate_backend/internal/model"
)

func paper(answers ...string) []model.Question {
	qs := make([]model.Question, len(answers))
	for i, a := range answers {
		qs[i] = model.Question{
			UUIDBase:      model.UUIDBase{ID: string(rune('a' + i))},
			CorrectAnswer: a,
		}
	}
	return qs
}

func TestScorePaper(t *testing.T) {
	cases := []struct {
		name        string
		questions   []model.Question
		answers     map[string]string
		wantRaw     int
		wantPercent float64
	}{
		{
			name:        "all correct",
			questions:   paper("A", "B", "C"),
			answers:     map[string]string{"a": "A", "b": "B", "c": "C"},
			wantRaw:     3,
			wantPercent: 100,
		},
		{
			name:        "partial",
			questions:   paper("A", "B", "C"),
			answers:     map[string]string{"a": "A", "b": "D"},
			wantRaw:     1,
			wantPercent: 33.33,
		},
		{
			name:        "two thirds rounds up",
			questions:   paper("A", "B", "C"),
			answers:     map[string]string{"a": "A", "b": "B"},
			wantRaw:     2,
			wantPercent: 66.67,
		},
		{
			name:        "no answers",
			questions:   paper("A", "B"),
			answers:     map[string]string{},
			wantRaw:     0,
			wantPercent: 0,
		},
		{
			name:        "unknown question ids ignored",
			questions:   paper("A"),
			answers:     map[string]string{"zz": "A"},
			wantRaw:     0,
			wantPercent: 0,
		},
		{
			name:        "empty paper scores zero",
			questions:   nil,
			answers:     map[string]string{"a": "A"},
			wantRaw:     0,
			wantPercent: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, percent := scorePaper(tc.questions, tc.answers)
			if raw != tc.wantRaw {
				t.Errorf("raw = %d, want %d", raw, tc.wantRaw)
			}
			if percent != tc.wantPercent {
				t.Errorf("percent = %v, want %v", percent, tc.wantPercent)
			}
		})
	}
}
