package proctor

import (
	"strings"
	"testing"
)

func tick(t *testing.T, s *Session, faces int) Decision {
	t.Helper()
	return s.Evaluate(faces, DefaultThresholds())
}

func TestEvaluateSingleFaceResetsConsecutiveCounters(t *testing.T) {
	s := &Session{}
	tick(t, s, 0)
	tick(t, s, 0)
	tick(t, s, 2)

	d := tick(t, s, 1)

	if !d.FaceDetected || d.Terminate {
		t.Fatalf("expected clean face-detected decision, got %+v", d)
	}
	if s.ConsecutiveNoFace != 0 || s.ConsecutiveMultiFace != 0 {
		t.Errorf("consecutive counters not reset: noFace=%d multiFace=%d",
			s.ConsecutiveNoFace, s.ConsecutiveMultiFace)
	}
	if s.NoFaceWarnings != 1 {
		t.Errorf("cumulative warnings should survive a face tick, got %d", s.NoFaceWarnings)
	}
}

func TestEvaluateNoFaceStreakTerminatesAtFive(t *testing.T) {
	s := &Session{}
	for i := 1; i <= 4; i++ {
		d := tick(t, s, 0)
		if d.Terminate {
			t.Fatalf("terminated early at tick %d: %+v", i, d)
		}
		if s.ConsecutiveNoFace != i {
			t.Fatalf("tick %d: ConsecutiveNoFace = %d", i, s.ConsecutiveNoFace)
		}
	}

	d := tick(t, s, 0)
	if !d.Terminate || d.Reason != ReasonNoFaceStreak {
		t.Fatalf("fifth no-face tick should terminate with streak reason, got %+v", d)
	}
	if s.NoFaceWarnings != 1 {
		t.Errorf("a single unbroken streak should cost one warning, got %d", s.NoFaceWarnings)
	}
}

func TestEvaluateStreakBrokenBeforeFiveDoesNotTerminate(t *testing.T) {
	s := &Session{}
	for i := 0; i < 4; i++ {
		tick(t, s, 0)
	}
	d := tick(t, s, 1)
	if d.Terminate {
		t.Fatalf("face at tick 5 should rescue the session, got %+v", d)
	}

	// The next absence is a fresh streak.
	d = tick(t, s, 0)
	if d.Terminate {
		t.Fatalf("first tick of a new streak must not terminate, got %+v", d)
	}
	if s.ConsecutiveNoFace != 1 {
		t.Errorf("new streak should start at 1, got %d", s.ConsecutiveNoFace)
	}
	if s.NoFaceWarnings != 2 {
		t.Errorf("two streaks should cost two warnings, got %d", s.NoFaceWarnings)
	}
}

func TestEvaluateFiveSeparateStreaksExhaustWarningBudget(t *testing.T) {
	s := &Session{}
	for streak := 1; streak <= 4; streak++ {
		d := tick(t, s, 0)
		if d.Terminate {
			t.Fatalf("streak %d should only warn, got %+v", streak, d)
		}
		if s.NoFaceWarnings != streak {
			t.Fatalf("streak %d: warnings = %d", streak, s.NoFaceWarnings)
		}
		tick(t, s, 1)
	}

	d := tick(t, s, 0)
	if !d.Terminate || d.Reason != ReasonNoFaceWarnings {
		t.Fatalf("fifth streak should terminate on cumulative warnings, got %+v", d)
	}
}

func TestEvaluateMultipleFacesTerminatesOnSecondConsecutive(t *testing.T) {
	s := &Session{}

	d := tick(t, s, 2)
	if d.Terminate || !d.MultipleFaces {
		t.Fatalf("first multi-face tick should warn, got %+v", d)
	}
	if !strings.Contains(d.Message, "1/2") {
		t.Errorf("warning should show check count, got %q", d.Message)
	}

	d = tick(t, s, 3)
	if !d.Terminate || d.Reason != ReasonMultipleFaces {
		t.Fatalf("second consecutive multi-face tick should terminate, got %+v", d)
	}
}

func TestEvaluateMultiFaceCounterResetByAnyOtherOutcome(t *testing.T) {
	cases := []struct {
		name  string
		faces int
	}{
		{"single face", 1},
		{"no face", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Session{}
			tick(t, s, 2)
			tick(t, s, tc.faces)
			if s.ConsecutiveMultiFace != 0 {
				t.Fatalf("multi-face counter should reset, got %d", s.ConsecutiveMultiFace)
			}

			d := tick(t, s, 2)
			if d.Terminate {
				t.Fatalf("multi-face after a reset starts a new pair, got %+v", d)
			}
		})
	}
}

func TestEvaluateCountersNeverNegative(t *testing.T) {
	s := &Session{}
	seq := []int{1, 1, 0, 2, 1, 0, 1}
	for _, faces := range seq {
		tick(t, s, faces)
		if s.ConsecutiveNoFace < 0 || s.ConsecutiveMultiFace < 0 || s.NoFaceWarnings < 0 {
			t.Fatalf("negative counter after faces=%d: %+v", faces, s)
		}
	}
}

func TestEvaluateWarningMessageShowsBudgets(t *testing.T) {
	s := &Session{}
	tick(t, s, 0)
	d := tick(t, s, 0)

	if !strings.Contains(d.Message, "1/5") {
		t.Errorf("message should show cumulative warnings 1/5, got %q", d.Message)
	}
	if !strings.Contains(d.Message, "3s") {
		t.Errorf("message should show 3 remaining seconds, got %q", d.Message)
	}
}
