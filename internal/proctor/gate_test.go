package proctor

import (
	"testing"
	"time"
)

type fakeLedger struct{ blocked bool }

func (f fakeLedger) Blocked(email, examID string) bool { return f.blocked }

type fakeResults struct{ exists bool }

func (f fakeResults) Exists(email, examID string) bool { return f.exists }

type fakeWindows struct {
	window Window
	found  bool
}

func (f fakeWindows) Window(examID string) (Window, bool) { return f.window, f.found }

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func openWindow() Window {
	return Window{Start: ts("2026-01-01T09:00:00Z"), End: ts("2026-12-31T18:00:00Z")}
}

func newGate(ledger Ledger, results ResultChecker, windows WindowSource, failOpen bool) *Gate {
	return &Gate{
		Ledger:         ledger,
		Results:        results,
		Windows:        windows,
		WindowFailOpen: failOpen,
		Now:            func() time.Time { return *ts("2026-06-15T12:00:00Z") },
	}
}

func TestGateDeniesWithoutSession(t *testing.T) {
	g := newGate(fakeLedger{}, fakeResults{}, fakeWindows{openWindow(), true}, true)

	d := g.Check(Session{}, false, "exam-1")
	if d.Allow || d.Reason != DenyNoSession {
		t.Fatalf("expected no-session denial, got %+v", d)
	}
}

func TestGateDeniesExamMismatch(t *testing.T) {
	g := newGate(fakeLedger{}, fakeResults{}, fakeWindows{openWindow(), true}, true)
	sess := Session{Email: "a@x.com", ExamID: "exam-1"}

	d := g.Check(sess, true, "exam-2")
	if d.Allow || d.Reason != DenyWrongExam {
		t.Fatalf("expected wrong-exam denial, got %+v", d)
	}
}

func TestGateBlockedBeatsEverythingElse(t *testing.T) {
	// Blocked together with an existing result: blocked must win.
	g := newGate(fakeLedger{blocked: true}, fakeResults{exists: true}, fakeWindows{openWindow(), true}, true)
	sess := Session{Email: "a@x.com", ExamID: "exam-1"}

	d := g.Check(sess, true, "exam-1")
	if d.Allow || d.Reason != DenyBlocked {
		t.Fatalf("expected blocked denial, got %+v", d)
	}
}

func TestGateDeniesAfterSubmission(t *testing.T) {
	g := newGate(fakeLedger{}, fakeResults{exists: true}, fakeWindows{openWindow(), true}, true)
	sess := Session{Email: "a@x.com", ExamID: "exam-1"}

	d := g.Check(sess, true, "exam-1")
	if d.Allow || d.Reason != DenyAlreadySubmitted {
		t.Fatalf("expected already-submitted denial, got %+v", d)
	}
}

func TestGateDeniesMissingExam(t *testing.T) {
	g := newGate(fakeLedger{}, fakeResults{}, fakeWindows{found: false}, true)
	sess := Session{Email: "a@x.com", ExamID: "exam-1"}

	d := g.Check(sess, true, "exam-1")
	if d.Allow || d.Reason != DenyExamNotFound {
		t.Fatalf("expected exam-not-found denial, got %+v", d)
	}
}

func TestGateWindowBounds(t *testing.T) {
	cases := []struct {
		name  string
		now   string
		allow bool
	}{
		{"before start", "2026-01-01T08:59:59Z", false},
		{"at start", "2026-01-01T09:00:00Z", true},
		{"inside", "2026-06-15T12:00:00Z", true},
		{"at end", "2026-12-31T18:00:00Z", true},
		{"after end", "2026-12-31T18:00:01Z", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGate(fakeLedger{}, fakeResults{}, fakeWindows{openWindow(), true}, true)
			g.Now = func() time.Time { return *ts(tc.now) }

			d := g.Check(Session{Email: "a@x.com", ExamID: "exam-1"}, true, "exam-1")
			if d.Allow != tc.allow {
				t.Fatalf("now=%s: allow=%v want %v (%+v)", tc.now, d.Allow, tc.allow, d)
			}
			if !tc.allow && d.Reason != DenyWindowClosed {
				t.Errorf("now=%s: reason=%v want window-closed", tc.now, d.Reason)
			}
		})
	}
}

func TestGateMissingWindowFollowsPolicy(t *testing.T) {
	cases := []struct {
		name     string
		failOpen bool
		allow    bool
	}{
		{"fail open", true, true},
		{"fail closed", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGate(fakeLedger{}, fakeResults{}, fakeWindows{Window{}, true}, tc.failOpen)

			d := g.Check(Session{Email: "a@x.com", ExamID: "exam-1"}, true, "exam-1")
			if d.Allow != tc.allow {
				t.Fatalf("failOpen=%v: allow=%v want %v", tc.failOpen, d.Allow, tc.allow)
			}
		})
	}
}
