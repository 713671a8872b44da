package proctor

import "time"

// Ledger answers whether a blocking termination exists for the pair. Lookup
// failures must degrade to "not blocked" inside the implementation.
type Ledger interface {
	Blocked(email, examID string) bool
}

// ResultChecker answers whether a final result was already written for the
// pair. Lookup failures must degrade to "no result".
type ResultChecker interface {
	Exists(email, examID string) bool
}

// WindowSource resolves the exam's time window. The second return is false
// when the exam does not exist at all.
type WindowSource interface {
	Window(examID string) (Window, bool)
}

// Window is an exam's validity interval. Either bound may be missing when
// the stored timestamps were absent or unparseable.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether now falls inside the window. A window with a
// missing bound follows the failOpen policy.
func (w Window) Contains(now time.Time, failOpen bool) bool {
	if w.Start == nil || w.End == nil {
		return failOpen
	}
	return !now.Before(*w.Start) && !now.After(*w.End)
}

type DenyReason string

const (
	DenyNone             DenyReason = ""
	DenyNoSession        DenyReason = "NO_SESSION"
	DenyWrongExam        DenyReason = "WRONG_EXAM"
	DenyBlocked          DenyReason = "BLOCKED"
	DenyAlreadySubmitted DenyReason = "ALREADY_SUBMITTED"
	DenyWindowClosed     DenyReason = "WINDOW_CLOSED"
	DenyExamNotFound     DenyReason = "EXAM_NOT_FOUND"
)

type GateDecision struct {
	Allow   bool
	Reason  DenyReason
	Message string
}

func allow() GateDecision { return GateDecision{Allow: true} }

func deny(reason DenyReason, message string) GateDecision {
	return GateDecision{Reason: reason, Message: message}
}

// Gate enforces entry into the gated exam stages. Every entry re-evaluates
// all guards; nothing is cached between requests.
type Gate struct {
	Ledger  Ledger
	Results ResultChecker
	Windows WindowSource

	// WindowFailOpen treats exams with a broken or missing time window as
	// always open when true.
	WindowFailOpen bool

	// Now is replaceable for tests; defaults to time.Now.
	Now func() time.Time
}

func (g *Gate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Check evaluates the guards for entering a gated stage. hasSession and sess
// come from the session store; examID is the exam the request names.
//
// The window is checked on entry to pre-check, instructions and the exam
// itself, but never mid-exam: a window that closes under an active test
// taker does not interrupt them.
func (g *Gate) Check(sess Session, hasSession bool, examID string) GateDecision {
	if !hasSession {
		return deny(DenyNoSession, "Please log in to start your test.")
	}
	if sess.ExamID != examID {
		return deny(DenyWrongExam, "Access Denied: You are not authorized for this specific exam.")
	}
	if g.Ledger.Blocked(sess.Email, examID) {
		return deny(DenyBlocked, "Access Denied: Your exam access has been terminated.")
	}
	if g.Results.Exists(sess.Email, examID) {
		return deny(DenyAlreadySubmitted, "You have already submitted this exam. Access is denied.")
	}

	w, found := g.Windows.Window(examID)
	if !found {
		return deny(DenyExamNotFound, "Exam paper not found. Contact the administrator.")
	}
	if !w.Contains(g.now(), g.WindowFailOpen) {
		return deny(DenyWindowClosed, "The exam is currently closed. Check the start and end dates/times.")
	}

	return allow()
}
