package proctor

import "sync"

// Stage is the position of a test taker inside the gated exam flow. Stages
// only ever move forward; every backward movement goes through a full
// re-authentication.
type Stage int

const (
	StageUnauthenticated Stage = iota
	StagePreCheck
	StageInstructions
	StageInExam
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StagePreCheck:
		return "pre_check"
	case StageInstructions:
		return "instructions"
	case StageInExam:
		return "in_exam"
	case StageFinished:
		return "finished"
	default:
		return "unauthenticated"
	}
}

// Session holds the per-test-taker proctoring state. It lives only in
// process memory: a restart drops in-flight counters, which restarts the
// counting cycle but never forgives a termination already in the ledger.
type Session struct {
	Email  string
	ExamID string
	Stage  Stage

	// ConsecutiveNoFace counts back-to-back ticks without a face. Reset by
	// any single-face tick.
	ConsecutiveNoFace int
	// ConsecutiveMultiFace counts back-to-back multi-face ticks. Reset by a
	// single-face tick or a no-face tick.
	ConsecutiveMultiFace int
	// NoFaceWarnings accumulates across the whole session, one per no-face
	// streak. It never decreases.
	NoFaceWarnings int

	Terminated        bool
	TerminationReason Reason
}

func (s *Session) resetCounters() {
	s.ConsecutiveNoFace = 0
	s.ConsecutiveMultiFace = 0
	s.NoFaceWarnings = 0
}

type sessionKey struct {
	email  string
	examID string
}

// Store keeps at most one live session per (email, exam) pair. All counter
// mutation happens under the store lock, so two in-flight ticks for the same
// pair serialize instead of racing.
type Store struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[sessionKey]*Session)}
}

// Create replaces any previous session for the pair with a fresh one, all
// counters zeroed.
func (st *Store) Create(email, examID string) Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := &Session{Email: email, ExamID: examID, Stage: StagePreCheck}
	st.sessions[sessionKey{email, examID}] = s
	return *s
}

// Snapshot returns a copy of the live session, if any.
func (st *Store) Snapshot(email, examID string) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[sessionKey{email, examID}]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Advance moves the session to the given stage. Reaching a stage never skips
// the gate: callers guard before advancing.
func (st *Store) Advance(email, examID string, stage Stage) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[sessionKey{email, examID}]
	if !ok {
		return false
	}
	s.Stage = stage
	return true
}

// Tick runs one violation evaluation against the stored session. The second
// return reports whether this tick is the one that crossed into termination;
// later ticks on a terminated session return false there, which keeps the
// ledger write idempotent per session.
func (st *Store) Tick(email, examID string, faces int, th Thresholds) (Decision, bool, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[sessionKey{email, examID}]
	if !ok {
		return Decision{}, false, false
	}
	if s.Terminated {
		return Decision{Terminate: true, Reason: s.TerminationReason}, false, true
	}

	d := s.Evaluate(faces, th)
	firstTermination := false
	if d.Terminate {
		s.Terminated = true
		s.TerminationReason = d.Reason
		s.Stage = StageFinished
		firstTermination = true
	}
	return d, firstTermination, true
}

// ResetCounters zeroes all counters without touching the stage. Used each
// tick of degraded (no-sensor) mode.
func (st *Store) ResetCounters(email, examID string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[sessionKey{email, examID}]; ok {
		s.resetCounters()
	}
}

// Remove drops the session on logout, submission or termination.
func (st *Store) Remove(email, examID string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.sessions, sessionKey{email, examID})
}
