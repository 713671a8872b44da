package proctor

import "fmt"

// Reason identifies why an exam session was terminated. The values are
// stored verbatim in the termination ledger.
type Reason string

const (
	ReasonMultipleFaces  Reason = "MULTIPLE_FACES_DETECTED"
	ReasonNoFaceStreak   Reason = "NO_FACE_DETECTED_FOR_5_CHECKS"
	ReasonNoFaceWarnings Reason = "NO_FACE_DETECTED_5_WARNINGS"
	ReasonClientSide     Reason = "CLIENT_SIDE_VIOLATION"
)

// Thresholds are the escalation limits for the violation accumulator.
type Thresholds struct {
	// MaxNoFaceChecks terminates when that many consecutive ticks pass
	// without a face.
	MaxNoFaceChecks int
	// MaxMultiFaceChecks terminates when that many consecutive ticks see
	// more than one face.
	MaxMultiFaceChecks int
	// MaxNoFaceWarnings terminates when that many separate no-face streaks
	// have started within one session.
	MaxNoFaceWarnings int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxNoFaceChecks:    5,
		MaxMultiFaceChecks: 2,
		MaxNoFaceWarnings:  5,
	}
}

// Decision is the outcome of one violation tick.
type Decision struct {
	FaceDetected  bool   `json:"faceDetected"`
	MultipleFaces bool   `json:"multipleFaces"`
	Message       string `json:"message"`
	Terminate     bool   `json:"terminate"`
	Reason        Reason `json:"-"`
}

// Evaluate applies one face-count observation to the session counters and
// returns the warn/terminate decision. faces is the number of faces the
// sensor saw above its confidence threshold; detector failures arrive here
// as zero.
//
// Priority order: exactly one face clears the consecutive counters; multiple
// faces escalate fastest; zero faces escalate on two axes, a consecutive
// streak and a cumulative per-streak warning budget.
func (s *Session) Evaluate(faces int, th Thresholds) Decision {
	switch {
	case faces == 1:
		s.ConsecutiveNoFace = 0
		s.ConsecutiveMultiFace = 0
		return Decision{FaceDetected: true, Message: "Face Detected"}

	case faces > 1:
		s.ConsecutiveMultiFace++
		s.ConsecutiveNoFace = 0

		if s.ConsecutiveMultiFace >= th.MaxMultiFaceChecks {
			return Decision{
				MultipleFaces: true,
				Terminate:     true,
				Reason:        ReasonMultipleFaces,
				Message:       "EXAM TERMINATED: Multiple faces detected twice.",
			}
		}
		return Decision{
			MultipleFaces: true,
			Message: fmt.Sprintf("WARNING: Multiple faces detected (%d/%d checks). Next failure terminates exam.",
				s.ConsecutiveMultiFace, th.MaxMultiFaceChecks),
		}

	default: // zero faces, including sensor failures
		s.ConsecutiveNoFace++
		s.ConsecutiveMultiFace = 0

		if s.ConsecutiveNoFace >= th.MaxNoFaceChecks {
			return Decision{
				Terminate: true,
				Reason:    ReasonNoFaceStreak,
				Message:   fmt.Sprintf("EXAM TERMINATED: Face lost for %d seconds.", th.MaxNoFaceChecks),
			}
		}

		if s.ConsecutiveNoFace == 1 {
			// A new streak has started: spend one unit of the cumulative
			// warning budget, regardless of how long the streak will run.
			s.NoFaceWarnings++
			if s.NoFaceWarnings >= th.MaxNoFaceWarnings {
				return Decision{
					Terminate: true,
					Reason:    ReasonNoFaceWarnings,
					Message:   fmt.Sprintf("EXAM TERMINATED: %d Total Warnings Reached.", th.MaxNoFaceWarnings),
				}
			}
		}

		remaining := th.MaxNoFaceChecks - s.ConsecutiveNoFace
		return Decision{
			Message: fmt.Sprintf("WARNING: Face lost! Total Warnings: %d/%d. Re-appear in %ds!",
				s.NoFaceWarnings, th.MaxNoFaceWarnings, remaining),
		}
	}
}
