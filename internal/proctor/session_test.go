package proctor

import (
	"sync"
	"testing"
)

func TestStoreCreateResetsPreviousCounters(t *testing.T) {
	st := NewStore()
	st.Create("a@x.com", "exam-1")
	st.Tick("a@x.com", "exam-1", 0, DefaultThresholds())
	st.Tick("a@x.com", "exam-1", 0, DefaultThresholds())

	s := st.Create("a@x.com", "exam-1")

	if s.ConsecutiveNoFace != 0 || s.NoFaceWarnings != 0 {
		t.Fatalf("re-login must zero counters, got %+v", s)
	}
	if s.Stage != StagePreCheck {
		t.Errorf("fresh session should start at pre-check, got %v", s.Stage)
	}
}

func TestStoreSessionsIsolatedPerPair(t *testing.T) {
	st := NewStore()
	st.Create("a@x.com", "exam-1")
	st.Create("b@x.com", "exam-1")

	st.Tick("a@x.com", "exam-1", 0, DefaultThresholds())

	s, ok := st.Snapshot("b@x.com", "exam-1")
	if !ok {
		t.Fatal("second session missing")
	}
	if s.ConsecutiveNoFace != 0 {
		t.Errorf("counters leaked across sessions: %d", s.ConsecutiveNoFace)
	}
}

func TestStoreTickUnknownSession(t *testing.T) {
	st := NewStore()
	_, _, found := st.Tick("ghost@x.com", "exam-1", 1, DefaultThresholds())
	if found {
		t.Fatal("tick on a missing session should report not found")
	}
}

func TestStoreTickReportsFirstTerminationExactlyOnce(t *testing.T) {
	st := NewStore()
	st.Create("a@x.com", "exam-1")
	th := DefaultThresholds()

	st.Tick("a@x.com", "exam-1", 2, th)
	d, first, found := st.Tick("a@x.com", "exam-1", 2, th)
	if !found || !d.Terminate || !first {
		t.Fatalf("second multi-face tick should be the first termination, got d=%+v first=%v", d, first)
	}

	d, first, found = st.Tick("a@x.com", "exam-1", 1, th)
	if !found || !d.Terminate {
		t.Fatalf("ticks after termination must keep reporting terminate, got %+v", d)
	}
	if first {
		t.Fatal("termination reported as first more than once")
	}
	if d.Reason != ReasonMultipleFaces {
		t.Errorf("reason should be retained, got %v", d.Reason)
	}
}

func TestStoreTerminationMovesStageToFinished(t *testing.T) {
	st := NewStore()
	st.Create("a@x.com", "exam-1")
	st.Advance("a@x.com", "exam-1", StageInExam)
	th := DefaultThresholds()

	for i := 0; i < th.MaxNoFaceChecks; i++ {
		st.Tick("a@x.com", "exam-1", 0, th)
	}

	s, _ := st.Snapshot("a@x.com", "exam-1")
	if !s.Terminated || s.Stage != StageFinished {
		t.Fatalf("terminated session should be finished, got %+v", s)
	}
}

func TestStoreResetCountersKeepsStage(t *testing.T) {
	st := NewStore()
	st.Create("a@x.com", "exam-1")
	st.Advance("a@x.com", "exam-1", StageInExam)
	st.Tick("a@x.com", "exam-1", 0, DefaultThresholds())

	st.ResetCounters("a@x.com", "exam-1")

	s, _ := st.Snapshot("a@x.com", "exam-1")
	if s.ConsecutiveNoFace != 0 || s.NoFaceWarnings != 0 {
		t.Fatalf("counters should be zeroed, got %+v", s)
	}
	if s.Stage != StageInExam {
		t.Errorf("stage should be untouched, got %v", s.Stage)
	}
}

func TestStoreConcurrentTicksTerminateOnce(t *testing.T) {
	st := NewStore()
	st.Create("a@x.com", "exam-1")
	th := DefaultThresholds()

	const workers = 20
	var wg sync.WaitGroup
	firsts := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, first, _ := st.Tick("a@x.com", "exam-1", 2, th)
			firsts <- first
		}()
	}
	wg.Wait()
	close(firsts)

	count := 0
	for f := range firsts {
		if f {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one first-termination signal, got %d", count)
	}
}

func TestStoreRemove(t *testing.T) {
	st := NewStore()
	st.Create("a@x.com", "exam-1")
	st.Remove("a@x.com", "exam-1")

	if _, ok := st.Snapshot("a@x.com", "exam-1"); ok {
		t.Fatal("removed session still present")
	}
}
