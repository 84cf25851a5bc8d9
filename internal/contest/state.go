package contest

import "time"

// User is a registered admin or contestant. Never mutated after creation.
type User struct {
	Name   string `json:"name"`
	ChatID int64  `json:"chat_id"`
}

// Problem is immutable after creation. T1 is the full-score window and T2 the
// zero-score cutoff, both in minutes.
type Problem struct {
	Name      string    `json:"name"`
	T1        int       `json:"t1"`
	T2        int       `json:"t2"`
	URL       string    `json:"url"`
	StartedAt time.Time `json:"started_at"`
}

// ScoreEntry records the one accepted submission for a (contestant, problem)
// pair. Entries are only removed by an explicit admin delete.
type ScoreEntry struct {
	Contestant string `json:"contestant"`
	Problem    string `json:"problem"`
	Score      int    `json:"score"`
}

// State is the whole contest: who is registered, which problems were
// published (append-only, in creation order) and which scores stand.
// CurrentProblem names the latest problem; it is empty until the first one
// is created. The zero value is a fresh, empty contest.
type State struct {
	Admins         []User       `json:"admins"`
	Contestants    []User       `json:"contestants"`
	Problems       []Problem    `json:"problems"`
	CurrentProblem string       `json:"current_problem"`
	Scores         []ScoreEntry `json:"scores"`
}

func NewState() *State {
	return &State{}
}

func (s *State) IsAdmin(name string) bool {
	for _, a := range s.Admins {
		if a.Name == name {
			return true
		}
	}
	return false
}

func (s *State) IsContestant(name string) bool {
	for _, c := range s.Contestants {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Current returns the active problem, or nil if none was created yet.
func (s *State) Current() *Problem {
	for i := range s.Problems {
		if s.Problems[i].Name == s.CurrentProblem {
			return &s.Problems[i]
		}
	}
	return nil
}

// FindScore returns the recorded score for the pair, if any.
func (s *State) FindScore(contestant, problem string) (int, bool) {
	for _, e := range s.Scores {
		if e.Contestant == contestant && e.Problem == problem {
			return e.Score, true
		}
	}
	return 0, false
}

// RemoveScore deletes the entry for the pair and reports whether it existed.
func (s *State) RemoveScore(contestant, problem string) bool {
	for i, e := range s.Scores {
		if e.Contestant == contestant && e.Problem == problem {
			s.Scores = append(s.Scores[:i], s.Scores[i+1:]...)
			return true
		}
	}
	return false
}

// Clone deep-copies the state. The service snapshots before every mutation so
// a failed persistence write can be rolled back.
func (s *State) Clone() *State {
	c := &State{CurrentProblem: s.CurrentProblem}
	c.Admins = append([]User(nil), s.Admins...)
	c.Contestants = append([]User(nil), s.Contestants...)
	c.Problems = append([]Problem(nil), s.Problems...)
	c.Scores = append([]ScoreEntry(nil), s.Scores...)
	return c
}

// Restore overwrites the state in place with a previously cloned copy.
func (s *State) Restore(from *State) {
	*s = *from
}
