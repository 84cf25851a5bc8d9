package contest

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dario2994/code-contest-bot/internal/util"
)

// Store persists the contest state. The service writes a full snapshot after
// every successful mutation, before any success notification is produced.
type Store interface {
	Save(*State) error
}

// Notification is a delivery directive for the transport. When Photo is set
// it carries an opaque artifact handle and Text becomes the caption.
type Notification struct {
	ChatID    int64
	Text      string
	Photo     string
	Monospace bool
	Markdown  bool
}

// Outcome is what a handled command produces: the ordered notifications to
// deliver and whether the state changed (read-only commands never do).
type Outcome struct {
	Notifications []Notification
	Mutated       bool
}

// Service validates commands against the contest state, mutates it, persists
// and fans out notifications. Handle is safe for concurrent use; commands are
// processed one at a time under a single coarse lock, which also covers the
// read-only accessors used by the HTTP export and the ranking mirror.
type Service struct {
	mu            sync.Mutex
	state         *State
	store         Store
	now           func() time.Time
	checkPassword func(string) bool
}

func NewService(state *State, store Store, checkPassword func(string) bool) *Service {
	return &Service{
		state:         state,
		store:         store,
		now:           time.Now,
		checkPassword: checkPassword,
	}
}

// Handle runs one command to completion: authorization, argument
// well-formedness, business rule, mutation, persistence, notifications — in
// that order. A rejection becomes a single reply to the actor. A persistence
// failure rolls the mutation back and is returned as a non-nil error; the
// caller must treat it as fatal.
func (s *Service) Handle(cmd Command) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out Outcome
	var err error

	switch c := cmd.(type) {
	case RegisterContestant:
		out, err = s.registerContestant(c)
	case RegisterAdmin:
		out, err = s.registerAdmin(c)
	case CreateProblem:
		out, err = s.createProblem(c)
	case Submit:
		out, err = s.submit(c)
	case DeleteSubmission:
		out, err = s.deleteSubmission(c)
	case GetRanking:
		out = s.ranking(c)
	case GetHelp:
		out = s.help(c)
	default:
		return Outcome{}, fmt.Errorf("unknown command type %T", cmd)
	}

	if rej := AsReject(err); rej != nil {
		return Outcome{Notifications: []Notification{
			{ChatID: actorOf(cmd).ChatID, Text: rej.Message},
		}}, nil
	}
	return out, err
}

func actorOf(cmd Command) Actor {
	switch c := cmd.(type) {
	case RegisterContestant:
		return c.Actor
	case RegisterAdmin:
		return c.Actor
	case CreateProblem:
		return c.Actor
	case Submit:
		return c.Actor
	case DeleteSubmission:
		return c.Actor
	case GetRanking:
		return c.Actor
	case GetHelp:
		return c.Actor
	}
	return Actor{}
}

// persist writes the snapshot, restoring prev on failure so the in-memory
// state never diverges from disk after an error.
func (s *Service) persist(prev *State) error {
	if err := s.store.Save(s.state); err != nil {
		s.state.Restore(prev)
		return fmt.Errorf("persist contest state: %w", err)
	}
	return nil
}

func (s *Service) registerContestant(c RegisterContestant) (Outcome, error) {
	if s.state.IsContestant(c.Actor.Name) {
		return Outcome{}, reject(KindAlreadyRegistered, "You are already registered as contestant.")
	}

	prev := s.state.Clone()
	s.state.Contestants = append(s.state.Contestants, User{Name: c.Actor.Name, ChatID: c.Actor.ChatID})
	if err := s.persist(prev); err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Mutated: true,
		Notifications: []Notification{
			{ChatID: c.Actor.ChatID, Text: "You are now registered as contestant."},
		},
	}, nil
}

func (s *Service) registerAdmin(c RegisterAdmin) (Outcome, error) {
	if !s.checkPassword(c.Password) {
		return Outcome{}, reject(KindWrongCredential, "Wrong password")
	}
	if s.state.IsAdmin(c.Actor.Name) {
		return Outcome{}, reject(KindAlreadyRegistered, "You are already registered as admin.")
	}

	prev := s.state.Clone()
	s.state.Admins = append(s.state.Admins, User{Name: c.Actor.Name, ChatID: c.Actor.ChatID})
	if err := s.persist(prev); err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Mutated: true,
		Notifications: []Notification{
			{ChatID: c.Actor.ChatID, Text: "You are now registered as admin."},
		},
	}, nil
}

func (s *Service) createProblem(c CreateProblem) (Outcome, error) {
	if !s.state.IsAdmin(c.Actor.Name) {
		return Outcome{}, reject(KindAuthorizationDenied, "Only admins can create a problem.")
	}

	t1, err1 := strconv.Atoi(c.T1)
	t2, err2 := strconv.Atoi(c.T2)
	if err1 != nil || err2 != nil || t1 <= 0 || t2 <= 0 {
		d := descriptorFor(CmdCreateProblem)
		return Outcome{}, reject(KindInvalidArgumentFormat, fmt.Sprintf("Usage: %s .", d.Usage))
	}
	if t2 <= t1 {
		return Outcome{}, reject(KindInvalidArgumentFormat, "T2 must be greater than T1.")
	}

	prev := s.state.Clone()
	p := Problem{Name: c.Name, T1: t1, T2: t2, URL: c.URL, StartedAt: s.now()}
	s.state.Problems = append(s.state.Problems, p)
	s.state.CurrentProblem = p.Name
	if err := s.persist(prev); err != nil {
		return Outcome{}, err
	}

	announcement := fmt.Sprintf(
		"New problem: %s.\nUrl: %s.\nStarting time: %s (now).\nFull score until: %s (%d minutes).\nPartial score until: %s (%d minutes).",
		p.Name, p.URL,
		util.FormatClock(p.StartedAt),
		util.FormatClock(p.StartedAt.Add(time.Duration(p.T1)*time.Minute)), p.T1,
		util.FormatClock(p.StartedAt.Add(time.Duration(p.T2)*time.Minute)), p.T2,
	)

	out := Outcome{Mutated: true}
	for _, contestant := range s.state.Contestants {
		out.Notifications = append(out.Notifications, Notification{ChatID: contestant.ChatID, Text: announcement})
	}
	for _, admin := range s.state.Admins {
		out.Notifications = append(out.Notifications, Notification{
			ChatID: admin.ChatID,
			Text:   fmt.Sprintf("Problem '%s' created and sent to all contestants.", p.Name),
		})
	}
	return out, nil
}

func (s *Service) submit(c Submit) (Outcome, error) {
	if !s.state.IsContestant(c.Actor.Name) {
		return Outcome{}, reject(KindAuthorizationDenied, "Only a contestant can register his submissions.")
	}
	cur := s.state.Current()
	if cur == nil {
		return Outcome{}, reject(KindNoActiveProblem, "There is no problem active now.")
	}
	if _, ok := s.state.FindScore(c.Actor.Name, cur.Name); ok {
		return Outcome{}, reject(KindDuplicateSubmission, "You have already registered a submission for the current problem.")
	}

	elapsed := s.now().Sub(cur.StartedAt).Minutes()
	score := Score(cur.T1, cur.T2, elapsed)

	prev := s.state.Clone()
	s.state.Scores = append(s.state.Scores, ScoreEntry{Contestant: c.Actor.Name, Problem: cur.Name, Score: score})
	if err := s.persist(prev); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Mutated: true}
	for _, admin := range s.state.Admins {
		out.Notifications = append(out.Notifications, Notification{
			ChatID: admin.ChatID,
			Photo:  c.Proof,
			Text:   fmt.Sprintf("New submission. Contestant: %s, Problem: %s", c.Actor.Name, cur.Name),
		})
	}
	out.Notifications = append(out.Notifications, Notification{
		ChatID: c.Actor.ChatID,
		Text:   fmt.Sprintf("Your submission was awarded a score of: %d", score),
	})
	return out, nil
}

func (s *Service) deleteSubmission(c DeleteSubmission) (Outcome, error) {
	if !s.state.IsAdmin(c.Actor.Name) {
		return Outcome{}, reject(KindAuthorizationDenied, "Only admins can delete a submission.")
	}
	if _, ok := s.state.FindScore(c.Contestant, c.Problem); !ok {
		return Outcome{}, reject(KindSubmissionNotFound,
			fmt.Sprintf("The submission (%s, %s) does not exist.", c.Contestant, c.Problem))
	}

	prev := s.state.Clone()
	s.state.RemoveScore(c.Contestant, c.Problem)
	if err := s.persist(prev); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Mutated: true}
	for _, admin := range s.state.Admins {
		out.Notifications = append(out.Notifications, Notification{
			ChatID: admin.ChatID,
			Text:   fmt.Sprintf("The submission of %s on problem '%s' has been deleted.", c.Contestant, c.Problem),
		})
	}
	for _, contestant := range s.state.Contestants {
		if contestant.Name != c.Contestant {
			continue
		}
		out.Notifications = append(out.Notifications, Notification{
			ChatID: contestant.ChatID,
			Text:   fmt.Sprintf("Your submission on problem '%s' has been deleted by an admin. You can submit again.", c.Problem),
		})
	}
	return out, nil
}

func (s *Service) ranking(c GetRanking) Outcome {
	return Outcome{Notifications: []Notification{
		{ChatID: c.Actor.ChatID, Text: RankingTable(s.state), Monospace: true, Markdown: true},
	}}
}

func (s *Service) help(c GetHelp) Outcome {
	return Outcome{Notifications: []Notification{
		{ChatID: c.Actor.ChatID, Text: HelpText(), Markdown: true},
	}}
}

// RankingSnapshot returns the current ranking rows for the sheet mirror.
func (s *Service) RankingSnapshot() (header []string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RankingRows(s.state)
}

// ExportCSV returns the ranking as CSV for the HTTP export endpoint.
func (s *Service) ExportCSV() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RankingCSV(s.state)
}
