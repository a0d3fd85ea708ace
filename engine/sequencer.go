package engine

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/minaorangina/memory/deck"
	"github.com/minaorangina/memory/game"
	"github.com/minaorangina/memory/levels"
)

const DefaultResolutionDelay = time.Second

// SequencerOpts configures a Sequencer. Zero values get defaults.
type SequencerOpts struct {
	Delay     time.Duration
	Scheduler Scheduler
	Rand      *rand.Rand
	// Post hands a fired resolution back to whoever owns the Sequencer.
	// Without it the resolution runs on the scheduler's goroutine.
	Post     func(func())
	OnChange func()
	Logger   *log.Logger
}

// Sequencer walks a player through the level table.
// It is not safe for concurrent use; GameEngine serialises access to it.
type Sequencer struct {
	table     levels.Table
	index     int
	session   game.Session
	best      map[int]int
	pending   *resolution
	delay     time.Duration
	scheduler Scheduler
	rng       *rand.Rand
	post      func(func())
	onChange  func()
	logger    *log.Logger
}

// resolution is the one scheduled action a session can have outstanding
type resolution struct {
	sessionID string
	task      Task
}

// NewSequencer validates the table and returns a Sequencer idling on the first level
func NewSequencer(table levels.Table, opts SequencerOpts) (*Sequencer, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if opts.Delay < 0 {
		return nil, fmt.Errorf("%w: negative resolution delay %s", game.ErrInvalidConfiguration, opts.Delay)
	}

	s := &Sequencer{
		table:     append(levels.Table{}, table...),
		best:      map[int]int{},
		delay:     opts.Delay,
		scheduler: opts.Scheduler,
		rng:       opts.Rand,
		post:      opts.Post,
		onChange:  opts.OnChange,
		logger:    opts.Logger,
	}

	if s.delay == 0 {
		s.delay = DefaultResolutionDelay
	}
	if s.scheduler == nil {
		s.scheduler = ClockScheduler{}
	}
	if s.rng == nil {
		s.rng = deck.NewRand(0)
	}
	if s.post == nil {
		s.post = func(fn func()) { fn() }
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	return s, nil
}

// Start deals a fresh board for the level at index
func (s *Sequencer) Start(index int) bool {
	level, ok := s.table.Get(index)
	if !ok {
		return false
	}

	s.Cancel()

	board, err := deck.Build(level.Pairs, s.rng)
	if err != nil {
		s.logger.Printf("could not build %s: %v", level.Name, err)
		return false
	}
	session, err := game.NewSession(board)
	if err != nil {
		s.logger.Printf("could not start %s: %v", level.Name, err)
		return false
	}

	s.index = index
	s.session = session
	s.changed()
	return true
}

// Restart deals the current level again
func (s *Sequencer) Restart() bool {
	return s.Start(s.index)
}

// SelectLevel jumps straight to a level
func (s *Sequencer) SelectLevel(index int) bool {
	return s.Start(index)
}

// Advance moves on once the current level is complete
func (s *Sequencer) Advance() bool {
	if s.Stage() != game.Complete || s.index >= s.table.Last() {
		return false
	}
	s.recordBest(s.index, s.session.Moves)
	return s.Start(s.index + 1)
}

// Retreat goes back a level. It does not count as completing anything.
func (s *Sequencer) Retreat() bool {
	if s.index <= 0 {
		return false
	}
	return s.Start(s.index - 1)
}

// NewGame forgets every best score and goes back to the first level
func (s *Sequencer) NewGame() bool {
	s.Cancel()
	s.best = map[int]int{}
	return s.Start(0)
}

// Reveal turns a token face up, scheduling the resolution when it is
// the second of an attempt
func (s *Sequencer) Reveal(tokenID int) bool {
	next, outcome := game.Reveal(s.session, tokenID)
	if outcome == game.Ignored {
		return false
	}

	s.session = next
	if outcome.Pending() {
		s.schedule()
	}
	s.changed()
	return true
}

func (s *Sequencer) schedule() {
	s.Cancel()

	r := &resolution{sessionID: s.session.ID}
	r.task = s.scheduler.Schedule(s.delay, func() {
		s.post(func() { s.resolve(r) })
	})
	s.pending = r
}

// resolve applies r if it is still the outstanding resolution of the
// current session. Anything else was cancelled or belongs to a replaced board.
func (s *Sequencer) resolve(r *resolution) {
	if s.pending != r || s.session.ID != r.sessionID {
		return
	}
	s.pending = nil

	s.session = game.Resolve(s.session)
	if s.session.Completed {
		s.recordBest(s.index, s.session.Moves)
		level, _ := s.table.Get(s.index)
		s.logger.Printf("%s complete in %d moves", level.Name, s.session.Moves)
	}
	s.changed()
}

// Cancel drops any outstanding resolution without touching the board
func (s *Sequencer) Cancel() {
	if s.pending == nil {
		return
	}
	s.pending.task.Cancel()
	s.pending = nil
}

func (s *Sequencer) recordBest(index, moves int) {
	if best, ok := s.best[index]; ok && best <= moves {
		return
	}
	s.best[index] = moves
}

func (s *Sequencer) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Index returns the index of the current level
func (s *Sequencer) Index() int {
	return s.index
}

// Level returns the current level
func (s *Sequencer) Level() levels.Level {
	level, _ := s.table.Get(s.index)
	return level
}

// Table returns the level table
func (s *Sequencer) Table() levels.Table {
	return append(levels.Table{}, s.table...)
}

// Session returns a copy of the current session
func (s *Sequencer) Session() game.Session {
	out := s.session
	out.Board = s.session.Board.Clone()
	out.Selection = append([]int{}, s.session.Selection...)
	return out
}

// Stage returns the stage of the current level
func (s *Sequencer) Stage() game.Stage {
	return s.session.Stage()
}

// Pending reports whether a resolution is waiting to run
func (s *Sequencer) Pending() bool {
	return s.pending != nil
}

// Won reports whether the final level is complete
func (s *Sequencer) Won() bool {
	return s.index == s.table.Last() && s.Stage() == game.Complete
}

// BestScore returns the fewest moves the level has been completed in
func (s *Sequencer) BestScore(index int) (int, bool) {
	best, ok := s.best[index]
	return best, ok
}
