package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/minaorangina/memory/deck"
	"github.com/minaorangina/memory/game"
	"github.com/minaorangina/memory/levels"
	"github.com/minaorangina/memory/protocol"
)

// PlayState represents the state of the engine's command loop
// idle -> not listening yet
// inProgress -> accepting commands
// stopped -> finished, commands are refused
type PlayState int

const (
	Idle PlayState = iota
	InProgress
	Stopped
)

func (ps PlayState) String() string {
	switch ps {
	case Idle:
		return "idle"
	case InProgress:
		return "inProgress"
	case Stopped:
		return "stopped"
	}
	return ""
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNotStarted     = errors.New("game has not started")
	ErrEngineStopped  = errors.New("game has stopped")
)

const subscriberBuffer = 16

// GameEngine runs one player's game. Commands are applied one at a time
// and every accepted transition is pushed to subscribers.
type GameEngine interface {
	ID() string
	Name() string
	Start() error
	Stop()
	PlayState() PlayState
	Issue(ctx context.Context, msg protocol.InboundMessage) error
	Subscribe() (<-chan protocol.OutboundMessage, func())
	Snapshot() protocol.OutboundMessage
}

type GameEngineOpts struct {
	GameID    string
	Name      string
	Levels    levels.Table
	Delay     time.Duration
	Scheduler Scheduler
	Rand      *rand.Rand
	Asset     deck.AssetFunc
	Logger    *log.Logger
}

type request struct {
	msg  protocol.InboundMessage
	done chan error
}

type gameEngine struct {
	id        string
	name      string
	seq       *Sequencer
	asset     deck.AssetFunc
	logger    *log.Logger
	inboundCh chan request
	resolveCh chan func()
	quit      chan struct{}
	finished  chan struct{}
	stopOnce  sync.Once

	mu          sync.RWMutex
	playState   PlayState
	snapshot    protocol.OutboundMessage
	subscribers map[int]chan protocol.OutboundMessage
	nextSubID   int
}

// NewGameEngine constructs a GameEngine. The level table is validated here,
// so nothing that happens during play can fail.
func NewGameEngine(opts GameEngineOpts) (GameEngine, error) {
	if opts.GameID == "" {
		opts.GameID = game.NewID()
	}
	if opts.Levels == nil {
		opts.Levels = levels.DefaultTable()
	}
	if opts.Asset == nil {
		opts.Asset = deck.KeyAsset
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	ge := &gameEngine{
		id:          opts.GameID,
		name:        opts.Name,
		asset:       opts.Asset,
		logger:      opts.Logger,
		inboundCh:   make(chan request),
		resolveCh:   make(chan func()),
		quit:        make(chan struct{}),
		finished:    make(chan struct{}),
		subscribers: map[int]chan protocol.OutboundMessage{},
	}

	seq, err := NewSequencer(opts.Levels, SequencerOpts{
		Delay:     opts.Delay,
		Scheduler: opts.Scheduler,
		Rand:      opts.Rand,
		Post:      ge.post,
		OnChange:  ge.publish,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", opts.GameID, err)
	}
	ge.seq = seq

	return ge, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) Name() string {
	return ge.name
}

func (ge *gameEngine) PlayState() PlayState {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.playState
}

// Start deals the first level and begins listening for commands.
// Starting more than once is a no-op.
func (ge *gameEngine) Start() error {
	ge.mu.Lock()
	switch ge.playState {
	case InProgress:
		ge.mu.Unlock()
		return nil
	case Stopped:
		ge.mu.Unlock()
		return ErrEngineStopped
	}
	ge.playState = InProgress
	ge.mu.Unlock()

	// the loop is not running yet, so this goroutine owns the sequencer
	ge.seq.Start(0)

	go ge.Listen()
	ge.logger.Printf("game %s started for %q", ge.id, ge.name)
	return nil
}

// Stop cancels any pending resolution and ends the command loop
func (ge *gameEngine) Stop() {
	ge.stopOnce.Do(func() {
		ge.mu.Lock()
		wasRunning := ge.playState == InProgress
		ge.playState = Stopped
		ge.mu.Unlock()

		close(ge.quit)
		if wasRunning {
			<-ge.finished
		} else {
			ge.seq.Cancel()
		}

		ge.mu.Lock()
		for id, ch := range ge.subscribers {
			close(ch)
			delete(ge.subscribers, id)
		}
		ge.mu.Unlock()

		ge.logger.Printf("game %s stopped", ge.id)
	})
}

// Listen applies commands and fired resolutions in the order they arrive
func (ge *gameEngine) Listen() {
	defer close(ge.finished)

	for {
		select {
		case req := <-ge.inboundCh:
			req.done <- ge.apply(req.msg)

		case fn := <-ge.resolveCh:
			fn()

		case <-ge.quit:
			ge.seq.Cancel()
			return
		}
	}
}

// Issue hands a command to the loop and waits until it has been applied.
// Commands that change nothing are not errors.
func (ge *gameEngine) Issue(ctx context.Context, msg protocol.InboundMessage) error {
	if !msg.Command.Inbound() {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, msg.Command)
	}

	switch ge.PlayState() {
	case Idle:
		return ErrNotStarted
	case Stopped:
		return ErrEngineStopped
	}

	req := request{msg: msg, done: make(chan error, 1)}
	select {
	case ge.inboundCh <- req:
	case <-ge.quit:
		return ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ge *gameEngine) apply(msg protocol.InboundMessage) error {
	switch msg.Command {
	case protocol.Reveal:
		ge.seq.Reveal(msg.TokenID)
	case protocol.Restart:
		ge.seq.Restart()
	case protocol.Advance:
		ge.seq.Advance()
	case protocol.Retreat:
		ge.seq.Retreat()
	case protocol.SelectLevel:
		ge.seq.SelectLevel(msg.Level)
	case protocol.NewGame:
		ge.seq.NewGame()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, msg.Command)
	}
	return nil
}

// post runs on the scheduler's goroutine and queues fn for the loop
func (ge *gameEngine) post(fn func()) {
	select {
	case ge.resolveCh <- fn:
	case <-ge.quit:
	}
}

// Subscribe returns a channel of snapshots and a func to unsubscribe.
// The current snapshot is delivered straight away.
func (ge *gameEngine) Subscribe() (<-chan protocol.OutboundMessage, func()) {
	ch := make(chan protocol.OutboundMessage, subscriberBuffer)

	ge.mu.Lock()
	defer ge.mu.Unlock()

	if ge.playState == Stopped {
		close(ch)
		return ch, func() {}
	}

	id := ge.nextSubID
	ge.nextSubID++
	ge.subscribers[id] = ch
	if ge.snapshot.SessionID != "" {
		ch <- ge.snapshot
	}

	return ch, func() {
		ge.mu.Lock()
		defer ge.mu.Unlock()
		if sub, ok := ge.subscribers[id]; ok {
			close(sub)
			delete(ge.subscribers, id)
		}
	}
}

// Snapshot returns the state as of the last accepted transition
func (ge *gameEngine) Snapshot() protocol.OutboundMessage {
	ge.mu.RLock()
	defer ge.mu.RUnlock()
	return ge.snapshot
}

// publish is called by the sequencer after every accepted transition
func (ge *gameEngine) publish() {
	snap := buildSnapshot(ge.id, ge.name, ge.seq, ge.asset)

	ge.mu.Lock()
	defer ge.mu.Unlock()

	ge.snapshot = snap
	for id, ch := range ge.subscribers {
		select {
		case ch <- snap:
		default:
			ge.logger.Printf("game %s: subscriber %d is not keeping up, dropped snapshot", ge.id, id)
		}
	}
}
