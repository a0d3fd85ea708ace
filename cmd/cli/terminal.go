package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/minaorangina/memory/engine"
	"github.com/minaorangina/memory/protocol"
)

const helpText = `Commands:
  r N, reveal N   turn token N face up
  restart         deal this level again
  next            go to the next level once this one is done
  prev            go back a level
  level N         jump to level N
  new             start again from level 1, forgetting best scores
  scores          show best scores
  help            show this text
  quit            leave
`

var errBadInput = errors.New("didn't understand that, type \"help\" for commands")

type action int

const (
	actionIssue action = iota
	actionScores
	actionHelp
	actionQuit
)

type input struct {
	action action
	msg    protocol.InboundMessage
}

// parseInput turns one line typed by the player into an action.
// Level numbers are typed 1-based.
func parseInput(line string) (input, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return input{}, errBadInput
	}

	word, args := fields[0], fields[1:]
	if n, err := strconv.Atoi(word); err == nil && len(args) == 0 {
		return input{msg: protocol.RevealMsg(n)}, nil
	}

	switch word {
	case "r", "reveal":
		n, err := oneNumber(args)
		if err != nil {
			return input{}, err
		}
		return input{msg: protocol.RevealMsg(n)}, nil
	case "level":
		n, err := oneNumber(args)
		if err != nil {
			return input{}, err
		}
		return input{msg: protocol.SelectLevelMsg(n - 1)}, nil
	}

	if len(args) > 0 {
		return input{}, errBadInput
	}

	switch word {
	case "restart":
		return input{msg: protocol.InboundMessage{Command: protocol.Restart}}, nil
	case "next", "advance":
		return input{msg: protocol.InboundMessage{Command: protocol.Advance}}, nil
	case "prev", "back", "retreat":
		return input{msg: protocol.InboundMessage{Command: protocol.Retreat}}, nil
	case "new":
		return input{msg: protocol.InboundMessage{Command: protocol.NewGame}}, nil
	case "scores":
		return input{action: actionScores}, nil
	case "help", "?":
		return input{action: actionHelp}, nil
	case "quit", "exit", "q":
		return input{action: actionQuit}, nil
	}
	return input{}, errBadInput
}

func oneNumber(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errBadInput
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", args[0])
	}
	return n, nil
}

// terminal reads commands from in and draws every snapshot to out
type terminal struct {
	ge  engine.GameEngine
	in  io.Reader
	out io.Writer
	mu  sync.Mutex
}

func newTerminal(ge engine.GameEngine, in io.Reader, out io.Writer) *terminal {
	return &terminal{ge: ge, in: in, out: out}
}

func (t *terminal) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, unsubscribe := t.ge.Subscribe()
	drawn := make(chan struct{})
	go func() {
		defer close(drawn)
		for msg := range updates {
			t.draw(msg)
		}
	}()
	defer func() {
		unsubscribe()
		<-drawn
	}()

	t.send("%s", helpText)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-scanErr:
			return err
		case line := <-lines:
			if strings.TrimSpace(line) == "" {
				continue
			}
			typed, err := parseInput(line)
			if err != nil {
				t.send("%v\n", err)
				continue
			}

			switch typed.action {
			case actionQuit:
				return nil
			case actionHelp:
				t.send("%s", helpText)
			case actionScores:
				t.send("%s", engine.BuildScoresText(t.ge.Snapshot()))
			case actionIssue:
				if err := t.ge.Issue(ctx, typed.msg); err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
			}
		}
	}
}

func (t *terminal) draw(msg protocol.OutboundMessage) {
	t.send("\n%s%s", engine.BuildBoardText(msg), engine.BuildStatusText(msg))
}

func (t *terminal) send(text string, a ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	engine.SendText(t.out, text, a...)
}
