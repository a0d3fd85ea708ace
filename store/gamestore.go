package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/minaorangina/memory/engine"
)

var (
	ErrUnknownGameID   = errors.New("unknown game ID")
	ErrDuplicateGameID = errors.New("game ID already exists")
	ErrNilGame         = errors.New("game is nil")
)

// GameStore keeps the games running in this process.
// Nothing outlives the process.
type GameStore interface {
	FindGame(gameID string) engine.GameEngine
	FindActiveGame(gameID string) engine.GameEngine
	AddGame(game engine.GameEngine) error
	RemoveGame(gameID string) error
	GameIDs() []string
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu    sync.RWMutex
	Games map[string]engine.GameEngine
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		Games: map[string]engine.GameEngine{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.Games[gameID]
	if !ok {
		return nil
	}
	return game
}

// FindActiveGame only returns games that are accepting commands
func (s *InMemoryGameStore) FindActiveGame(gameID string) engine.GameEngine {
	game := s.FindGame(gameID)
	if game == nil || game.PlayState() != engine.InProgress {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) AddGame(game engine.GameEngine) error {
	if game == nil {
		return ErrNilGame
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Games[game.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, game.ID())
	}
	s.Games[game.ID()] = game
	return nil
}

// RemoveGame stops the game and forgets it
func (s *InMemoryGameStore) RemoveGame(gameID string) error {
	s.mu.Lock()
	game, ok := s.Games[gameID]
	delete(s.Games, gameID)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}
	game.Stop()
	return nil
}

// GameIDs returns the ids of every stored game, sorted
func (s *InMemoryGameStore) GameIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.Games))
	for id := range s.Games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
