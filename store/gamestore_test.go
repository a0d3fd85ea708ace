package store

import (
	"bytes"
	"log"
	"testing"

	"github.com/minaorangina/memory/engine"
	utils "github.com/minaorangina/memory/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, gameID string) engine.GameEngine {
	t.Helper()

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID:    gameID,
		Name:      "Hermione",
		Scheduler: engine.NewManualScheduler(),
		Logger:    log.New(&bytes.Buffer{}, "", 0),
	})
	require.NoError(t, err)
	t.Cleanup(ge.Stop)
	return ge
}

func TestInMemoryGameStore(t *testing.T) {
	t.Run("Constructor prevents nil struct members", func(t *testing.T) {
		str := NewInMemoryGameStore()
		if str.Games == nil {
			t.Error("Games was nil")
		}
	})

	t.Run("prevents duplicate game IDs", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := newTestGame(t, "thisISAnID")

		err := str.AddGame(ge)
		utils.AssertNoError(t, err)

		err = str.AddGame(ge)
		utils.AssertErrorIs(t, err, ErrDuplicateGameID)
	})

	t.Run("rejects a nil game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		utils.AssertErrorIs(t, str.AddGame(nil), ErrNilGame)
	})

	t.Run("Handles a non-existent game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		assert.Nil(t, str.FindGame("fake-id"))
		assert.Nil(t, str.FindActiveGame("fake-id"))
	})

	t.Run("only started games are active", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := newTestGame(t, "some-game-id")
		require.NoError(t, str.AddGame(ge))

		assert.NotNil(t, str.FindGame("some-game-id"))
		assert.Nil(t, str.FindActiveGame("some-game-id"))

		require.NoError(t, ge.Start())
		assert.NotNil(t, str.FindActiveGame("some-game-id"))
	})

	t.Run("removing a game stops it", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := newTestGame(t, "doomed")
		require.NoError(t, str.AddGame(ge))
		require.NoError(t, ge.Start())

		require.NoError(t, str.RemoveGame("doomed"))
		utils.AssertEqual(t, ge.PlayState(), engine.Stopped)
		assert.Nil(t, str.FindGame("doomed"))

		utils.AssertErrorIs(t, str.RemoveGame("doomed"), ErrUnknownGameID)
	})

	t.Run("lists game ids in order", func(t *testing.T) {
		str := NewInMemoryGameStore()
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, str.AddGame(newTestGame(t, id)))
		}
		utils.AssertDeepEqual(t, str.GameIDs(), []string{"a", "b", "c"})
	})
}
