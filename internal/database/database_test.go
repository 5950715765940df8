package database

import (
	"database/sql"
	"testing"

	"github.com/Imadiyiz/nomination-advisor/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) Service {
	t.Helper()
	s := Open(":memory:")
	t.Cleanup(func() { s.Close() })
	return s
}

func testResult(id string) GameResult {
	ana := shared.NewPlayer("1", "Ana", true)
	ana.TotalScore = 42
	ben := shared.NewPlayer("2", "Ben", false)
	ben.TotalScore = 17
	cid := shared.NewPlayer("3", "Cid", false)
	cid.TotalScore = 8
	return NewGameResult(id, []*shared.Player{ana, ben, cid}, "Ana")
}

func TestInsertAndGetByID(t *testing.T) {
	s := testService(t)
	want := testResult("g1")
	require.NoError(t, s.Insert(want))

	got, err := s.GetByID("g1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "Ana", got.Winner)
	assert.Equal(t, 42, got.Score1)
	assert.Empty(t, got.Player4, "unused seats stay empty")
}

func TestGetByIDMissing(t *testing.T) {
	s := testService(t)
	_, err := s.GetByID("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestInsertDuplicateIDFails(t *testing.T) {
	s := testService(t)
	require.NoError(t, s.Insert(testResult("g1")))
	assert.Error(t, s.Insert(testResult("g1")))
}

func TestGetAll(t *testing.T) {
	s := testService(t)

	results, err := s.GetAll()
	require.NoError(t, err)
	assert.Empty(t, results)

	require.NoError(t, s.Insert(testResult("g1")))
	require.NoError(t, s.Insert(testResult("g2")))

	results, err = s.GetAll()
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestGetByPlayer(t *testing.T) {
	s := testService(t)
	require.NoError(t, s.Insert(testResult("g1")))
	require.NoError(t, s.Insert(testResult("g2")))

	results, err := s.GetByPlayer("Cid")
	require.NoError(t, err)
	assert.Len(t, results, 2, "matches any seat column")

	_, err = s.GetByPlayer("Zoe")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
