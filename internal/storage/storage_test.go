package storage

import (
	"testing"
	"time"

	"github.com/benbeisheim/chess-engine/internal/model"
	"github.com/benbeisheim/chess-engine/internal/testutil"
)

func openMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openMemory(t)
	rec := Record{
		ID:         "game-1",
		White:      "alice",
		Black:      "bob",
		Status:     model.StatusCheckmate,
		Winner:     model.Black,
		Moves:      []string{"f3", "e5", "g4", "Qh4#"},
		FinishedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	testutil.AssertNoError(t, s.Save(rec))

	got, err := s.Load("game-1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, rec)
}

func TestLoadMissing(t *testing.T) {
	s := openMemory(t)
	_, err := s.Load("nope")
	testutil.AssertErrorIs(t, err, ErrRecordNotFound)
}

func TestSaveOverwrites(t *testing.T) {
	s := openMemory(t)
	testutil.AssertNoError(t, s.Save(Record{ID: "g", Status: model.StatusOngoing}))
	testutil.AssertNoError(t, s.Save(Record{ID: "g", Status: model.StatusDraw}))

	got, err := s.Load("g")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Status, model.StatusDraw)
}

func TestList(t *testing.T) {
	s := openMemory(t)
	for _, id := range []string{"b", "a", "c"} {
		testutil.AssertNoError(t, s.Save(Record{ID: id, Status: model.StatusDraw}))
	}

	recs, err := s.List()
	testutil.AssertNoError(t, err)

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	testutil.AssertEqual(t, ids, []string{"a", "b", "c"})
}

func TestListOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.Save(Record{ID: "persisted", Status: model.StatusDraw}))
	testutil.AssertNoError(t, s.Close())

	s, err = Open(dir)
	testutil.AssertNoError(t, err)
	defer s.Close()

	got, err := s.Load("persisted")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.ID, "persisted")
}
