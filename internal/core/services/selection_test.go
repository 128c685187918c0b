package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/placepick/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/placepick/internal/core/domain"
)

var london = domain.Candidate{
	ID:          "2643743",
	Name:        "London",
	AdminName:   "England",
	CountryName: "United Kingdom",
	Latitude:    "51.50853",
	Longitude:   "-0.12574",
}

func newTestSelectionService(store *memory.SelectionStore) *SelectionService {
	s := NewSelectionService(store)
	n := 0
	s.newID = func() string {
		n++
		return "sel-" + strconv.Itoa(n)
	}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		return base.Add(time.Duration(n) * time.Minute)
	}
	return s
}

func TestSelectionService_EncodeDecode(t *testing.T) {
	s := NewSelectionService(nil)

	value := s.Encode(london)
	selection, err := s.Decode(value)

	require.NoError(t, err)
	assert.Equal(t, domain.NewSelection(london), selection)
}

func TestSelectionService_DecodeMalformed(t *testing.T) {
	s := NewSelectionService(nil)

	_, err := s.Decode("London|51.5|-0.1")

	var decErr *domain.DecodeError
	assert.True(t, errors.As(err, &decErr))
	assert.ErrorIs(t, err, domain.ErrMalformedSelection)
}

func TestSelectionService_SaveGet(t *testing.T) {
	store := memory.NewSelectionStore()
	s := newTestSelectionService(store)
	ctx := context.Background()

	record, err := s.Save(ctx, london)
	require.NoError(t, err)
	assert.Equal(t, "sel-1", record.ID)
	assert.Equal(t, s.Encode(london), record.Value)
	assert.Equal(t, "London, England (United Kingdom)", record.Selection.DisplayName)

	got, err := s.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Value, got.Value)
	assert.Equal(t, record.Selection, got.Selection)
}

func TestSelectionService_DefaultIDs(t *testing.T) {
	s := NewSelectionService(memory.NewSelectionStore())

	a, err := s.Save(context.Background(), london)
	require.NoError(t, err)
	b, err := s.Save(context.Background(), london)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSelectionService_List(t *testing.T) {
	store := memory.NewSelectionStore()
	s := newTestSelectionService(store)
	ctx := context.Background()

	paris := domain.Candidate{Name: "Paris", AdminName: "Île-de-France", CountryName: "France", Latitude: "48.85341", Longitude: "2.3488"}
	_, err := s.Save(ctx, london)
	require.NoError(t, err)
	_, err = s.Save(ctx, paris)
	require.NoError(t, err)

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Paris, Île-de-France (France)", records[0].Selection.DisplayName)
	assert.Equal(t, "London, England (United Kingdom)", records[1].Selection.DisplayName)
}

func TestSelectionService_CorruptedValuePropagates(t *testing.T) {
	store := memory.NewSelectionStore()
	s := NewSelectionService(store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.SelectionRecord{ID: "bad", Value: "{not json", CreatedAt: time.Now()}))

	_, err := s.Get(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrMalformedSelection)

	_, err = s.List(ctx)
	assert.ErrorIs(t, err, domain.ErrMalformedSelection)
}

func TestSelectionService_Delete(t *testing.T) {
	store := memory.NewSelectionStore()
	s := newTestSelectionService(store)
	ctx := context.Background()

	record, err := s.Save(ctx, london)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, record.ID))
	_, err = s.Get(ctx, record.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, record.ID), domain.ErrNotFound)
}

func TestSelectionService_NoStore(t *testing.T) {
	s := NewSelectionService(nil)
	ctx := context.Background()

	_, err := s.Save(ctx, london)
	assert.ErrorIs(t, err, ErrNoSelectionStore)
	_, err = s.Get(ctx, "x")
	assert.ErrorIs(t, err, ErrNoSelectionStore)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, ErrNoSelectionStore)
	assert.ErrorIs(t, s.Delete(ctx, "x"), ErrNoSelectionStore)
}
