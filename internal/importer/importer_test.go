package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type stubSource struct {
	questions []RemoteQuestion
	err       error
}

func (s stubSource) Fetch(ctx context.Context, amount int, difficulty string) ([]RemoteQuestion, error) {
	return s.questions, s.err
}

type stubCategories struct {
	rows []sqlcgen.Category
	err  error
}

func (s stubCategories) List(ctx context.Context) ([]sqlcgen.Category, error) {
	return s.rows, s.err
}

type recordingInserter struct {
	inserted []sqlcgen.InsertQuestionParams
	err      error
}

func (r *recordingInserter) Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	if r.err != nil {
		return sqlcgen.Question{}, r.err
	}
	r.inserted = append(r.inserted, params)
	return sqlcgen.Question{
		ID:         int32(len(r.inserted)),
		Question:   params.Question,
		Answer:     params.Answer,
		Category:   params.Category,
		Difficulty: params.Difficulty,
	}, nil
}

var storedCategories = []sqlcgen.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

func TestImporterRun(t *testing.T) {
	source := stubSource{questions: []RemoteQuestion{
		{Category: "Science: Computers", Difficulty: "easy", Question: "What does &quot;CPU&quot; stand for?", Answer: "Central Processing Unit"},
		{Category: "Entertainment: Cartoon &amp; Animations", Difficulty: "hard", Question: "Who created Mickey?", Answer: "Walt Disney"},
		{Category: "Art", Difficulty: "medium", Question: "Who painted the Mona Lisa?", Answer: "Leonardo da Vinci"},
		{Category: "General Knowledge", Difficulty: "easy", Question: "Skipped?", Answer: "Yes"},
		{Category: "Sports", Difficulty: "impossible", Question: "Skipped too?", Answer: "Yes"},
	}}
	inserter := &recordingInserter{}

	im := New(source, stubCategories{rows: storedCategories}, inserter, zerolog.Nop())
	res, err := im.Run(context.Background(), 5, "")
	require.NoError(t, err)

	assert.Equal(t, Result{Fetched: 5, Imported: 3, Skipped: 2}, res)
	require.Len(t, inserter.inserted, 3)

	assert.Equal(t, sqlcgen.InsertQuestionParams{
		Question:   `What does "CPU" stand for?`,
		Answer:     "Central Processing Unit",
		Category:   1,
		Difficulty: 1,
	}, inserter.inserted[0])
	assert.Equal(t, int32(5), inserter.inserted[1].Category)
	assert.Equal(t, int32(5), inserter.inserted[1].Difficulty)
	assert.Equal(t, int32(2), inserter.inserted[2].Category)
	assert.Equal(t, int32(3), inserter.inserted[2].Difficulty)
}

func TestImporterRunSkipsMissingCategory(t *testing.T) {
	source := stubSource{questions: []RemoteQuestion{
		{Category: "Sports", Difficulty: "easy", Question: "q", Answer: "a"},
	}}
	inserter := &recordingInserter{}

	im := New(source, stubCategories{rows: storedCategories[:1]}, inserter, zerolog.Nop())
	res, err := im.Run(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, Result{Fetched: 1, Skipped: 1}, res)
	assert.Empty(t, inserter.inserted)
}

func TestImporterRunErrors(t *testing.T) {
	boom := errors.New("boom")
	one := []RemoteQuestion{{Category: "History", Difficulty: "easy", Question: "q", Answer: "a"}}

	t.Run("categories", func(t *testing.T) {
		im := New(stubSource{questions: one}, stubCategories{err: boom}, &recordingInserter{}, zerolog.Nop())
		_, err := im.Run(context.Background(), 1, "")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("fetch", func(t *testing.T) {
		im := New(stubSource{err: boom}, stubCategories{rows: storedCategories}, &recordingInserter{}, zerolog.Nop())
		_, err := im.Run(context.Background(), 1, "")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("insert", func(t *testing.T) {
		im := New(stubSource{questions: one}, stubCategories{rows: storedCategories}, &recordingInserter{err: boom}, zerolog.Nop())
		res, err := im.Run(context.Background(), 1, "")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, res.Imported)
	})
}

func TestMatchCategoryAcrossSources(t *testing.T) {
	byLabel := map[string]int32{"science": 1, "art": 2, "entertainment": 5, "sports": 6}
	tests := []struct {
		name string
		want int32
		ok   bool
	}{
		{"Science &amp; Nature", 1, true},
		{"Entertainment: Cartoon &amp; Animations", 5, true},
		{"Film & TV", 5, true},
		{"Sport & Leisure", 6, true},
		{"Arts & Literature", 2, true},
		{"General Knowledge", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchCategory(tt.name, byLabel)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
