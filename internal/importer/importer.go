// Package importer seeds the question bank from public trivia APIs.
package importer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// Difficulty scores stored for upstream difficulty labels.
var difficultyScores = map[string]int32{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

// categoryKeywords maps upstream category names onto the seeded category labels.
// The first matching keyword wins, so "Entertainment: Cartoon & Animations" must
// be tried before "art".
var categoryKeywords = []struct {
	keyword string
	label   string
}{
	{"entertainment", "Entertainment"},
	{"celebrities", "Entertainment"},
	{"film", "Entertainment"},
	{"music", "Entertainment"},
	{"science", "Science"},
	{"animals", "Science"},
	{"geography", "Geography"},
	{"history", "History"},
	{"politics", "History"},
	{"mythology", "History"},
	{"sport", "Sports"},
	{"art", "Art"},
}

// RemoteQuestion is an upstream question normalised across sources. Text may
// still carry HTML entities.
type RemoteQuestion struct {
	Category   string
	Difficulty string
	Question   string
	Answer     string
}

// Source is an upstream question provider.
type Source interface {
	Fetch(ctx context.Context, amount int, difficulty string) ([]RemoteQuestion, error)
}

type categoryLister interface {
	List(ctx context.Context) ([]sqlcgen.Category, error)
}

type questionInserter interface {
	Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
}

// Result summarises one import run.
type Result struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Importer copies upstream questions into the bank.
type Importer struct {
	source     Source
	categories categoryLister
	questions  questionInserter
	logger     zerolog.Logger
}

func New(source Source, categories categoryLister, questions questionInserter, logger zerolog.Logger) *Importer {
	return &Importer{
		source:     source,
		categories: categories,
		questions:  questions,
		logger:     logger.With().Str("component", "importer").Logger(),
	}
}

// Run fetches amount questions and inserts those whose category maps onto a
// stored category. Questions with an unknown category or difficulty are skipped.
func (im *Importer) Run(ctx context.Context, amount int, difficulty string) (Result, error) {
	rows, err := im.categories.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list categories: %w", err)
	}
	byLabel := make(map[string]int32, len(rows))
	for _, row := range rows {
		byLabel[strings.ToLower(row.Type)] = row.ID
	}

	fetched, err := im.source.Fetch(ctx, amount, difficulty)
	if err != nil {
		return Result{}, fmt.Errorf("fetch questions: %w", err)
	}

	res := Result{Fetched: len(fetched)}
	for _, q := range fetched {
		params, ok := toInsertParams(q, byLabel)
		if !ok {
			res.Skipped++
			im.logger.Debug().Str("category", q.Category).Str("difficulty", q.Difficulty).Msg("skipping unmapped question")
			continue
		}
		if _, err := im.questions.Insert(ctx, params); err != nil {
			return res, fmt.Errorf("insert question: %w", err)
		}
		res.Imported++
	}

	im.logger.Info().
		Int("fetched", res.Fetched).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Msg("import finished")
	return res, nil
}

func toInsertParams(q RemoteQuestion, byLabel map[string]int32) (sqlcgen.InsertQuestionParams, bool) {
	categoryID, ok := matchCategory(q.Category, byLabel)
	if !ok {
		return sqlcgen.InsertQuestionParams{}, false
	}
	difficulty, ok := difficultyScores[strings.ToLower(q.Difficulty)]
	if !ok {
		return sqlcgen.InsertQuestionParams{}, false
	}
	return sqlcgen.InsertQuestionParams{
		Question:   html.UnescapeString(q.Question),
		Answer:     html.UnescapeString(q.Answer),
		Category:   categoryID,
		Difficulty: difficulty,
	}, true
}

func matchCategory(name string, byLabel map[string]int32) (int32, bool) {
	lower := strings.ToLower(html.UnescapeString(name))
	for _, kw := range categoryKeywords {
		if strings.Contains(lower, kw.keyword) {
			id, ok := byLabel[strings.ToLower(kw.label)]
			return id, ok
		}
	}
	return 0, false
}
