package trivia

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// CategoryStore is the read-only category collaborator.
type CategoryStore interface {
	List(ctx context.Context) ([]sqlcgen.Category, error)
	Get(ctx context.Context, id int32) (sqlcgen.Category, error)
}

// QuestionStore is the question bank collaborator. Get and Delete report
// repository.ErrNotFound for unknown ids.
type QuestionStore interface {
	List(ctx context.Context) ([]sqlcgen.Question, error)
	ListByCategory(ctx context.Context, categoryID int32) ([]sqlcgen.Question, error)
	Search(ctx context.Context, term string) ([]sqlcgen.Question, error)
	Get(ctx context.Context, id int32) (sqlcgen.Question, error)
	Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	Delete(ctx context.Context, id int32) error
	Count(ctx context.Context) (int64, error)
}

// Options is fixed at startup.
type Options struct {
	PageSize int
	// IntN overrides the quiz randomness source; nil uses math/rand/v2.
	IntN IntN
}

// Service implements the question bank operations on top of the stores.
type Service struct {
	categories CategoryStore
	questions  QuestionStore
	cache      CategoryCache
	pageSize   int
	intn       IntN
}

func NewService(categories CategoryStore, questions QuestionStore, cache CategoryCache, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.IntN == nil {
		opts.IntN = rand.IntN
	}
	return &Service{
		categories: categories,
		questions:  questions,
		cache:      cache,
		pageSize:   opts.PageSize,
		intn:       opts.IntN,
	}
}

// PageSize reports the configured page size.
func (s *Service) PageSize() int { return s.pageSize }

// Categories returns the id→type mapping of every category. No categories is NotFound.
func (s *Service) Categories(ctx context.Context) (map[int]string, error) {
	const op = "trivia.Categories"
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, s.storeFailure(ctx, op, err)
	}
	if len(categories) == 0 {
		return nil, fail(op, KindNotFound, errors.New("no categories"))
	}
	return categories, nil
}

// ListQuestions returns one page of all questions ordered by id. An empty page,
// including one past the end, is NotFound.
func (s *Service) ListQuestions(ctx context.Context, page int) (Listing, error) {
	const op = "trivia.ListQuestions"
	all, err := s.allQuestions(ctx)
	if err != nil {
		return Listing{}, s.storeFailure(ctx, op, err)
	}
	current := Paginate(page, s.pageSize, all)
	if len(current) == 0 {
		return Listing{}, fail(op, KindNotFound, fmt.Errorf("page %d is empty", page))
	}
	categories, err := s.categoryMap(ctx)
	if err != nil {
		return Listing{}, s.storeFailure(ctx, op, err)
	}
	return Listing{Questions: current, Total: len(all), Categories: categories}, nil
}

// DeleteQuestion removes the question and returns the requested page of the
// remaining questions.
func (s *Service) DeleteQuestion(ctx context.Context, id, page int) (Listing, error) {
	const op = "trivia.DeleteQuestion"
	key, ok := toID(id)
	if !ok {
		return Listing{}, fail(op, KindNotFound, fmt.Errorf("question %d out of range", id))
	}
	if _, err := s.questions.Get(ctx, key); err != nil {
		return Listing{}, s.storeFailure(ctx, op, err)
	}
	if err := s.questions.Delete(ctx, key); err != nil {
		return Listing{}, s.storeFailure(ctx, op, err)
	}
	logger := logging.FromContext(ctx)
	logger.Info().Int("question_id", id).Msg("question deleted")

	all, err := s.allQuestions(ctx)
	if err != nil {
		return Listing{}, s.storeFailure(ctx, op, err)
	}
	return Listing{Questions: Paginate(page, s.pageSize, all), Total: len(all)}, nil
}

// CreateQuestion persists nq and returns the new question with the requested page
// of the bank after insertion.
func (s *Service) CreateQuestion(ctx context.Context, nq NewQuestion, page int) (Question, Listing, error) {
	const op = "trivia.CreateQuestion"
	category, okCat := toID(nq.Category)
	difficulty, okDiff := toID(nq.Difficulty)
	if !okCat || !okDiff {
		return Question{}, Listing{}, fail(op, KindUnprocessable, errors.New("category or difficulty out of range"))
	}
	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   nq.Question,
		Answer:     nq.Answer,
		Category:   category,
		Difficulty: difficulty,
	})
	if err != nil {
		return Question{}, Listing{}, s.storeFailure(ctx, op, err)
	}
	created := toQuestion(row)
	logger := logging.FromContext(ctx)
	logger.Info().Int("question_id", created.ID).Msg("question created")

	all, err := s.allQuestions(ctx)
	if err != nil {
		return Question{}, Listing{}, s.storeFailure(ctx, op, err)
	}
	return created, Listing{Questions: Paginate(page, s.pageSize, all), Total: len(all)}, nil
}

// SearchQuestions pages through questions containing term, case-insensitively.
// Total is the number of matches; no match is a valid empty result.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (Listing, error) {
	const op = "trivia.SearchQuestions"
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return Listing{}, s.storeFailure(ctx, op, err)
	}
	matches := toQuestions(rows)
	return Listing{Questions: Paginate(page, s.pageSize, matches), Total: len(matches)}, nil
}

// QuestionsByCategory pages through one category. An unknown category is
// Unprocessable; Total counts the whole bank.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID, page int) (Listing, error) {
	const op = "trivia.QuestionsByCategory"
	key, ok := toID(categoryID)
	if !ok {
		return Listing{}, fail(op, KindUnprocessable, fmt.Errorf("category %d out of range", categoryID))
	}
	category, err := s.categories.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Listing{}, fail(op, KindUnprocessable, err)
		}
		return Listing{}, s.storeFailure(ctx, op, err)
	}
	rows, err := s.questions.ListByCategory(ctx, key)
	if err != nil {
		return Listing{}, s.storeFailure(ctx, op, err)
	}
	total, err := s.questions.Count(ctx)
	if err != nil {
		return Listing{}, s.storeFailure(ctx, op, err)
	}
	return Listing{
		Questions:       Paginate(page, s.pageSize, toQuestions(rows)),
		Total:           int(total),
		CurrentCategory: category.Type,
	}, nil
}

// NextQuizQuestion picks an unseen question from the category pool (or the whole
// bank for AllCategories). A nil question with a nil error means the pool is
// exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, previous []int, categoryID int) (*Question, error) {
	const op = "trivia.NextQuizQuestion"
	var (
		rows []sqlcgen.Question
		err  error
	)
	if categoryID == AllCategories {
		rows, err = s.questions.List(ctx)
	} else if key, ok := toID(categoryID); ok {
		rows, err = s.questions.ListByCategory(ctx, key)
	}
	if err != nil {
		return nil, s.storeFailure(ctx, op, err)
	}

	q, ok := SelectNext(toQuestions(rows), SeenSet(previous), s.intn)
	if !ok {
		quizExhausted.Inc()
		logger := logging.FromContext(ctx)
		logger.Debug().
			Int("category_id", categoryID).
			Int("previous", len(previous)).
			Msg("quiz pool exhausted")
		return nil, nil
	}
	quizQuestionsServed.Inc()
	return &q, nil
}

func (s *Service) allQuestions(ctx context.Context) ([]Question, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	return toQuestions(rows), nil
}

func (s *Service) categoryMap(ctx context.Context) (map[int]string, error) {
	logger := logging.FromContext(ctx)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			categoryCacheLookups.WithLabelValues("error").Inc()
			logger.Warn().Err(err).Msg("category cache read failed")
		case cached != nil:
			categoryCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			categoryCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	categories := make(map[int]string, len(rows))
	for _, row := range rows {
		categories[int(row.ID)] = row.Type
	}
	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.Set(ctx, categories); err != nil {
			logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// storeFailure maps ErrNotFound to NotFound; anything else is logged and becomes
// Unprocessable.
func (s *Service) storeFailure(ctx context.Context, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fail(op, KindNotFound, err)
	}
	logger := logging.FromContext(ctx)
	logger.Error().Err(err).Str("op", op).Msg("store operation failed")
	return fail(op, KindUnprocessable, err)
}

func toID(v int) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}

func toQuestion(row sqlcgen.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}

func toQuestions(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}
