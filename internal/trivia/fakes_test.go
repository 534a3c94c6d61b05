package trivia

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type fakeCategories struct {
	rows []sqlcgen.Category
	err  error
}

func (f *fakeCategories) List(_ context.Context) ([]sqlcgen.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeCategories) Get(_ context.Context, id int32) (sqlcgen.Category, error) {
	if f.err != nil {
		return sqlcgen.Category{}, f.err
	}
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return sqlcgen.Category{}, repository.ErrNotFound
}

// fakeQuestions mimics the Postgres table: serial ids, FK on category, ordered reads.
type fakeQuestions struct {
	mu         sync.Mutex
	rows       map[int32]sqlcgen.Question
	nextID     int32
	categories *fakeCategories
	err        error
}

func newFakeQuestions(categories *fakeCategories, rows ...sqlcgen.Question) *fakeQuestions {
	f := &fakeQuestions{rows: map[int32]sqlcgen.Question{}, categories: categories}
	for _, r := range rows {
		f.rows[r.ID] = r
		if r.ID > f.nextID {
			f.nextID = r.ID
		}
	}
	return f
}

func (f *fakeQuestions) ordered(keep func(sqlcgen.Question) bool) []sqlcgen.Question {
	out := make([]sqlcgen.Question, 0, len(f.rows))
	for _, r := range f.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeQuestions) List(_ context.Context) ([]sqlcgen.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.ordered(func(sqlcgen.Question) bool { return true }), nil
}

func (f *fakeQuestions) ListByCategory(_ context.Context, categoryID int32) ([]sqlcgen.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.ordered(func(q sqlcgen.Question) bool { return q.Category == categoryID }), nil
}

func (f *fakeQuestions) Search(_ context.Context, term string) ([]sqlcgen.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	needle := strings.ToLower(term)
	return f.ordered(func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (f *fakeQuestions) Get(_ context.Context, id int32) (sqlcgen.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return sqlcgen.Question{}, f.err
	}
	q, ok := f.rows[id]
	if !ok {
		return sqlcgen.Question{}, repository.ErrNotFound
	}
	return q, nil
}

func (f *fakeQuestions) Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	if f.categories != nil {
		if _, err := f.categories.Get(ctx, params.Category); err != nil {
			return sqlcgen.Question{}, errForeignKey
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return sqlcgen.Question{}, f.err
	}
	f.nextID++
	q := sqlcgen.Question{
		ID:         f.nextID,
		Question:   params.Question,
		Answer:     params.Answer,
		Category:   params.Category,
		Difficulty: params.Difficulty,
	}
	f.rows[q.ID] = q
	return q, nil
}

func (f *fakeQuestions) Delete(_ context.Context, id int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeQuestions) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.rows)), nil
}

type storeError string

func (e storeError) Error() string { return string(e) }

const (
	errForeignKey = storeError("insert or update on table \"questions\" violates foreign key constraint")
	errConnection = storeError("connection refused")
)

type memoryCache struct {
	stored map[int]string
	sets   int
	getErr error
}

func (c *memoryCache) Get(_ context.Context) (map[int]string, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.stored, nil
}

func (c *memoryCache) Set(_ context.Context, categories map[int]string) error {
	c.stored = categories
	c.sets++
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context) error {
	c.stored = nil
	return nil
}

func seedCategories() *fakeCategories {
	return &fakeCategories{rows: []sqlcgen.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}}
}

// seedQuestions returns n questions with ids 1..n, cycling through categories 1..3.
func seedQuestions(n int) []sqlcgen.Question {
	out := make([]sqlcgen.Question, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, sqlcgen.Question{
			ID:         int32(i),
			Question:   "Question " + string(rune('A'+(i-1)%26)),
			Answer:     "Answer",
			Category:   int32((i-1)%3 + 1),
			Difficulty: int32((i-1)%5 + 1),
		})
	}
	return out
}

func newTestService(categories *fakeCategories, questions *fakeQuestions) *Service {
	return NewService(categories, questions, nil, Options{PageSize: DefaultPageSize})
}
