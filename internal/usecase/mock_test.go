//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/adapter"
	"job-tracker-api/internal/domain/ports/repository"
)

// -----------------------------
// Utilities
// -----------------------------

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// refNow is a Wednesday.
var refNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return refNow }

func daysAgo(n int) time.Time { return refNow.AddDate(0, 0, -n) }

type firstPick struct{}

func (firstPick) IntN(int) int { return 0 }

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "rep-" + string(rune('a'+n-1))
	}
}

// -----------------------------
// Users
// -----------------------------

type memUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo(users ...*model.User) *memUserRepo {
	m := &memUserRepo{store: make(map[string]*model.User)}
	for _, u := range users {
		m.store[u.ID] = u
	}
	return m
}

func (m *memUserRepo) Save(_ context.Context, _ repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) ListReportSubscribers(_ context.Context, _ repository.Tx) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, u := range m.store {
		if u.Preferences.WeeklyEmail || u.Preferences.MonthlyEmail {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

// -----------------------------
// Jobs
// -----------------------------

type memJobRepo struct {
	mu      sync.RWMutex
	jobs    []*model.Job
	listErr error
}

var _ repository.JobRepository = (*memJobRepo)(nil)

func newMemJobRepo(jobs ...*model.Job) *memJobRepo { return &memJobRepo{jobs: jobs} }

func (m *memJobRepo) Save(_ context.Context, _ repository.Tx, j *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *j
	m.jobs = append(m.jobs, &cp)
	return nil
}

func (m *memJobRepo) ListByUser(_ context.Context, _ repository.Tx, userID string, _ repository.JobFilter) ([]*model.Job, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Job
	for _, j := range m.jobs {
		if j.UserID == userID {
			cp := *j
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memJobRepo) CountByUser(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	js, err := m.ListByUser(ctx, tx, userID, repository.JobFilter{})
	return len(js), err
}

// -----------------------------
// Reports
// -----------------------------

type memReportRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Report
	saveErr error
}

var _ repository.ReportRepository = (*memReportRepo)(nil)

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{store: make(map[string]*model.Report)}
}

func (m *memReportRepo) Save(_ context.Context, _ repository.Tx, r *model.Report) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.store[r.ID] = &cp
	return nil
}

func (m *memReportRepo) get(userID, id string) (*model.Report, bool) {
	r, ok := m.store[id]
	if !ok || r.UserID != userID {
		return nil, false
	}
	return r, true
}

func (m *memReportRepo) FindByID(_ context.Context, _ repository.Tx, userID, id string) (*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.get(userID, id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReportRepo) MarkRead(_ context.Context, _ repository.Tx, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.get(userID, id)
	if !ok {
		return domain.ErrNotFound
	}
	r.IsRead = true
	return nil
}

func (m *memReportRepo) Delete(_ context.Context, _ repository.Tx, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.get(userID, id); !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memReportRepo) sorted(userID string) []*model.Report {
	var out []*model.Report
	for _, r := range m.store {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *memReportRepo) ListByUser(_ context.Context, _ repository.Tx, userID string, offset, limit int) ([]*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.sorted(userID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memReportRepo) LatestByType(_ context.Context, _ repository.Tx, userID string, typ model.ReportType) (*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.sorted(userID) {
		if r.Type == typ {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memReportRepo) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// -----------------------------
// Tx manager / guards / AI
// -----------------------------

type mockTxManager struct{ calls int }

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.calls++
	return fn(ctx, repository.NoTX)
}

type mockLimiter struct {
	AllowFunc func(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

var _ adapter.RateLimiter = (*mockLimiter)(nil)

func (m *mockLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return m.AllowFunc(ctx, key, limit, window)
}

// countingLimiter allows the first limit hits per key.
func countingLimiter() *mockLimiter {
	var mu sync.Mutex
	hits := map[string]int{}
	return &mockLimiter{AllowFunc: func(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		hits[key]++
		return hits[key] <= limit, nil
	}}
}

type mockAI struct {
	ChatWithUsageFunc func(ctx context.Context, model string, msgs []adapter.Message) (string, adapter.Usage, error)
	lastMessages      []adapter.Message
}

var _ adapter.AIServiceAdapter = (*mockAI)(nil)

func (m *mockAI) Provider() string { return "mock" }

func (m *mockAI) CountTokens(_ context.Context, _ string, msgs []adapter.Message) (int, error) {
	n := 0
	for _, msg := range msgs {
		n += len(msg.Content) / 4
	}
	return n, nil
}

func (m *mockAI) Chat(ctx context.Context, model string, msgs []adapter.Message) (string, error) {
	s, _, err := m.ChatWithUsage(ctx, model, msgs)
	return s, err
}

func (m *mockAI) ChatWithUsage(ctx context.Context, model string, msgs []adapter.Message) (string, adapter.Usage, error) {
	m.lastMessages = msgs
	return m.ChatWithUsageFunc(ctx, model, msgs)
}

// -----------------------------
// Fixtures
// -----------------------------

func testUser() *model.User {
	return &model.User{
		ID:          "user-1",
		Email:       "ada@example.com",
		Name:        "Ada",
		Preferences: model.Preferences{WeeklyEmail: true, MonthlyEmail: true},
		CreatedAt:   daysAgo(90),
	}
}

func testJob(company string, status model.Stage, ago int) *model.Job {
	applied := daysAgo(ago)
	return &model.Job{
		ID:          company + "-job",
		UserID:      "user-1",
		Company:     company,
		Position:    "Engineer",
		Status:      status,
		WorkMode:    "remote",
		DateApplied: &applied,
		CreatedAt:   applied,
	}
}
