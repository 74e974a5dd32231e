package budget

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn     func(ctx context.Context, params CreateParams) (*Budget, error)
	getByIDFn    func(ctx context.Context, id int64) (*Budget, error)
	listFn       func(ctx context.Context, userID int64) ([]*Budget, error)
	updateFn     func(ctx context.Context, id int64, params UpdateParams) (*Budget, error)
	deleteFn     func(ctx context.Context, id int64) error
	spentSinceFn func(ctx context.Context, userID, categoryID int64, since time.Time) (decimal.Decimal, error)
}

func (m *mockRepo) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	return m.createFn(ctx, params)
}
func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Budget, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) ListByUserID(ctx context.Context, userID int64) ([]*Budget, error) {
	return m.listFn(ctx, userID)
}
func (m *mockRepo) Update(ctx context.Context, id int64, params UpdateParams) (*Budget, error) {
	return m.updateFn(ctx, id, params)
}
func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockRepo) SpentSince(ctx context.Context, userID, categoryID int64, since time.Time) (decimal.Decimal, error) {
	return m.spentSinceFn(ctx, userID, categoryID, since)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2024, time.August, 17, 13, 45, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), PeriodStart(PeriodMonthly, now))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), PeriodStart(PeriodYearly, now))
}

func TestCreateBudget_RejectsInvalidPeriod(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.CreateBudget(context.Background(), CreateParams{
		UserID: 7, CategoryID: 3,
		Amount: decimal.NewFromInt(500),
		Period: "Weekly",
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestListBudgets_EnrichesSpentPerPeriod(t *testing.T) {
	now := time.Date(2024, time.August, 17, 13, 45, 0, 0, time.UTC)

	monthly := &Budget{ID: 1, UserID: 7, CategoryID: 3, Period: PeriodMonthly, Amount: decimal.NewFromInt(500)}
	yearly := &Budget{ID: 2, UserID: 7, CategoryID: 4, Period: PeriodYearly, Amount: decimal.NewFromInt(6000)}

	sinceByCategory := map[int64]time.Time{}
	repo := &mockRepo{
		listFn: func(ctx context.Context, userID int64) ([]*Budget, error) {
			return []*Budget{monthly, yearly}, nil
		},
		spentSinceFn: func(ctx context.Context, userID, categoryID int64, since time.Time) (decimal.Decimal, error) {
			sinceByCategory[categoryID] = since
			return decimal.NewFromInt(categoryID * 10), nil
		},
	}

	svc := NewService(repo)
	svc.now = func() time.Time { return now }

	budgets, err := svc.ListBudgets(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, budgets, 2)

	assert.True(t, budgets[0].Spent.Equal(decimal.NewFromInt(30)))
	assert.True(t, budgets[1].Spent.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), sinceByCategory[3])
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), sinceByCategory[4])
}

func TestGetBudget_OtherUsersNotFound(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*Budget, error) {
			return &Budget{ID: id, UserID: 99}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.GetBudget(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestUpdateBudget_RejectsInvalidPeriod(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*Budget, error) {
			return &Budget{ID: id, UserID: 7}, nil
		},
	}
	svc := NewService(repo)

	bad := "Quarterly"
	_, err := svc.UpdateBudget(context.Background(), 1, 7, UpdateParams{Period: &bad})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestDeleteBudget_VerifiesOwnership(t *testing.T) {
	deleted := false
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*Budget, error) {
			return &Budget{ID: id, UserID: 7}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo)

	require.NoError(t, svc.DeleteBudget(context.Background(), 1, 7))
	assert.True(t, deleted)
}
