package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn           func(ctx context.Context, params CreateParams) (*Category, error)
	getByIDFn          func(ctx context.Context, id int64) (*Category, error)
	listByUserIDFn     func(ctx context.Context, userID int64) ([]*Category, error)
	updateFn           func(ctx context.Context, id int64, params UpdateParams) (*Category, error)
	deleteFn           func(ctx context.Context, id int64) error
	transactionCountFn func(ctx context.Context, id int64) (int64, error)
	propagateTypeFn    func(ctx context.Context, categoryID int64, newType string) error
	findOrCreateFn     func(ctx context.Context, userID int64, name, categoryType string) (*Category, error)
}

func (m *mockRepo) Create(ctx context.Context, params CreateParams) (*Category, error) {
	return m.createFn(ctx, params)
}
func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Category, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) ListByUserID(ctx context.Context, userID int64) ([]*Category, error) {
	return m.listByUserIDFn(ctx, userID)
}
func (m *mockRepo) Update(ctx context.Context, id int64, params UpdateParams) (*Category, error) {
	return m.updateFn(ctx, id, params)
}
func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockRepo) TransactionCount(ctx context.Context, id int64) (int64, error) {
	return m.transactionCountFn(ctx, id)
}
func (m *mockRepo) PropagateType(ctx context.Context, categoryID int64, newType string) error {
	return m.propagateTypeFn(ctx, categoryID, newType)
}
func (m *mockRepo) FindOrCreate(ctx context.Context, userID int64, name, categoryType string) (*Category, error) {
	return m.findOrCreateFn(ctx, userID, name, categoryType)
}

func TestCreateCategory_RejectsUnknownType(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.CreateCategory(context.Background(), CreateParams{UserID: 1, Name: "Food", Type: "Savings"})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestUpdateCategory_TypeChangePropagatesToTransactions(t *testing.T) {
	var propagated string
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*Category, error) {
			return &Category{ID: id, UserID: 7, Name: "Food", Type: TypeExpense}, nil
		},
		updateFn: func(ctx context.Context, id int64, params UpdateParams) (*Category, error) {
			return &Category{ID: id, UserID: 7, Name: "Food", Type: *params.Type}, nil
		},
		propagateTypeFn: func(ctx context.Context, categoryID int64, newType string) error {
			propagated = newType
			return nil
		},
	}
	svc := NewService(repo)

	income := TypeIncome
	cat, err := svc.UpdateCategory(context.Background(), 1, 7, UpdateParams{Type: &income})
	require.NoError(t, err)
	assert.Equal(t, TypeIncome, cat.Type)
	assert.Equal(t, TypeIncome, propagated)
}

func TestUpdateCategory_SameTypeSkipsPropagation(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*Category, error) {
			return &Category{ID: id, UserID: 7, Name: "Food", Type: TypeExpense}, nil
		},
		updateFn: func(ctx context.Context, id int64, params UpdateParams) (*Category, error) {
			return &Category{ID: id, UserID: 7, Name: "Groceries", Type: TypeExpense}, nil
		},
		propagateTypeFn: func(ctx context.Context, categoryID int64, newType string) error {
			t.Fatal("propagation must not run when the type is unchanged")
			return nil
		},
	}
	svc := NewService(repo)

	name := "Groceries"
	expense := TypeExpense
	_, err := svc.UpdateCategory(context.Background(), 1, 7, UpdateParams{Name: &name, Type: &expense})
	require.NoError(t, err)
}

func TestDeleteCategory_RefusedWhileInUse(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*Category, error) {
			return &Category{ID: id, UserID: 7}, nil
		},
		transactionCountFn: func(ctx context.Context, id int64) (int64, error) {
			return 3, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			t.Fatal("delete must not run for a referenced category")
			return nil
		},
	}
	svc := NewService(repo)

	err := svc.DeleteCategory(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrCategoryInUse)
}

func TestDeleteCategory_UnusedDeletes(t *testing.T) {
	deleted := false
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*Category, error) {
			return &Category{ID: id, UserID: 7}, nil
		},
		transactionCountFn: func(ctx context.Context, id int64) (int64, error) {
			return 0, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo)

	require.NoError(t, svc.DeleteCategory(context.Background(), 1, 7))
	assert.True(t, deleted)
}

func TestGetCategory_OtherUsersCategoryNotFound(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*Category, error) {
			return &Category{ID: id, UserID: 99}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.GetCategory(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
