package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/domain/category"
)

func TestHandleCategories_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repo           *MockCategoryRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"name":"Groceries","type":"Expense"}`,
			repo: &MockCategoryRepo{
				CreateFunc: func(ctx context.Context, params category.CreateParams) (*category.Category, error) {
					return &category.Category{ID: 1, UserID: params.UserID, Name: params.Name, Type: params.Type}, nil
				},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Name",
			body:           `{"type":"Expense"}`,
			repo:           &MockCategoryRepo{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Type",
			body:           `{"name":"Groceries","type":"Transfer"}`,
			repo:           &MockCategoryRepo{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCategoryHandler(category.NewService(tt.repo))

			req := authedRequest(http.MethodPost, "/api/categories", []byte(tt.body))
			rr := httptest.NewRecorder()
			handler.HandleCategories(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleCategoryByID_Delete(t *testing.T) {
	tests := []struct {
		name           string
		repo           *MockCategoryRepo
		expectedStatus int
	}{
		{
			name: "Success",
			repo: &MockCategoryRepo{
				GetByIDFunc: func(ctx context.Context, id int64) (*category.Category, error) {
					return &category.Category{ID: id, UserID: 1, Name: "Old", Type: category.TypeExpense}, nil
				},
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "Still Referenced",
			repo: &MockCategoryRepo{
				GetByIDFunc: func(ctx context.Context, id int64) (*category.Category, error) {
					return &category.Category{ID: id, UserID: 1, Name: "Rent", Type: category.TypeExpense}, nil
				},
				TransactionCountFunc: func(ctx context.Context, id int64) (int64, error) {
					return 3, nil
				},
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Not Found",
			repo:           &MockCategoryRepo{},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCategoryHandler(category.NewService(tt.repo))

			req := authedRequest(http.MethodDelete, "/api/categories/4", nil)
			req.SetPathValue("id", "4")

			rr := httptest.NewRecorder()
			handler.HandleCategoryByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleCategoryByID_TypeChangePropagates(t *testing.T) {
	var propagated string
	repo := &MockCategoryRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*category.Category, error) {
			return &category.Category{ID: id, UserID: 1, Name: "Side Gig", Type: category.TypeExpense}, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, params category.UpdateParams) (*category.Category, error) {
			return &category.Category{ID: id, UserID: 1, Name: "Side Gig", Type: *params.Type}, nil
		},
		PropagateTypeFunc: func(ctx context.Context, categoryID int64, newType string) error {
			propagated = newType
			return nil
		},
	}
	handler := NewCategoryHandler(category.NewService(repo))

	req := authedRequest(http.MethodPut, "/api/categories/4", []byte(`{"type":"Income"}`))
	req.SetPathValue("id", "4")

	rr := httptest.NewRecorder()
	handler.HandleCategoryByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if propagated != category.TypeIncome {
		t.Errorf("propagated type = %q, want %q", propagated, category.TypeIncome)
	}
}
