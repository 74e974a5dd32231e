package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/account"
	"fintrack/internal/shared/middleware"
)

// MockAccountRepo implements account.Repository for testing
type MockAccountRepo struct {
	CreateFunc       func(ctx context.Context, params account.CreateParams) (*account.Account, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*account.Account, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*account.Account, error)
	UpdateFunc       func(ctx context.Context, id int64, params account.UpdateParams) (*account.Account, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockAccountRepo) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, account.ErrAccountNotFound
}

func (m *MockAccountRepo) ListByUserID(ctx context.Context, userID int64) ([]*account.Account, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockAccountRepo) Update(ctx context.Context, id int64, params account.UpdateParams) (*account.Account, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockAccountRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func authedRequest(method, path string, body []byte) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, int64(1))
	return req.WithContext(ctx)
}

func TestHandleAccounts_List(t *testing.T) {
	tests := []struct {
		name           string
		mockRepo       *MockAccountRepo
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "Success",
			mockRepo: &MockAccountRepo{
				ListByUserIDFunc: func(ctx context.Context, userID int64) ([]*account.Account, error) {
					return []*account.Account{
						{ID: 1, UserID: userID, Name: "Checking", AccountType: "Checking"},
						{ID: 2, UserID: userID, Name: "Savings", AccountType: "Savings"},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "Empty List",
			mockRepo: &MockAccountRepo{
				ListByUserIDFunc: func(ctx context.Context, userID int64) ([]*account.Account, error) {
					return []*account.Account{}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "Repository Error",
			mockRepo: &MockAccountRepo{
				ListByUserIDFunc: func(ctx context.Context, userID int64) ([]*account.Account, error) {
					return nil, errors.New("database error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(account.NewService(tt.mockRepo))

			req := authedRequest(http.MethodGet, "/api/accounts", nil)
			rr := httptest.NewRecorder()
			handler.HandleAccounts(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				var accounts []*account.Account
				json.NewDecoder(rr.Body).Decode(&accounts)
				if len(accounts) != tt.expectedCount {
					t.Errorf("got %d accounts, want %d", len(accounts), tt.expectedCount)
				}
			}
		})
	}
}

func TestHandleAccounts_Create(t *testing.T) {
	balance := decimal.NewFromInt(2500)

	tests := []struct {
		name           string
		body           CreateAccountRequest
		mockRepo       *MockAccountRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: CreateAccountRequest{Name: "Checking", Type: "Checking", InitialBalance: &balance},
			mockRepo: &MockAccountRepo{
				CreateFunc: func(ctx context.Context, params account.CreateParams) (*account.Account, error) {
					if !params.InitialBalance.Equal(balance) {
						t.Errorf("initial balance = %s, want %s", params.InitialBalance, balance)
					}
					return &account.Account{ID: 1, UserID: params.UserID, Name: params.Name, AccountType: params.AccountType, InitialBalance: params.InitialBalance}, nil
				},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Name",
			body:           CreateAccountRequest{Type: "Checking"},
			mockRepo:       &MockAccountRepo{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Type",
			body:           CreateAccountRequest{Name: "Checking"},
			mockRepo:       &MockAccountRepo{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Repository Error",
			body: CreateAccountRequest{Name: "Checking", Type: "Checking"},
			mockRepo: &MockAccountRepo{
				CreateFunc: func(ctx context.Context, params account.CreateParams) (*account.Account, error) {
					return nil, errors.New("database error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(account.NewService(tt.mockRepo))

			data, _ := json.Marshal(tt.body)
			req := authedRequest(http.MethodPost, "/api/accounts", data)
			rr := httptest.NewRecorder()
			handler.HandleAccounts(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleAccountByID(t *testing.T) {
	owned := &account.Account{ID: 5, UserID: 1, Name: "Checking", AccountType: "Checking"}
	foreign := &account.Account{ID: 6, UserID: 2, Name: "Other", AccountType: "Checking"}

	repo := &MockAccountRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*account.Account, error) {
			switch id {
			case owned.ID:
				return owned, nil
			case foreign.ID:
				return foreign, nil
			}
			return nil, account.ErrAccountNotFound
		},
		UpdateFunc: func(ctx context.Context, id int64, params account.UpdateParams) (*account.Account, error) {
			updated := *owned
			if params.Name != nil {
				updated.Name = *params.Name
			}
			return &updated, nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}

	tests := []struct {
		name           string
		method         string
		id             string
		body           string
		expectedStatus int
	}{
		{"Get Success", http.MethodGet, "5", "", http.StatusOK},
		{"Get Not Owned", http.MethodGet, "6", "", http.StatusNotFound},
		{"Get Missing", http.MethodGet, "99", "", http.StatusNotFound},
		{"Get Invalid ID", http.MethodGet, "abc", "", http.StatusBadRequest},
		{"Update Success", http.MethodPut, "5", `{"name":"Renamed"}`, http.StatusOK},
		{"Update Not Owned", http.MethodPut, "6", `{"name":"Renamed"}`, http.StatusNotFound},
		{"Delete Success", http.MethodDelete, "5", "", http.StatusNoContent},
		{"Delete Not Owned", http.MethodDelete, "6", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(account.NewService(repo))

			req := authedRequest(tt.method, "/api/accounts/"+tt.id, []byte(tt.body))
			req.SetPathValue("id", tt.id)

			rr := httptest.NewRecorder()
			handler.HandleAccountByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleAccounts_Unauthenticated(t *testing.T) {
	handler := NewAccountHandler(account.NewService(&MockAccountRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	rr := httptest.NewRecorder()
	handler.HandleAccounts(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
