package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newBadgeHandler(repo *ports.MockBadgeRepository) *BadgeHandler {
	return NewBadgeHandler(application.NewBadgeService(repo, zerolog.Nop()), zerolog.Nop())
}

func TestBadgeHandler_List(t *testing.T) {
	repo := new(ports.MockBadgeRepository)
	repo.On("List", mock.Anything).Return([]*domain.Badge{
		{ID: "b2", Name: "New", Icon: domain.BadgeIconFire, CreatedAt: time.Now()},
		{ID: "b1", Name: "Sale", Icon: domain.BadgeIconGlobe, CreatedAt: time.Now().Add(-time.Hour)},
	}, nil)

	rec := httptest.NewRecorder()
	newBadgeHandler(repo).HandleList(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/badges", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var badges []domain.Badge
	decodeJSON(t, rec, &badges)
	assert.Len(t, badges, 2)
	assert.Equal(t, "b2", badges[0].ID)
}

func TestBadgeHandler_Action(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		setup      func(repo *ports.MockBadgeRepository)
		wantStatus int
		wantError  string
		wantBody   string
	}{
		{
			name: "create",
			form: url.Values{"intent": {"create"}, "name": {"Sale"}, "icon": {"Fire"}},
			setup: func(repo *ports.MockBadgeRepository) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Badge")).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.Badge).ID = "b1" }).
					Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"id":"b1"`,
		},
		{
			name:       "create without icon",
			form:       url.Values{"intent": {"create"}, "name": {"Sale"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Name and icon are required.",
		},
		{
			name:       "update without id",
			form:       url.Values{"intent": {"update"}, "name": {"Sale"}, "icon": {"Fire"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "ID, name and icon are required.",
		},
		{
			name: "update unknown badge",
			form: url.Values{"intent": {"update"}, "id": {"missing"}, "name": {"Sale"}, "icon": {"Fire"}},
			setup: func(repo *ports.MockBadgeRepository) {
				repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Badge")).
					Return(&domain.NotFoundError{Resource: "badge", ID: "missing"})
			},
			wantStatus: http.StatusNotFound,
			wantError:  "Badge not found.",
		},
		{
			name: "delete",
			form: url.Values{"intent": {"delete"}, "id": {"b1"}},
			setup: func(repo *ports.MockBadgeRepository) {
				repo.On("Delete", mock.Anything, "b1").Return(&domain.Badge{ID: "b1", Name: "Sale"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"name":"Sale"`,
		},
		{
			name:       "delete without id",
			form:       url.Values{"intent": {"delete"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "ID is required for deletion.",
		},
		{
			name: "get missing badge returns null",
			form: url.Values{"intent": {"getById"}, "id": {"missing"}},
			setup: func(repo *ports.MockBadgeRepository) {
				repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "null\n",
		},
		{
			name:       "unknown intent",
			form:       url.Values{"intent": {"archive"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Unknown action.",
		},
		{
			name: "store failure",
			form: url.Values{"intent": {"delete"}, "id": {"b1"}},
			setup: func(repo *ports.MockBadgeRepository) {
				repo.On("Delete", mock.Anything, "b1").Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ports.MockBadgeRepository)
			if tt.setup != nil {
				tt.setup(repo)
			}

			rec := httptest.NewRecorder()
			newBadgeHandler(repo).HandleAction(rec, postForm("/api/badges", tt.form))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorMessage(t, rec))
			}
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			repo.AssertExpectations(t)
		})
	}
}
