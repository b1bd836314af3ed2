package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testProductID = "gid://shopify/Product/7"

func newFAQHandler(gateway *ports.MockAdminGateway) *FAQHandler {
	return NewFAQHandler(application.NewFAQService(gateway, zerolog.Nop()), zerolog.Nop())
}

func stored(value string) *string {
	return &value
}

func TestFAQHandler_GetProducts(t *testing.T) {
	gateway := new(ports.MockAdminGateway)
	gateway.On("ProductOptions", mock.Anything, testShop, "shpat_test", 250).Return([]domain.ProductOption{
		{ID: testProductID, Title: "Mug"},
	}, nil)

	rec := httptest.NewRecorder()
	newFAQHandler(gateway).HandleGet(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/faqs", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[{"id":"gid://shopify/Product/7","title":"Mug"}]}`, rec.Body.String())
	gateway.AssertExpectations(t)
}

func TestFAQHandler_GetFAQs(t *testing.T) {
	gateway := new(ports.MockAdminGateway)
	gateway.On("ProductMetafield", mock.Anything, testShop, "shpat_test", testProductID, "custom", "faq").Return(nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/faqs?productId="+url.QueryEscape(testProductID), nil)
	newFAQHandler(gateway).HandleGet(rec, withSession(req))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"faqs":[]}`, rec.Body.String())
}

func TestFAQHandler_GetCorruptMetafield(t *testing.T) {
	gateway := new(ports.MockAdminGateway)
	gateway.On("ProductMetafield", mock.Anything, mock.Anything, mock.Anything, testProductID, "custom", "faq").
		Return(stored(`{"not":"an array"}`), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/faqs?productId="+url.QueryEscape(testProductID), nil)
	newFAQHandler(gateway).HandleGet(rec, withSession(req))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to load FAQs", errorMessage(t, rec))
}

func TestFAQHandler_Mutation(t *testing.T) {
	existing := `[{"id":"f1","question":"Dishwasher safe?","answer":"Yes"}]`

	tests := []struct {
		name       string
		form       url.Values
		setup      func(gateway *ports.MockAdminGateway)
		wantStatus int
		wantError  string
		wantJSON   string
	}{
		{
			name: "edit",
			form: url.Values{"productId": {testProductID}, "intent": {"edit"}, "faqId": {"f1"}, "question": {"Microwave safe?"}, "answer": {"No"}},
			setup: func(gateway *ports.MockAdminGateway) {
				gateway.On("ProductMetafield", mock.Anything, mock.Anything, mock.Anything, testProductID, "custom", "faq").Return(stored(existing), nil)
				gateway.On("SetMetafield", mock.Anything, testShop, "shpat_test", domain.MetafieldInput{
					OwnerID:   testProductID,
					Namespace: "custom",
					Key:       "faq",
					Type:      "json",
					Value:     `[{"id":"f1","question":"Microwave safe?","answer":"No"}]`,
				}).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"success":true,"faqs":[{"id":"f1","question":"Microwave safe?","answer":"No"}]}`,
		},
		{
			name: "delete last entry",
			form: url.Values{"productId": {testProductID}, "intent": {"delete"}, "faqId": {"f1"}},
			setup: func(gateway *ports.MockAdminGateway) {
				gateway.On("ProductMetafield", mock.Anything, mock.Anything, mock.Anything, testProductID, "custom", "faq").Return(stored(existing), nil)
				gateway.On("SetMetafield", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(in domain.MetafieldInput) bool {
					return in.Value == "[]"
				})).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantJSON:   `{"success":true,"faqs":[]}`,
		},
		{
			name:       "unknown intent",
			form:       url.Values{"productId": {testProductID}, "intent": {"publish"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "add without answer",
			form:       url.Values{"productId": {testProductID}, "intent": {"add"}, "question": {"Size?"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown product",
			form: url.Values{"productId": {"gid://shopify/Product/404"}, "intent": {"add"}, "question": {"Size?"}, "answer": {"M"}},
			setup: func(gateway *ports.MockAdminGateway) {
				gateway.On("ProductMetafield", mock.Anything, mock.Anything, mock.Anything, "gid://shopify/Product/404", "custom", "faq").Return(nil, nil)
				gateway.On("SetMetafield", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(in domain.MetafieldInput) bool {
					return in.OwnerID == "gid://shopify/Product/404"
				})).Return(&domain.RemoteAPIError{UserErrors: []domain.UserError{{
					Field:   []string{"metafields", "0", "ownerId"},
					Message: "Owner does not exist",
				}}})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Owner does not exist",
		},
		{
			name: "user error",
			form: url.Values{"productId": {testProductID}, "intent": {"add"}, "question": {"Size?"}, "answer": {"M"}},
			setup: func(gateway *ports.MockAdminGateway) {
				gateway.On("ProductMetafield", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
				gateway.On("SetMetafield", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(&domain.RemoteAPIError{UserErrors: []domain.UserError{{Message: "Value is too long"}}})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Value is too long",
		},
		{
			name: "transport failure",
			form: url.Values{"productId": {testProductID}, "intent": {"add"}, "question": {"Size?"}, "answer": {"M"}},
			setup: func(gateway *ports.MockAdminGateway) {
				gateway.On("ProductMetafield", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("timeout"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to manage FAQs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := new(ports.MockAdminGateway)
			if tt.setup != nil {
				tt.setup(gateway)
			}

			rec := httptest.NewRecorder()
			newFAQHandler(gateway).HandleMutation(rec, postForm("/api/faqs", tt.form))

			assert.Equal(t, tt.wantStatus, rec.Code)
			switch {
			case tt.wantJSON != "":
				assert.JSONEq(t, tt.wantJSON, rec.Body.String())
			case tt.wantError != "":
				assert.Equal(t, tt.wantError, errorMessage(t, rec))
			default:
				assert.NotEmpty(t, errorMessage(t, rec))
			}
			gateway.AssertExpectations(t)
		})
	}
}
