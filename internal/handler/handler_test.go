package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Akanael21/FriendlyBanks/internal/config"
	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/handler"
	"github.com/Akanael21/FriendlyBanks/internal/service"
	"github.com/Akanael21/FriendlyBanks/tests/mocks"
)

// testRouter wires a members subrouter behind the auth middleware, the way
// cmd/server does, with tokens for each role.
func testRouter(t *testing.T, memberRepo *mocks.MockMemberRepository) *mux.Router {
	t.Helper()

	auth := config.AuthConfig{
		Tokens: "admin-token:admin:1,member-token:member:5",
	}

	memberHandler := handler.NewMemberHandler(service.NewMemberService(memberRepo))

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.Use(handler.AuthMiddleware(auth))
	api.HandleFunc("/members/", memberHandler.Create).Methods("POST")
	api.HandleFunc("/members/{id}/", memberHandler.Get).Methods("GET")

	return router
}

func TestAuthMiddleware_RejectsMissingAndUnknownTokens(t *testing.T) {
	router := testRouter(t, new(mocks.MockMemberRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/members/5/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/members/5/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_CapabilityGate(t *testing.T) {
	router := testRouter(t, new(mocks.MockMemberRepository))

	// Creating members needs members.manage, which the member role lacks.
	body, err := json.Marshal(domain.CreateMemberRequest{
		FirstName: "Ama",
		LastName:  "Ndiaye",
		Email:     "ama@example.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/members/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer member-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "PERMISSION_DENIED", payload.Code)
	assert.Contains(t, payload.Message, "members.manage")
}

func TestMemberHandler_CreateAsAdmin(t *testing.T) {
	memberRepo := new(mocks.MockMemberRepository)
	memberRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Member) bool {
		return m.Email == "ama@example.com" && m.BerryScore == domain.InitialBerryScore
	})).Return(nil)

	router := testRouter(t, memberRepo)

	body, err := json.Marshal(domain.CreateMemberRequest{
		FirstName: "Ama",
		LastName:  "Ndiaye",
		Email:     "ama@example.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/members/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	memberRepo.AssertExpectations(t)
}

func TestMemberHandler_RejectsUnknownFields(t *testing.T) {
	router := testRouter(t, new(mocks.MockMemberRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/members/",
		bytes.NewReader([]byte(`{"first_name":"Ama","last_name":"Ndiaye","email":"ama@example.com","berry_score":999}`)))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMemberHandler_GetNotFound(t *testing.T) {
	memberRepo := new(mocks.MockMemberRepository)
	memberRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, sql.ErrNoRows)

	router := testRouter(t, memberRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/members/42/", nil)
	req.Header.Set("Authorization", "Bearer member-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
