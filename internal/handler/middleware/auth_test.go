//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/handler/middleware"
	"ticket-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Get(1).(user.Role), args.Error(2)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(v *MockTokenValidator, minRole user.Role) *gin.Engine {
	r := gin.New()
	auth := middleware.NewAuthMiddleware(v)
	r.GET("/orders", auth.RequireAuth(), auth.RequireRoleAtLeast(minRole), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "role": string(role)})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		setup      func(*MockTokenValidator)
		minRole    user.Role
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			minRole:    user.RoleCustomer,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":{"code":"unauthorized","message":"Access token required"}}`,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc",
			minRole:    user.RoleCustomer,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":{"code":"unauthorized","message":"Access token required"}}`,
		},
		{
			name:   "invalid token",
			header: "Bearer broken",
			setup: func(v *MockTokenValidator) {
				v.On("ValidateToken", "broken").Return(uuid.Nil, user.Role(""), errs.New("token is malformed"))
			},
			minRole:    user.RoleCustomer,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":{"code":"unauthorized","message":"Invalid or expired token"}}`,
		},
		{
			name:   "customer reaches customer route",
			header: "Bearer good",
			setup: func(v *MockTokenValidator) {
				v.On("ValidateToken", "good").Return(userID, user.RoleCustomer, nil)
			},
			minRole:    user.RoleCustomer,
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":"` + userID.String() + `","role":"customer"}`,
		},
		{
			name:   "customer blocked from admin route",
			header: "Bearer good",
			setup: func(v *MockTokenValidator) {
				v.On("ValidateToken", "good").Return(userID, user.RoleCustomer, nil)
			},
			minRole:    user.RoleAdmin,
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":{"code":"forbidden","message":"Insufficient permissions"}}`,
		},
		{
			name:   "admin passes customer route",
			header: "Bearer root",
			setup: func(v *MockTokenValidator) {
				v.On("ValidateToken", "root").Return(userID, user.RoleAdmin, nil)
			},
			minRole:    user.RoleCustomer,
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":"` + userID.String() + `","role":"admin"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := new(MockTokenValidator)
			if tt.setup != nil {
				tt.setup(v)
			}
			router := newAuthRouter(v, tt.minRole)

			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			v.AssertExpectations(t)
		})
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	r := gin.New()
	auth := middleware.NewAuthMiddleware(new(MockTokenValidator))
	r.GET("/admin", auth.RequireRoleAtLeast(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
