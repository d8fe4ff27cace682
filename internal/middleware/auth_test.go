package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"cbots-backend/internal/database"
	"cbots-backend/internal/models"
	"cbots-backend/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestConfig() {
	os.Setenv("JWT_SECRET", "test_secret")
	os.Setenv("AUTH_MODE", "jwt")
}

func setupMockRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr
}

func setupMockDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.Migrator().DropTable(&models.User{}, &models.Transaction{})
	if err := db.AutoMigrate(&models.User{}, &models.Transaction{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	database.DB = db
}

func seedAccount(t *testing.T, role, status string) *models.User {
	user := &models.User{
		Name:         "tester-" + role,
		Email:        role + "-" + status + "@example.com",
		ReferralCode: "CODE" + role + status,
		Role:         role,
		Status:       status,
		IsVerified:   true,
	}
	if err := database.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	return user
}

func testToken(userID uint, role string, expired bool) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	if expired {
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tString, _ := token.SignedString([]byte("test_secret"))
	return tString
}

func TestAdminAuthMiddleware(t *testing.T) {
	setupTestConfig()
	mr := setupMockRedis()
	defer mr.Close()
	setupMockDB(t)

	gin.SetMode(gin.TestMode)

	admin := seedAccount(t, models.RoleAdmin, models.UserStatusActive)
	regular := seedAccount(t, models.RoleUser, models.UserStatusActive)
	blocked := seedAccount(t, models.RoleUser, models.UserStatusBlocked)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing Authorization Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authorization header is required",
		},
		{
			name:           "Invalid Token Format",
			authHeader:     "InvalidToken",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "bearer token not found",
		},
		{
			name:           "Invalid Token Signature",
			authHeader:     "Bearer invalid.token.signature",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + testToken(admin.ID, models.RoleAdmin, true),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:           "Non-Admin User",
			authHeader:     "Bearer " + testToken(regular.ID, models.RoleUser, false),
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Forbidden: Admins only",
		},
		{
			name:           "Blocked User",
			authHeader:     "Bearer " + testToken(blocked.ID, models.RoleUser, false),
			expectedStatus: http.StatusForbidden,
			expectedBody:   "blocked",
		},
		{
			name:           "Admin User",
			authHeader:     "Bearer " + testToken(admin.ID, models.RoleAdmin, false),
			expectedStatus: http.StatusOK,
			expectedBody:   "Success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(AdminAuthMiddleware())
			r.GET("/admin/test", func(c *gin.Context) {
				c.String(http.StatusOK, "Success")
			})

			req, _ := http.NewRequest(http.MethodGet, "/admin/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusOK {
				var resp utils.Response
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Contains(t, resp.Message, tt.expectedBody)
			} else {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_ExternalMode(t *testing.T) {
	setupTestConfig()
	os.Setenv("AUTH_MODE", "external")
	defer os.Setenv("AUTH_MODE", "jwt")

	mr := setupMockRedis()
	defer mr.Close()
	setupMockDB(t)

	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/me", func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		c.String(http.StatusOK, user.Name)
	})

	// Missing identity header is rejected
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// First sight of a UID provisions the account
	req, _ = http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderExternalUID, "ext-42")
	req.Header.Set(HeaderExternalName, "External Tester")
	req.Header.Set(HeaderExternalEmail, "ext42@example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "External Tester", w.Body.String())

	// Second call resolves the same account
	req, _ = http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderExternalUID, "ext-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&models.User{}).Where("external_uid = ?", "ext-42").Count(&count)
	assert.Equal(t, int64(1), count)
}
