package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	"github.com/oksasatya/user-management-api/pkg/helpers"
)

// stubRepo serves a fixed set of users by ID. Only GetByID is meaningful
// for the auth guard; every other method reports not found.
type stubRepo struct {
	byID map[string]*entity.User
}

func (s *stubRepo) Create(*entity.User) error { return repo.ErrDuplicateEmail }
func (s *stubRepo) GetByID(id string) (*entity.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}
func (s *stubRepo) GetByEmail(string) (*entity.User, error) { return nil, repo.ErrNotFound }
func (s *stubRepo) Update(*entity.User) error               { return repo.ErrNotFound }
func (s *stubRepo) UpdatePassword(string, string) error     { return repo.ErrNotFound }
func (s *stubRepo) SetLastLogin(string, time.Time) error    { return repo.ErrNotFound }
func (s *stubRepo) Deactivate(string) (*entity.User, error) { return nil, repo.ErrNotFound }
func (s *stubRepo) Delete(string) error                     { return repo.ErrNotFound }
func (s *stubRepo) List(repo.ListQuery) ([]*entity.User, int64, error) {
	return nil, 0, nil
}

var _ repo.UserRepository = (*stubRepo)(nil)

func setupAuthRouter(t *testing.T, users repo.UserRepository, tokens *helpers.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(users, tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		u := CurrentUser(c)
		require.NotNil(t, u)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingToken(t *testing.T) {
	tokens := helpers.NewTokenManager("secret", time.Hour)
	r := setupAuthRouter(t, &stubRepo{}, tokens)

	for _, header := range []string{"", "Token abc", "bearer lowercase-prefix"} {
		w := doGet(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No token provided")
	}
}

func TestAuthInvalidToken(t *testing.T) {
	tokens := helpers.NewTokenManager("secret", time.Hour)
	r := setupAuthRouter(t, &stubRepo{}, tokens)

	w := doGet(r, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token.")

	// Signed with a different secret.
	other := helpers.NewTokenManager("other-secret", time.Hour)
	tok, _, err := other.Generate("u1", string(entity.RoleUser))
	require.NoError(t, err)
	w = doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	expired := helpers.NewTokenManager("secret", -time.Minute)
	tok, _, err := expired.Generate("u1", string(entity.RoleUser))
	require.NoError(t, err)

	tokens := helpers.NewTokenManager("secret", time.Hour)
	r := setupAuthRouter(t, &stubRepo{}, tokens)

	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token.")
}

func TestAuthUnknownUser(t *testing.T) {
	tokens := helpers.NewTokenManager("secret", time.Hour)
	tok, _, err := tokens.Generate("ghost", string(entity.RoleUser))
	require.NoError(t, err)

	r := setupAuthRouter(t, &stubRepo{}, tokens)
	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestAuthSuccessAttachesUser(t *testing.T) {
	tokens := helpers.NewTokenManager("secret", time.Hour)
	u := &entity.User{ID: "u1", Name: "John Doe", Email: "john@example.com", Role: entity.RoleUser, IsActive: true}
	tok, _, err := tokens.Generate(u.ID, string(u.Role))
	require.NoError(t, err)

	r := setupAuthRouter(t, &stubRepo{byID: map[string]*entity.User{"u1": u}}, tokens)
	w := doGet(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}

func TestRequireRoles(t *testing.T) {
	tokens := helpers.NewTokenManager("secret", time.Hour)
	user := &entity.User{ID: "u1", Role: entity.RoleUser, IsActive: true}
	admin := &entity.User{ID: "a1", Role: entity.RoleAdmin, IsActive: true}
	users := &stubRepo{byID: map[string]*entity.User{"u1": user, "a1": admin}}

	r := setupAuthRouter(t, users, tokens, RequireRoles(entity.RoleAdmin))

	userTok, _, err := tokens.Generate(user.ID, string(user.Role))
	require.NoError(t, err)
	w := doGet(r, "Bearer "+userTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "permission")

	adminTok, _, err := tokens.Generate(admin.ID, string(admin.Role))
	require.NoError(t, err)
	w = doGet(r, "Bearer "+adminTok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireRoles(entity.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
