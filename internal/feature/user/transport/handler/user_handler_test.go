package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo_backend/internal/feature/user/domain/entity"
	"todo_backend/internal/feature/user/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	findOrCreateFn  func(ctx context.Context, name string, status *string) (*entity.User, bool, error)
	profileFn       func(ctx context.Context, id uint) (*entity.User, error)
	updateProfileFn func(ctx context.Context, id uint, name, status *string) (*entity.User, error)
	deleteFn        func(ctx context.Context, id uint) error
	listNamesFn     func(ctx context.Context) ([]string, error)
}

func (m *mockUserUsecase) FindOrCreate(ctx context.Context, name string, status *string) (*entity.User, bool, error) {
	if m.findOrCreateFn != nil {
		return m.findOrCreateFn(ctx, name, status)
	}
	return nil, false, usecase.ErrNameRequired
}

func (m *mockUserUsecase) Profile(ctx context.Context, id uint) (*entity.User, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, id)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserUsecase) UpdateProfile(ctx context.Context, id uint, name, status *string) (*entity.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, name, status)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserUsecase) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockUserUsecase) ListNames(ctx context.Context) ([]string, error) {
	if m.listNamesFn != nil {
		return m.listNamesFn(ctx)
	}
	return nil, nil
}

// testRouter wires the handler into the same route table the app uses.
func testRouter(uc UserUsecase, codec jwtmw.Codec) *gin.Engine {
	h := NewUserHandler(uc, codec)
	r := gin.New()
	api := r.Group("/api")
	api.GET("/names", h.Names)
	api.POST("/user", h.Register)
	auth := api.Group("")
	auth.Use(jwtmw.AuthRequired(codec))
	{
		auth.GET("/token", h.RefreshToken)
		auth.GET("/user", h.Me)
		auth.PUT("/user", h.Update)
		auth.DELETE("/user", h.DeleteMe)
	}
	return r
}

func formRequest(method, path string, form url.Values) *http.Request {
	req, _ := http.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestUserHandler_Register(t *testing.T) {
	codec := jwtmw.NewCodec("test-secret", time.Hour)

	tests := []struct {
		name           string
		form           url.Values
		mockFn         func(ctx context.Context, name string, status *string) (*entity.User, bool, error)
		expectedStatus int
		expectedErrMsg string
	}{
		{
			name: "success: first registration returns 201",
			form: url.Values{"name": {"Ada Lovelace"}},
			mockFn: func(ctx context.Context, name string, status *string) (*entity.User, bool, error) {
				return &entity.User{ID: 1, Name: name, Slug: "ada-lovelace"}, true, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "success: re-login returns 200",
			form: url.Values{"name": {"Ada Lovelace"}},
			mockFn: func(ctx context.Context, name string, status *string) (*entity.User, bool, error) {
				return &entity.User{ID: 1, Name: name, Slug: "ada-lovelace"}, false, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: missing name",
			form:           url.Values{"status": {"hello"}},
			mockFn:         nil,
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Name is required.",
		},
		{
			name: "failure: storage error returns 500",
			form: url.Values{"name": {"Ada"}},
			mockFn: func(ctx context.Context, name string, status *string) (*entity.User, bool, error) {
				return nil, false, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedErrMsg: "Something went wrong.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testRouter(&mockUserUsecase{findOrCreateFn: tt.mockFn}, codec)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, formRequest(http.MethodPost, "/api/user", tt.form))

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedErrMsg != "" {
				var body struct {
					Error struct {
						Message string `json:"message"`
					} `json:"error"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedErrMsg, body.Error.Message)
				return
			}

			// トークンのエンベロープと中身を検証
			var body struct {
				Token struct {
					Token   string `json:"token"`
					Message string `json:"message"`
				} `json:"token"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Token.Token)
			assert.Contains(t, body.Token.Message, "expire in 3 hours")

			claims, err := codec.ParseToken(body.Token.Token)
			require.NoError(t, err)
			assert.Equal(t, uint(1), claims.UserID)
			assert.Equal(t, "Ada Lovelace", claims.Username)
		})
	}
}

func TestUserHandler_Names(t *testing.T) {
	codec := jwtmw.NewCodec("test-secret", time.Hour)
	router := testRouter(&mockUserUsecase{
		listNamesFn: func(ctx context.Context) ([]string, error) {
			return []string{"Ada Lovelace", "Bob"}, nil
		},
	}, codec)

	req, _ := http.NewRequest(http.MethodGet, "/api/names", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"names":["Ada Lovelace","Bob"]}`, w.Body.String())
}

func TestUserHandler_Me(t *testing.T) {
	codec := jwtmw.NewCodec("test-secret", time.Hour)
	token, err := codec.GenerateToken(1, "Bob")
	require.NoError(t, err)

	t.Run("success: returns the caller's projection", func(t *testing.T) {
		router := testRouter(&mockUserUsecase{
			profileFn: func(ctx context.Context, id uint) (*entity.User, error) {
				assert.Equal(t, uint(1), id, "id must come from the token")
				return &entity.User{ID: 1, Name: "Bob", Slug: "bob"}, nil
			},
		}, codec)

		req, _ := http.NewRequest(http.MethodGet, "/api/user?token="+token, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		// slugは公開プロジェクションに含まれない
		assert.JSONEq(t, `{"id":1,"name":"Bob","status":null}`, w.Body.String())
	})

	t.Run("failure: no token returns 401", func(t *testing.T) {
		router := testRouter(&mockUserUsecase{}, codec)

		req, _ := http.NewRequest(http.MethodGet, "/api/user", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("failure: deleted account returns 404", func(t *testing.T) {
		router := testRouter(&mockUserUsecase{}, codec)

		req, _ := http.NewRequest(http.MethodGet, "/api/user?token="+token, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_Update(t *testing.T) {
	codec := jwtmw.NewCodec("test-secret", time.Hour)
	token, err := codec.GenerateToken(1, "Bob")
	require.NoError(t, err)

	t.Run("status only: name pointer stays nil", func(t *testing.T) {
		router := testRouter(&mockUserUsecase{
			updateProfileFn: func(ctx context.Context, id uint, name, status *string) (*entity.User, error) {
				assert.Nil(t, name)
				require.NotNil(t, status)
				assert.Equal(t, "busy", *status)
				return &entity.User{ID: id, Name: "Bob", Status: status}, nil
			},
		}, codec)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, formRequest(http.MethodPut, "/api/user?token="+token, url.Values{"status": {"busy"}}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"name":"Bob","status":"busy"}`, w.Body.String())
	})

	t.Run("nothing submitted returns 400", func(t *testing.T) {
		router := testRouter(&mockUserUsecase{
			updateProfileFn: func(ctx context.Context, id uint, name, status *string) (*entity.User, error) {
				return nil, usecase.ErrNoFields
			},
		}, codec)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, formRequest(http.MethodPut, "/api/user?token="+token, url.Values{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Your data is invalid.")
	})

	t.Run("name collision returns 400", func(t *testing.T) {
		router := testRouter(&mockUserUsecase{
			updateProfileFn: func(ctx context.Context, id uint, name, status *string) (*entity.User, error) {
				return nil, usecase.ErrSlugTaken
			},
		}, codec)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, formRequest(http.MethodPut, "/api/user?token="+token, url.Values{"name": {"Ada"}}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Name is already taken.")
	})
}

func TestUserHandler_DeleteMe(t *testing.T) {
	codec := jwtmw.NewCodec("test-secret", time.Hour)
	token, err := codec.GenerateToken(1, "Bob")
	require.NoError(t, err)

	deleted := uint(0)
	router := testRouter(&mockUserUsecase{
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}, codec)

	req, _ := http.NewRequest(http.MethodDelete, "/api/user?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(1), deleted)
	assert.Empty(t, w.Body.String())
}

func TestUserHandler_RefreshToken(t *testing.T) {
	codec := jwtmw.NewCodec("test-secret", time.Hour)
	token, err := codec.GenerateToken(1, "Old Name")
	require.NoError(t, err)

	router := testRouter(&mockUserUsecase{
		profileFn: func(ctx context.Context, id uint) (*entity.User, error) {
			// 名前変更後でも現在のレコードから発行される
			return &entity.User{ID: 1, Name: "New Name", Slug: "new-name"}, nil
		},
	}, codec)

	req, _ := http.NewRequest(http.MethodGet, "/api/token?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token struct {
			Token string `json:"token"`
		} `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	claims, err := codec.ParseToken(body.Token.Token)
	require.NoError(t, err)
	assert.Equal(t, "New Name", claims.Username)
}
