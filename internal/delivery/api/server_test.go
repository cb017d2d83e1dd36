package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"storeapi/config"
	apimiddleware "storeapi/internal/delivery/api/middleware"
	"storeapi/internal/delivery/api/router"
	"storeapi/internal/delivery/api/router/handler"
	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	mockusecase "storeapi/internal/mocks/usecase"
	"storeapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	e        *echo.Echo
	authUC   *mockusecase.MockAuthUsecase
	postUC   *mockusecase.MockPostUsecase
	uploadUC *mockusecase.MockUploadUsecase
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "4K"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fx := &apiFixture{
		authUC:   mockusecase.NewMockAuthUsecase(t),
		postUC:   mockusecase.NewMockPostUsecase(t),
		uploadUC: mockusecase.NewMockUploadUsecase(t),
	}

	r := router.NewRouter(router.RouterParams{
		UserHandler:    handler.NewUserHandler(handler.UserHandlerParams{AuthUC: fx.authUC, Logger: logger}),
		PostHandler:    handler.NewPostHandler(handler.PostHandlerParams{PostUC: fx.postUC, Logger: logger}),
		UploadHandler:  handler.NewUploadHandler(handler.UploadHandlerParams{UploadUC: fx.uploadUC, Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{AuthUC: fx.authUC}),
	})
	fx.e = NewEcho(cfg, logger, r)

	return fx
}

func (f *apiFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	return rec
}

func (f *apiFixture) doJSON(method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	return f.do(req)
}

// signedIn makes the access token "good" resolve to user.
func (f *apiFixture) signedIn(user *entity.User) {
	f.authUC.On("CurrentUser", mock.Anything, "good").Return(user, nil)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

var (
	alice = &entity.User{ID: 1, Email: "alice@example.com", Username: "alice", Confirmed: true}
	bob   = &entity.User{ID: 2, Email: "bob@example.com", Username: "bob", Confirmed: true}
)

func TestServer_HealthAndRequestID(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("generated", func(t *testing.T) {
		rec := f.doJSON(http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})

	t.Run("client supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-Id", "trace-123")
		rec := f.do(req)
		assert.Equal(t, "trace-123", rec.Header().Get("X-Request-Id"))
	})

	t.Run("unknown route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		req.Header.Set("X-Request-Id", "trace-404")
		rec := f.do(req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "HTTP_ERROR", body["code"])
		assert.Equal(t, "trace-404", body["request_id"])
	})
}

func TestServer_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newAPIFixture(t)
		f.authUC.On("Register", mock.Anything, usecase.RegisterInput{
			Email: "alice@example.com", Username: "alice", Password: "pw",
		}).Return(&usecase.RegisterOutput{User: alice}, nil)

		rec := f.doJSON(http.MethodPost, "/register", `{"email":"alice@example.com","username":"alice","password":"pw"}`, "")
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"detail":"User created. Please confirm your email."}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "confirm/")
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAPIFixture(t)
		f.authUC.On("Register", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrEmailTaken)

		rec := f.doJSON(http.MethodPost, "/register", `{"email":"alice@example.com","username":"alice2","password":"pw"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "CONFLICT", body["code"])
		assert.Equal(t, "A user with that email already exists", body["detail"])
		assert.NotEmpty(t, body["request_id"])
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.doJSON(http.MethodPost, "/register", `{"email":"nope","username":"alice","password":"pw"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "VALIDATION_FAILED", body["code"])
		assert.Equal(t, "email must be a valid email address", body["detail"])
	})

	t.Run("malformed json", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.doJSON(http.MethodPost, "/register", `{"email":`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec)["code"])
	})
}

func TestServer_Token(t *testing.T) {
	login := usecase.LoginInput{Email: "alice@example.com", Password: "pw"}
	output := &usecase.LoginOutput{AccessToken: "jwt", TokenType: usecase.TokenTypeBearer}

	t.Run("oauth2 form", func(t *testing.T) {
		f := newAPIFixture(t)
		f.authUC.On("Login", mock.Anything, login).Return(output, nil)

		form := url.Values{"username": {"alice@example.com"}, "password": {"pw"}}
		req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := f.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"access_token":"jwt","token_type":"bearer"}`, rec.Body.String())
	})

	t.Run("json", func(t *testing.T) {
		f := newAPIFixture(t)
		f.authUC.On("Login", mock.Anything, login).Return(output, nil)

		rec := f.doJSON(http.MethodPost, "/token", `{"email":"alice@example.com","password":"pw"}`, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.doJSON(http.MethodPost, "/token", `{"email":"alice@example.com"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unconfirmed", func(t *testing.T) {
		f := newAPIFixture(t)
		f.authUC.On("Login", mock.Anything, login).Return(nil, domainerrors.ErrEmailNotConfirmed)

		rec := f.doJSON(http.MethodPost, "/token", `{"email":"alice@example.com","password":"pw"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		body := decodeError(t, rec)
		assert.Equal(t, "EMAIL_NOT_CONFIRMED", body["code"])
		assert.Equal(t, "User has not confirmed email", body["detail"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := newAPIFixture(t)
		f.authUC.On("Login", mock.Anything, login).Return(nil, domainerrors.ErrInvalidCredentials)

		rec := f.doJSON(http.MethodPost, "/token", `{"email":"alice@example.com","password":"pw"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid email or password", decodeError(t, rec)["detail"])
	})
}

func TestServer_Confirm(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		f := newAPIFixture(t)
		f.authUC.On("ConfirmEmail", mock.Anything, "tok").Return(nil).Twice()

		for range 2 {
			rec := f.doJSON(http.MethodGet, "/confirm/tok", "", "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"detail":"User confirmed"}`, rec.Body.String())
		}
	})

	t.Run("expired", func(t *testing.T) {
		f := newAPIFixture(t)
		f.authUC.On("ConfirmEmail", mock.Anything, "old").Return(domainerrors.ErrTokenExpired)

		rec := f.doJSON(http.MethodGet, "/confirm/old", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decodeError(t, rec)["code"])
	})
}

func TestServer_Authentication(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.doJSON(http.MethodPost, "/post", `{"body":"hi"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		assert.Equal(t, "Not authenticated", decodeError(t, rec)["detail"])
	})

	t.Run("wrong scheme", func(t *testing.T) {
		f := newAPIFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(`{"body":"hi"}`))
		req.Header.Set(echo.HeaderAuthorization, "Basic YWxpY2U6cHc=")
		rec := f.do(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong purpose token", func(t *testing.T) {
		f := newAPIFixture(t)
		f.authUC.On("CurrentUser", mock.Anything, "confirm-token").
			Return(nil, domainerrors.ErrTokenWrongPurpose.WithMessage("token has incorrect type, expected access"))

		rec := f.doJSON(http.MethodPost, "/post", `{"body":"hi"}`, "confirm-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "TOKEN_WRONG_PURPOSE", body["code"])
		assert.Equal(t, "token has incorrect type, expected access", body["detail"])
	})
}

func TestServer_Posts(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("create", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signedIn(alice)
		f.postUC.On("CreatePost", mock.Anything, alice, usecase.CreatePostInput{Body: "hello"}).
			Return(&entity.Post{ID: 7, Body: "hello", UserID: 1, CreatedAt: created}, nil)

		rec := f.doJSON(http.MethodPost, "/post", `{"body":"hello"}`, "good")
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":7,"body":"hello","user_id":1,"image_url":null,"created_at":"2026-01-02T03:04:05Z"}`, rec.Body.String())
	})

	t.Run("create rejects empty body", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signedIn(alice)

		rec := f.doJSON(http.MethodPost, "/post", `{"body":""}`, "good")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list most_likes", func(t *testing.T) {
		f := newAPIFixture(t)
		f.postUC.On("ListPosts", mock.Anything, entity.PostSortingMostLikes).Return([]*entity.PostWithLikes{
			{Post: entity.Post{ID: 2, Body: "b", UserID: 1, CreatedAt: created}, Likes: 5, Username: "alice"},
			{Post: entity.Post{ID: 1, Body: "a", UserID: 2, CreatedAt: created}, Likes: 1, Username: "bob"},
		}, nil)

		rec := f.doJSON(http.MethodGet, "/post?sorting=most_likes", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []handler.PostWithLikesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
		require.Len(t, posts, 2)
		assert.Equal(t, int64(2), posts[0].ID)
		assert.Equal(t, int64(5), posts[0].Likes)
		assert.Equal(t, "bob", posts[1].Username)
	})

	t.Run("list empty is an array", func(t *testing.T) {
		f := newAPIFixture(t)
		f.postUC.On("ListPosts", mock.Anything, entity.PostSorting("")).Return([]*entity.PostWithLikes{}, nil)

		rec := f.doJSON(http.MethodGet, "/post", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("list bad sorting", func(t *testing.T) {
		f := newAPIFixture(t)
		f.postUC.On("ListPosts", mock.Anything, entity.PostSorting("random")).
			Return(nil, domainerrors.ErrValidationFailed.WithMessage("sorting must be one of new, old, most_likes"))

		rec := f.doJSON(http.MethodGet, "/post?sorting=random", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get with comments", func(t *testing.T) {
		f := newAPIFixture(t)
		f.postUC.On("GetPostWithComments", mock.Anything, int64(7)).Return(&entity.PostWithComments{
			Post:     &entity.PostWithLikes{Post: entity.Post{ID: 7, Body: "hello", UserID: 1, CreatedAt: created}, Username: "alice"},
			Comments: []*entity.Comment{{ID: 3, Body: "nice", PostID: 7, UserID: 2, Username: "bob", CreatedAt: created}},
		}, nil)

		rec := f.doJSON(http.MethodGet, "/post/7", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"post": {"id":7,"body":"hello","user_id":1,"image_url":null,"created_at":"2026-01-02T03:04:05Z","likes":0,"username":"alice"},
			"comments": [{"id":3,"body":"nice","post_id":7,"user_id":2,"username":"bob","created_at":"2026-01-02T03:04:05Z"}]
		}`, rec.Body.String())
	})

	t.Run("get missing", func(t *testing.T) {
		f := newAPIFixture(t)
		f.postUC.On("GetPostWithComments", mock.Anything, int64(99)).Return(nil, domainerrors.ErrPostNotFound)

		rec := f.doJSON(http.MethodGet, "/post/99", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "post not found", decodeError(t, rec)["detail"])
	})

	t.Run("get non numeric id", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.doJSON(http.MethodGet, "/post/abc", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update by stranger", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signedIn(bob)
		f.postUC.On("UpdatePost", mock.Anything, bob, usecase.UpdatePostInput{PostID: 7, Body: "edit"}).
			Return(nil, domainerrors.ErrForbidden.WithMessage("not authorized to edit this post"))

		rec := f.doJSON(http.MethodPut, "/post/7", `{"body":"edit"}`, "good")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "not authorized to edit this post", decodeError(t, rec)["detail"])
	})

	t.Run("delete", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signedIn(alice)
		f.postUC.On("DeletePost", mock.Anything, alice, int64(7)).Return(nil).Once()
		f.postUC.On("DeletePost", mock.Anything, alice, int64(7)).Return(domainerrors.ErrPostNotFound).Once()

		rec := f.doJSON(http.MethodDelete, "/post/7", "", "good")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())

		rec = f.doJSON(http.MethodDelete, "/post/7", "", "good")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("user posts", func(t *testing.T) {
		f := newAPIFixture(t)
		f.postUC.On("ListUserPosts", mock.Anything, int64(1)).Return([]*entity.PostWithLikes{}, nil)

		rec := f.doJSON(http.MethodGet, "/user/1/posts", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServer_CommentsAndLikes(t *testing.T) {
	t.Run("comment", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signedIn(bob)
		f.postUC.On("CreateComment", mock.Anything, bob, int64(7), "nice").
			Return(&entity.Comment{ID: 3, Body: "nice", PostID: 7, UserID: 2, Username: "bob"}, nil)

		rec := f.doJSON(http.MethodPost, "/comment", `{"body":"nice","post_id":7}`, "good")
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"bob"`)
	})

	t.Run("comment on missing post", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signedIn(bob)
		f.postUC.On("CreateComment", mock.Anything, bob, int64(99), "nice").Return(nil, domainerrors.ErrPostNotFound)

		rec := f.doJSON(http.MethodPost, "/comment", `{"body":"nice","post_id":99}`, "good")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list comments of unknown post", func(t *testing.T) {
		f := newAPIFixture(t)
		f.postUC.On("ListComments", mock.Anything, int64(404)).Return([]*entity.Comment{}, nil)

		rec := f.doJSON(http.MethodGet, "/post/404/comment", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("list comments", func(t *testing.T) {
		f := newAPIFixture(t)
		f.postUC.On("ListComments", mock.Anything, int64(7)).Return([]*entity.Comment{}, nil)

		rec := f.doJSON(http.MethodGet, "/post/7/comment", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("like then like again", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signedIn(bob)
		f.postUC.On("CreateLike", mock.Anything, bob, int64(7)).Return(&entity.Like{ID: 1, PostID: 7, UserID: 2}, nil).Once()
		f.postUC.On("CreateLike", mock.Anything, bob, int64(7)).Return(nil, domainerrors.ErrAlreadyLiked).Once()

		rec := f.doJSON(http.MethodPost, "/like", `{"post_id":7}`, "good")
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":1,"post_id":7,"user_id":2}`, rec.Body.String())

		rec = f.doJSON(http.MethodPost, "/like", `{"post_id":7}`, "good")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "ALREADY_LIKED", decodeError(t, rec)["code"])
	})
}

func multipartImage(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf, w.FormDataContentType()
}

func TestServer_Upload(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")

	t.Run("stored", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signedIn(alice)
		f.uploadUC.On("UploadImage", mock.Anything, alice, usecase.UploadImageInput{
			Filename: "cat.png", ContentType: "image/png", Data: png,
		}).Return("http://localhost:8000/uploads/abc.png", nil)

		body, contentType := multipartImage(t, "file", "cat.png", "image/png", png)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")
		rec := f.do(req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"detail":"cat.png uploaded successfully","file_url":"http://localhost:8000/uploads/abc.png"}`, rec.Body.String())
	})

	t.Run("missing file field", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signedIn(alice)

		body, contentType := multipartImage(t, "other", "cat.png", "image/png", png)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")
		rec := f.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("body limit", func(t *testing.T) {
		f := newAPIFixture(t)

		body, contentType := multipartImage(t, "file", "big.png", "image/png", bytes.Repeat([]byte{1}, 8*1024))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")
		rec := f.do(req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("serve", func(t *testing.T) {
		f := newAPIFixture(t)
		f.uploadUC.On("OpenImage", mock.Anything, "abc.png").Return(io.NopCloser(bytes.NewReader(png)), "image/png", nil)

		rec := f.doJSON(http.MethodGet, "/uploads/abc.png", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, png, rec.Body.Bytes())
	})

	t.Run("serve missing", func(t *testing.T) {
		f := newAPIFixture(t)
		f.uploadUC.On("OpenImage", mock.Anything, "gone.png").Return(nil, "", domainerrors.ErrNotFound.WithMessage("file not found"))

		rec := f.doJSON(http.MethodGet, "/uploads/gone.png", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_UnhandledError(t *testing.T) {
	f := newAPIFixture(t)
	f.postUC.On("ListUserPosts", mock.Anything, int64(1)).Return(nil, errors.New("connection reset by peer"))

	rec := f.doJSON(http.MethodGet, "/user/1/posts", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	assert.NotContains(t, body["detail"], "connection reset")
}
