package users

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user-api/internal/database"
	"user-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

type realValidator struct{ v *validator.Validate }

func (r *realValidator) Validate(i interface{}) error { return r.v.Struct(i) }

func newService(users database.Users) *service.UserService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return service.NewUserService(users, log)
}

func newJSONCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/users", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newParamCtx(e *echo.Echo, method, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/users/"+id, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func sampleRecord(id bson.ObjectID, now time.Time) bson.M {
	return bson.M{
		"_id":        id,
		"name":       "Ada",
		"email":      "ada@x.com",
		"password":   "$2a$10$hash",
		"created_at": now,
		"updated_at": now,
	}
}

func TestListUsersHandler(t *testing.T) {
	e := echo.New()
	id := bson.NewObjectID()
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			ListFn: func(context.Context) ([]bson.M, error) {
				return []bson.M{sampleRecord(id, now)}, nil
			},
		})
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, ListUsersHandler(svc)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"users":[`)
		require.Contains(t, rec.Body.String(), `"id":"`+id.Hex()+`"`)
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("empty array not null", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			ListFn: func(context.Context) ([]bson.M, error) { return nil, nil },
		})
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, ListUsersHandler(svc)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"users":[]`)
	})

	t.Run("store error", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			ListFn: func(context.Context) ([]bson.M, error) { return nil, errors.New("down") },
		})
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, ListUsersHandler(svc)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "internal server error")
		require.NotContains(t, rec.Body.String(), "down")
	})
}

func TestCreateUserHandler(t *testing.T) {
	e := echo.New()

	t.Run("bind error", func(t *testing.T) {
		e.Validator = &stubValidator{}
		svc := newService(&database.FakeUsers{})
		ctx, rec := newJSONCtx(e, http.MethodPost, "{not json")
		require.NoError(t, CreateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid request body")
	})

	t.Run("missing required field rejected before service", func(t *testing.T) {
		e.Validator = &realValidator{v: validator.New()}
		// store 的任何呼叫都會 panic，證明未進入 service
		svc := newService(&database.FakeUsers{})
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"email":"ada@x.com","password":"secret1"}`)
		require.NoError(t, CreateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("short password", func(t *testing.T) {
		e.Validator = &stubValidator{}
		svc := newService(&database.FakeUsers{})
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"Ada","email":"ada@x.com","password":"12345"}`)
		require.NoError(t, CreateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		e.Validator = &stubValidator{}
		svc := newService(&database.FakeUsers{
			FindByFieldFn: func(context.Context, string, any) (bson.M, error) {
				return bson.M{"email": "ada@x.com"}, nil
			},
		})
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"Ada","email":"ada@x.com","password":"secret1"}`)
		require.NoError(t, CreateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), "email already exists")
	})

	t.Run("store error", func(t *testing.T) {
		e.Validator = &stubValidator{}
		svc := newService(&database.FakeUsers{
			FindByFieldFn: func(context.Context, string, any) (bson.M, error) {
				return nil, errors.New("down")
			},
		})
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"Ada","email":"ada@x.com","password":"secret1"}`)
		require.NoError(t, CreateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		e.Validator = &realValidator{v: validator.New()}
		id := bson.NewObjectID()
		var inserted bson.M
		svc := newService(&database.FakeUsers{
			FindByFieldFn: func(context.Context, string, any) (bson.M, error) { return nil, nil },
			InsertFn: func(_ context.Context, rec bson.M) (bson.ObjectID, error) {
				inserted = rec
				return id, nil
			},
			FindByIDFn: func(context.Context, bson.ObjectID) (bson.M, error) {
				rec := bson.M{"_id": id}
				for k, v := range inserted {
					rec[k] = v
				}
				return rec, nil
			},
		})
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"Ada","email":"Ada@X.com","password":"secret1"}`)
		require.NoError(t, CreateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":"`+id.Hex()+`"`)
		require.Contains(t, rec.Body.String(), `"email":"ada@x.com"`)
		require.NotContains(t, rec.Body.String(), "password")
		require.NotContains(t, rec.Body.String(), "secret1")
	})
}

func TestGetUserHandler(t *testing.T) {
	e := echo.New()
	id := bson.NewObjectID()
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			FindByIDFn: func(context.Context, bson.ObjectID) (bson.M, error) {
				return sampleRecord(id, now), nil
			},
		})
		ctx, rec := newParamCtx(e, http.MethodGet, id.Hex(), "")
		require.NoError(t, GetUserHandler(svc)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"name":"Ada"`)
	})

	t.Run("absent id", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			FindByIDFn: func(context.Context, bson.ObjectID) (bson.M, error) { return nil, nil },
		})
		ctx, rec := newParamCtx(e, http.MethodGet, id.Hex(), "")
		require.NoError(t, GetUserHandler(svc)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "user not found")
	})

	t.Run("malformed id gets the same not found", func(t *testing.T) {
		svc := newService(&database.FakeUsers{})
		ctx, rec := newParamCtx(e, http.MethodGet, "not-an-object-id", "")
		require.NoError(t, GetUserHandler(svc)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "user not found")
	})
}

func TestUpdateUserHandler(t *testing.T) {
	e := echo.New()
	id := bson.NewObjectID()
	created := time.Now().UTC().Add(-time.Hour)

	t.Run("bind error", func(t *testing.T) {
		svc := newService(&database.FakeUsers{})
		ctx, rec := newParamCtx(e, http.MethodPut, id.Hex(), "{bad")
		require.NoError(t, UpdateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found wins over invalid body", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			FindByIDFn: func(context.Context, bson.ObjectID) (bson.M, error) { return nil, nil },
		})
		ctx, rec := newParamCtx(e, http.MethodPut, id.Hex(), `{"email":"not-an-email"}`)
		require.NoError(t, UpdateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			FindByIDFn: func(context.Context, bson.ObjectID) (bson.M, error) {
				return sampleRecord(id, created), nil
			},
		})
		ctx, rec := newParamCtx(e, http.MethodPut, id.Hex(), `{"email":"not-an-email"}`)
		require.NoError(t, UpdateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "email")
	})

	t.Run("success keeps untouched fields", func(t *testing.T) {
		var applied bson.M
		current := sampleRecord(id, created)
		svc := newService(&database.FakeUsers{
			FindByIDFn: func(context.Context, bson.ObjectID) (bson.M, error) {
				rec := bson.M{}
				for k, v := range current {
					rec[k] = v
				}
				for k, v := range applied {
					rec[k] = v
				}
				return rec, nil
			},
			UpdateByIDFn: func(_ context.Context, _ bson.ObjectID, fields bson.M) error {
				applied = fields
				return nil
			},
		})
		ctx, rec := newParamCtx(e, http.MethodPut, id.Hex(), `{"name":"Ada L"}`)
		require.NoError(t, UpdateUserHandler(svc)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"name":"Ada L"`)
		require.Contains(t, rec.Body.String(), `"email":"ada@x.com"`)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	e := echo.New()
	id := bson.NewObjectID()
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			FindByIDFn: func(context.Context, bson.ObjectID) (bson.M, error) {
				return sampleRecord(id, now), nil
			},
			DeleteByIDFn: func(context.Context, bson.ObjectID) (int64, error) { return 1, nil },
		})
		ctx, rec := newParamCtx(e, http.MethodDelete, id.Hex(), "")
		require.NoError(t, DeleteUserHandler(svc)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			FindByIDFn: func(context.Context, bson.ObjectID) (bson.M, error) { return nil, nil },
		})
		ctx, rec := newParamCtx(e, http.MethodDelete, id.Hex(), "")
		require.NoError(t, DeleteUserHandler(svc)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		svc := newService(&database.FakeUsers{
			FindByIDFn: func(context.Context, bson.ObjectID) (bson.M, error) {
				return sampleRecord(id, now), nil
			},
			DeleteByIDFn: func(context.Context, bson.ObjectID) (int64, error) { return 0, errors.New("down") },
		})
		ctx, rec := newParamCtx(e, http.MethodDelete, id.Hex(), "")
		require.NoError(t, DeleteUserHandler(svc)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
