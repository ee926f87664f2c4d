// File: internal/handler/users/user.go
package users

import (
	"errors"
	"net/http"

	"user-api/internal/api"
	"user-api/internal/model"
	"user-api/internal/service"

	"github.com/labstack/echo/v4"
)

// @Summary     List all users
// @Description 回傳所有使用者
// @Tags        users
// @Produce     json
// @Success     200 {object} api.ListUsersResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [get]
func ListUsersHandler(svc *service.UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := svc.ListUsers(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		resp := api.ListUsersResponse{Users: make([]api.UserResponse, 0, len(users))}
		for _, u := range users {
			resp.Users = append(resp.Users, toResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Create a new user
// @Description 接收 JSON 資料並建立新帳號 (Email 會自動轉小寫)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(svc *service.UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		// 必填欄位缺漏在進入 service 前先擋下
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := svc.CreateUser(c.Request().Context(), service.CreateUserInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusCreated, toResponse(*user))
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       id  path      string true "使用者 ID"
// @Success     200 {object}  api.UserResponse
// @Failure     404 {object}  api.ErrorResponse "使用者不存在"
// @Failure     500 {object}  api.ErrorResponse "伺服器錯誤"
// @Router      /users/{id} [get]
func GetUserHandler(svc *service.UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := svc.GetUser(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, toResponse(*user))
	}
}

// @Summary     Update a user by ID
// @Description 根據使用者 ID 更新提供的欄位，未提供的欄位保持不變
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     string                true "使用者 ID"
// @Param       user body     api.UpdateUserRequest true "欲更新的欄位"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/{id} [put]
func UpdateUserHandler(svc *service.UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}

		user, err := svc.UpdateUser(c.Request().Context(), c.Param("id"), service.UpdateUserInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, toResponse(*user))
	}
}

// @Summary     Delete a user by ID
// @Description 根據使用者 ID 刪除使用者帳號
// @Tags        users
// @Param       id  path      string true "使用者 ID"
// @Success     204 "No Content"
// @Failure     404 {object}  api.ErrorResponse "使用者不存在"
// @Failure     500 {object}  api.ErrorResponse "伺服器錯誤"
// @Router      /users/{id} [delete]
func DeleteUserHandler(svc *service.UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
			return writeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// writeError 在最外層邊界將 domain 錯誤對應到狀態碼
func writeError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "email already exists"})
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: verr.Error()})
	default:
		// 內部細節不外洩
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
	}
}

func toResponse(u model.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
