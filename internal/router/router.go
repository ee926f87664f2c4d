// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"user-api/internal/handler/users"
	"user-api/internal/service"
)

// Setup 註冊所有路由
func Setup(e *echo.Echo, svc *service.UserService) {
	e.GET("/users", users.ListUsersHandler(svc))
	e.POST("/users", users.CreateUserHandler(svc))
	e.GET("/users/:id", users.GetUserHandler(svc))
	e.PUT("/users/:id", users.UpdateUserHandler(svc))
	e.DELETE("/users/:id", users.DeleteUserHandler(svc))
}
