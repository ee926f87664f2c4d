// File: cmd/service/main.go
// @title        User API
// @version      1.0
// @description  使用者 CRUD 的後端 API 文件
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"user-api/internal/config"
	"user-api/internal/database"
	"user-api/internal/logger"
	"user-api/internal/router"
	"user-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "user-api/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// store 定義 run 所需的儲存層生命週期，便於測試時替換
type store interface {
	Users() database.Users
	EnsureIndexes(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	loadConfig   = config.Load
	connectStore = func(ctx context.Context, uri, name string) (store, error) {
		return database.Connect(ctx, uri, name)
	}
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc    = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	db, err := connectStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Printf("關閉 DB 連線失敗: %v", err)
		}
	}()

	// email 唯一索引是併發建立時的必要防線
	if err := db.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("索引建立失敗: %v", err)
	}

	svc := service.NewUserService(db.Users(), logger.New())

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	router.Setup(e, svc)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.Address())
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
