// File: internal/service/user.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"user-api/internal/database"
	"user-api/internal/model"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CreateUserInput 定義建立使用者的輸入欄位
type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateUserInput 定義部分更新的輸入欄位
// nil 代表未提供，與提供空值不同
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitnil,min=1"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=6"`
}

// UserService 串接驗證、唯一性檢查、密碼哈希與 store 操作
type UserService struct {
	users database.Users
	log   *logrus.Logger
}

func NewUserService(users database.Users, log *logrus.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// ListUsers 回傳所有使用者
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	recs, err := s.users.List(ctx)
	if err != nil {
		return nil, s.fail("listUsers", "", err)
	}
	users := make([]model.User, 0, len(recs))
	for _, rec := range recs {
		u, err := model.UserFromRecord(rec)
		if err != nil {
			return nil, s.fail("listUsers", "", err)
		}
		users = append(users, *u)
	}
	return users, nil
}

// GetUser 依 id 查詢使用者，格式錯誤或不存在皆回傳 ErrUserNotFound
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	rec, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, s.fail("getUser", id, err)
	}
	if rec == nil {
		return nil, ErrUserNotFound
	}
	u, err := model.UserFromRecord(rec)
	if err != nil {
		return nil, s.fail("getUser", id, err)
	}
	return u, nil
}

// CreateUser 驗證輸入、檢查 email 唯一性、哈希密碼後寫入，
// 並重新讀取確保回傳內容與 store 實際保存一致
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(in.Email)

	existing, err := s.users.FindByField(ctx, "email", in.Email)
	if err != nil {
		return nil, s.fail("createUser", "", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, s.fail("createUser", "", err)
	}

	now := time.Now().UTC()
	id, err := s.users.Insert(ctx, bson.M{
		"name":       in.Name,
		"email":      in.Email,
		"password":   hash,
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		return nil, s.fail("createUser", "", err)
	}

	return s.refetch(ctx, "createUser", id)
}

// UpdateUser 只套用有提供的欄位，存在檢查先於驗證
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	rec, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, s.fail("updateUser", id, err)
	}
	if rec == nil {
		return nil, ErrUserNotFound
	}

	if err := checkInput(&in); err != nil {
		return nil, err
	}

	fields := bson.M{"updated_at": time.Now().UTC()}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = strings.ToLower(*in.Email)
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, s.fail("updateUser", id, err)
		}
		fields["password"] = hash
	}

	if err := s.users.UpdateByID(ctx, oid, fields); err != nil {
		return nil, s.fail("updateUser", id, err)
	}

	return s.refetch(ctx, "updateUser", oid)
}

// DeleteUser 刪除指定使用者，不存在回傳 ErrUserNotFound
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrUserNotFound
	}
	rec, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return s.fail("deleteUser", id, err)
	}
	if rec == nil {
		return ErrUserNotFound
	}
	removed, err := s.users.DeleteByID(ctx, oid)
	if err != nil {
		return s.fail("deleteUser", id, err)
	}
	if removed == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) refetch(ctx context.Context, op string, id bson.ObjectID) (*model.User, error) {
	rec, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(op, id.Hex(), err)
	}
	if rec == nil {
		return nil, s.fail(op, id.Hex(), fmt.Errorf("record vanished after write"))
	}
	u, err := model.UserFromRecord(rec)
	if err != nil {
		return nil, s.fail(op, id.Hex(), err)
	}
	return u, nil
}

// fail 記錄操作名稱與識別碼後回傳包裝錯誤
func (s *UserService) fail(op, id string, err error) error {
	entry := s.log.WithError(err).WithField("operation", op)
	if id != "" {
		entry = entry.WithField("user_id", id)
	}
	entry.Error("store operation failed")
	return fmt.Errorf("%s: %w", op, err)
}
