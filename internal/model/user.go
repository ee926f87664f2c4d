// File: internal/model/user.go
package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User 代表 users collection 中的單筆文件
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password" json:"-"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}

// UserFromRecord 將 store 回傳的原始文件解碼為 User
func UserFromRecord(rec bson.M) (*User, error) {
	raw, err := bson.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("UserFromRecord: %w", err)
	}
	u := &User{}
	if err := bson.Unmarshal(raw, u); err != nil {
		return nil, fmt.Errorf("UserFromRecord: %w", err)
	}
	return u, nil
}
