package database

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Users 定義 users collection 的儲存操作介面
// 只做純粹的存取，不含任何驗證
// 查無文件時 FindByID / FindByField 回傳 (nil, nil)
// 方便測試時替換 FakeUsers 實作

type Users interface {
	List(ctx context.Context) ([]bson.M, error)
	FindByID(ctx context.Context, id bson.ObjectID) (bson.M, error)
	FindByField(ctx context.Context, field string, value any) (bson.M, error)
	Insert(ctx context.Context, rec bson.M) (bson.ObjectID, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, fields bson.M) error
	DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error)
}

type FakeUsers struct {
	ListFn        func(ctx context.Context) ([]bson.M, error)
	FindByIDFn    func(ctx context.Context, id bson.ObjectID) (bson.M, error)
	FindByFieldFn func(ctx context.Context, field string, value any) (bson.M, error)
	InsertFn      func(ctx context.Context, rec bson.M) (bson.ObjectID, error)
	UpdateByIDFn  func(ctx context.Context, id bson.ObjectID, fields bson.M) error
	DeleteByIDFn  func(ctx context.Context, id bson.ObjectID) (int64, error)
}

func (f *FakeUsers) List(ctx context.Context) ([]bson.M, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	panic("unexpected List")
}

func (f *FakeUsers) FindByID(ctx context.Context, id bson.ObjectID) (bson.M, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	panic("unexpected FindByID")
}

func (f *FakeUsers) FindByField(ctx context.Context, field string, value any) (bson.M, error) {
	if f.FindByFieldFn != nil {
		return f.FindByFieldFn(ctx, field, value)
	}
	panic("unexpected FindByField")
}

func (f *FakeUsers) Insert(ctx context.Context, rec bson.M) (bson.ObjectID, error) {
	if f.InsertFn != nil {
		return f.InsertFn(ctx, rec)
	}
	panic("unexpected Insert")
}

func (f *FakeUsers) UpdateByID(ctx context.Context, id bson.ObjectID, fields bson.M) error {
	if f.UpdateByIDFn != nil {
		return f.UpdateByIDFn(ctx, id, fields)
	}
	panic("unexpected UpdateByID")
}

func (f *FakeUsers) DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error) {
	if f.DeleteByIDFn != nil {
		return f.DeleteByIDFn(ctx, id)
	}
	panic("unexpected DeleteByID")
}
