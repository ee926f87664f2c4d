package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Client 包裝 mongo 連線，啟動時建立一次、關閉時釋放一次
type Client struct {
	mc *mongo.Client
	db *mongo.Database
}

// Connect 建立 mongo 連線並以 Ping 確認可用
func Connect(ctx context.Context, uri, name string) (*Client, error) {
	mc, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("Connect: %w", err)
	}
	if err := mc.Ping(ctx, nil); err != nil {
		_ = mc.Disconnect(ctx)
		return nil, fmt.Errorf("Connect: %w", err)
	}
	return &Client{mc: mc, db: mc.Database(name)}, nil
}

// Close 中斷 mongo 連線
func (c *Client) Close(ctx context.Context) error {
	return c.mc.Disconnect(ctx)
}

// Users 回傳 users collection 的存取實作
func (c *Client) Users() Users {
	return &mongoUsers{coll: c.db.Collection("users")}
}

// EnsureIndexes 建立 email 唯一索引
// 併發以相同 email 建立使用者時，服務層的先查後插並非 race-free，
// 唯一索引是 store 層必要的防線
func (c *Client) EnsureIndexes(ctx context.Context) error {
	_, err := c.db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("EnsureIndexes: %w", err)
	}
	return nil
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (m *mongoUsers) List(ctx context.Context) ([]bson.M, error) {
	cur, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	var recs []bson.M
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return recs, nil
}

func (m *mongoUsers) FindByID(ctx context.Context, id bson.ObjectID) (bson.M, error) {
	return m.findOne(ctx, "FindByID", bson.M{"_id": id})
}

func (m *mongoUsers) FindByField(ctx context.Context, field string, value any) (bson.M, error) {
	return m.findOne(ctx, "FindByField", bson.M{field: value})
}

func (m *mongoUsers) findOne(ctx context.Context, op string, filter bson.M) (bson.M, error) {
	var rec bson.M
	if err := m.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

func (m *mongoUsers) Insert(ctx context.Context, rec bson.M) (bson.ObjectID, error) {
	res, err := m.coll.InsertOne(ctx, rec)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("Insert: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("Insert: unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (m *mongoUsers) UpdateByID(ctx context.Context, id bson.ObjectID, fields bson.M) error {
	if _, err := m.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields}); err != nil {
		return fmt.Errorf("UpdateByID: %w", err)
	}
	return nil
}

func (m *mongoUsers) DeleteByID(ctx context.Context, id bson.ObjectID) (int64, error) {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("DeleteByID: %w", err)
	}
	return res.DeletedCount, nil
}
