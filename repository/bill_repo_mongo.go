package repository

import (
	"context"
	"time"

	"sangamtransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoBillRepo struct {
	DB *mongo.Client
}

func NewMongoBillRepo(db *mongo.Client) *MongoBillRepo {
	return &MongoBillRepo{DB: db}
}

func (r *MongoBillRepo) bills() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("monthly_bill")
}

func (r *MongoBillRepo) InsertBill(b *models.MonthlyBill) error {
	ctx := context.Background()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.bills().InsertOne(ctx, b)
	return err
}

func (r *MongoBillRepo) ListBillsByUser(userID int64) ([]*models.MonthlyBill, error) {
	ctx := context.Background()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.bills().Find(ctx, bson.M{"created_by": userID}, opts)
	if err != nil {
		return nil, err
	}
	var result []*models.MonthlyBill
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
