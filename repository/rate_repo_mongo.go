package repository

import (
	"context"
	"time"

	"sangamtransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRateRepo struct {
	DB *mongo.Client
}

func NewMongoRateRepo(db *mongo.Client) *MongoRateRepo {
	return &MongoRateRepo{DB: db}
}

func (r *MongoRateRepo) rates() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("transport_hub_rates")
}

func (r *MongoRateRepo) ListActiveRates() ([]*models.TransportHubRate, error) {
	ctx := context.Background()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.rates().Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	var result []*models.TransportHubRate
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoRateRepo) CreateRate(rate *models.TransportHubRate) error {
	ctx := context.Background()
	if rate.CreatedAt.IsZero() {
		rate.CreatedAt = time.Now().UTC()
	}
	rate.IsActive = true
	_, err := r.rates().InsertOne(ctx, rate)
	return err
}

func (r *MongoRateRepo) UpdateRate(rate *models.TransportHubRate) error {
	ctx := context.Background()
	now := time.Now().UTC()
	rate.UpdatedAt = &now
	res, err := r.rates().UpdateOne(ctx,
		bson.M{"_id": rate.ID, "is_active": true},
		bson.M{"$set": bson.M{
			"transport_id":   rate.TransportID,
			"dest_city_id":   rate.DestCityID,
			"goods_type":     rate.GoodsType,
			"pricing_mode":   rate.PricingMode,
			"rate_per_kg":    rate.RatePerKG,
			"rate_per_pkg":   rate.RatePerPkg,
			"min_charge":     rate.MinCharge,
			"hamali_per_pkt": rate.HamaliPerPkt,
			"dd_charge":      rate.DDCharge,
			"updated_at":     rate.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRateRepo) DeactivateRate(id int64) error {
	ctx := context.Background()
	res, err := r.rates().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRateRepo) FindRate(transportID, destCityID int64, goodsType string) (*models.TransportHubRate, error) {
	ctx := context.Background()
	var rate models.TransportHubRate
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.rates().FindOne(ctx, bson.M{
		"transport_id": transportID,
		"dest_city_id": destCityID,
		"goods_type":   goodsType,
		"is_active":    true,
	}, opts).Decode(&rate)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}
