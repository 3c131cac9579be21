package repository

import (
	"context"

	"sangamtransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoLookupRepo struct {
	DB *mongo.Client
}

func NewMongoLookupRepo(db *mongo.Client) *MongoLookupRepo {
	return &MongoLookupRepo{DB: db}
}

func (r *MongoLookupRepo) coll(name string) *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection(name)
}

func (r *MongoLookupRepo) FindCitiesByName(name string) ([]*models.City, error) {
	ctx := context.Background()
	cur, err := r.coll("cities").Find(ctx, bson.M{"name": containsI(name)})
	if err != nil {
		return nil, err
	}
	var result []*models.City
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoLookupRepo) AllCities() ([]*models.City, error) {
	ctx := context.Background()
	cur, err := r.coll("cities").Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var result []*models.City
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoLookupRepo) AllBranches() ([]*models.Branch, error) {
	ctx := context.Background()
	cur, err := r.coll("branches").Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var result []*models.Branch
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoLookupRepo) GetBranchByID(id int64) (*models.Branch, error) {
	ctx := context.Background()
	var b models.Branch
	err := r.coll("branches").FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoLookupRepo) AllTransports() ([]*models.Transport, error) {
	ctx := context.Background()
	cur, err := r.coll("transports").Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var result []*models.Transport
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoLookupRepo) StaffByRole(role string) ([]*models.Staff, error) {
	ctx := context.Background()
	cur, err := r.coll("staff").Find(ctx, bson.M{"role": role}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var result []*models.Staff
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoLookupRepo) AllTrucks() ([]*models.Truck, error) {
	ctx := context.Background()
	cur, err := r.coll("trucks").Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var result []*models.Truck
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
