package repository

import (
	"context"
	"time"

	"sangamtransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The Mongo variant skips the relational joins of the Postgres repo; nested
// truck/staff/branch objects stay nil and the caller resolves them from the
// lookup maps it already holds.
type MongoChallanRepo struct {
	DB *mongo.Client
}

func NewMongoChallanRepo(db *mongo.Client) *MongoChallanRepo {
	return &MongoChallanRepo{DB: db}
}

func (r *MongoChallanRepo) challans() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("challan_details")
}

func (r *MongoChallanRepo) transits() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("transit_details")
}

func (r *MongoChallanRepo) CreateChallan(c *models.Challan) error {
	ctx := context.Background()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.challans().InsertOne(ctx, c)
	return err
}

func (r *MongoChallanRepo) ListChallans(limit, offset int) ([]*models.Challan, error) {
	ctx := context.Background()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := r.challans().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var result []*models.Challan
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoChallanRepo) GetChallanByID(id int64) (*models.Challan, error) {
	ctx := context.Background()
	var c models.Challan
	err := r.challans().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	details, err := r.TransitByChallan(c.ID)
	if err != nil {
		return nil, err
	}
	c.TransitDetails = details
	return &c, nil
}

func (r *MongoChallanRepo) MarkDispatched(id int64, date time.Time) error {
	ctx := context.Background()
	res, err := r.challans().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_dispatched": true, "dispatch_date": date},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoChallanRepo) AddTransitDetail(d *models.TransitDetail) error {
	ctx := context.Background()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err := r.transits().InsertOne(ctx, d)
	return err
}

func (r *MongoChallanRepo) TransitByChallan(challanID int64) ([]models.TransitDetail, error) {
	ctx := context.Background()
	cur, err := r.transits().Find(ctx, bson.M{"challan_id": challanID})
	if err != nil {
		return nil, err
	}
	var result []models.TransitDetail
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoChallanRepo) UpdateTransitFlags(id int64, outForDelivery, deliveredAtBranch, deliveredAtDestination *bool) error {
	ctx := context.Background()
	set := bson.M{"updated_at": time.Now().UTC()}
	if outForDelivery != nil {
		set["out_for_delivery"] = *outForDelivery
	}
	if deliveredAtBranch != nil {
		set["delivered_at_branch"] = *deliveredAtBranch
	}
	if deliveredAtDestination != nil {
		set["delivered_at_destination"] = *deliveredAtDestination
	}
	res, err := r.transits().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoChallanRepo) DispatchInfoByGR(grNos []int64) (map[int64]models.DispatchInfo, error) {
	result := make(map[int64]models.DispatchInfo)
	if len(grNos) == 0 {
		return result, nil
	}
	ctx := context.Background()

	cur, err := r.transits().Find(ctx, bson.M{"gr_no": bson.M{"$in": grNos}})
	if err != nil {
		return nil, err
	}
	var details []models.TransitDetail
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return result, nil
	}

	challanIDs := make([]int64, 0, len(details))
	for _, d := range details {
		challanIDs = append(challanIDs, d.ChallanID)
	}
	cur, err = r.challans().Find(ctx, bson.M{"_id": bson.M{"$in": challanIDs}})
	if err != nil {
		return nil, err
	}
	var challans []*models.Challan
	if err := cur.All(ctx, &challans); err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Challan, len(challans))
	for _, c := range challans {
		byID[c.ID] = c
	}
	for _, d := range details {
		if c, ok := byID[d.ChallanID]; ok {
			result[d.GRNo] = models.DispatchInfo{ChallanNo: c.ChallanNo, DispatchDate: c.DispatchDate}
		}
	}
	return result, nil
}
