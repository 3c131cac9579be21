package repository

import (
	"context"
	"regexp"
	"time"

	"sangamtransport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoDatabase = "sangamtransport"

type MongoBiltyRepo struct {
	DB *mongo.Client
}

func NewMongoBiltyRepo(db *mongo.Client) *MongoBiltyRepo {
	return &MongoBiltyRepo{DB: db}
}

func (r *MongoBiltyRepo) regular() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("bilty")
}

func (r *MongoBiltyRepo) station() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("station_bilty_summary")
}

func containsI(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func dateRange(filter bson.M, from, to *time.Time) {
	if from == nil && to == nil {
		return
	}
	rng := bson.M{}
	if from != nil {
		rng["$gte"] = *from
	}
	if to != nil {
		rng["$lte"] = *to
	}
	filter["bilty_date"] = rng
}

func (r *MongoBiltyRepo) SearchRegular(f models.BiltySearchFilters, cityIDs []int64, limit int) ([]*models.Bilty, error) {
	ctx := context.Background()

	filter := bson.M{}
	dateRange(filter, f.DateFrom, f.DateTo)
	if f.GRNo != nil {
		filter["gr_no"] = *f.GRNo
	}
	if f.Consignor != "" {
		filter["consignor"] = containsI(f.Consignor)
	}
	if f.Consignee != "" {
		filter["consignee"] = containsI(f.Consignee)
	}
	if f.PVTMarks != "" {
		filter["pvt_marks"] = containsI(f.PVTMarks)
	}
	if f.EWayBill != "" {
		filter["e_way_bill"] = containsI(f.EWayBill)
	}
	if f.PaymentMode != "" {
		filter["payment_mode"] = f.PaymentMode
	}
	if cityIDs != nil {
		filter["to_city_id"] = bson.M{"$in": cityIDs}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(f.Offset))

	cur, err := r.regular().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var result []*models.Bilty
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoBiltyRepo) SearchStation(f models.BiltySearchFilters, cityCodes []string, stationFallback string, limit int) ([]*models.StationBilty, error) {
	ctx := context.Background()

	filter := bson.M{}
	dateRange(filter, f.DateFrom, f.DateTo)
	if f.GRNo != nil {
		filter["gr_no"] = *f.GRNo
	}
	if f.Consignor != "" {
		filter["consignor_name"] = containsI(f.Consignor)
	}
	if f.Consignee != "" {
		filter["consignee_name"] = containsI(f.Consignee)
	}
	if f.PVTMarks != "" {
		filter["pvt_marks"] = containsI(f.PVTMarks)
	}
	if f.EWayBill != "" {
		filter["e_way_bill"] = containsI(f.EWayBill)
	}
	if f.PaymentMode != "" {
		filter["payment_status"] = f.PaymentMode
	}
	if len(cityCodes) > 0 {
		filter["station"] = bson.M{"$in": cityCodes}
	} else if stationFallback != "" {
		filter["station"] = containsI(stationFallback)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(f.Offset))

	cur, err := r.station().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var result []*models.StationBilty
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoBiltyRepo) GetRegularByIDs(ids []int64) ([]*models.Bilty, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	cur, err := r.regular().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var result []*models.Bilty
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoBiltyRepo) GetStationByIDs(ids []int64) ([]*models.StationBilty, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	cur, err := r.station().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var result []*models.StationBilty
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoBiltyRepo) GetRegularByGRNos(grNos []int64) ([]*models.Bilty, error) {
	if len(grNos) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	cur, err := r.regular().Find(ctx, bson.M{"gr_no": bson.M{"$in": grNos}})
	if err != nil {
		return nil, err
	}
	var result []*models.Bilty
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoBiltyRepo) GetStationByGRNos(grNos []int64) ([]*models.StationBilty, error) {
	if len(grNos) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	cur, err := r.station().Find(ctx, bson.M{"gr_no": bson.M{"$in": grNos}})
	if err != nil {
		return nil, err
	}
	var result []*models.StationBilty
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoBiltyRepo) RegularPendingAtBranch(branchID int64) ([]*models.Bilty, error) {
	ctx := context.Background()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.regular().Find(ctx, bson.M{"branch_id": branchID}, opts)
	if err != nil {
		return nil, err
	}
	var result []*models.Bilty
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoBiltyRepo) StationPendingAtStation(code string) ([]*models.StationBilty, error) {
	ctx := context.Background()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.station().Find(ctx, bson.M{"station": code}, opts)
	if err != nil {
		return nil, err
	}
	var result []*models.StationBilty
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoBiltyRepo) CreateStationBilty(s *models.StationBilty) error {
	ctx := context.Background()
	if s.CreatedAt == nil {
		now := time.Now().UTC()
		s.CreatedAt = &now
	}
	_, err := r.station().InsertOne(ctx, s)
	return err
}

func (r *MongoBiltyRepo) UpdateImageURL(t models.ConsignmentType, id int64, url string) error {
	ctx := context.Background()
	coll := r.regular()
	if t == models.ConsignmentStation {
		coll = r.station()
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"image_url": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
