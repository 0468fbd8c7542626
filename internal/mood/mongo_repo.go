package mood

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoCollection is the collection name, kept compatible with existing data.
const MongoCollection = "moods"

// MongoRepo stores entries as documents keyed by the "id" field.
type MongoRepo struct {
	Coll *mongo.Collection
}

// NewMongoRepo binds the moods collection and ensures its indexes.
func NewMongoRepo(ctx context.Context, db *mongo.Database) (*MongoRepo, error) {
	coll := db.Collection(MongoCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_moods_date"),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_moods_id"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create mongo indexes: %w", err)
	}
	return &MongoRepo{Coll: coll}, nil
}

var dateDesc = bson.D{{Key: "date", Value: -1}}

func (r *MongoRepo) ExistsForDate(ctx context.Context, date string) (bool, error) {
	n, err := r.Coll.CountDocuments(ctx, bson.M{"date": date}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoRepo) Insert(ctx context.Context, e *Entry) error {
	if _, err := r.Coll.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateDate
		}
		return err
	}
	return nil
}

func (r *MongoRepo) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	if err := r.Coll.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *MongoRepo) Update(ctx context.Context, id string, c Changes) (*Entry, error) {
	set := bson.M{"$set": bson.M{
		"mood_type": c.MoodType,
		"emoji":     c.Emoji,
		"notes":     c.Notes,
		"timestamp": c.Timestamp,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var e Entry
	if err := r.Coll.FindOneAndUpdate(ctx, bson.M{"id": id}, set, opts).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.Coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) List(ctx context.Context) ([]Entry, error) {
	cur, err := r.Coll.Find(ctx, bson.M{}, options.Find().SetSort(dateDesc))
	if err != nil {
		return nil, err
	}
	out := []Entry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) Walk(ctx context.Context, fn func(*Entry) error) error {
	cur, err := r.Coll.Find(ctx, bson.M{}, options.Find().SetSort(dateDesc))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var e Entry
		if err := cur.Decode(&e); err != nil {
			return fmt.Errorf("decode mood entry: %w", err)
		}
		if err := fn(&e); err != nil {
			return err
		}
	}
	return cur.Err()
}

func (r *MongoRepo) Count(ctx context.Context) (int64, error) {
	return r.Coll.CountDocuments(ctx, bson.M{})
}

func (r *MongoRepo) CountByMood(ctx context.Context) ([]MoodCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$mood_type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.Coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []MoodCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.Coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *MongoRepo) Close(ctx context.Context) error {
	return r.Coll.Database().Client().Disconnect(ctx)
}
