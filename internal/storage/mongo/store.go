package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

const collectionName = "records"

// Store is a MongoDB-backed record store. Each record is one document in the
// records collection, addressed by (entityType, recordId).
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ storage.IRecordStore = (*Store)(nil)

type recordDoc struct {
	EntityType string    `bson:"entityType"`
	RecordID   string    `bson:"recordId"`
	Value      []byte    `bson:"value"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}, nil
}

func filterFor(entityType, id string) bson.M {
	return bson.M{"entityType": entityType, "recordId": id}
}

func (s *Store) Get(ctx context.Context, entityType, id string) (*storage.Record, error) {
	var doc recordDoc
	err := s.coll.FindOne(ctx, filterFor(entityType, id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &storage.Record{
		EntityType: doc.EntityType,
		ID:         doc.RecordID,
		Value:      doc.Value,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

func (s *Store) Put(ctx context.Context, record *storage.Record) error {
	doc := recordDoc{
		EntityType: record.EntityType,
		RecordID:   record.ID,
		Value:      record.Value,
		UpdatedAt:  time.Now().UTC(),
	}

	_, err := s.coll.UpdateOne(ctx,
		filterFor(record.EntityType, record.ID),
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *Store) Delete(ctx context.Context, entityType, id string) error {
	result, err := s.coll.DeleteOne(ctx, filterFor(entityType, id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, entityType string) ([]*storage.Record, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"entityType": entityType},
		options.Find().SetSort(bson.D{{Key: "recordId", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var docs []recordDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]*storage.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, &storage.Record{
			EntityType: doc.EntityType,
			ID:         doc.RecordID,
			Value:      doc.Value,
			UpdatedAt:  doc.UpdatedAt,
		})
	}
	return records, nil
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}
