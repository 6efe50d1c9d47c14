package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/observability"
	"github.com/reelkit/reelkit/pkg/spec"
)

// MongoStore persists compositions in a MongoDB collection, for server
// deployments where multiple instances share state.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoComposition is the document shape. IDs are stored as strings so
// they stay readable in queries and shell sessions.
type mongoComposition struct {
	ID        string     `bson:"_id"`
	Name      string     `bson:"name"`
	Spec      *spec.Spec `bson:"spec"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and uses the given database's
// "compositions" collection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("compositions"),
	}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Get retrieves a composition by ID.
func (s *MongoStore) Get(ctx context.Context, id uuid.UUID) (*Composition, error) {
	var doc mongoComposition
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		observability.Store().OnStoreGet("mongo", id.String(), false)
		return nil, errors.New(errors.ErrCodeCompositionNotFound, "no composition with id %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "find composition %s", id)
	}

	observability.Store().OnStoreGet("mongo", id.String(), true)
	return docToComposition(&doc)
}

// List returns all stored compositions, newest first.
func (s *MongoStore) List(ctx context.Context) ([]*Composition, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list compositions")
	}
	defer cur.Close(ctx)

	var out []*Composition
	for cur.Next(ctx) {
		var doc mongoComposition
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode composition")
		}
		c, err := docToComposition(&doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "iterate compositions")
	}
	return out, nil
}

// Put inserts or replaces a composition.
func (s *MongoStore) Put(ctx context.Context, c *Composition) error {
	c.UpdatedAt = time.Now().UTC()
	doc := mongoComposition{
		ID:        c.ID.String(),
		Name:      c.Name,
		Spec:      c.Spec,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "store composition %s", c.ID)
	}

	size := 0
	if c.Spec != nil {
		size = c.Spec.ClipCount()
	}
	observability.Store().OnStorePut("mongo", doc.ID, size)
	return nil
}

// Delete removes a composition.
func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete composition %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeCompositionNotFound, "no composition with id %s", id)
	}

	observability.Store().OnStoreDelete("mongo", id.String())
	return nil
}

func docToComposition(doc *mongoComposition) (*Composition, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "composition has malformed id %q", doc.ID)
	}
	return &Composition{
		ID:        id,
		Name:      doc.Name,
		Spec:      doc.Spec,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

var _ Store = (*MongoStore)(nil)
