package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/snapgraph/snapgraph/pkg/cache"
	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/errors"
)

// MongoStore keeps documents in one collection, keyed by name. The
// document model's bson tags define the stored shape.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord is the collection schema: metadata beside the body.
type mongoRecord struct {
	Meta `bson:",inline"`
	Doc  document.Document `bson:"doc"`
}

// NewMongoStore connects to uri and uses the given database and
// collection. The connection is verified eagerly.
func NewMongoStore(ctx context.Context, uri, db, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping %s", uri)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(collection),
	}, nil
}

// Put implements Store.
func (s *MongoStore) Put(ctx context.Context, name string, doc *document.Document) (Meta, error) {
	if err := ValidateName(name); err != nil {
		return Meta{}, err
	}
	data, err := document.Marshal(doc)
	if err != nil {
		return Meta{}, err
	}

	rec := mongoRecord{
		Meta: Meta{
			Name:        name,
			Hash:        cache.Hash(data),
			Components:  len(doc.Components),
			Connections: len(doc.Connections),
			UpdatedAt:   time.Now().UTC(),
		},
		Doc: *doc,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, rec, opts); err != nil {
		return Meta{}, errors.Wrap(errors.ErrCodeInternal, err, "store %q", name)
	}
	return rec.Meta, nil
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, name string) (*document.Document, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var rec mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "no document named %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load %q", name)
	}
	return &rec.Doc, nil
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context) ([]Meta, error) {
	opts := options.Find().
		SetProjection(bson.M{"doc": 0}).
		SetSort(bson.M{"_id": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list documents")
	}
	defer cursor.Close(ctx)

	var metas []Meta
	if err := cursor.All(ctx, &metas); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode listing")
	}
	return metas, nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "no document named %q", name)
	}
	return nil
}

// Close implements Store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
