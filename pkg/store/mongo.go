package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/graph"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "pangraph"

const levelsCollection = "levels"

// MongoStore keeps one document per level in the "levels" collection,
// unique on (graph_id, zoom).
type MongoStore struct {
	client *mongo.Client
	levels *mongo.Collection
}

// NewMongoStore connects to uri, verifies the connection and ensures the
// level index exists.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo store needs a uri")
	}
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "mongo uri %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongo")
	}
	s := &MongoStore{client: client, levels: client.Database(database).Collection(levelsCollection)}
	_, err = s.levels.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "graph_id", Value: 1}, {Key: "zoom", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create level index")
	}
	return s, nil
}

func (s *MongoStore) Backend() string { return BackendMongo }

func levelFilter(graphID string, zoom int) bson.D {
	return bson.D{{Key: "graph_id", Value: graphID}, {Key: "zoom", Value: zoom}}
}

func (s *MongoStore) SaveLevel(ctx context.Context, snap *graph.Snapshot) error {
	if err := checkSnapshot(snap); err != nil {
		return err
	}
	_, err := s.levels.ReplaceOne(ctx, levelFilter(snap.GraphID, snap.Zoom), snap, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store zoom %d", snap.Zoom)
	}
	return nil
}

func (s *MongoStore) LoadLevel(ctx context.Context, graphID string, zoom int) (*graph.Snapshot, error) {
	var snap graph.Snapshot
	err := s.levels.FindOne(ctx, levelFilter(graphID, zoom)).Decode(&snap)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(graphID, zoom)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load zoom %d", zoom)
	}
	return &snap, nil
}

func (s *MongoStore) Levels(ctx context.Context, graphID string) ([]*graph.Snapshot, error) {
	cur, err := s.levels.Find(ctx, bson.D{{Key: "graph_id", Value: graphID}},
		options.Find().SetSort(bson.D{{Key: "zoom", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find levels of %s", graphID)
	}
	var out []*graph.Snapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode levels of %s", graphID)
	}
	return out, nil
}

func (s *MongoStore) Graphs(ctx context.Context) ([]string, error) {
	vals, err := s.levels.Distinct(ctx, "graph_id", bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list graphs")
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, fmt.Sprint(v))
	}
	slices.Sort(out)
	return out, nil
}

func (s *MongoStore) DeleteGraph(ctx context.Context, graphID string) error {
	if _, err := s.levels.DeleteMany(ctx, bson.D{{Key: "graph_id", Value: graphID}}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete graph %s", graphID)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
