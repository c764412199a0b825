package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	storesCollection  = "stores"
	stagingCollection = "stores_staging"
)

// storeDocument embeds the inventory; prices are Decimal128 so cents survive the round trip.
type storeDocument struct {
	ID       int64          `bson:"_id"`
	Name     string         `bson:"name"`
	Location string         `bson:"location"`
	Items    []itemDocument `bson:"items"`
}

type itemDocument struct {
	Name  string               `bson:"name"`
	Price primitive.Decimal128 `bson:"price"`
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(storesCollection)}
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	return createIndexes(ctx, m.collection)
}

func createIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "items.name", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (m *MongoRepository) Stores(ctx context.Context) ([]domain.Store, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []storeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode stores: %w", err)
	}

	stores := make([]domain.Store, 0, len(docs))
	for _, doc := range docs {
		s := domain.Store{ID: doc.ID, Name: doc.Name, Location: doc.Location, Items: make([]domain.Item, 0, len(doc.Items))}
		for _, item := range doc.Items {
			price, err := decimal.NewFromString(item.Price.String())
			if err != nil || price.IsNegative() {
				return nil, fmt.Errorf("%w: store %d item %q has no valid price", ErrInvalidCatalogEntry, doc.ID, item.Name)
			}
			s.Items = append(s.Items, domain.Item{Name: item.Name, Price: price})
		}
		stores = append(stores, s)
	}

	return stores, nil
}

func (m *MongoRepository) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	names := []string{}
	if limit <= 0 {
		return names, nil
	}

	match := bson.M{"items.name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix), Options: "i"}}
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$items.name"}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := m.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate item names: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode item names: %w", err)
	}

	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names, nil
}

// ReplaceCatalog numbers stores 1..n in order, like the SQL sources, and ignores
// any ids the caller set. The new catalog is built in a staging collection and
// swapped in with renameCollection, so readers see either the old or the new
// catalog and a failed write leaves the old one in place.
func (m *MongoRepository) ReplaceCatalog(ctx context.Context, stores []domain.Store) ([]domain.Store, error) {
	if err := validateCatalog(stores); err != nil {
		return nil, err
	}

	saved := cloneStores(stores)
	docs := make([]interface{}, 0, len(saved))
	for i := range saved {
		saved[i].ID = int64(i + 1)
		doc := storeDocument{
			ID:       saved[i].ID,
			Name:     saved[i].Name,
			Location: saved[i].Location,
			Items:    make([]itemDocument, 0, len(saved[i].Items)),
		}
		for _, item := range saved[i].Items {
			price, err := primitive.ParseDecimal128(item.Price.String())
			if err != nil {
				return nil, fmt.Errorf("%w: store %q item %q price %s", ErrInvalidCatalogEntry, saved[i].Name, item.Name, item.Price)
			}
			doc.Items = append(doc.Items, itemDocument{Name: item.Name, Price: price})
		}
		docs = append(docs, doc)
	}

	db := m.collection.Database()
	staging := db.Collection(stagingCollection)
	if err := staging.Drop(ctx); err != nil {
		return nil, fmt.Errorf("failed to drop staging stores: %w", err)
	}
	if err := db.CreateCollection(ctx, stagingCollection); err != nil {
		return nil, fmt.Errorf("failed to create staging stores: %w", err)
	}
	if err := createIndexes(ctx, staging); err != nil {
		return nil, err
	}
	if len(docs) > 0 {
		if _, err := staging.InsertMany(ctx, docs); err != nil {
			return nil, fmt.Errorf("failed to insert stores: %w", err)
		}
	}

	rename := bson.D{
		{Key: "renameCollection", Value: db.Name() + "." + stagingCollection},
		{Key: "to", Value: db.Name() + "." + storesCollection},
		{Key: "dropTarget", Value: true},
	}
	if err := db.Client().Database("admin").RunCommand(ctx, rename).Err(); err != nil {
		return nil, fmt.Errorf("failed to swap in new catalog: %w", err)
	}

	return saved, nil
}

func (m *MongoRepository) Close() error {
	return m.collection.Database().Client().Disconnect(context.Background())
}
