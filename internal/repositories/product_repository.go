package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/voltkart/storefront/internal/models"
	"github.com/voltkart/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCollection = "products"

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListProducts(ctx context.Context, query *models.ProductQuery) ([]*models.Product, error)
}

type productRepository struct {
	store *Store
}

func NewProductRepo(store *Store) ProductRepository {
	return &productRepository{store: store}
}

func (r *productRepository) collection(ctx context.Context) (*mongo.Collection, error) {

	db, err := r.store.Database(ctx)
	if err != nil {
		return nil, err
	}

	return db.Collection(productCollection), nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	coll, err := r.collection(dbCtx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := coll.InsertOne(dbCtx, product)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	product.ID = oid

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	coll, err := r.collection(dbCtx)
	if err != nil {
		return nil, err
	}

	product := &models.Product{}

	err = coll.FindOne(dbCtx, bson.M{"_id": id}).Decode(product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("querying document store: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context, query *models.ProductQuery) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	coll, err := r.collection(dbCtx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if query.Category != "" {
		filter["category"] = query.Category
	}

	opts := options.Find().
		SetSort(bson.D{{Key: query.SortBy, Value: query.SortDirection()}}).
		SetSkip(query.Offset()).
		SetLimit(int64(query.Limit))

	cursor, err := coll.Find(dbCtx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying document store: %w", err)
	}

	defer cursor.Close(dbCtx)

	var products []*models.Product

	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	return products, nil
}
