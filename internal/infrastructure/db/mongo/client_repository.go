package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cropbank/banking-system/internal/core/domain"
)

const clientsCollection = "clients"

type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(clientsCollection)}
}

type mongoClient struct {
	ID                 primitive.ObjectID    `bson:"_id,omitempty"`
	CompanyName        string                `bson:"company_name"`
	Industry           string                `bson:"industry"`
	Address            string                `bson:"address"`
	PrimaryContact     domain.PrimaryContact `bson:"primary_contact"`
	AnnualTurnover     float64               `bson:"annual_turnover"`
	DocumentsSubmitted bool                  `bson:"documents_submitted"`
	OwnerID            string                `bson:"owner_id"`
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoClient(client)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}

	created := *client
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ClientRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
}

func (r *ClientRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Client, error) {
	return r.findMany(ctx, bson.M{"owner_id": ownerID})
}

func (r *ClientRepository) SearchByCompanyName(ctx context.Context, ownerID, companyName string) ([]*domain.Client, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(companyName), Options: "i"}
	return r.findMany(ctx, bson.M{"owner_id": ownerID, "company_name": pattern})
}

func (r *ClientRepository) SearchByIndustry(ctx context.Context, ownerID, industry string) ([]*domain.Client, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(industry) + "$", Options: "i"}
	return r.findMany(ctx, bson.M{"owner_id": ownerID, "industry": pattern})
}

func (r *ClientRepository) DistinctIndustries(ctx context.Context, ownerID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "industry", bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("distinct industries: %w", err)
	}

	industries := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			industries = append(industries, s)
		}
	}
	return industries, nil
}

// Update replaces the mutable fields of an existing client. owner_id is
// deliberately excluded from the update document.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	oid, err := primitive.ObjectIDFromHex(client.ID)
	if err != nil {
		return domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"company_name":        client.CompanyName,
			"industry":            client.Industry,
			"address":             client.Address,
			"primary_contact":     client.PrimaryContact,
			"annual_turnover":     client.AnnualTurnover,
			"documents_submitted": client.DocumentsSubmitted,
		}},
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index backing ownership-scoped queries.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "industry", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClient
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return toDomainClient(&mc), nil
}

func (r *ClientRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	defer cur.Close(ctx)

	var clients []*domain.Client
	for cur.Next(ctx) {
		var mc mongoClient
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		clients = append(clients, toDomainClient(&mc))
	}
	return clients, cur.Err()
}

func toMongoClient(c *domain.Client) mongoClient {
	return mongoClient{
		CompanyName:        c.CompanyName,
		Industry:           c.Industry,
		Address:            c.Address,
		PrimaryContact:     c.PrimaryContact,
		AnnualTurnover:     c.AnnualTurnover,
		DocumentsSubmitted: c.DocumentsSubmitted,
		OwnerID:            c.OwnerID,
	}
}

func toDomainClient(mc *mongoClient) *domain.Client {
	return &domain.Client{
		ID:                 mc.ID.Hex(),
		CompanyName:        mc.CompanyName,
		Industry:           mc.Industry,
		Address:            mc.Address,
		PrimaryContact:     mc.PrimaryContact,
		AnnualTurnover:     mc.AnnualTurnover,
		DocumentsSubmitted: mc.DocumentsSubmitted,
		OwnerID:            mc.OwnerID,
	}
}
