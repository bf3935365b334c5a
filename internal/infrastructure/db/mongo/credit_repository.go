package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cropbank/banking-system/internal/core/domain"
)

const creditsCollection = "credits"

type CreditRepository struct {
	coll *mongo.Collection
}

func NewCreditRepository(db *mongo.Database) *CreditRepository {
	return &CreditRepository{coll: db.Collection(creditsCollection)}
}

type mongoCredit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ClientID      string             `bson:"client_id"`
	SubmittedBy   string             `bson:"submitted_by"`
	RequestAmount float64            `bson:"request_amount"`
	TenureMonths  int                `bson:"tenure_months"`
	Purpose       string             `bson:"purpose"`
	Status        string             `bson:"status"`
	Remarks       string             `bson:"remarks"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (r *CreditRepository) Create(ctx context.Context, credit *domain.Credit) (*domain.Credit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCredit{
		ClientID:      credit.ClientID,
		SubmittedBy:   credit.SubmittedBy,
		RequestAmount: credit.RequestAmount,
		TenureMonths:  credit.TenureMonths,
		Purpose:       credit.Purpose,
		Status:        string(credit.Status),
		Remarks:       credit.Remarks,
		CreatedAt:     credit.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert credit: %w", err)
	}

	created := *credit
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CreditRepository) FindByID(ctx context.Context, id string) (*domain.Credit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCreditNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCredit
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCreditNotFound
		}
		return nil, fmt.Errorf("find credit: %w", err)
	}
	return toDomainCredit(&mc), nil
}

func (r *CreditRepository) FindAll(ctx context.Context) ([]*domain.Credit, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *CreditRepository) FindBySubmitter(ctx context.Context, userID string) ([]*domain.Credit, error) {
	return r.findMany(ctx, bson.M{"submitted_by": userID})
}

// Decide applies the PENDING -> terminal transition as a single
// compare-and-swap: the filter requires the current status to still be
// PENDING, so concurrent decisions on the same id serialize to one winner.
// The follow-up read distinguishes "unknown id" from "already decided".
func (r *CreditRepository) Decide(ctx context.Context, id string, status domain.CreditStatus, remarks string) (*domain.Credit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCreditNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCredit
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": string(domain.CreditPending)},
		bson.M{"$set": bson.M{"status": string(status), "remarks": remarks}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mc)
	if err == nil {
		return toDomainCredit(&mc), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("decide credit: %w", err)
	}

	// No pending document matched: either the id is unknown or the request
	// was already decided.
	if cerr := r.coll.FindOne(ctx, bson.M{"_id": oid}).Err(); cerr != nil {
		if errors.Is(cerr, mongo.ErrNoDocuments) {
			return nil, domain.ErrCreditNotFound
		}
		return nil, fmt.Errorf("decide credit: %w", cerr)
	}
	return nil, domain.ErrCreditAlreadyDecided
}

// EnsureIndexes creates the submitter index backing RM-scoped listings.
func (r *CreditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "submitted_by", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *CreditRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Credit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find credits: %w", err)
	}
	defer cur.Close(ctx)

	var credits []*domain.Credit
	for cur.Next(ctx) {
		var mc mongoCredit
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode credit: %w", err)
		}
		credits = append(credits, toDomainCredit(&mc))
	}
	return credits, cur.Err()
}

func toDomainCredit(mc *mongoCredit) *domain.Credit {
	return &domain.Credit{
		ID:            mc.ID.Hex(),
		ClientID:      mc.ClientID,
		SubmittedBy:   mc.SubmittedBy,
		RequestAmount: mc.RequestAmount,
		TenureMonths:  mc.TenureMonths,
		Purpose:       mc.Purpose,
		Status:        domain.CreditStatus(mc.Status),
		Remarks:       mc.Remarks,
		CreatedAt:     mc.CreatedAt,
	}
}
