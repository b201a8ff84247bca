package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/acme/account-service/internal/core/domain"
)

const paymentsCollection = "payments"

// PaymentRepository is the MongoDB-backed payroll ledger. The unique
// employee+period index enforces the duplicate rule at the storage level.
type PaymentRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{db: db, coll: db.Collection(paymentsCollection)}
}

type mongoPayment struct {
	ID       int64  `bson:"id"`
	Employee string `bson:"employee"`
	Period   string `bson:"period"`
	Salary   int64  `bson:"salary"`
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	id, err := nextSequence(ctx, r.db, "payments")
	if err != nil {
		return err
	}
	doc := mongoPayment{
		ID:       id,
		Employee: domain.NormalizeEmail(payment.Employee),
		Period:   payment.Period,
		Salary:   payment.Salary,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicatePayment
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	payment.ID = id
	return nil
}

func (r *PaymentRepository) FindByEmployeeAndPeriod(ctx context.Context, employee, period string) (*domain.Payment, error) {
	var doc mongoPayment
	err := r.coll.FindOne(ctx, bson.M{
		"employee": domain.NormalizeEmail(employee),
		"period":   period,
	}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &domain.Payment{ID: doc.ID, Employee: doc.Employee, Period: doc.Period, Salary: doc.Salary}, nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"employee": domain.NormalizeEmail(payment.Employee), "period": payment.Period},
		bson.M{"$set": bson.M{"salary": payment.Salary}},
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) ListByEmployee(ctx context.Context, employee string) ([]*domain.Payment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"employee": domain.NormalizeEmail(employee)})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []*domain.Payment
	for cursor.Next(ctx) {
		var doc mongoPayment
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, &domain.Payment{
			ID: doc.ID, Employee: doc.Employee, Period: doc.Period, Salary: doc.Salary,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
