package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

const serviceAlertsCollection = "service_alerts"

// MongoStore implements Store with one MongoDB document per service. This is
// the storage layout used by existing bot deployments, so their data can be
// served without conversion.
type MongoStore struct {
	client *mongo.Client
	alerts *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		alerts: client.Database(database).Collection(serviceAlertsCollection),
	}, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Migrate ensures the unique service_id index exists.
func (s *MongoStore) Migrate(ctx context.Context) error {
	_, err := s.alerts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "service_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "alerts.user_subscribed", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("creating service alert indexes: %w", err)
	}
	return nil
}

// GetServiceAlert loads the document for a service or returns ErrNotFound.
func (s *MongoStore) GetServiceAlert(ctx context.Context, serviceID int) (*domain.ServiceAlert, error) {
	var a domain.ServiceAlert
	err := s.alerts.FindOne(ctx, bson.M{"service_id": serviceID}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting service alert %d: %w", serviceID, err)
	}
	return &a, nil
}

// UpsertServiceAlert replaces the document for the service, creating it if needed.
func (s *MongoStore) UpsertServiceAlert(ctx context.Context, a *domain.ServiceAlert) error {
	if err := validateRecord(a); err != nil {
		return err
	}

	a.UpdatedAt = time.Now().UTC()
	_, err := s.alerts.ReplaceOne(ctx,
		bson.M{"service_id": a.ServiceID},
		a,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upserting service alert %d: %w", a.ServiceID, err)
	}
	return nil
}

// DeleteServiceAlert removes the document for a service.
func (s *MongoStore) DeleteServiceAlert(ctx context.Context, serviceID int) error {
	if _, err := s.alerts.DeleteOne(ctx, bson.M{"service_id": serviceID}); err != nil {
		return fmt.Errorf("deleting service alert %d: %w", serviceID, err)
	}
	return nil
}

// ListServiceAlerts returns all documents ordered by service id.
func (s *MongoStore) ListServiceAlerts(ctx context.Context) ([]domain.ServiceAlert, error) {
	return s.find(ctx, bson.M{})
}

// ListUserSubscriptions returns the services and prices the user is subscribed to.
func (s *MongoStore) ListUserSubscriptions(
	ctx context.Context,
	userID domain.UserID,
) ([]domain.UserSubscription, error) {
	// Subscribers are stored as integers; older writes may hold strings.
	filter := bson.M{"alerts.user_subscribed": bson.M{"$in": bson.A{userID, string(userID)}}}
	alerts, err := s.find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return subscriptionsFrom(alerts, userID), nil
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]domain.ServiceAlert, error) {
	cur, err := s.alerts.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "service_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("querying service alerts: %w", err)
	}

	var alerts []domain.ServiceAlert
	if err := cur.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("decoding service alerts: %w", err)
	}
	return alerts, nil
}
