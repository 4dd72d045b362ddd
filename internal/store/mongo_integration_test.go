//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/donaldgifford/server-price-alerts/internal/store"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

const mongoTestDB = "spa_test"

func setupMongo(t *testing.T) *store.MongoStore {
	t.Helper()
	s, _ := setupMongoURI(t)
	return s
}

func setupMongoURI(t *testing.T) (*store.MongoStore, string) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForLog("Waiting for connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	s, err := store.NewMongoStore(ctx, uri, mongoTestDB)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})

	require.NoError(t, s.Migrate(ctx))

	return s, uri
}

func TestMongoStore_Ping(t *testing.T) {
	s := setupMongo(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestMongoStore_ServiceAlertLifecycle(t *testing.T) {
	s := setupMongo(t)
	ctx := context.Background()

	_, err := s.GetServiceAlert(ctx, 999)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.UpsertServiceAlert(ctx, domain.NewServiceAlert(42, 50, "111")))

	got, err := s.GetServiceAlert(ctx, 42)
	require.NoError(t, err)
	require.Len(t, got.Tiers, 1)
	assert.Equal(t, 50, got.Tiers[0].Price)
	assert.Equal(t, []domain.UserID{"111"}, got.Tiers[0].Subscribers)

	got.Tiers[0].Armed = true
	require.NoError(t, s.UpsertServiceAlert(ctx, got))

	again, err := s.GetServiceAlert(ctx, 42)
	require.NoError(t, err)
	assert.True(t, again.Tiers[0].Armed)

	bad := &domain.ServiceAlert{ServiceID: 43, Tiers: []domain.AlertTier{{Price: 10}}}
	require.ErrorIs(t, s.UpsertServiceAlert(ctx, bad), store.ErrInvalidRecord)

	require.NoError(t, s.DeleteServiceAlert(ctx, 42))
	_, err = s.GetServiceAlert(ctx, 42)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, s.DeleteServiceAlert(ctx, 42))
}

func TestMongoStore_ListAndSubscriptions(t *testing.T) {
	s := setupMongo(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertServiceAlert(ctx, &domain.ServiceAlert{
		ServiceID: 5,
		Tiers: []domain.AlertTier{
			{Price: 40, Subscribers: []domain.UserID{"100", "200"}},
			{Price: 60, Subscribers: []domain.UserID{"200"}},
		},
	}))
	require.NoError(t, s.UpsertServiceAlert(ctx, domain.NewServiceAlert(3, 90, "100")))

	alerts, err := s.ListServiceAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, 3, alerts[0].ServiceID)
	assert.Equal(t, 5, alerts[1].ServiceID)

	subs, err := s.ListUserSubscriptions(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, []domain.UserSubscription{
		{ServiceID: 3, Prices: []int{90}},
		{ServiceID: 5, Prices: []int{40}},
	}, subs)

	subs, err = s.ListUserSubscriptions(ctx, "300")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestMongoStore_ReadsBotDocuments(t *testing.T) {
	s, uri := setupMongoURI(t)
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	_, err = client.Database(mongoTestDB).Collection("service_alerts").InsertOne(ctx, bson.M{
		"service_id": int32(42),
		"alerts": bson.A{
			bson.M{"price": int32(50), "send": false, "user_subscribed": bson.A{int64(175928847299117063)}},
			bson.M{"price": int32(40), "send": true, "user_subscribed": bson.A{int64(175928847299117063), int64(200)}},
		},
		"__v": int32(1),
	})
	require.NoError(t, err)

	got, err := s.GetServiceAlert(ctx, 42)
	require.NoError(t, err)
	require.Len(t, got.Tiers, 2)
	assert.Equal(t, []domain.UserID{"175928847299117063"}, got.Tiers[0].Subscribers)
	assert.True(t, got.Tiers[1].Armed)

	alerts, err := s.ListServiceAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 42, alerts[0].ServiceID)

	subs, err := s.ListUserSubscriptions(ctx, "175928847299117063")
	require.NoError(t, err)
	assert.Equal(t, []domain.UserSubscription{{ServiceID: 42, Prices: []int{50, 40}}}, subs)

	// A rewrite keeps the integer layout so the bot can still read it.
	require.NoError(t, s.UpsertServiceAlert(ctx, got))
	var doc struct {
		Alerts []struct {
			Subscribers []any `bson:"user_subscribed"`
		} `bson:"alerts"`
	}
	require.NoError(t, client.Database(mongoTestDB).Collection("service_alerts").
		FindOne(ctx, bson.M{"service_id": 42}).Decode(&doc))
	require.Len(t, doc.Alerts, 2)
	assert.Equal(t, []any{int64(175928847299117063)}, doc.Alerts[0].Subscribers)
}

func TestMongoStore_ListSubscriptionsMatchesStringIDs(t *testing.T) {
	s, uri := setupMongoURI(t)
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	_, err = client.Database(mongoTestDB).Collection("service_alerts").InsertOne(ctx, bson.M{
		"service_id": int32(7),
		"alerts":     bson.A{bson.M{"price": int32(30), "send": false, "user_subscribed": bson.A{"300"}}},
	})
	require.NoError(t, err)

	subs, err := s.ListUserSubscriptions(ctx, "300")
	require.NoError(t, err)
	assert.Equal(t, []domain.UserSubscription{{ServiceID: 7, Prices: []int{30}}}, subs)
}
