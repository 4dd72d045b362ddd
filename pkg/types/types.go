// Package domain defines the core business types for server-price-alerts.
package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// UserID identifies a notification recipient. It is the decimal form of a
// chat platform snowflake.
type UserID string

// ParseUserID validates s as a numeric user identifier and returns its
// canonical form (no sign, no leading zeros).
func ParseUserID(s string) (UserID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("user id %q is not numeric", s)
	}
	if id.Int64() <= 0 {
		return "", fmt.Errorf("user id %q must be positive", s)
	}
	return UserID(id.String()), nil
}

// MarshalBSONValue stores the id as a 64-bit integer, the layout existing
// bot deployments use for subscriber lists.
func (u UserID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	n, err := strconv.ParseInt(string(u), 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("user id %q is not numeric", string(u))
	}
	return bson.MarshalValue(n)
}

// UnmarshalBSONValue accepts integer ids as well as ids stored as strings.
func (u *UserID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int64:
		*u = UserID(strconv.FormatInt(raw.Int64(), 10))
	case bsontype.Int32:
		*u = UserID(strconv.FormatInt(int64(raw.Int32()), 10))
	case bsontype.String:
		id, err := ParseUserID(raw.StringValue())
		if err != nil {
			return err
		}
		*u = id
	default:
		return fmt.Errorf("cannot decode user id from bson %s", t)
	}
	return nil
}

// Structural errors returned by ServiceAlert.Validate.
var (
	ErrDuplicateTierPrice = errors.New("duplicate tier price")
	ErrEmptyTier          = errors.New("tier has no subscribers")
	ErrEmptyServiceAlert  = errors.New("service alert has no tiers")
)

// AlertTier is a price threshold within a ServiceAlert. The tier fires when the
// observed price is at or below Price. Armed latches once a notification has
// been sent for the current below-threshold episode.
type AlertTier struct {
	Price       int      `json:"price"       bson:"price"`
	Armed       bool     `json:"armed"       bson:"send"`
	Subscribers []UserID `json:"subscribers" bson:"user_subscribed"`
}

// HasSubscriber reports whether u is subscribed to the tier.
func (t *AlertTier) HasSubscriber(u UserID) bool {
	return slices.Contains(t.Subscribers, u)
}

// AddSubscriber adds u to the tier. It returns false if u was already present.
func (t *AlertTier) AddSubscriber(u UserID) bool {
	if t.HasSubscriber(u) {
		return false
	}
	t.Subscribers = append(t.Subscribers, u)
	return true
}

// RemoveSubscriber removes u from the tier. It returns false if u was not present.
func (t *AlertTier) RemoveSubscriber(u UserID) bool {
	i := slices.Index(t.Subscribers, u)
	if i < 0 {
		return false
	}
	t.Subscribers = slices.Delete(t.Subscribers, i, i+1)
	return true
}

// ShouldFire reports whether observed crosses the tier threshold while the
// tier is unarmed. The threshold is inclusive.
func (t *AlertTier) ShouldFire(observed decimal.Decimal) bool {
	return !t.Armed && observed.LessThanOrEqual(decimal.NewFromInt(int64(t.Price)))
}

// ShouldRearm reports whether observed has recovered above the threshold of
// an armed tier.
func (t *AlertTier) ShouldRearm(observed decimal.Decimal) bool {
	return t.Armed && observed.GreaterThan(decimal.NewFromInt(int64(t.Price)))
}

// ServiceAlert holds every alert tier registered for one catalog service.
type ServiceAlert struct {
	ServiceID int         `json:"service_id"          bson:"service_id"`
	Tiers     []AlertTier `json:"alerts"              bson:"alerts"`
	UpdatedAt time.Time   `json:"updated_at,omitzero" bson:"updated_at"`
}

// NewServiceAlert returns a record with a single unarmed tier for u at price.
func NewServiceAlert(serviceID, price int, u UserID) *ServiceAlert {
	return &ServiceAlert{
		ServiceID: serviceID,
		Tiers: []AlertTier{
			{Price: price, Subscribers: []UserID{u}},
		},
	}
}

// Tier returns the tier at price, or nil if none exists.
func (a *ServiceAlert) Tier(price int) *AlertTier {
	for i := range a.Tiers {
		if a.Tiers[i].Price == price {
			return &a.Tiers[i]
		}
	}
	return nil
}

// RemoveTier drops the tier at price. It returns false if no tier matched.
func (a *ServiceAlert) RemoveTier(price int) bool {
	i := slices.IndexFunc(a.Tiers, func(t AlertTier) bool { return t.Price == price })
	if i < 0 {
		return false
	}
	a.Tiers = slices.Delete(a.Tiers, i, i+1)
	return true
}

// PricesFor returns the tier prices u is subscribed to, in tier order.
func (a *ServiceAlert) PricesFor(u UserID) []int {
	var prices []int
	for i := range a.Tiers {
		if a.Tiers[i].HasSubscriber(u) {
			prices = append(prices, a.Tiers[i].Price)
		}
	}
	return prices
}

// Validate checks the structural invariants a record must hold before it is
// persisted.
func (a *ServiceAlert) Validate() error {
	if a.ServiceID < 0 {
		return fmt.Errorf("service id %d must not be negative", a.ServiceID)
	}
	if len(a.Tiers) == 0 {
		return ErrEmptyServiceAlert
	}
	seen := make(map[int]struct{}, len(a.Tiers))
	for i := range a.Tiers {
		t := &a.Tiers[i]
		if _, ok := seen[t.Price]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateTierPrice, t.Price)
		}
		seen[t.Price] = struct{}{}
		if len(t.Subscribers) == 0 {
			return fmt.Errorf("%w: price %d", ErrEmptyTier, t.Price)
		}
	}
	return nil
}

// Clone returns a deep copy of the record.
func (a *ServiceAlert) Clone() *ServiceAlert {
	c := &ServiceAlert{
		ServiceID: a.ServiceID,
		UpdatedAt: a.UpdatedAt,
		Tiers:     make([]AlertTier, len(a.Tiers)),
	}
	for i, t := range a.Tiers {
		c.Tiers[i] = AlertTier{
			Price:       t.Price,
			Armed:       t.Armed,
			Subscribers: slices.Clone(t.Subscribers),
		}
	}
	return c
}

// UserSubscription lists the prices a user is subscribed to for one service.
type UserSubscription struct {
	ServiceID int   `json:"service_id"`
	Prices    []int `json:"prices"`
}

// Disk is one disk group entry of a catalog service.
type Disk struct {
	Type       string `json:"type"`
	CapacityGB int    `json:"capacity_gb"`
	Quantity   int    `json:"quantity"`
}

// Spec returns the disk in "<qty>x-<cap>GB-<type>" form.
func (d Disk) Spec() string {
	return fmt.Sprintf("%dx-%dGB-%s", d.Quantity, d.CapacityGB, strings.ToLower(d.Type))
}

// Label returns a human readable disk description.
func (d Disk) Label() string {
	return fmt.Sprintf("%dx %dGB %s", d.Quantity, d.CapacityGB, strings.ToUpper(d.Type))
}

// Service is one dedicated-server offer in the catalog.
type Service struct {
	ServiceID      int    `json:"service_id"`
	CPUConstructor string `json:"cpu_constructor"`
	CPU            string `json:"cpu"`
	Region         string `json:"region"`
	RAM            string `json:"ram"`
	RAMCount       string `json:"ram_count"`
	RAMECC         bool   `json:"ram_ecc"`
	Disks          []Disk `json:"disks"`
	GPU            string `json:"gpu,omitempty"`
}

// PricePoint is the latest known price of a service.
type PricePoint struct {
	ID          int             `json:"id"`
	LatestPrice decimal.Decimal `json:"latestPrice"`
}

// PriceSample is one entry of a service's price history.
type PriceSample struct {
	Timestamp time.Time       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
	HetznerID int             `json:"hetzner_id"`
}

// PriceHistory is the deduplicated price history of one service.
type PriceHistory struct {
	ID      int           `json:"id"`
	History []PriceSample `json:"history"`
}

// CycleReport summarizes one price check cycle.
type CycleReport struct {
	ServicesMonitored   int `json:"services_monitored"`
	PricesReceived      int `json:"prices_received"`
	TiersFired          int `json:"tiers_fired"`
	TiersRearmed        int `json:"tiers_rearmed"`
	DeliveriesAttempted int `json:"deliveries_attempted"`
	DeliveriesFailed    int `json:"deliveries_failed"`
	PersistFailures     int `json:"persist_failures"`
	RecordsSkipped      int `json:"records_skipped"`
}
