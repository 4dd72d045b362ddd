package store

// SQL query constants organized by entity.
// PostgresStore methods reference these constants.

// Service alert queries.
const (
	queryGetServiceAlert = `
		SELECT service_id, alerts, updated_at
		FROM service_alerts
		WHERE service_id = $1`

	queryUpsertServiceAlert = `
		INSERT INTO service_alerts (service_id, alerts, created_at, updated_at)
		VALUES (@service_id, @alerts, now(), now())
		ON CONFLICT (service_id) DO UPDATE SET
			alerts = EXCLUDED.alerts,
			updated_at = now()
		RETURNING updated_at`

	queryDeleteServiceAlert = `
		DELETE FROM service_alerts
		WHERE service_id = $1`

	queryListServiceAlerts = `
		SELECT service_id, alerts, updated_at
		FROM service_alerts
		ORDER BY service_id`

	// The containment filter narrows rows via the GIN index; tier-level
	// filtering happens in Go.
	queryListServiceAlertsForUser = `
		SELECT service_id, alerts, updated_at
		FROM service_alerts
		WHERE alerts @> jsonb_build_array(
			jsonb_build_object('subscribers', jsonb_build_array($1::text))
		)
		ORDER BY service_id`
)
