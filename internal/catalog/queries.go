package catalog

// SQL against the scraper-owned catalog tables.
const (
	queryListServices = `
		SELECT
			services.id,
			services.region,
			cpus.cpu_name,
			cpus.cpu_vendor,
			rams.ram_total_size_gb,
			rams.ram_type,
			rams.ram_amount,
			rams.ram_size_mb,
			rams.is_ecc,
			COALESCE(
				JSON_AGG(DISTINCT jsonb_build_object(
					'id', disks.id,
					'capacity_gb', disks.capacity_gb,
					'type', disks.type,
					'quantity', disks.quantity
				)) FILTER (WHERE disks.id IS NOT NULL),
				'[]'
			) AS disks,
			gpu.name AS gpu_name
		FROM services
		JOIN cpus ON services.cpu_id = cpus.id
		JOIN rams ON services.ram_id = rams.id
		LEFT JOIN diskgroup_disks dgd ON services.disk_group_id = dgd.disk_group_id
		LEFT JOIN disks ON dgd.disk_id = disks.id
		LEFT JOIN gpu ON services.gpu_id = gpu.id
		GROUP BY
			services.id,
			cpus.cpu_name, cpus.cpu_vendor,
			rams.ram_total_size_gb, rams.ram_type, rams.ram_amount, rams.ram_size_mb, rams.is_ecc,
			gpu.name
		ORDER BY services.id`

	// Newest timestamp wins; ties at the same timestamp take the lowest price.
	queryLatestPrices = `
		SELECT DISTINCT ON (service_id) service_id, price::text
		FROM distinctservicesprices
		WHERE service_id = ANY($1) AND price IS NOT NULL
		ORDER BY service_id, timestamp DESC, price ASC`

	queryPriceHistory = `
		SELECT timestamp, price::text, hetzner_id
		FROM distinctservicesprices
		WHERE service_id = $1 AND price IS NOT NULL
		ORDER BY timestamp DESC, price ASC`
)
