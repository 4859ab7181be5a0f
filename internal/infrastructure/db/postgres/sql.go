package postgres

const listActiveTablesSQL = `
SELECT id, area_id, area_name, capacity, min_capacity, shape, accessible, active
FROM tables
WHERE active = TRUE
ORDER BY area_id, id
`

const listActiveTablesByAreaSQL = `
SELECT id, area_id, area_name, capacity, min_capacity, shape, accessible, active
FROM tables
WHERE active = TRUE AND area_id = $1
ORDER BY area_id, id
`

const getTableSQL = `
SELECT id, area_id, area_name, capacity, min_capacity, shape, accessible, active
FROM tables WHERE id = $1
`

const listActiveReservationsSQL = `
SELECT id, table_id, COALESCE(customer_id,''), date, start_min, end_min, party_size, status, created_at
FROM reservations
WHERE date = $1 AND status IN ('pending','confirmed','seated')
`

const lockTableSQL = `
SELECT id FROM tables WHERE id = $1 FOR UPDATE
`

const countOverlappingSQL = `
SELECT COUNT(*)
FROM reservations
WHERE table_id = $1
  AND date = $2
  AND status IN ('pending','confirmed','seated')
  AND start_min < $4 AND $3 < end_min
`

const insertReservationSQL = `
INSERT INTO reservations (id, table_id, customer_id, date, start_min, end_min, party_size, status, created_at)
VALUES ($1,$2,NULLIF($3,''),$4,$5,$6,$7,$8,$9)
`

const releaseReservationSQL = `
UPDATE reservations SET status = $2
WHERE id = $1 AND status IN ('pending','confirmed','seated')
RETURNING id, table_id, COALESCE(customer_id,''), date, start_min, end_min, party_size, status, created_at
`

const listMaintenanceSQL = `
SELECT table_id, date, start_min, end_min, COALESCE(reason,'')
FROM table_maintenance
WHERE date = $1
`

const insertWaitlistSQL = `
INSERT INTO waitlist (
  id, customer_id, date, party_size, preferred_time, area_id,
  status, priority, created_at, expires_at, offered_at, offered_table
) VALUES ($1,$2,$3,$4,NULLIF($5,''),NULLIF($6,''),$7,$8,$9,$10,$11,NULLIF($12,''))
`

const getWaitlistSQL = `
SELECT id, customer_id, date, party_size,
       COALESCE(preferred_time,''), COALESCE(area_id,''),
       status, priority, created_at, expires_at, offered_at, COALESCE(offered_table,'')
FROM waitlist WHERE id = $1
`

const listWaitingSQL = `
SELECT id, customer_id, date, party_size,
       COALESCE(preferred_time,''), COALESCE(area_id,''),
       status, priority, created_at, expires_at, offered_at, COALESCE(offered_table,'')
FROM waitlist
WHERE date = $1 AND status = 'waiting'
`

const updateWaitlistSQL = `
UPDATE waitlist SET
  status=$2, priority=$3, expires_at=$4, offered_at=$5, offered_table=NULLIF($6,'')
WHERE id=$1
`

const expireOverdueSQL = `
UPDATE waitlist SET status = 'expired'
WHERE status = 'waiting' AND expires_at <= $1
`

const getCustomerSQL = `
SELECT id, name, vip, no_show_count
FROM customers WHERE id = $1
`
