package mysql

const upsertPropertySQL = `
INSERT INTO properties
  (external_id, title, neighborhood, price, currency, rooms, sqm, description,
   operation, type, address, age, ` + "`condition`" + `, orientation,
   expenses, expenses_currency, garage, balcony, pool, pets_allowed, air_conditioning,
   photos, videos, documents, processed_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title             = VALUES(title),
  neighborhood      = VALUES(neighborhood),
  price             = VALUES(price),
  currency          = VALUES(currency),
  rooms             = VALUES(rooms),
  sqm               = VALUES(sqm),
  description       = VALUES(description),
  operation         = VALUES(operation),
  type              = VALUES(type),
  address           = VALUES(address),
  age               = VALUES(age),
  ` + "`condition`" + `       = VALUES(` + "`condition`" + `),
  orientation       = VALUES(orientation),
  expenses          = VALUES(expenses),
  expenses_currency = VALUES(expenses_currency),
  garage            = VALUES(garage),
  balcony           = VALUES(balcony),
  pool              = VALUES(pool),
  pets_allowed      = VALUES(pets_allowed),
  air_conditioning  = VALUES(air_conditioning),
  photos            = VALUES(photos),
  videos            = VALUES(videos),
  documents         = VALUES(documents),
  processed_at      = VALUES(processed_at),
  updated_at        = CURRENT_TIMESTAMP
`

const upsertContactSQL = `
INSERT INTO contacts
  (correlation_id, name, email, phone, notes, status, remote_ip, user_agent)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  email      = VALUES(email),
  phone      = VALUES(phone),
  notes      = VALUES(notes),
  status     = VALUES(status),
  updated_at = CURRENT_TIMESTAMP
`

const insertConversationSQL = `
INSERT INTO conversations
  (channel, user_message, bot_response, response_seconds, search_performed, result_count)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const insertMissSQL = `
INSERT INTO load_misses (external_id, reason)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE seen_at = CURRENT_TIMESTAMP, reason = VALUES(reason)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Filter conditions are appended dynamically; always ends with a stable order
// so paging and caching see a deterministic sequence.
const selectPropertiesSQL = `
SELECT
  external_id, title, neighborhood, price, currency, rooms, sqm, description,
  operation, type, address, age, ` + "`condition`" + `, orientation,
  expenses, expenses_currency, garage, balcony, pool, pets_allowed, air_conditioning,
  photos, videos, documents, processed_at
FROM properties
`

const selectRecentConversationsSQL = `
SELECT user_message, bot_response
FROM conversations
WHERE channel = ?
ORDER BY id DESC
LIMIT ?
`

const selectLastBotReplySQL = `
SELECT bot_response
FROM conversations
WHERE channel = ?
ORDER BY id DESC
LIMIT 1
`
