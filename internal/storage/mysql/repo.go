package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"dante_properties/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valList(v []string) any {
	if len(v) == 0 {
		return nil
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
func nullF64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertProperty(ctx context.Context, p domain.Property) error {
	var processedAt any
	if p.ProcessedAt != nil {
		processedAt = *p.ProcessedAt
	}
	_, err := r.db.ExecContext(ctx, upsertPropertySQL,
		p.ExternalID,
		p.Title,
		p.Neighborhood,
		p.Price,
		valStr(p.Currency),
		p.Rooms,
		p.SquareMeters,
		p.Description,
		p.Operation,
		p.Type,
		valStr(p.Address),
		valInt(p.Age),
		valStr(p.Condition),
		valStr(p.Orientation),
		valF64(p.Expenses),
		valStr(p.ExpensesCurrency),
		valStr(p.Garage),
		valStr(p.Balcony),
		valStr(p.Pool),
		valStr(p.PetsAllowed),
		valStr(p.AirConditioning),
		valList(p.Photos),
		valList(p.Videos),
		valList(p.Documents),
		processedAt,
	)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, externalID, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, externalID, reason)
	return err
}

// Search applies every set filter conjunctively and returns rows ordered by
// ascending price, external_id as the tiebreaker.
func (r *Repo) Search(ctx context.Context, f domain.FilterSet) ([]domain.Property, error) {
	var conds []string
	var args []any

	if f.Neighborhood != nil {
		conds = append(conds, "LOWER(neighborhood) LIKE ?")
		args = append(args, "%"+strings.ToLower(*f.Neighborhood)+"%")
	}
	if f.Operation != nil {
		conds = append(conds, "operation = ?")
		args = append(args, strings.ToLower(*f.Operation))
	}
	if f.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, strings.ToLower(*f.Type))
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.MinRooms != nil {
		conds = append(conds, "rooms >= ?")
		args = append(args, *f.MinRooms)
	}
	if f.MinSqm != nil {
		conds = append(conds, "sqm >= ?")
		args = append(args, *f.MinSqm)
	}
	if f.MaxSqm != nil {
		conds = append(conds, "sqm <= ?")
		args = append(args, *f.MaxSqm)
	}

	q := selectPropertiesSQL
	if len(conds) > 0 {
		q += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}
	q += "ORDER BY price ASC, external_id ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		var p domain.Property
		var currency, address, condition, orientation sql.NullString
		var expensesCurrency, garage, balcony, pool, pets, air sql.NullString
		var age sql.NullInt64
		var expenses sql.NullFloat64
		var photos, videos, documents []byte
		var processedAt sql.NullTime

		if err := rows.Scan(
			&p.ExternalID,
			&p.Title,
			&p.Neighborhood,
			&p.Price,
			&currency,
			&p.Rooms,
			&p.SquareMeters,
			&p.Description,
			&p.Operation,
			&p.Type,
			&address,
			&age,
			&condition,
			&orientation,
			&expenses,
			&expensesCurrency,
			&garage,
			&balcony,
			&pool,
			&pets,
			&air,
			&photos,
			&videos,
			&documents,
			&processedAt,
		); err != nil {
			return nil, err
		}

		p.Currency = nullStr(currency)
		p.Address = nullStr(address)
		p.Condition = nullStr(condition)
		p.Orientation = nullStr(orientation)
		p.Age = nullInt(age)
		p.Expenses = nullF64(expenses)
		p.ExpensesCurrency = nullStr(expensesCurrency)
		p.Garage = nullStr(garage)
		p.Balcony = nullStr(balcony)
		p.Pool = nullStr(pool)
		p.PetsAllowed = nullStr(pets)
		p.AirConditioning = nullStr(air)
		_ = json.Unmarshal(photos, &p.Photos)
		_ = json.Unmarshal(videos, &p.Videos)
		_ = json.Unmarshal(documents, &p.Documents)
		if processedAt.Valid {
			t := processedAt.Time
			p.ProcessedAt = &t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) UpsertContact(ctx context.Context, c domain.Contact) error {
	_, err := r.db.ExecContext(ctx, upsertContactSQL,
		c.CorrelationID,
		c.Name,
		valStr(c.Email),
		valStr(c.Phone),
		valStr(c.Notes),
		c.Status,
		valStr(c.RemoteIP),
		valStr(c.UserAgent),
	)
	return err
}

func (r *Repo) Append(ctx context.Context, t domain.ConversationTurn) error {
	_, err := r.db.ExecContext(ctx, insertConversationSQL,
		t.Channel,
		t.UserMessage,
		t.BotResponse,
		t.ResponseSeconds,
		t.SearchPerformed,
		t.ResultCount,
	)
	return err
}

func (r *Repo) Recent(ctx context.Context, channel string, limit int) ([]domain.Exchange, error) {
	rows, err := r.db.QueryContext(ctx, selectRecentConversationsSQL, channel, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Exchange
	for rows.Next() {
		var e domain.Exchange
		if err := rows.Scan(&e.UserMessage, &e.BotResponse); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) LastBotReply(ctx context.Context, channel string) (string, error) {
	var reply string
	err := r.db.QueryRowContext(ctx, selectLastBotReplySQL, channel).Scan(&reply)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return reply, nil
}
