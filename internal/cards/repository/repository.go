package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kundekort_backend/internal/cards/domain"
	"kundekort_backend/platform/apperr"
)

const cardNotFoundMessage = "customer card not found"

// Repo implements the cards repository over postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new cards repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListProfiles loads every raw profile with its calendar events.
func (r *Repo) ListProfiles(ctx context.Context) ([]domain.RawProfile, error) {
	query := `
		SELECT id, name, emails, phones, addresses, companies,
			billy_customer_id, mail_threads, sources, confidence
		FROM customer_profiles
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.RawProfile
	index := make(map[string]int)
	for rows.Next() {
		var p domain.RawProfile
		var emails, phones, addresses, companies, threads, sources []byte
		if err := rows.Scan(&p.ID, &p.Name, &emails, &phones, &addresses, &companies,
			&p.BillyCustomerID, &threads, &sources, &p.Confidence); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		for _, col := range []struct {
			name    string
			payload []byte
			target  any
		}{
			{"emails", emails, &p.Emails},
			{"phones", phones, &p.Phones},
			{"addresses", addresses, &p.Addresses},
			{"companies", companies, &p.Companies},
			{"mail_threads", threads, &p.MailThreads},
			{"sources", sources, &p.Sources},
		} {
			if len(col.payload) == 0 {
				continue
			}
			if err := json.Unmarshal(col.payload, col.target); err != nil {
				return nil, fmt.Errorf("decode %s: %w", col.name, err)
			}
		}
		index[p.ID] = len(profiles)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	eventsQuery := `
		SELECT profile_id, title, description, start_at, location
		FROM raw_events
		ORDER BY profile_id, start_at`

	eventRows, err := r.pool.Query(ctx, eventsQuery)
	if err != nil {
		return nil, fmt.Errorf("list raw events: %w", err)
	}
	defer eventRows.Close()

	for eventRows.Next() {
		var profileID string
		var event domain.RawEvent
		if err := eventRows.Scan(&profileID, &event.Title, &event.Description,
			&event.Start, &event.Location); err != nil {
			return nil, fmt.Errorf("scan raw event: %w", err)
		}
		if i, ok := index[profileID]; ok {
			profiles[i].CalendarEvents = append(profiles[i].CalendarEvents, event)
		}
	}
	if err := eventRows.Err(); err != nil {
		return nil, fmt.Errorf("list raw events: %w", err)
	}

	return profiles, nil
}

// ReplaceCards atomically swaps the stored card set.
func (r *Repo) ReplaceCards(ctx context.Context, cards []domain.CustomerCard) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("replace cards: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM customer_cards`); err != nil {
		return fmt.Errorf("clear cards: %w", err)
	}

	insert := `
		INSERT INTO customer_cards (profile_id, name, rank, lifetime_value,
			total_bookings, is_fast_customer, has_conflicts, next_action_due, card)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for rank, card := range cards {
		payload, err := json.Marshal(card)
		if err != nil {
			return fmt.Errorf("marshal card %s: %w", card.ProfileID, err)
		}
		if _, err := tx.Exec(ctx, insert,
			card.ProfileID, card.Name, rank, card.LifetimeValue,
			card.TotalBookings, card.IsFastCustomer, card.HasConflicts,
			card.NextActionDue, payload,
		); err != nil {
			return fmt.Errorf("insert card %s: %w", card.ProfileID, err)
		}
	}

	return tx.Commit(ctx)
}

// ListCards returns cards ordered by their rebuild rank.
func (r *Repo) ListCards(ctx context.Context, params ListCardsParams) ([]domain.CustomerCard, int, error) {
	var conditions []string
	var args []any

	if search := strings.TrimSpace(params.Search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if params.FastOnly {
		conditions = append(conditions, "is_fast_customer")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM customer_cards`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cards: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT card FROM customer_cards%s
		ORDER BY rank
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	cards, err := r.queryCards(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// GetCard returns one card by profile ID.
func (r *Repo) GetCard(ctx context.Context, profileID string) (domain.CustomerCard, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT card FROM customer_cards WHERE profile_id = $1`, profileID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CustomerCard{}, apperr.NotFound(cardNotFoundMessage)
		}
		return domain.CustomerCard{}, fmt.Errorf("get card: %w", err)
	}

	var card domain.CustomerCard
	if err := json.Unmarshal(payload, &card); err != nil {
		return domain.CustomerCard{}, fmt.Errorf("decode card: %w", err)
	}
	return card, nil
}

// ListAllCards returns the full ranked card set.
func (r *Repo) ListAllCards(ctx context.Context) ([]domain.CustomerCard, error) {
	return r.queryCards(ctx, `SELECT card FROM customer_cards ORDER BY rank`)
}

// ListCardsWithActionDue returns cards whose next action falls due before
// the given time, soonest first.
func (r *Repo) ListCardsWithActionDue(ctx context.Context, before time.Time) ([]domain.CustomerCard, error) {
	return r.queryCards(ctx, `
		SELECT card FROM customer_cards
		WHERE next_action_due IS NOT NULL AND next_action_due <= $1
		ORDER BY next_action_due`, before)
}

func (r *Repo) queryCards(ctx context.Context, query string, args ...any) ([]domain.CustomerCard, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.CustomerCard
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		var card domain.CustomerCard
		if err := json.Unmarshal(payload, &card); err != nil {
			return nil, fmt.Errorf("decode card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	return cards, nil
}
