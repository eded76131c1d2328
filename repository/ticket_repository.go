package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"lottosim/domain/entities"
	"lottosim/domain/interfaces"
)

// PostgresTicketRepository implements ticket persistence on PostgreSQL.
// Numbers and results are stored as JSONB so the schema stays stable
// across the three game shapes.
type PostgresTicketRepository struct {
	q Queryable
}

// NewPostgresTicketRepository creates a new PostgreSQL-backed ticket repository
func NewPostgresTicketRepository(q Queryable) interfaces.TicketRepository {
	return &PostgresTicketRepository{q: q}
}

func marshalResult(result any) (any, error) {
	if result == nil {
		return nil, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket result: %w", err)
	}
	return data, nil
}

// SaveLottoTickets persists a batch of lotto tickets in a single insert
func (r *PostgresTicketRepository) SaveLottoTickets(ctx context.Context, tickets []*entities.LottoTicket) error {
	if len(tickets) == 0 {
		return nil
	}

	query := `
		INSERT INTO lotto_tickets (id, numbers, is_auto, purchase_date, draw_date, result)
		VALUES `

	values := make([]any, 0, len(tickets)*6)
	for i, ticket := range tickets {
		if i > 0 {
			query += ", "
		}
		paramOffset := i * 6
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			paramOffset+1, paramOffset+2, paramOffset+3, paramOffset+4, paramOffset+5, paramOffset+6)

		numbers, err := json.Marshal(ticket.Numbers)
		if err != nil {
			return fmt.Errorf("failed to marshal lotto numbers: %w", err)
		}
		var result any
		if ticket.Result != nil {
			if result, err = marshalResult(ticket.Result); err != nil {
				return err
			}
		}
		values = append(values, ticket.ID, numbers, ticket.IsAuto,
			ticket.PurchaseDate, ticket.DrawDate, result)
	}

	if _, err := r.q.Exec(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to batch insert lotto tickets: %w", err)
	}
	return nil
}

// GetLottoTickets returns all lotto tickets, newest first
func (r *PostgresTicketRepository) GetLottoTickets(ctx context.Context) ([]*entities.LottoTicket, error) {
	query := `
		SELECT id, numbers, is_auto, purchase_date, draw_date, result
		FROM lotto_tickets
		ORDER BY purchase_date DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get lotto tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entities.LottoTicket
	for rows.Next() {
		var ticket entities.LottoTicket
		var numbers, result []byte
		if err := rows.Scan(&ticket.ID, &numbers, &ticket.IsAuto,
			&ticket.PurchaseDate, &ticket.DrawDate, &result); err != nil {
			return nil, fmt.Errorf("failed to scan lotto ticket: %w", err)
		}
		if err := json.Unmarshal(numbers, &ticket.Numbers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lotto numbers: %w", err)
		}
		if result != nil {
			ticket.Result = &entities.LottoResult{}
			if err := json.Unmarshal(result, ticket.Result); err != nil {
				return nil, fmt.Errorf("failed to unmarshal lotto result: %w", err)
			}
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lotto tickets: %w", err)
	}
	return tickets, nil
}

// SaveScratchTickets persists a batch of scratch tickets in a single insert
func (r *PostgresTicketRepository) SaveScratchTickets(ctx context.Context, tickets []*entities.ScratchTicket) error {
	if len(tickets) == 0 {
		return nil
	}

	query := `
		INSERT INTO scratch_tickets (id, symbols, lucky_numbers, purchase_date, is_complete, result)
		VALUES `

	values := make([]any, 0, len(tickets)*6)
	for i, ticket := range tickets {
		if i > 0 {
			query += ", "
		}
		paramOffset := i * 6
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			paramOffset+1, paramOffset+2, paramOffset+3, paramOffset+4, paramOffset+5, paramOffset+6)

		symbols, err := json.Marshal(ticket.Symbols)
		if err != nil {
			return fmt.Errorf("failed to marshal scratch symbols: %w", err)
		}
		lucky, err := json.Marshal(ticket.LuckyNumbers)
		if err != nil {
			return fmt.Errorf("failed to marshal lucky numbers: %w", err)
		}
		var result any
		if ticket.Result != nil {
			if result, err = marshalResult(ticket.Result); err != nil {
				return err
			}
		}
		values = append(values, ticket.ID, symbols, lucky,
			ticket.PurchaseDate, ticket.IsComplete, result)
	}

	if _, err := r.q.Exec(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to batch insert scratch tickets: %w", err)
	}
	return nil
}

// GetScratchTickets returns all scratch tickets, newest first
func (r *PostgresTicketRepository) GetScratchTickets(ctx context.Context) ([]*entities.ScratchTicket, error) {
	query := `
		SELECT id, symbols, lucky_numbers, purchase_date, is_complete, result
		FROM scratch_tickets
		ORDER BY purchase_date DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get scratch tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entities.ScratchTicket
	for rows.Next() {
		var ticket entities.ScratchTicket
		var symbols, lucky, result []byte
		if err := rows.Scan(&ticket.ID, &symbols, &lucky,
			&ticket.PurchaseDate, &ticket.IsComplete, &result); err != nil {
			return nil, fmt.Errorf("failed to scan scratch ticket: %w", err)
		}
		if err := json.Unmarshal(symbols, &ticket.Symbols); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scratch symbols: %w", err)
		}
		if err := json.Unmarshal(lucky, &ticket.LuckyNumbers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lucky numbers: %w", err)
		}
		if result != nil {
			ticket.Result = &entities.ScratchResult{}
			if err := json.Unmarshal(result, ticket.Result); err != nil {
				return nil, fmt.Errorf("failed to unmarshal scratch result: %w", err)
			}
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scratch tickets: %w", err)
	}
	return tickets, nil
}

// SavePensionTickets persists a batch of pension tickets in a single insert
func (r *PostgresTicketRepository) SavePensionTickets(ctx context.Context, tickets []*entities.PensionTicket) error {
	if len(tickets) == 0 {
		return nil
	}

	query := `
		INSERT INTO pension_tickets (id, numbers, is_auto, purchase_date, draw_date, result)
		VALUES `

	values := make([]any, 0, len(tickets)*6)
	for i, ticket := range tickets {
		if i > 0 {
			query += ", "
		}
		paramOffset := i * 6
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			paramOffset+1, paramOffset+2, paramOffset+3, paramOffset+4, paramOffset+5, paramOffset+6)

		numbers, err := json.Marshal(ticket.Numbers)
		if err != nil {
			return fmt.Errorf("failed to marshal pension numbers: %w", err)
		}
		var result any
		if ticket.Result != nil {
			if result, err = marshalResult(ticket.Result); err != nil {
				return err
			}
		}
		values = append(values, ticket.ID, numbers, ticket.IsAuto,
			ticket.PurchaseDate, ticket.DrawDate, result)
	}

	if _, err := r.q.Exec(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to batch insert pension tickets: %w", err)
	}
	return nil
}

// GetPensionTickets returns all pension tickets, newest first
func (r *PostgresTicketRepository) GetPensionTickets(ctx context.Context) ([]*entities.PensionTicket, error) {
	query := `
		SELECT id, numbers, is_auto, purchase_date, draw_date, result
		FROM pension_tickets
		ORDER BY purchase_date DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get pension tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entities.PensionTicket
	for rows.Next() {
		var ticket entities.PensionTicket
		var numbers, result []byte
		if err := rows.Scan(&ticket.ID, &numbers, &ticket.IsAuto,
			&ticket.PurchaseDate, &ticket.DrawDate, &result); err != nil {
			return nil, fmt.Errorf("failed to scan pension ticket: %w", err)
		}
		if err := json.Unmarshal(numbers, &ticket.Numbers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pension numbers: %w", err)
		}
		if result != nil {
			ticket.Result = &entities.PensionResult{}
			if err := json.Unmarshal(result, ticket.Result); err != nil {
				return nil, fmt.Errorf("failed to unmarshal pension result: %w", err)
			}
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pension tickets: %w", err)
	}
	return tickets, nil
}

// ClearAll removes every stored ticket across all games
func (r *PostgresTicketRepository) ClearAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `TRUNCATE lotto_tickets, scratch_tickets, pension_tickets`); err != nil {
		return fmt.Errorf("failed to clear ticket tables: %w", err)
	}
	return nil
}
