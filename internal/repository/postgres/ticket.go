package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/netbill/netbill/internal/domain/ticket"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/postgres"
	"github.com/netbill/netbill/internal/types"
	"github.com/samber/lo"
)

type ticketRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTicketRepository(db *postgres.DB, logger *logger.Logger) ticket.Repository {
	return &ticketRepository{db: db, logger: logger}
}

func (r *ticketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	r.logger.Debugw("creating ticket", "ticket_id", t.ID, "ticket_number", t.TicketNumber)

	query := `
		INSERT INTO tickets (
			id, tenant_id, customer_id, ticket_number, subject, description,
			ticket_status, priority, assigned_to,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :customer_id, :ticket_number, :subject, :description,
			:ticket_status, :priority, :assigned_to,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create ticket").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *ticketRepository) Get(ctx context.Context, id string) (*ticket.Ticket, error) {
	query := `
		SELECT * FROM tickets
		WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	var t ticket.Ticket
	err := r.db.GetQuerier(ctx).GetContext(ctx, &t, query, id, types.GetTenantID(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("ticket not found").
				WithHint("Ticket not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get ticket").
			Mark(ierr.ErrDatabase)
	}

	replies, err := r.getReplies(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Replies = replies

	return &t, nil
}

func (r *ticketRepository) getReplies(ctx context.Context, ticketID string) ([]*ticket.Reply, error) {
	query := `
		SELECT * FROM ticket_replies
		WHERE ticket_id = $1 AND tenant_id = $2 AND status != 'deleted'
		ORDER BY created_at ASC
	`

	replies := []*ticket.Reply{}
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &replies, query, ticketID, types.GetTenantID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get ticket replies").
			Mark(ierr.ErrDatabase)
	}

	return replies, nil
}

func (r *ticketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	t.UpdatedAt = time.Now().UTC()
	t.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE tickets
		SET
			ticket_status = :ticket_status,
			priority = :priority,
			assigned_to = :assigned_to,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id
	`

	result, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update ticket").
			Mark(ierr.ErrDatabase)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("ticket not found").
			WithHint("Ticket not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *ticketRepository) List(ctx context.Context, filter *types.TicketFilter) ([]*ticket.Ticket, error) {
	query, args := r.buildListQuery(ctx, filter, false)

	tickets := []*ticket.Ticket{}
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &tickets, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list tickets").
			Mark(ierr.ErrDatabase)
	}

	return tickets, nil
}

func (r *ticketRepository) Count(ctx context.Context, filter *types.TicketFilter) (int, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count tickets").
			Mark(ierr.ErrDatabase)
	}

	return count, nil
}

func (r *ticketRepository) AddReply(ctx context.Context, reply *ticket.Reply) error {
	query := `
		INSERT INTO ticket_replies (
			id, tenant_id, ticket_id, author_id, author_type, body,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :ticket_id, :author_id, :author_type, :body,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, reply); err != nil {
		if isForeignKeyViolation(err) {
			return ierr.WithError(err).
				WithHint("Ticket does not exist").
				Mark(ierr.ErrNotFound)
		}
		return ierr.WithError(err).
			WithHint("failed to add ticket reply").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *ticketRepository) buildListQuery(ctx context.Context, filter *types.TicketFilter, count bool) (string, []interface{}) {
	if filter == nil {
		filter = types.NewTicketFilter()
	}

	conditions := []string{"tenant_id = ?", "status != 'deleted'"}
	args := []interface{}{types.GetTenantID(ctx)}

	if filter.CustomerID != "" {
		conditions = append(conditions, "customer_id = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(ticket_number ILIKE ? OR subject ILIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.AssignedTo != "" {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, filter.AssignedTo)
	}
	if len(filter.TicketStatus) > 0 {
		conditions = append(conditions, "ticket_status = ANY(?)")
		statuses := lo.Map(filter.TicketStatus, func(s types.TicketStatus, _ int) string {
			return s.String()
		})
		args = append(args, pq.Array(statuses))
	}
	if len(filter.Priority) > 0 {
		conditions = append(conditions, "priority = ANY(?)")
		priorities := lo.Map(filter.Priority, func(p types.TicketPriority, _ int) string {
			return p.String()
		})
		args = append(args, pq.Array(priorities))
	}
	appendTimeRange(&conditions, &args, filter.TimeRangeFilter)

	var query string
	if count {
		query = "SELECT COUNT(*) FROM tickets WHERE " + strings.Join(conditions, " AND ")
	} else {
		query = "SELECT * FROM tickets WHERE " + strings.Join(conditions, " AND ")
		query += orderAndLimit(filter.QueryFilter)
	}

	return sqlx.Rebind(sqlx.DOLLAR, query), args
}
