package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"showcase/api/models"
)

type ContactStore struct {
	db *sql.DB
}

func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, created_at, updated_at, name, email, phone, company, message,
		source, ip_address, user_agent, is_read, notes`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*models.ContactSubmission, error) {
	c := &models.ContactSubmission{}
	err := row.Scan(
		&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Message,
		&c.Source, &c.IPAddress, &c.UserAgent, &c.IsRead, &c.Notes,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a submission and returns it with generated fields filled in.
func (s *ContactStore) Create(ctx context.Context, c *models.ContactSubmission) (*models.ContactSubmission, error) {
	query := `
		INSERT INTO contact_submissions (name, email, phone, company, message, source, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + contactColumns + `;
	`
	created, err := scanContact(s.db.QueryRowContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Company, c.Message, c.Source, c.IPAddress, c.UserAgent,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create contact submission: %w", err)
	}
	return created, nil
}

// Get returns nil, nil when the submission does not exist.
func (s *ContactStore) Get(ctx context.Context, id int) (*models.ContactSubmission, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_submissions WHERE id = $1;`
	c, err := scanContact(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact submission %d: %w", id, err)
	}
	return c, nil
}

// contactWhere renders the filter as a WHERE clause whose placeholders start
// at $1, with its arguments.
func contactWhere(f *models.ContactFilter) (string, []interface{}) {
	if f == nil {
		return "", nil
	}
	var conds []string
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.IsRead != nil {
		add("is_read = $%d", *f.IsRead)
	}
	if f.Email != nil {
		add("email ILIKE '%%' || $%d || '%%'", *f.Email)
	}
	if f.Name != nil {
		add("name ILIKE '%%' || $%d || '%%'", *f.Name)
	}
	if f.CreatedAt != nil {
		add("created_at >= $%d", f.CreatedAt.Start)
		add("created_at <= $%d", f.CreatedAt.End)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// contactOrder renders the sort as an ORDER BY clause. Column names come
// from a fixed list, never from input.
func contactOrder(sort *models.ContactSort) string {
	if sort == nil {
		return " ORDER BY created_at DESC, id DESC"
	}
	columns := []struct {
		name  string
		order *models.SortOrder
	}{
		{"id", sort.ID},
		{"name", sort.Name},
		{"email", sort.Email},
		{"created_at", sort.CreatedAt},
		{"updated_at", sort.UpdatedAt},
		{"is_read", sort.IsRead},
	}
	var terms []string
	for _, col := range columns {
		if col.order == nil {
			continue
		}
		dir := "ASC"
		if *col.order == models.SortDesc {
			dir = "DESC"
		}
		terms = append(terms, col.name+" "+dir)
	}
	if len(terms) == 0 {
		return " ORDER BY created_at DESC, id DESC"
	}
	if sort.ID == nil {
		terms = append(terms, "id DESC")
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

// List returns one page of matching submissions and the matching total.
func (s *ContactStore) List(ctx context.Context, opts models.ContactListOptions) ([]models.ContactSubmission, int, error) {
	opts.ListOptions = opts.ListOptions.Normalize()
	where, args := contactWhere(opts.Filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact submissions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM contact_submissions%s%s LIMIT $%d OFFSET $%d;`,
		contactColumns, where, contactOrder(opts.Sort), len(args)+1, len(args)+2)
	rows, err := s.db.QueryContext(ctx, query, append(args, opts.Take, opts.Skip)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact submissions: %w", err)
	}
	defer rows.Close()

	items := make([]models.ContactSubmission, 0, opts.Take)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row error listing contact submissions: %w", err)
	}
	return items, total, nil
}

// Update applies the non-nil fields. A missing id yields ErrNotFound.
func (s *ContactStore) Update(ctx context.Context, id int, isRead *bool, notes *string) (*models.ContactSubmission, error) {
	query := `
		UPDATE contact_submissions
		SET is_read = COALESCE($2, is_read),
		    notes = CASE WHEN $3::boolean THEN $4 ELSE notes END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + contactColumns + `;
	`
	c, err := scanContact(s.db.QueryRowContext(ctx, query, id, isRead, notes != nil, notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact submission %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update contact submission %d: %w", id, err)
	}
	return c, nil
}

// Delete reports whether a row was removed.
func (s *ContactStore) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = $1;`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact submission %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *ContactStore) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions WHERE is_read = FALSE;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unread contact submissions: %w", err)
	}
	return n, nil
}
