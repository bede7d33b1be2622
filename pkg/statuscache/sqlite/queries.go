package sqlite

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Status struct {
	ID        int64
	Text      string
	Tooltip   string
	UpdatedAt int64
}

const getStatus = `
select id, text, tooltip, updated_at
from status
where id = 1
`

func (q *Queries) GetStatus(ctx context.Context) (Status, error) {
	row := q.db.QueryRowContext(ctx, getStatus)
	var s Status
	err := row.Scan(&s.ID, &s.Text, &s.Tooltip, &s.UpdatedAt)
	return s, err
}

const setStatus = `
insert into status (id, text, tooltip, updated_at)
values (1, ?, ?, ?)
on conflict (id) do update
set text       = excluded.text,
    tooltip    = excluded.tooltip,
    updated_at = excluded.updated_at
`

type SetStatusParams struct {
	Text      string
	Tooltip   string
	UpdatedAt int64
}

func (q *Queries) SetStatus(ctx context.Context, arg SetStatusParams) error {
	_, err := q.db.ExecContext(ctx, setStatus, arg.Text, arg.Tooltip, arg.UpdatedAt)
	return err
}
