package eventlog

import (
	"context"
	"database/sql"
	"time"
)

const (
	TypeGradeSaved = "GradeSaved"
)

type Event struct {
	Offset    int64
	CourseID  string
	Type      string
	Key       string // natural key: submissionID
	DataJSON  string
	CreatedAt int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (course_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.CourseID, e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// Latest returns the offset of the newest event for a course, 0 if none.
// Roster aggregation uses it as the data version for cache keys.
func (r *Repo) Latest(ctx context.Context, courseID string) (int64, error) {
	var off int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX("offset"), 0) FROM event_log WHERE course_id=$1`,
		courseID).Scan(&off)
	return off, err
}

func (r *Repo) List(ctx context.Context, courseID string, after int64, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT "offset", course_id, typ, key, data, created_at
		   FROM event_log
		  WHERE course_id=$1 AND "offset" > $2
		  ORDER BY "offset" ASC
		  LIMIT $3`,
		courseID, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.CourseID, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
