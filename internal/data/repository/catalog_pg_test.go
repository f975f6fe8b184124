package repository

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRows replays fixed rows through pgx.Rows.
type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.rows)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

// fakeDB answers each query by the table it selects from.
type fakeDB struct {
	tables map[string][][]any
	fail   string
}

func (db *fakeDB) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	for table, rows := range db.tables {
		if strings.Contains(sql, "FROM "+table+"\n") {
			if table == db.fail {
				return nil, errors.New("relation does not exist")
			}
			return &fakeRows{rows: rows}, nil
		}
	}
	return nil, errors.New("unexpected query")
}

func (db *fakeDB) Ping(context.Context) error { return nil }
func (db *fakeDB) Close()                     {}

func catalogTables(startsAt time.Time) map[string][][]any {
	return map[string][][]any{
		"movies": {
			{"M1", "Interstellar", 8.7, "PG-13"},
			{"M2", "Spirited Away", 8.6, "G"},
		},
		"theaters": {
			{"T1", "Taipei Xinyi Cinema", "Taipei", 10.0, 10.0, 0, 0},
			{"T2", "New Taipei Banqiao Cinema", "New Taipei", 20.0, 8.0, 3, 4},
		},
		"showtimes": {
			{"S1", "M1", "T1", startsAt, 350},
			{"S2", "M2", "T2", startsAt.Add(time.Hour), 300},
		},
	}
}

func TestLoadCatalog(t *testing.T) {
	startsAt := time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC)
	db := &fakeDB{tables: catalogTables(startsAt)}

	catalog, err := LoadCatalog(context.Background(), db, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, catalog.Movies, 2)
	assert.Equal(t, "Spirited Away", catalog.Movies[1].Title)

	require.Len(t, catalog.Theaters, 2)
	assert.Equal(t, 3, catalog.Theaters[1].SeatRows)
	assert.Equal(t, 4, catalog.Theaters[1].SeatCols)

	require.Len(t, catalog.Showtimes, 2)
	assert.Equal(t, startsAt, catalog.Showtimes[0].StartsAt)
	assert.Equal(t, 300, catalog.Showtimes[1].BasePrice)

	// loaded rows feed the in-memory repository unchanged
	repo, err := NewCatalogRepository(catalog, zap.NewNop())
	require.NoError(t, err)
	st, err := repo.FindShowtime(context.Background(), "S2")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, "T2", st.TheaterID)
}

func TestLoadCatalog_QueryError(t *testing.T) {
	db := &fakeDB{tables: catalogTables(time.Now()), fail: "theaters"}

	_, err := LoadCatalog(context.Background(), db, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query theaters")
}
