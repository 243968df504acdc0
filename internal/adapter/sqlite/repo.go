package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

const tableName = "vocab"

var (
	sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	selectColumns = []string{"id", "hsk_level", "traditional", "simplified", "pinyin", "english"}
	insertColumns = []string{"hsk_level", "traditional", "simplified", "pinyin", "english"}

	// SQLite has no NULLS LAST before 3.30 builds; the IS NULL key is portable.
	browseOrder = []string{"(hsk_level IS NULL) ASC", "hsk_level ASC", "pinyin ASC", "id ASC"}
)

// Repo provides vocabulary persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a repository over an opened database.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// FetchPage returns up to limit items starting at offset in browse order.
func (r *Repo) FetchPage(ctx context.Context, offset, limit int) ([]domain.VocabularyItem, error) {
	if offset < 0 || limit <= 0 {
		return nil, domain.NewValidationError("page", fmt.Sprintf("invalid offset %d / limit %d", offset, limit))
	}

	query, args, err := sq.Select(selectColumns...).
		From(tableName).
		OrderBy(browseOrder...).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fetch page query: %w", err)
	}

	items := make([]domain.VocabularyItem, 0, limit)
	if err := sqlscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, mapError(err, "vocab page", 0)
	}
	return items, nil
}

// GetByID returns a single item or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.VocabularyItem, error) {
	query, args, err := sq.Select(selectColumns...).From(tableName).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var item domain.VocabularyItem
	if err := sqlscan.Get(ctx, r.db, &item, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, fmt.Errorf("vocab %d: %w", id, domain.ErrNotFound)
		}
		return nil, mapError(err, "vocab", id)
	}
	return &item, nil
}

// Delete removes one item. A missing id is domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete(tableName).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "vocab", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, "vocab", id)
	}
	if n == 0 {
		return fmt.Errorf("vocab %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Update overwrites every column of an item and returns the stored row.
func (r *Repo) Update(ctx context.Context, id int64, v domain.NewVocabulary) (*domain.VocabularyItem, error) {
	query, args, err := sq.Update(tableName).
		Set("hsk_level", v.Level).
		Set("traditional", v.Traditional).
		Set("simplified", v.Simplified).
		Set("pinyin", v.Pinyin).
		Set("english", v.English).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, hsk_level, traditional, simplified, pinyin, english").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	var item domain.VocabularyItem
	if err := sqlscan.Get(ctx, r.db, &item, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, fmt.Errorf("vocab %d: %w", id, domain.ErrNotFound)
		}
		return nil, mapError(err, "vocab", id)
	}
	return &item, nil
}

// InsertRows inserts all rows in one transaction through a prepared
// statement. Either every row is stored or none is.
func (r *Repo) InsertRows(ctx context.Context, rows []domain.NewVocabulary) (inserted int, err error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query, _, err := sq.Insert(tableName).
		Columns(insertColumns...).
		Values(nil, "", "", "", "").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert query: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			inserted = 0
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, mapError(err, "vocab batch", 0)
	}
	defer stmt.Close()

	for _, v := range rows {
		if _, err = stmt.ExecContext(ctx, v.Level, v.Traditional, v.Simplified, v.Pinyin, v.English); err != nil {
			return 0, mapError(err, "vocab batch", 0)
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return inserted, nil
}

// Ping reports whether the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
