// Package vocab implements the vocabulary store on PostgreSQL.
// Rows are always read in the browse order (level asc nulls last, pinyin, id)
// so that offset pagination yields a stable prefix.
package vocab

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/adapter/postgres"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

const tableName = "vocab"

var (
	psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	selectColumns = []string{"id", "hsk_level", "traditional", "simplified", "pinyin", "english"}
	insertColumns = []string{"hsk_level", "traditional", "simplified", "pinyin", "english"}

	browseOrder = []string{"hsk_level ASC NULLS LAST", "pinyin ASC", "id ASC"}
)

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new vocabulary repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

// FetchPage returns up to limit items starting at offset in browse order.
// An empty page is returned as an empty, non-nil slice.
func (r *Repo) FetchPage(ctx context.Context, offset, limit int) ([]domain.VocabularyItem, error) {
	if offset < 0 || limit <= 0 {
		return nil, domain.NewValidationError("page", fmt.Sprintf("invalid offset %d / limit %d", offset, limit))
	}

	sql, args, err := psql.Select(selectColumns...).
		From(tableName).
		OrderBy(browseOrder...).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fetch page query: %w", err)
	}

	items := make([]domain.VocabularyItem, 0, limit)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &items, sql, args...); err != nil {
		return nil, postgres.MapError(err, "vocab page", 0)
	}
	return items, nil
}

// GetByID returns a single item or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.VocabularyItem, error) {
	sql, args, err := psql.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var item domain.VocabularyItem
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("vocab %d: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "vocab", id)
	}
	return &item, nil
}

// Delete removes one item. A missing id is domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete(tableName).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "vocab", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vocab %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Update overwrites every column of an item and returns the stored row.
func (r *Repo) Update(ctx context.Context, id int64, v domain.NewVocabulary) (*domain.VocabularyItem, error) {
	sql, args, err := psql.Update(tableName).
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
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("vocab %d: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "vocab", id)
	}
	return &item, nil
}

// InsertRows inserts all rows in one transaction using a single pgx.Batch.
// Either every row is stored or none is.
func (r *Repo) InsertRows(ctx context.Context, rows []domain.NewVocabulary) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, v := range rows {
		sql, args, err := psql.Insert(tableName).
			Columns(insertColumns...).
			Values(v.Level, v.Traditional, v.Simplified, v.Pinyin, v.English).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert query: %w", err)
		}
		batch.Queue(sql, args...)
	}

	var inserted int
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		n, err := sendBatchExec(ctx, postgres.QuerierFromCtx(ctx, r.db), batch)
		inserted = n
		return err
	})
	if err != nil {
		return 0, postgres.MapError(err, "vocab batch", 0)
	}
	return inserted, nil
}

// Ping reports whether the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func sendBatchExec(ctx context.Context, q postgres.Querier, batch *pgx.Batch) (int, error) {
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
