package vocab

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/adapter/postgres"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

var rowColumns = []string{"id", "hsk_level", "traditional", "simplified", "pinyin", "english"}

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock, postgres.NewTxManager(mock)), mock
}

func TestRepo_FetchPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		offset  int
		limit   int
		setup   func(mock pgxmock.PgxPoolIface)
		wantLen int
		wantErr error
	}{
		{
			name:   "returns rows in browse order",
			offset: 4,
			limit:  2,
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(rowColumns).
					AddRow(int64(5), domain.IntPtr(1), "愛", "爱", "ài", "love").
					AddRow(int64(9), domain.IntPtr(1), "八", "八", "bā", "eight")
				mock.ExpectQuery(`SELECT id, hsk_level, traditional, simplified, pinyin, english FROM vocab ` +
					`ORDER BY hsk_level ASC NULLS LAST, pinyin ASC, id ASC LIMIT 2 OFFSET 4`).
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name:   "empty page is not an error",
			offset: 100,
			limit:  50,
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM vocab`).WillReturnRows(pgxmock.NewRows(rowColumns))
			},
			wantLen: 0,
		},
		{
			name:    "negative offset rejected without query",
			offset:  -1,
			limit:   50,
			setup:   func(mock pgxmock.PgxPoolIface) {},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "zero limit rejected without query",
			offset:  0,
			limit:   0,
			setup:   func(mock pgxmock.PgxPoolIface) {},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			items, err := repo.FetchPage(context.Background(), tt.offset, tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, items)
				assert.Len(t, items, tt.wantLen)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_FetchPage_ScansColumns(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM vocab`).
		WillReturnRows(pgxmock.NewRows(rowColumns).AddRow(int64(3), domain.IntPtr(2), "語言", "语言", "yǔyán", "language"))

	items, err := repo.FetchPage(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, int64(3), got.ID)
	require.NotNil(t, got.Level)
	assert.Equal(t, 2, *got.Level)
	assert.Equal(t, "語言", got.Traditional)
	assert.Equal(t, "语言", got.Simplified)
	assert.Equal(t, "yǔyán", got.Pinyin)
	assert.Equal(t, "language", got.English)
}

func TestRepo_FetchPage_QueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM vocab`).WillReturnError(errors.New("connection reset"))

	_, err := repo.FetchPage(context.Background(), 0, 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRepo_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT .+ FROM vocab WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(rowColumns).AddRow(int64(7), domain.IntPtr(3), "", "有", "yǒu", "to have"))

		item, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "有", item.Simplified)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT .+ FROM vocab WHERE id = \$1`).
			WithArgs(int64(8)).
			WillReturnRows(pgxmock.NewRows(rowColumns))

		_, err := repo.GetByID(context.Background(), 8)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM vocab WHERE id = \$1`).
					WithArgs(int64(11)).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "missing row",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM vocab WHERE id = \$1`).
					WithArgs(int64(11)).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "store rejects",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM vocab`).
					WithArgs(int64(11)).
					WillReturnError(pgx.ErrTxClosed)
			},
			wantErr: pgx.ErrTxClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			err := repo.Delete(context.Background(), 11)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE vocab SET hsk_level = \$1, traditional = \$2, simplified = \$3, pinyin = \$4, english = \$5 WHERE id = \$6 RETURNING`).
		WithArgs(pgxmock.AnyArg(), "語", "语", "yǔ", "language", int64(4)).
		WillReturnRows(pgxmock.NewRows(rowColumns).AddRow(int64(4), domain.IntPtr(5), "語", "语", "yǔ", "language"))

	item, err := repo.Update(context.Background(), 4, domain.NewVocabulary{
		Level: domain.IntPtr(5), Traditional: "語", Simplified: "语", Pinyin: "yǔ", English: "language",
	})
	require.NoError(t, err)
	require.NotNil(t, item.Level)
	assert.Equal(t, 5, *item.Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_InsertRows_Empty(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	n, err := repo.InsertRows(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_InsertRows_BeginFails(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	n, err := repo.InsertRows(context.Background(), []domain.NewVocabulary{
		{Simplified: "有", Pinyin: "yǒu", English: "to have"},
	})
	require.Error(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
