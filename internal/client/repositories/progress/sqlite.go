package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/learnlink/learnlink/internal/client/repositories/metadata"
	"github.com/learnlink/learnlink/internal/common"
	"github.com/learnlink/learnlink/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func Key(domain string) string {
	return common.ProgressKeyPrefix + domain
}

func (r *SQLiteRepository) Load(ctx context.Context, domain string) (Progress, error) {
	return load(ctx, metadata.NewSQLiteRepository(r.db), domain)
}

func (r *SQLiteRepository) Mark(ctx context.Context, domain, itemID string, done bool) (Progress, error) {
	var out Progress
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		p, err := load(ctx, repo, domain)
		if err != nil {
			return err
		}
		p[itemID] = done

		b, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode progress: %w", err)
		}
		if err := repo.Set(ctx, Key(domain), b); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mark %s in %q: %w", itemID, domain, err)
	}
	return out, nil
}

func (r *SQLiteRepository) Reset(ctx context.Context, domain string) error {
	return metadata.NewSQLiteRepository(r.db).Delete(ctx, Key(domain))
}

func (r *SQLiteRepository) Domains(ctx context.Context) ([]string, error) {
	all, err := metadata.NewSQLiteRepository(r.db).List(ctx, common.ProgressKeyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(all))
	for k := range all {
		out = append(out, strings.TrimPrefix(k, common.ProgressKeyPrefix))
	}
	sort.Strings(out)
	return out, nil
}

// load treats an unreadable record as empty: the progress is a local cache
// and the next Mark rewrites it.
func load(ctx context.Context, repo metadata.Repository, domain string) (Progress, error) {
	b, err := repo.Get(ctx, Key(domain))
	if err != nil {
		return nil, err
	}
	p := Progress{}
	if len(b) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(b, &p); err != nil || p == nil {
		return Progress{}, nil
	}
	return p, nil
}
