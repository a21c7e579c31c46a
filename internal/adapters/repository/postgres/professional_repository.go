package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/placement-crm/internal/core/professional"
	pgdb "github.com/ogurasousui/placement-crm/internal/platform/db/postgres"
)

const professionalColumns = `id, employment_state, skills, daily_rate, deleted, version, created_at, updated_at`

// ProfessionalRepository は PostgreSQL を利用したプロフェッショナル永続化の実装です。
type ProfessionalRepository struct {
	pool pgdb.Queryer
}

// NewProfessionalRepository は ProfessionalRepository を生成します。
func NewProfessionalRepository(pool pgdb.Queryer) *ProfessionalRepository {
	return &ProfessionalRepository{pool: pool}
}

// FindByID は論理削除されていないプロフェッショナルを取得します。
func (r *ProfessionalRepository) FindByID(ctx context.Context, id string) (*professional.Professional, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+professionalColumns+`
          FROM professionals
         WHERE id = $1 AND deleted = false
         LIMIT 1
    `, id)

	found, err := scanProfessional(row)
	if err != nil {
		return nil, translateProfessionalPgError(err)
	}
	return found, nil
}

// UpdateEmploymentState は Version が一致する場合のみ就業状態を更新します。
func (r *ProfessionalRepository) UpdateEmploymentState(ctx context.Context, p *professional.Professional) (*professional.Professional, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE professionals
           SET employment_state = $1,
               updated_at = $2,
               version = version + 1
         WHERE id = $3 AND version = $4 AND deleted = false
        RETURNING `+professionalColumns+`
    `,
		string(p.EmploymentState),
		p.UpdatedAt,
		p.ID,
		p.Version,
	)

	updated, err := scanProfessional(row)
	if err != nil {
		if errors.Is(err, professional.ErrProfessionalNotFound) {
			return nil, professional.ErrConcurrentModification
		}
		return nil, translateProfessionalPgError(err)
	}
	return updated, nil
}

// TouchVersion は就業状態を変えずに Version を進め、行を書き込みロックします。
func (r *ProfessionalRepository) TouchVersion(ctx context.Context, p *professional.Professional) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE professionals
           SET version = version + 1
         WHERE id = $1 AND version = $2 AND deleted = false
    `, p.ID, p.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return professional.ErrConcurrentModification
	}
	return nil
}

// ListActiveIDs は論理削除されていないプロフェッショナルの ID を返します。
func (r *ProfessionalRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id
          FROM professionals
         WHERE deleted = false
         ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func scanProfessional(row pgx.Row) (*professional.Professional, error) {
	var (
		id        string
		state     string
		skills    []string
		dailyRate float64
		deleted   bool
		version   int64
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&id, &state, &skills, &dailyRate, &deleted, &version, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, professional.ErrProfessionalNotFound
		}
		return nil, err
	}

	return &professional.Professional{
		ID:              id,
		EmploymentState: professional.EmploymentState(state),
		Skills:          skills,
		DailyRate:       dailyRate,
		Deleted:         deleted,
		Version:         version,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func translateProfessionalPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return professional.ErrProfessionalNotFound
	}
	return err
}
