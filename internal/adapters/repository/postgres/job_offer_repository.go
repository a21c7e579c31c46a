package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/placement-crm/internal/core/joboffer"
	"github.com/ogurasousui/placement-crm/internal/core/professional"
	pgdb "github.com/ogurasousui/placement-crm/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

const jobOfferColumns = `id, customer_id, professional_id, status, required_skills, duration, value, note, deleted, version, created_at, updated_at`

// JobOfferRepository は PostgreSQL を利用した求人永続化の実装です。
type JobOfferRepository struct {
	pool pgdb.Queryer
}

// NewJobOfferRepository は JobOfferRepository を生成します。
func NewJobOfferRepository(pool pgdb.Queryer) *JobOfferRepository {
	return &JobOfferRepository{pool: pool}
}

// Create は求人を新規作成します。
func (r *JobOfferRepository) Create(ctx context.Context, o *joboffer.JobOffer) (*joboffer.JobOffer, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO job_offers (id, customer_id, professional_id, status, required_skills, duration, value, note, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING `+jobOfferColumns+`
    `,
		o.ID,
		o.CustomerID,
		nullableID(o.ProfessionalID),
		string(o.Status),
		skillsOrEmpty(o.RequiredSkills),
		o.Duration,
		o.Value,
		o.Note,
		o.CreatedAt,
		o.UpdatedAt,
	)

	created, err := scanJobOffer(row)
	if err != nil {
		return nil, translateJobOfferPgError(err)
	}
	return created, nil
}

// FindByID は論理削除されていない求人を取得します。
func (r *JobOfferRepository) FindByID(ctx context.Context, id string) (*joboffer.JobOffer, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+jobOfferColumns+`
          FROM job_offers
         WHERE id = $1 AND deleted = false
         LIMIT 1
    `, id)

	found, err := scanJobOffer(row)
	if err != nil {
		return nil, translateJobOfferPgError(err)
	}
	return found, nil
}

// Update はステータス、割り当て、論理削除フラグを書き込みます。
// Version が一致しない場合は ErrConcurrentModification を返します。
func (r *JobOfferRepository) Update(ctx context.Context, o *joboffer.JobOffer) (*joboffer.JobOffer, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE job_offers
           SET status = $1,
               professional_id = $2,
               deleted = $3,
               updated_at = $4,
               version = version + 1
         WHERE id = $5 AND version = $6 AND deleted = false
        RETURNING `+jobOfferColumns+`
    `,
		string(o.Status),
		nullableID(o.ProfessionalID),
		o.Deleted,
		o.UpdatedAt,
		o.ID,
		o.Version,
	)

	updated, err := scanJobOffer(row)
	if err != nil {
		if errors.Is(err, joboffer.ErrJobOfferNotFound) {
			return nil, joboffer.ErrConcurrentModification
		}
		return nil, translateJobOfferPgError(err)
	}
	return updated, nil
}

// ListByProfessional はプロフェッショナルに割り当てられた論理削除されていない求人を返します。
func (r *JobOfferRepository) ListByProfessional(ctx context.Context, professionalID string) ([]*joboffer.JobOffer, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+jobOfferColumns+`
          FROM job_offers
         WHERE professional_id = $1 AND deleted = false
         ORDER BY created_at, id
    `, professionalID)
	if err != nil {
		return nil, translateJobOfferPgError(err)
	}
	defer rows.Close()

	offers := make([]*joboffer.JobOffer, 0)
	for rows.Next() {
		o, err := scanJobOffer(rows)
		if err != nil {
			return nil, translateJobOfferPgError(err)
		}
		offers = append(offers, o)
	}

	if err := rows.Err(); err != nil {
		return nil, translateJobOfferPgError(err)
	}

	return offers, nil
}

func scanJobOffer(row pgx.Row) (*joboffer.JobOffer, error) {
	var (
		id             string
		customerID     string
		professionalID sql.NullString
		status         string
		skills         []string
		duration       int
		value          float64
		note           string
		deleted        bool
		version        int64
		createdAt      time.Time
		updatedAt      time.Time
	)

	if err := row.Scan(
		&id,
		&customerID,
		&professionalID,
		&status,
		&skills,
		&duration,
		&value,
		&note,
		&deleted,
		&version,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, joboffer.ErrJobOfferNotFound
		}
		return nil, err
	}

	return &joboffer.JobOffer{
		ID:             id,
		CustomerID:     customerID,
		ProfessionalID: professionalID.String,
		Status:         joboffer.Status(status),
		RequiredSkills: skills,
		Duration:       duration,
		Value:          value,
		Note:           note,
		Deleted:        deleted,
		Version:        version,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

func translateJobOfferPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return joboffer.ErrJobOfferNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolationCode:
			switch pgErr.ConstraintName {
			case "job_offers_customer_id_fkey":
				return joboffer.ErrCustomerNotFound
			case "job_offers_professional_id_fkey":
				return professional.ErrProfessionalNotFound
			default:
				return err
			}
		case checkViolationCode:
			if pgErr.ConstraintName == "job_offers_professional_required" {
				return joboffer.ErrRequiredProfessionalID
			}
			return err
		}
	}

	return err
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func skillsOrEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
