package carrier

import (
	"context"
	"errors"
	"fmt"

	"carriers/internal/entities"
	"carriers/internal/repository"
	"carriers/internal/service/carrier"
	"carriers/internal/validation"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	carrierColumns = "id, phone, description, pin, created_at"

	pinLengthConstraint = "carriers_pin_length"

	// ключ pg_advisory_xact_lock для заполнения демо-данными
	seedLockKey int64 = 0x63617272696572
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, carrierModifyEntity entities.CarrierModify) (*entities.Carrier, error) {
	carrierModifyModel := FromDomainModify(&carrierModifyEntity)
	query := `INSERT INTO carriers (phone, description, pin)
		VALUES ($1, $2, $3)
		RETURNING ` + carrierColumns

	carrierModel, err := scanCarrier(r.querier.QueryRow(
		ctx,
		query,
		carrierModifyModel.Phone,
		carrierModifyModel.Description,
		carrierModifyModel.PIN,
	))
	if err != nil {
		if constraintErr := fromConstraint(err); constraintErr != nil {
			return nil, constraintErr
		}
		return nil, fmt.Errorf("unexpected carrier repository create error: %w", err)
	}

	return ToDomain(carrierModel), nil
}

func (r *Repository) Update(ctx context.Context, id int64, carrierModifyEntity entities.CarrierModify) (*entities.Carrier, error) {
	if carrierModifyEntity.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	carrierModifyModel := FromDomainModify(&carrierModifyEntity)

	builder := qb.
		Update("carriers")

	// опционные поля
	if carrierModifyModel.Phone != nil {
		builder = builder.Set("phone", *carrierModifyModel.Phone)
	}
	if carrierModifyModel.Description != nil {
		builder = builder.Set("description", *carrierModifyModel.Description)
	}
	if carrierModifyModel.PIN != nil {
		builder = builder.Set("pin", *carrierModifyModel.PIN)
	}

	builder = builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + carrierColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected carrier repository update error: %w", err)
	}

	carrierModel, err := scanCarrier(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, carrier.ErrCarrierNotFound
		}
		if constraintErr := fromConstraint(err); constraintErr != nil {
			return nil, constraintErr
		}
		return nil, fmt.Errorf("unexpected carrier repository update error: %w", err)
	}

	return ToDomain(carrierModel), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.querier.Exec(ctx, `DELETE FROM carriers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("unexpected carrier repository delete error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return carrier.ErrCarrierNotFound
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Carrier, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate блокирует строку до конца текущей транзакции.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Carrier, error) {
	return r.getByID(ctx, id, " FOR UPDATE")
}

func (r *Repository) getByID(ctx context.Context, id int64, lock string) (*entities.Carrier, error) {
	query := `SELECT ` + carrierColumns + `
		FROM carriers
		WHERE id = $1` + lock

	carrierModel, err := scanCarrier(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, carrier.ErrCarrierNotFound
		}

		return nil, fmt.Errorf("unexpected carrier repository getbyid error: %w", err)
	}

	return ToDomain(carrierModel), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Carrier, error) {
	query := `
	SELECT ` + carrierColumns + `
	FROM carriers
	ORDER BY id`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected carrier repository getall error: %w", err)
	}
	defer rows.Close()

	carrierModels := make([]CarrierDB, 0, 8)
	for rows.Next() {
		var carrierModel CarrierDB
		err := rows.Scan(
			&carrierModel.ID,
			&carrierModel.Phone,
			&carrierModel.Description,
			&carrierModel.PIN,
			&carrierModel.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected carrier repository getall error: %w", err)
		}
		carrierModels = append(carrierModels, carrierModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected carrier repository getall error: %w", err)
	}

	return ToDomainList(carrierModels), nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM carriers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unexpected carrier repository count error: %w", err)
	}
	return count, nil
}

// LockSeed сериализует заполнение между репликами, стартующими одновременно.
// Работает только внутри транзакции.
func (r *Repository) LockSeed(ctx context.Context) error {
	_, err := r.querier.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey)
	if err != nil {
		return fmt.Errorf("unexpected carrier repository seed lock error: %w", err)
	}
	return nil
}

func scanCarrier(row interface{ Scan(dest ...any) error }) (*CarrierDB, error) {
	var carrierModel CarrierDB
	err := row.Scan(
		&carrierModel.ID,
		&carrierModel.Phone,
		&carrierModel.Description,
		&carrierModel.PIN,
		&carrierModel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &carrierModel, nil
}

// fromConstraint переводит нарушение CHECK на длину pin в ошибку валидации,
// остальные ошибки возвращает как nil.
func fromConstraint(err error) error {
	if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) &&
		repository.ConstraintName(err) == pinLengthConstraint {
		return &validation.Error{
			Field:   validation.FieldPIN,
			Message: "PIN must be exactly 4 characters",
		}
	}
	return nil
}
