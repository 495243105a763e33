package registration

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrDuplicateEmail reports a second record with an already registered
	// personal email. Raised by the store's unique index, not by a pre-read,
	// so concurrent submissions cannot both slip past a check.
	ErrDuplicateEmail = errors.New("email is already registered")
)

type Repository interface {
	Create(ctx context.Context, reg *Registration) (*Registration, error)
	GetAll(ctx context.Context) ([]Registration, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, reg *Registration) (*Registration, error) {
	_, err := r.db.NewInsert().Model(reg).Returning("*").Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return reg, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Registration, error) {
	regs := make([]Registration, 0)
	err := r.db.NewSelect().Model(&regs).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return regs, nil
}
