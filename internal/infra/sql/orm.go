package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// ORM is the chainable subset of gorm used by the repositories. Every chained call
// returns a new ORM; the receiver is never mutated.
type ORM interface {
	AutoMigrate(dst ...any) error
	Count(count *int64) ORM
	Create(value any) ORM
	Delete(value any, conds ...any) ORM
	Find(dest any, conds ...any) ORM
	First(dest any, conds ...any) ORM
	Model(value any) ORM
	Order(value any) ORM
	Transaction(fc func(tx ORM) error, opts ...*sql.TxOptions) error
	Where(query any, args ...any) ORM
	WithContext(ctx context.Context) ORM

	RowsAffected() int64
	Error() error
}

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

var _ ORM = (*DB)(nil)

type DB struct {
	*gorm.DB
	system               string
	autoMigrationEnabled bool
	// timeout bounds every statement issued through WithContext. Zero means none.
	timeout time.Duration
}

func (d DB) chain(tx *gorm.DB) ORM {
	d.DB = tx
	return &d
}

// exec records the statement on the caller's span before chaining.
func (d DB) exec(operation string, run func(*gorm.DB) *gorm.DB) ORM {
	if ctx := d.DB.Statement.Context; ctx != nil {
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.AddEvent("db."+operation, trace.WithAttributes(
				attribute.String("db.system", d.system),
				attribute.String("db.operation", operation),
			))
		}
	}
	return d.chain(run(d.DB))
}

func (d DB) Error() error {
	switch err := d.DB.Error; {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	default:
		return fmt.Errorf("%s: %w", d.system, err)
	}
}

func (d DB) RowsAffected() int64 {
	return d.DB.RowsAffected
}

func (d DB) AutoMigrate(dst ...any) error {
	if !d.autoMigrationEnabled {
		return nil
	}
	return d.DB.AutoMigrate(dst...)
}

func (d DB) Create(value any) ORM {
	return d.exec("insert", func(tx *gorm.DB) *gorm.DB { return tx.Create(value) })
}

func (d DB) Delete(value any, conds ...any) ORM {
	return d.exec("delete", func(tx *gorm.DB) *gorm.DB { return tx.Delete(value, conds...) })
}

func (d DB) Find(dest any, conds ...any) ORM {
	return d.exec("select", func(tx *gorm.DB) *gorm.DB { return tx.Find(dest, conds...) })
}

func (d DB) First(dest any, conds ...any) ORM {
	return d.exec("select", func(tx *gorm.DB) *gorm.DB { return tx.First(dest, conds...) })
}

func (d DB) Count(count *int64) ORM {
	return d.exec("count", func(tx *gorm.DB) *gorm.DB { return tx.Count(count) })
}

func (d DB) Model(value any) ORM {
	return d.chain(d.DB.Model(value))
}

func (d DB) Order(value any) ORM {
	return d.chain(d.DB.Order(value))
}

func (d DB) Where(query any, args ...any) ORM {
	return d.chain(d.DB.Where(query, args...))
}

func (d DB) WithContext(ctx context.Context) ORM {
	if d.timeout <= 0 {
		return d.chain(d.DB.WithContext(ctx))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, d.timeout)
	// the chain has no end hook, release the timer once the context is done
	go func() {
		<-timeoutCtx.Done()
		cancel()
	}()
	return d.chain(d.DB.WithContext(timeoutCtx))
}

func (d DB) Transaction(fc func(ORM) error, opts ...*sql.TxOptions) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return fc(d.chain(tx))
	}, opts...)
}
