// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// tracer returns the span helper for db, labelled with its dialect.
func tracer(db *gorm.DB) *observability.TraceLayer {
	system := "unknown"
	if db != nil && db.Dialector != nil {
		system = db.Dialector.Name()
	}
	return observability.GetTraceLayer(system)
}

// endSpan closes a repository span. Only internal failures mark the span as
// errored; not-found and conflict outcomes are normal results.
func endSpan(span trace.Span, err error) {
	var appErr *models.AppError
	if err != nil && errors.As(err, &appErr) && appErr.Code != models.CodeInternal {
		err = nil
	}
	observability.EndSpan(span, err)
}

// paginate counts q, then loads one page of it. q must carry a Model and be
// safe to reuse (built from a Session). scopes apply to the page query only.
func paginate[T any](q *gorm.DB, req models.PageRequest, order string, scopes ...func(*gorm.DB) *gorm.DB) (models.Page[T], error) {
	req = req.Normalize()

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return models.Page[T]{}, models.NewInternalError(err)
	}

	items := make([]T, 0, req.PerPage)
	if int64(req.Offset()) < total {
		if err := q.Scopes(scopes...).
			Order(order).
			Limit(req.PerPage).
			Offset(req.Offset()).
			Find(&items).Error; err != nil {
			return models.Page[T]{}, models.NewInternalError(err)
		}
	}

	return models.NewPage(items, total, req), nil
}

// notFoundOr maps gorm.ErrRecordNotFound to a NotFound for resource and any
// other failure to an internal error.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource)
	}
	return models.NewInternalError(err)
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
