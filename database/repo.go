package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPageSize     = 10
	defaultTimelineSize = 50

	newestFirst   = "created_at DESC, id DESC"
	timelineOrder = "order_index ASC, start_date DESC, id ASC"
)

// now is the clock used for every stored timestamp.
var now = func() time.Time {
	return time.Now().UTC()
}

// listPage runs the page and count statements of q concurrently and
// assembles the pagination envelope.
func listPage[T any](ctx context.Context, engine Engine, q SelectQuery, scan func(scanner) (T, error)) (*models.Page[T], error) {
	d := engine.Dialect()
	pageStmt, pageArgs := q.Build(d)
	countStmt, countArgs := q.BuildCount(d)

	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := engine.QueryAll(gctx, pageStmt, pageArgs...)
		if err != nil {
			return err
		}
		items, err = collect(rows, scan)
		return err
	})
	g.Go(func() error {
		return engine.QueryOne(gctx, countStmt, countArgs...).Scan(&total)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Page[T]{
		Items:      items,
		TotalCount: int(total),
		TotalPages: TotalPages(total, q.PageSize),
	}, nil
}

// findOne runs a single row query and maps an empty result to a not-found
// error for entity.
func findOne[T any](ctx context.Context, engine Engine, entity, stmt string, args []any, scan func(scanner) (T, error)) (*T, error) {
	item, err := scan(engine.QueryOne(ctx, stmt, args...))
	if errors.Is(err, ErrNoRows) {
		return nil, errs.NewNotFound(entity)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", entity, err)
	}
	return &item, nil
}

// insertAndReload inserts fields into table and reads the row back on the
// same connection.
func insertAndReload[T any](ctx context.Context, engine Engine, entity, table string, fields []Field, reload func(Engine) (*T, error)) (*T, error) {
	var created *T
	err := engine.WithConnection(ctx, func(conn Engine) error {
		stmt, args, err := BuildInsert(conn.Dialect(), table, fields)
		if err != nil {
			return err
		}
		affected, err := conn.Run(ctx, stmt, args...)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errs.NewNoRowsAffectedError("create", entity)
		}
		created, err = reload(conn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// updateAndReload applies fields to the row id and reads it back. An empty
// field set returns errs.ErrNoChanges without touching the database, so a
// no-op does not check that id exists.
func updateAndReload[T any](ctx context.Context, engine Engine, entity, table string, columns map[string]string, fields []Field, id string, reload func(Engine) (*T, error)) (*T, error) {
	return updateAndReloadIf(ctx, engine, entity, table, columns, fields, id, nil, reload)
}

// rowGuard is an extra condition the stored row must satisfy for an update
// to apply. err is returned when the row exists but fails the condition.
type rowGuard struct {
	where Predicate
	err   error
}

// updateAndReloadIf is updateAndReload with an optional guard evaluated by
// the UPDATE itself, so the check and the write cannot be split by a
// concurrent writer.
func updateAndReloadIf[T any](ctx context.Context, engine Engine, entity, table string, columns map[string]string, fields []Field, id string, guard *rowGuard, reload func(Engine) (*T, error)) (*T, error) {
	if len(fields) == 0 {
		return nil, errs.ErrNoChanges
	}

	var updated *T
	err := engine.WithConnection(ctx, func(conn Engine) error {
		stmt, args, _, err := BuildUpdate(conn.Dialect(), table, columns, fields, id, now())
		if err != nil {
			return err
		}
		if guard != nil && guard.where != nil {
			var sb strings.Builder
			sb.WriteString(stmt)
			sb.WriteString(" AND ")
			guard.where.write(&sb, conn.Dialect(), &args)
			stmt = sb.String()
		}
		affected, err := conn.Run(ctx, stmt, args...)
		if err != nil {
			return err
		}
		if affected == 0 {
			if guard == nil || guard.where == nil {
				return errs.NewNotFound(entity)
			}
			if _, err := reload(conn); err != nil {
				return err
			}
			return guard.err
		}
		updated, err = reload(conn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// deleteByID reports whether exactly one row was removed.
func deleteByID(ctx context.Context, engine Engine, table, id string) (bool, error) {
	stmt := "DELETE FROM " + table + " WHERE id = " + engine.Dialect().Placeholder(1)
	affected, err := engine.Run(ctx, stmt, id)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// uniqueViolation rewraps a unique constraint failure with the entity and
// field it concerns. Other errors are returned unchanged.
func uniqueViolation(err error, entity, field string) error {
	if err == nil || !errs.IsUniqueConstraintViolationError(err) {
		return err
	}
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	return errs.NewUniqueConstraintViolationError(entity, field, err)
}

// incrementColumn returns the counter column for a reaction.
func incrementColumn(kind models.Reaction) (string, error) {
	switch kind {
	case models.ReactionLike:
		return "likes_count", nil
	case models.ReactionDislike:
		return "dislikes_count", nil
	}
	return "", errs.NewInvalidFieldError("type", "must be like or dislike")
}

// incrementAndReload bumps a reaction counter on table relative to its
// stored value, then reads the row back on the same connection.
func incrementAndReload[T any](ctx context.Context, engine Engine, entity, table, id string, kind models.Reaction, reload func(Engine) (*T, error)) (*T, error) {
	column, err := incrementColumn(kind)
	if err != nil {
		return nil, err
	}

	var updated *T
	err = engine.WithConnection(ctx, func(conn Engine) error {
		stmt := "UPDATE " + table + " SET " + column + " = " + column + " + 1 WHERE id = " + conn.Dialect().Placeholder(1)
		affected, err := conn.Run(ctx, stmt, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errs.NewNotFound(entity)
		}
		updated, err = reload(conn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// requireText rejects a blank required string.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewMissingRequiredFieldError(field)
	}
	return nil
}

type dateRange struct {
	start *string
	end   *string
}

// dateRangeGuard keeps the stored start_date/end_date pair ordered when a
// patch changes only one side. It returns nil when no guard is needed.
func dateRangeGuard(start models.Optional[string], end models.Optional[*string]) *rowGuard {
	var r dateRange
	switch {
	case start.Set && !end.Set:
		r.start = &start.Value
	case end.Set && !start.Set && end.Value != nil && *end.Value != "":
		r.end = end.Value
	default:
		return nil
	}
	return &rowGuard{
		where: r,
		err:   errs.NewInvalidFieldError("endDate", "must not be before startDate"),
	}
}

func (r dateRange) write(sb *strings.Builder, d Dialect, args *[]any) {
	if r.start != nil {
		*args = append(*args, *r.start)
		sb.WriteString("(end_date IS NULL OR end_date = '' OR end_date >= ")
		sb.WriteString(d.Placeholder(len(*args)))
		sb.WriteString(")")
		return
	}
	*args = append(*args, *r.end)
	sb.WriteString("start_date <= ")
	sb.WriteString(d.Placeholder(len(*args)))
}

// checkDateRange rejects an end date before the start date. Dates are
// ISO formatted so they order as strings.
func checkDateRange(start string, end *string) error {
	if end == nil || *end == "" {
		return nil
	}
	if *end < start {
		return errs.NewInvalidFieldError("endDate", "must not be before startDate")
	}
	return nil
}
