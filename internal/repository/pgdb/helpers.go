package pgdb

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DRSN-tech/match-engine/pkg/e"
)

// postgresDuplicate сообщает, является ли ошибка нарушением уникальности (23505).
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// mapStorageError помечает сетевые сбои соединения с БД как e.ErrStorageUnavailable:
// такие ошибки системные, работу по ним нельзя терять. Ответ сервера
// (*pgconn.PgError) — ошибка запроса, она проходит как есть.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", e.ErrStorageUnavailable, err)
	}

	return err
}
