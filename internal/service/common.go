package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seniorcare-lead-api/internal/dto"
	"seniorcare-lead-api/internal/repository"
	"seniorcare-lead-api/internal/response"
)

// Transactor runs fn inside one database transaction.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// lookupErr maps a repository read error to code when the row is missing.
func lookupErr(code response.Code, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.New(code)
	}
	return response.Wrap(fmt.Sprintf("Failed to load %s", entityName(code)), err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// entityName turns "Lead not found." into "Lead".
func entityName(code response.Code) string {
	msg := response.Lookup(code).Message
	if name := strings.TrimSuffix(msg, " not found."); name != msg {
		return name
	}
	return "record"
}

func gridQuery(req dto.GridRequest) repository.GridQuery {
	return repository.GridQuery{Page: req.Page, PerPage: req.PerPage, Search: req.Search}.Normalize()
}

func toGrid[T any](items []T, total int64, q repository.GridQuery) *dto.GridResponse[T] {
	resp := dto.NewGridResponse(items, total, q.Page, q.PerPage)
	return &resp
}

// dedupe drops duplicate and nil ids while keeping order.
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// checkPhones enforces the single primary phone rule before any phone row
// is written.
func checkPhones(phones []dto.PhoneRequest) error {
	if dto.PrimaryCount(phones) > 1 {
		return response.New(response.CodePhoneSinglePrimary)
	}
	return nil
}

// removeAll deletes ids through del inside tx. An empty id list or any id
// missing from the space fails with notFound and deletes nothing.
func removeAll(ctx context.Context, tx Transactor, ids []uuid.UUID, notFound response.Code,
	del func(ctx context.Context, ids []uuid.UUID) (int64, error)) error {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return response.New(notFound)
	}
	return tx.Do(ctx, func(ctx context.Context) error {
		n, err := del(ctx, ids)
		if err != nil {
			var appErr *response.AppError
			if errors.As(err, &appErr) {
				return err
			}
			return response.Wrap(fmt.Sprintf("Failed to delete %s", entityName(notFound)), err)
		}
		if n != int64(len(ids)) {
			return response.New(notFound)
		}
		return nil
	})
}

// relatedInfo counts references to every id across deps.
func relatedInfo(ctx context.Context, related repository.RelatedRepository, deps []repository.Dependent, ids []uuid.UUID) ([]dto.RelatedInfo, error) {
	infos := make([]dto.RelatedInfo, len(ids))
	for i, id := range ids {
		infos[i] = dto.RelatedInfo{ID: id, Related: map[string]int64{}}
	}
	for _, dep := range deps {
		counts, err := related.Count(ctx, dep, ids)
		if err != nil {
			return nil, response.Wrap("Failed to count related records", err)
		}
		key := dep.Table + "." + dep.Column
		for i := range infos {
			n := counts[infos[i].ID]
			infos[i].Related[key] += n
			infos[i].Total += n
		}
	}
	return infos, nil
}

// requireIDs checks that every id resolves through find inside the space.
func requireIDs[T any](ctx context.Context, ids []uuid.UUID, code response.Code,
	find func(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]T, error), spaceID uuid.UUID) ([]T, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []T{}, nil
	}
	items, err := find(ctx, spaceID, ids)
	if err != nil {
		return nil, response.Wrap(fmt.Sprintf("Failed to load %s", entityName(code)), err)
	}
	if len(items) != len(ids) {
		return nil, response.New(code)
	}
	return items, nil
}
