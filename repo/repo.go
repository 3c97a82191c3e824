// Package repo provides the persistent store for technicians and
// catchments (spec §9: "a persistent key-value store of technicians ...
// accessed only through a repository interface"), backed by
// modernc.org/sqlite (pure Go, no cgo). The engine never imports sql.DB
// directly; it depends only on the TechnicianRepository/CatchmentRepository
// interfaces below.
package repo

import (
	"context"

	"github.com/homevisit/phleb-router/entities"
)

// TechnicianRepository is the thin collaborator the engine calls to load
// the day's technician roster.
type TechnicianRepository interface {
	ListTechnicians(ctx context.Context) ([]entities.Technician, error)
	UpsertTechnician(ctx context.Context, t entities.Technician) error
}

// CatchmentRepository is the thin collaborator the engine calls to load
// configured end catchments.
type CatchmentRepository interface {
	ListCatchments(ctx context.Context) ([]entities.Catchment, error)
	UpsertCatchment(ctx context.Context, c entities.Catchment) error
}
