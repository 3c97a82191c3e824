package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/homevisit/phleb-router/entities"
)

// SQLiteTechnicianRepository is the sqlite-backed TechnicianRepository.
type SQLiteTechnicianRepository struct {
	db *sql.DB
}

// SQLiteCatchmentRepository is the sqlite-backed CatchmentRepository.
type SQLiteCatchmentRepository struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at dsn and runs migrations,
// returning both repositories sharing the connection.
func Open(dsn string) (*SQLiteTechnicianRepository, *SQLiteCatchmentRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate db: %w", err)
	}
	return &SQLiteTechnicianRepository{db: db}, &SQLiteCatchmentRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS technician (
			id                 TEXT PRIMARY KEY,
			home_lat           REAL NOT NULL,
			home_lon           REAL NOT NULL,
			shift_start_minute INTEGER NOT NULL,
			capacity           INTEGER NOT NULL,
			cost               INTEGER NOT NULL,
			service_rating     REAL NOT NULL,
			expertise          TEXT NOT NULL,
			gender             INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS catchment (
			id  TEXT PRIMARY KEY,
			lat REAL NOT NULL,
			lon REAL NOT NULL
		);
	`)
	return err
}

// ListTechnicians implements TechnicianRepository.
func (r *SQLiteTechnicianRepository) ListTechnicians(ctx context.Context) ([]entities.Technician, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, home_lat, home_lon, shift_start_minute, capacity, cost, service_rating, expertise, gender FROM technician ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	defer rows.Close()

	var out []entities.Technician
	for rows.Next() {
		var (
			id                   string
			homeLat, homeLon     float64
			shiftStart, capacity int
			cost                 int
			serviceRating        float64
			expertiseCSV         string
			gender               int
		)
		if err := rows.Scan(&id, &homeLat, &homeLon, &shiftStart, &capacity, &cost, &serviceRating, &expertiseCSV, &gender); err != nil {
			return nil, fmt.Errorf("scan technician: %w", err)
		}

		heldSkills := parseSkillSet(expertiseCSV)
		tech, err := entities.NewTechnician(
			id,
			entities.Coordinate{Lat: homeLat, Lon: homeLon},
			shiftStart, capacity, cost, serviceRating,
			heldSkills, entities.DefaultSkillRank, entities.Gender(gender),
		)
		if err != nil {
			return nil, fmt.Errorf("reconstruct technician %s: %w", id, err)
		}
		out = append(out, tech)
	}
	return out, rows.Err()
}

// UpsertTechnician implements TechnicianRepository.
func (r *SQLiteTechnicianRepository) UpsertTechnician(ctx context.Context, t entities.Technician) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO technician (id, home_lat, home_lon, shift_start_minute, capacity, cost, service_rating, expertise, gender)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			home_lat=excluded.home_lat, home_lon=excluded.home_lon,
			shift_start_minute=excluded.shift_start_minute, capacity=excluded.capacity,
			cost=excluded.cost, service_rating=excluded.service_rating,
			expertise=excluded.expertise, gender=excluded.gender
	`, t.ID, t.Home.Lat, t.Home.Lon, t.ShiftStartMinute, t.Capacity, t.Cost, t.ServiceRating, formatSkillSet(t.Expertise), int(t.Gender))
	if err != nil {
		return fmt.Errorf("upsert technician %s: %w", t.ID, err)
	}
	return nil
}

// ListCatchments implements CatchmentRepository.
func (r *SQLiteCatchmentRepository) ListCatchments(ctx context.Context) ([]entities.Catchment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, lat, lon FROM catchment ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list catchments: %w", err)
	}
	defer rows.Close()

	var out []entities.Catchment
	for rows.Next() {
		var id string
		var lat, lon float64
		if err := rows.Scan(&id, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scan catchment: %w", err)
		}
		c, err := entities.NewCatchment(id, entities.Coordinate{Lat: lat, Lon: lon})
		if err != nil {
			return nil, fmt.Errorf("reconstruct catchment %s: %w", id, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpsertCatchment implements CatchmentRepository.
func (r *SQLiteCatchmentRepository) UpsertCatchment(ctx context.Context, c entities.Catchment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO catchment (id, lat, lon) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET lat=excluded.lat, lon=excluded.lon
	`, c.ID, c.Coordinate.Lat, c.Coordinate.Lon)
	if err != nil {
		return fmt.Errorf("upsert catchment %s: %w", c.ID, err)
	}
	return nil
}

func formatSkillSet(s entities.SkillSet) string {
	skills := s.Slice(entities.DefaultSkillRank)
	parts := make([]string, len(skills))
	for i, sk := range skills {
		parts[i] = string(sk)
	}
	return strings.Join(parts, ",")
}

func parseSkillSet(csv string) entities.SkillSet {
	if csv == "" {
		return entities.NewSkillSet()
	}
	parts := strings.Split(csv, ",")
	skills := make([]entities.Skill, len(parts))
	for i, p := range parts {
		skills[i] = entities.Skill(p)
	}
	return entities.NewSkillSet(skills...)
}
