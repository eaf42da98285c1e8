package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id               TEXT        PRIMARY KEY,
  user_name        TEXT        NOT NULL,
  email            TEXT        NOT NULL UNIQUE,
  address          TEXT        NOT NULL DEFAULT '',
  phone_number     TEXT        NOT NULL DEFAULT '',
  status           TEXT        NOT NULL DEFAULT '',
  profile_pic_path TEXT        NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_pets",
		SQL: `CREATE TABLE IF NOT EXISTS pets (
  id              UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  pet_name        TEXT             NOT NULL,
  sex             TEXT             NOT NULL,
  breed           TEXT             NOT NULL,
  weight          DOUBLE PRECISION NOT NULL DEFAULT 0,
  date_of_birth   TIMESTAMPTZ      NOT NULL,
  medic_condition TEXT             NOT NULL DEFAULT '',
  markings        TEXT             NOT NULL DEFAULT '',
  coat_color      TEXT             NOT NULL DEFAULT '',
  owner_id        TEXT             NOT NULL REFERENCES users (id),
  image_path      TEXT             NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_index_pets_owner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_pets_owner_id ON pets (owner_id);`,
	},
	{
		Name: "create_table_adoptions",
		SQL: `CREATE TABLE IF NOT EXISTS adoptions (
  id            UUID  PRIMARY KEY DEFAULT uuid_generate_v4(),
  pet_name      TEXT  NOT NULL,
  sex           TEXT  NOT NULL,
  breed         TEXT  NOT NULL,
  age           TEXT  NOT NULL DEFAULT '',
  species       TEXT  NOT NULL DEFAULT '',
  description   TEXT  NOT NULL DEFAULT '',
  coat_color    TEXT  NOT NULL DEFAULT '',
  image_paths   JSONB NOT NULL DEFAULT '[]',
  owner_id      TEXT  NOT NULL REFERENCES users (id),
  contact_name  TEXT  NOT NULL DEFAULT '',
  contact_phone TEXT  NOT NULL DEFAULT '',
  contact_email TEXT  NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_index_adoptions_owner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_adoptions_owner_id ON adoptions (owner_id);`,
	},
	{
		Name: "create_table_missing_reports",
		SQL: `CREATE TABLE IF NOT EXISTS missing_reports (
  id                    UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  pet_id                UUID             NOT NULL REFERENCES pets (id),
  owner_id              TEXT             NOT NULL REFERENCES users (id),
  active                BOOLEAN          NOT NULL DEFAULT TRUE,
  last_seen_at          TIMESTAMPTZ      NOT NULL,
  last_seen_description TEXT             NOT NULL DEFAULT '',
  last_seen_image_path  TEXT             NOT NULL DEFAULT '',
  last_seen_lat         DOUBLE PRECISION NOT NULL,
  last_seen_lng         DOUBLE PRECISION NOT NULL,
  published_at          TIMESTAMPTZ      NOT NULL,
  sighting_ids          JSONB            NOT NULL DEFAULT '[]'
);`,
	},
	{
		// One active report per pet, enforced by the store itself.
		Name: "create_unique_index_missing_reports_active_pet",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uniq_missing_reports_active_pet ON missing_reports (pet_id) WHERE active;`,
	},
	{
		Name: "create_table_sightings",
		SQL: `CREATE TABLE IF NOT EXISTS sightings (
  id          UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  missing_id  UUID             NOT NULL REFERENCES missing_reports (id),
  reporter_id TEXT             NOT NULL REFERENCES users (id),
  occurred_at TIMESTAMPTZ      NOT NULL,
  description TEXT             NOT NULL DEFAULT '',
  image_path  TEXT             NOT NULL DEFAULT '',
  lat         DOUBLE PRECISION NOT NULL,
  lng         DOUBLE PRECISION NOT NULL
);`,
	},
	{
		Name: "create_table_articles",
		SQL: `CREATE TABLE IF NOT EXISTS articles (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title          TEXT        NOT NULL,
  body           TEXT        NOT NULL,
  category       TEXT        NOT NULL DEFAULT '',
  thumbnail_path TEXT        NOT NULL DEFAULT '',
  published_at   TIMESTAMPTZ NOT NULL,
  poster_id      TEXT        NOT NULL REFERENCES users (id)
);`,
	},
	{
		Name: "create_index_articles_poster_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_articles_poster_id ON articles (poster_id);`,
	},
	{
		Name: "create_table_locations",
		SQL: `CREATE TABLE IF NOT EXISTS locations (
  id        UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  latitude  DOUBLE PRECISION NOT NULL,
  longitude DOUBLE PRECISION NOT NULL,
  address   TEXT             NOT NULL DEFAULT ''
);`,
	},
	{
		// Dedup is by exact coordinate equality.
		Name: "create_unique_index_locations_coordinates",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uniq_locations_coordinates ON locations (latitude, longitude);`,
	},
	{
		Name: "create_table_amenities",
		SQL: `CREATE TABLE IF NOT EXISTS amenities (
  amenity_id    TEXT             PRIMARY KEY,
  name          TEXT             NOT NULL,
  open_now      BOOLEAN          NOT NULL DEFAULT FALSE,
  opening_hours JSONB            NOT NULL DEFAULT '[]',
  phone         TEXT             NOT NULL DEFAULT 'N/A',
  website       TEXT             NOT NULL DEFAULT 'N/A',
  rating        DOUBLE PRECISION NOT NULL DEFAULT 0,
  photo         TEXT             NOT NULL DEFAULT '',
  location_id   UUID             REFERENCES locations (id),
  cached_at     TIMESTAMPTZ      NOT NULL
);`,
	},
	{
		Name: "create_index_amenities_cached_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_amenities_cached_at ON amenities (cached_at);`,
	},
}

// EnsureMigrated checks if the 'users' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.users') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
