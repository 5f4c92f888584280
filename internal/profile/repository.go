package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	profiledb "nutriplan/internal/profile/profile_db"
)

// Repository is a database-backed store for user profiles. The planning
// pipeline only reads from it; Upsert exists for the seed path.
type Repository struct {
	queries *profiledb.Queries
	db      *sql.DB
}

// NewRepository creates a new profile Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: profiledb.New(d),
		db:      d,
	}
}

// FindByUser retrieves a user's profile. Returns nil when none exists.
func (r *Repository) FindByUser(ctx context.Context, userID string) (*Profile, error) {
	dbProfile, err := r.queries.GetProfileByUserID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile for user %s: %w", userID, err)
	}

	var p Profile
	if err := json.Unmarshal([]byte(dbProfile.Data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile JSON: %w", err)
	}
	p.UserID = dbProfile.UserID

	return &p, nil
}

// Upsert saves a user's profile document.
func (r *Repository) Upsert(ctx context.Context, p Profile) error {
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile to JSON: %w", err)
	}

	return r.queries.UpsertProfile(ctx, profiledb.UpsertProfileParams{
		UserID:    p.UserID,
		Data:      string(profileJSON),
		UpdatedAt: time.Now().UTC(),
	})
}
