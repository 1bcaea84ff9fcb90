package bracketdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
)

// Tournament is one bracket's identity row. The tree itself lives in
// bracket_snapshots; this row only carries what never changes after
// creation plus the lifecycle status.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID              uuid.UUID `bun:"id,pk,type:uuid"`
	Name            string    `bun:"name,notnull"`
	SlotCount       int       `bun:"slot_count,notnull"`
	CompetitorCount int       `bun:"competitor_count,notnull"`
	Status          string    `bun:"status,notnull,default:'active'"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Tournament lifecycle states.
const (
	TournamentStatusActive   = "active"
	TournamentStatusComplete = "complete"
)

// BracketSnapshot is one immutable bracket value. Every applied result
// appends a new snapshot; undo drops the latest one. Seq 0 is the
// freshly built tree.
type BracketSnapshot struct {
	bun.BaseModel `bun:"table:bracket_snapshots,alias:bs"`

	ID           int64                 `bun:"id,pk,autoincrement"`
	TournamentID uuid.UUID             `bun:"tournament_id,notnull,type:uuid"`
	Seq          int                   `bun:"seq,notnull"`
	Bracket      bracketdomain.Bracket `bun:"bracket,notnull,type:jsonb"`
	CreatedAt    time.Time             `bun:"created_at,notnull,default:current_timestamp"`
}
