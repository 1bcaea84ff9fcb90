package bracketdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
)

// BracketDBImpl is the bun-backed Repository.
type BracketDBImpl struct {
	DB *bun.DB

	// HistoryBound caps how many snapshots are kept per tournament.
	// Zero means unbounded. Seq 0 (the initial build) is never pruned.
	HistoryBound int
}

func (db *BracketDBImpl) CreateTournament(ctx context.Context, tournament *Tournament, bracket bracketdomain.Bracket) error {
	return db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(tournament).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert tournament %s: %w", tournament.ID, err)
		}

		snapshot := BracketSnapshot{
			TournamentID: tournament.ID,
			Seq:          0,
			Bracket:      bracket,
		}
		if _, err := tx.NewInsert().Model(&snapshot).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert initial snapshot for %s: %w", tournament.ID, err)
		}
		return nil
	})
}

func (db *BracketDBImpl) GetTournament(ctx context.Context, id uuid.UUID) (*Tournament, error) {
	var tournament Tournament
	err := db.DB.NewSelect().
		Model(&tournament).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to fetch tournament %s: %w", id, err)
	}
	return &tournament, nil
}

func (db *BracketDBImpl) SetTournamentStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := db.DB.NewUpdate().
		Model((*Tournament)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update status for tournament %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

func (db *BracketDBImpl) LatestBracket(ctx context.Context, tournamentID uuid.UUID) (bracketdomain.Bracket, int, error) {
	var snapshot BracketSnapshot
	err := db.DB.NewSelect().
		Model(&snapshot).
		Where("tournament_id = ?", tournamentID).
		Order("seq DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bracketdomain.Bracket{}, 0, ErrNoSnapshots
		}
		return bracketdomain.Bracket{}, 0, fmt.Errorf("failed to fetch latest snapshot for %s: %w", tournamentID, err)
	}
	return snapshot.Bracket, snapshot.Seq, nil
}

func (db *BracketDBImpl) AppendSnapshot(ctx context.Context, tournamentID uuid.UUID, bracket bracketdomain.Bracket) (int, error) {
	var seq int
	err := db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var latest BracketSnapshot
		err := tx.NewSelect().
			Model(&latest).
			Where("tournament_id = ?", tournamentID).
			Order("seq DESC").
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoSnapshots
			}
			return fmt.Errorf("failed to fetch latest seq for %s: %w", tournamentID, err)
		}

		seq = latest.Seq + 1
		snapshot := BracketSnapshot{
			TournamentID: tournamentID,
			Seq:          seq,
			Bracket:      bracket,
		}
		if _, err := tx.NewInsert().Model(&snapshot).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert snapshot %d for %s: %w", seq, tournamentID, err)
		}

		if db.HistoryBound > 0 && seq > db.HistoryBound {
			// Keep seq 0 plus the newest HistoryBound entries.
			if _, err := tx.NewDelete().
				Model((*BracketSnapshot)(nil)).
				Where("tournament_id = ?", tournamentID).
				Where("seq > 0").
				Where("seq <= ?", seq-db.HistoryBound).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to prune snapshots for %s: %w", tournamentID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (db *BracketDBImpl) PopSnapshot(ctx context.Context, tournamentID uuid.UUID) (bracketdomain.Bracket, int, error) {
	var bracket bracketdomain.Bracket
	var seq int
	err := db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var snapshots []BracketSnapshot
		err := tx.NewSelect().
			Model(&snapshots).
			Where("tournament_id = ?", tournamentID).
			Order("seq DESC").
			Limit(2).
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch snapshots for %s: %w", tournamentID, err)
		}
		if len(snapshots) < 2 {
			return ErrNoSnapshots
		}

		if _, err := tx.NewDelete().
			Model((*BracketSnapshot)(nil)).
			Where("tournament_id = ?", tournamentID).
			Where("seq = ?", snapshots[0].Seq).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete snapshot %d for %s: %w", snapshots[0].Seq, tournamentID, err)
		}

		bracket = snapshots[1].Bracket
		seq = snapshots[1].Seq
		return nil
	})
	if err != nil {
		return bracketdomain.Bracket{}, 0, err
	}
	return bracket, seq, nil
}
