package bracketmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating bracket tables...")

		if _, err := db.NewCreateTable().Model((*bracketdb.Tournament)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*bracketdb.BracketSnapshot)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.ExecContext(ctx, `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_bracket_snapshots_tournament_seq
			ON bracket_snapshots(tournament_id, seq);
		`); err != nil {
			return fmt.Errorf("failed to add snapshot index: %w", err)
		}

		fmt.Println("Bracket tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping bracket tables...")

		if _, err := db.NewDropTable().Model((*bracketdb.BracketSnapshot)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*bracketdb.Tournament)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Bracket tables dropped successfully!")
		return nil
	})
}
