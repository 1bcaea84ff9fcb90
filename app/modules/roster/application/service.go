package rosterservice

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	"github.com/courtside-club/bracket-bot/app/modules/roster/application/parsers"
	rosterdomain "github.com/courtside-club/bracket-bot/app/modules/roster/domain"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
)

// ImportResult is the outcome of a roster file import, ready to hand
// to the bracket module.
type ImportResult struct {
	Entries     int                        `json:"entries"`
	PoolCount   int                        `json:"pool_count"`
	Competitors []bracketdomain.Competitor `json:"competitors"`
}

// Service is the roster intake surface.
type Service interface {
	ImportRoster(ctx context.Context, filename string, data []byte) (ImportResult, error)
}

// RosterService parses uploaded roster files and assigns pools.
type RosterService struct {
	factory parsers.ParserFactory
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRosterService creates a new RosterService.
func NewRosterService(factory parsers.ParserFactory, logger *slog.Logger, tracer trace.Tracer) *RosterService {
	return &RosterService{
		factory: factory,
		logger:  logger,
		tracer:  tracer,
	}
}

// ImportRoster parses the uploaded file, validates the entries and
// deals them into pools.
func (s *RosterService) ImportRoster(ctx context.Context, filename string, data []byte) (ImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "ImportRoster", trace.WithAttributes(
		attribute.String("filename", filename),
	))
	defer span.End()

	parser, err := s.factory.GetParser(filename)
	if err != nil {
		return ImportResult{}, err
	}

	entries, err := parser.Parse(data)
	if err != nil {
		span.RecordError(err)
		return ImportResult{}, fmt.Errorf("failed to parse roster %q: %w", filename, err)
	}

	if err := rosterdomain.Validate(entries); err != nil {
		span.RecordError(err)
		return ImportResult{}, err
	}

	competitors := rosterdomain.AssignPools(entries)
	s.logger.InfoContext(ctx, "Roster imported",
		attr.String("filename", filename),
		attr.Int("entries", len(entries)),
		attr.Int("pools", rosterdomain.PoolCount(len(entries))),
	)

	return ImportResult{
		Entries:     len(entries),
		PoolCount:   rosterdomain.PoolCount(len(entries)),
		Competitors: competitors,
	}, nil
}
