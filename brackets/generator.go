package brackets

import (
	"fmt"

	"github.com/gonect/foosball-ladder/models"
)

// Generator builds a full bracket from an ordered list of team ids.
// The order is the seeding: index 0 is the top seed.
type Generator interface {
	Generate(seededTeamIDs []string) ([]models.TournamentMatchSlot, error)

	Name() string
}

// ForFormat returns the generator for a bracket format name.
func ForFormat(format string) (Generator, error) {
	switch format {
	case FormatSingleElimination:
		return NewSingleEliminationGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported bracket format %q", format)
	}
}
