package ioenrich

import (
	"strings"

	"github.com/ecoglobe/biosync/pkg/sources"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/k3a/html2text"
)

// describe converts the documentation of an assessment into a species
// description. Blank fields stay empty.
func describe(doc sources.Documentation) species.Description {
	return species.Description{
		Rationale:           plain(doc.Rationale),
		Habitat:             plain(doc.Habitat),
		Threats:             plain(doc.Threats),
		Population:          plain(doc.Population),
		PopulationTrend:     plain(doc.PopulationTrend),
		Range:               plain(doc.Range),
		UseTrade:            plain(doc.UseTrade),
		ConservationActions: plain(doc.ConservationActions),
	}
}

// plain strips HTML markup and collapses whitespace.
func plain(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.Join(strings.Fields(html2text.HTML2Text(s)), " ")
}
