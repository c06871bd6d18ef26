// Package parserpool provides a pool of gnparser instances for concurrent
// name parsing. This is a pure package, parsing is computation, not I/O.
package parserpool

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides a pool of gnparser instances for concurrent parsing.
// It maintains separate pools for botanical and zoological nomenclatural
// codes.
type Pool interface {
	// Parse parses a scientific name string using the specified
	// nomenclatural code. This method is safe for concurrent use.
	Parse(nameString string, code nomcode.Code) (parsed.Parsed, error)

	// Epithet returns the canonical form of a scientific name with the
	// genus prefix removed. The kingdom selects the nomenclatural code.
	// Returns false when the name cannot be parsed or has no epithet.
	Epithet(name, genus, kingdom string) (string, bool)

	// Close shuts down the parser pools and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	botanicalCh  chan gnparser.GNparser
	zoologicalCh chan gnparser.GNparser
	poolSize     int
}

// NewPool creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	botanicalCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	zoologicalCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Zoological))

	return &PoolImpl{
		botanicalCh:  gnparser.NewPool(botanicalCfg, poolSize),
		zoologicalCh: gnparser.NewPool(zoologicalCfg, poolSize),
		poolSize:     poolSize,
	}
}

// CodeByKingdom returns the nomenclatural code that governs names of a
// kingdom. Plants, fungi and chromists follow the botanical code.
func CodeByKingdom(kingdom string) nomcode.Code {
	switch strings.ToLower(strings.TrimSpace(kingdom)) {
	case "plantae", "fungi", "chromista":
		return nomcode.Botanical
	default:
		return nomcode.Zoological
	}
}

// Parse parses a scientific name string using the specified nomenclatural
// code. It blocks while all parsers of the code are busy.
func (p *PoolImpl) Parse(
	nameString string,
	code nomcode.Code,
) (parsed.Parsed, error) {
	var ch chan gnparser.GNparser
	switch code {
	case nomcode.Botanical:
		ch = p.botanicalCh
	case nomcode.Zoological:
		ch = p.zoologicalCh
	default:
		return parsed.Parsed{}, fmt.Errorf("unsupported nomenclatural code: %v", code)
	}

	parser := <-ch
	result := parser.ParseName(nameString)
	ch <- parser

	return result, nil
}

func (p *PoolImpl) Epithet(name, genus, kingdom string) (string, bool) {
	genus = strings.TrimSpace(genus)
	if genus == "" {
		return "", false
	}
	res, err := p.Parse(name, CodeByKingdom(kingdom))
	if err != nil || !res.Parsed || res.Canonical == nil {
		return "", false
	}

	can := res.Canonical.Simple
	if !strings.HasPrefix(can, genus+" ") {
		return "", false
	}
	epithet := strings.TrimSpace(strings.TrimPrefix(can, genus))
	return epithet, epithet != ""
}

// Close shuts down both parser pools and releases resources.
func (p *PoolImpl) Close() {
	if p.botanicalCh != nil {
		close(p.botanicalCh)
		for range p.botanicalCh {
		}
	}

	if p.zoologicalCh != nil {
		close(p.zoologicalCh)
		for range p.zoologicalCh {
		}
	}
}
