package iotesting

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ecoglobe/biosync/pkg/cluster"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/ecoglobe/biosync/pkg/store"
)

// SpeciesStore is an in-memory store.SpeciesStore. It keeps the unique
// taxon id constraint of the database.
type SpeciesStore struct {
	mu      sync.Mutex
	byID    map[string]species.Species
	byTaxon map[string]string

	// Writes counts successful mutations.
	Writes int

	// BeforeCreate is called before a species is inserted. Tests use it to
	// insert a concurrent copy of the species.
	BeforeCreate func(sp species.Species)

	// Err, if set, is returned by every method.
	Err error
}

var _ store.SpeciesStore = (*SpeciesStore)(nil)

// NewSpeciesStore creates an empty in-memory species store.
func NewSpeciesStore() *SpeciesStore {
	return &SpeciesStore{
		byID:    make(map[string]species.Species),
		byTaxon: make(map[string]string),
	}
}

// Seed inserts species bypassing the unique check hooks.
func (s *SpeciesStore) Seed(spp ...species.Species) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sp := range spp {
		s.byID[sp.ID] = cloneSpecies(sp)
		s.byTaxon[sp.TaxonID] = sp.ID
	}
}

// All returns all species ordered by taxon id.
func (s *SpeciesStore) All() []species.Species {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]species.Species, 0, len(s.byID))
	for _, v := range s.byID {
		res = append(res, cloneSpecies(v))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].TaxonID < res[j].TaxonID })
	return res
}

func (s *SpeciesStore) Get(_ context.Context, id string) (species.Species, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return species.Species{}, s.Err
	}
	sp, ok := s.byID[id]
	if !ok {
		return species.Species{}, store.ErrNotFound
	}
	return cloneSpecies(sp), nil
}

func (s *SpeciesStore) GetByTaxonID(
	_ context.Context,
	taxonID string,
) (species.Species, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return species.Species{}, s.Err
	}
	id, ok := s.byTaxon[taxonID]
	if !ok {
		return species.Species{}, store.ErrNotFound
	}
	return cloneSpecies(s.byID[id]), nil
}

func (s *SpeciesStore) Create(_ context.Context, sp species.Species) error {
	if s.BeforeCreate != nil {
		s.BeforeCreate(sp)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.byTaxon[sp.TaxonID]; ok {
		return store.ErrDuplicate
	}
	s.byID[sp.ID] = cloneSpecies(sp)
	s.byTaxon[sp.TaxonID] = sp.ID
	s.Writes++
	return nil
}

func (s *SpeciesStore) update(id string, fn func(*species.Species)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	sp, ok := s.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	fn(&sp)
	sp.UpdatedAt = time.Now()
	s.byID[id] = sp
	s.Writes++
	return nil
}

func (s *SpeciesStore) UpdateOccurrenceData(
	_ context.Context,
	id string,
	locs []species.Location,
	gbifIDs []string,
) error {
	return s.update(id, func(sp *species.Species) {
		sp.Locations = slices.Clone(locs)
		sp.GbifIDs = slices.Clone(gbifIDs)
	})
}

func (s *SpeciesStore) SetCategory(
	_ context.Context,
	id string,
	cat species.Category,
) error {
	return s.update(id, func(sp *species.Species) { sp.Category = cat })
}

func (s *SpeciesStore) SetCommonName(_ context.Context, id, name string) error {
	return s.update(id, func(sp *species.Species) { sp.CommonName = name })
}

func (s *SpeciesStore) SetMedia(
	_ context.Context,
	id string,
	media []species.Media,
) error {
	return s.update(id, func(sp *species.Species) {
		sp.Media = slices.Clone(media)
	})
}

func (s *SpeciesStore) SetDescription(
	_ context.Context,
	id string,
	d species.Description,
) error {
	return s.update(id, func(sp *species.Species) { sp.Description = &d })
}

func (s *SpeciesStore) ListByCountry(
	_ context.Context,
	country string,
) ([]species.Species, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var res []species.Species
	for _, v := range s.byID {
		if v.HasCountry(country) {
			res = append(res, cloneSpecies(v))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].TaxonID < res[j].TaxonID })
	return res, nil
}

func cloneSpecies(sp species.Species) species.Species {
	sp.Locations = slices.Clone(sp.Locations)
	sp.GbifIDs = slices.Clone(sp.GbifIDs)
	sp.Media = slices.Clone(sp.Media)
	if sp.Description != nil {
		d := *sp.Description
		sp.Description = &d
	}
	return sp
}

// ClusterStore is an in-memory store.ClusterStore.
type ClusterStore struct {
	mu        sync.Mutex
	byCountry map[string]cluster.Cluster

	// Updates counts UpdateAggregate calls.
	Updates int

	// Err, if set, is returned by every method.
	Err error
}

var _ store.ClusterStore = (*ClusterStore)(nil)

// NewClusterStore creates an empty in-memory cluster store.
func NewClusterStore() *ClusterStore {
	return &ClusterStore{byCountry: make(map[string]cluster.Cluster)}
}

func (s *ClusterStore) Get(_ context.Context, id string) (cluster.Cluster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return cluster.Cluster{}, s.Err
	}
	for _, v := range s.byCountry {
		if v.ID == id {
			return v, nil
		}
	}
	return cluster.Cluster{}, store.ErrNotFound
}

func (s *ClusterStore) GetByCountry(
	_ context.Context,
	country string,
) (cluster.Cluster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return cluster.Cluster{}, s.Err
	}
	c, ok := s.byCountry[strings.ToUpper(country)]
	if !ok {
		return cluster.Cluster{}, store.ErrNotFound
	}
	return c, nil
}

func (s *ClusterStore) Ensure(
	_ context.Context,
	c cluster.Cluster,
) (cluster.Cluster, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return cluster.Cluster{}, false, s.Err
	}
	if res, ok := s.byCountry[c.Country]; ok {
		return res, false, nil
	}
	s.byCountry[c.Country] = c
	return c, true, nil
}

func (s *ClusterStore) UpdateAggregate(
	_ context.Context,
	country string,
	count int,
	cat species.Category,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	c, ok := s.byCountry[strings.ToUpper(country)]
	if !ok {
		return store.ErrNotFound
	}
	c.Apply(cluster.Result{Count: count, WorstCategory: cat}, updatedAt)
	s.byCountry[c.Country] = c
	s.Updates++
	return nil
}

func (s *ClusterStore) List(_ context.Context) ([]cluster.Cluster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	res := make([]cluster.Cluster, 0, len(s.byCountry))
	for _, v := range s.byCountry {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Country < res[j].Country })
	return res, nil
}
