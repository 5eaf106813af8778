package service

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/repository"
)

type catalogEntry struct {
	courses  []domain.Course
	loadedAt time.Time
}

// CatalogProvider serves per-term catalog snapshots from the course
// repository and caches them for ttl. A ttl of zero disables caching.
type CatalogProvider struct {
	courses  repository.CourseRepo
	ttl      time.Duration
	observer UseCaseObserver
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]catalogEntry
	// Bumped by Invalidate; a load only caches its result when neither
	// changed while it ran.
	gens  map[string]uint64
	epoch uint64
}

func NewCatalogProvider(courses repository.CourseRepo, ttl time.Duration, observers ...UseCaseObserver) *CatalogProvider {
	return &CatalogProvider{
		courses:  courses,
		ttl:      ttl,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
		cache:    make(map[string]catalogEntry),
		gens:     make(map[string]uint64),
	}
}

// Catalog returns the courses of term. A repository failure is reported to
// the observer and yields an empty catalog so the engine can explain it.
// The returned slice is a copy; callers may not mutate shared state through it.
func (p *CatalogProvider) Catalog(ctx context.Context, term string) []domain.Course {
	p.mu.Lock()
	entry, ok := p.cache[term]
	gen, epoch := p.gens[term], p.epoch
	p.mu.Unlock()
	if ok && p.ttl > 0 && p.now().Sub(entry.loadedAt) < p.ttl {
		return cloneCourses(entry.courses)
	}

	span := startUseCase(p.observer, "catalog.load")
	span.set("term", term)
	courses, err := p.courses.ListByTerm(ctx, term)
	if err != nil {
		span.end(ctx, err)
		return nil
	}
	span.set("courses", len(courses))
	span.end(ctx, nil)

	if p.ttl > 0 {
		p.mu.Lock()
		if p.gens[term] == gen && p.epoch == epoch {
			p.cache[term] = catalogEntry{courses: courses, loadedAt: p.now()}
		}
		p.mu.Unlock()
	}
	return cloneCourses(courses)
}

// Invalidate drops the cached snapshot of term. An empty term drops all.
func (p *CatalogProvider) Invalidate(term string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if term == "" {
		p.epoch++
		p.cache = make(map[string]catalogEntry)
		return
	}
	p.gens[term]++
	delete(p.cache, term)
}

func cloneCourses(in []domain.Course) []domain.Course {
	if in == nil {
		return nil
	}
	out := make([]domain.Course, len(in))
	for i, c := range in {
		c.MeetingTimes = append([]domain.TimeSlot(nil), c.MeetingTimes...)
		c.Tags = append([]string(nil), c.Tags...)
		c.Tracks = append([]string(nil), c.Tracks...)
		out[i] = c
	}
	return out
}
