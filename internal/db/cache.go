package db

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/balkashynov/wrokout/internal/log"
	"github.com/balkashynov/wrokout/internal/models"
	"github.com/balkashynov/wrokout/internal/workout"
)

const DefaultSequenceTTL = 10 * time.Minute

// PlanCatalog resolves plan references and serves exercise sequences from
// one cache. A plan loaded by Find is reused by ExerciseSequence, so a
// started workout reads its plan from the database once.
// Errors are never cached.
type PlanCatalog struct {
	db    *gorm.DB
	store *PlanStore
	cache *gocache.Cache
}

// NewPlanCatalog creates a catalog over db whose entries live for ttl.
func NewPlanCatalog(db *gorm.DB, ttl time.Duration) *PlanCatalog {
	if ttl <= 0 {
		ttl = DefaultSequenceTTL
	}
	return &PlanCatalog{
		db:    db,
		store: NewPlanStore(db),
		cache: gocache.New(ttl, 3*ttl),
	}
}

func refKey(ref string) string { return "ref:" + strings.ToLower(strings.TrimSpace(ref)) }
func planKey(id string) string { return "plan:" + id }

func copyPlan(p *models.Plan) *models.Plan {
	cp := *p
	cp.Exercises = append([]models.Exercise(nil), p.Exercises...)
	return &cp
}

// Find resolves ref like FindPlan, remembering both the reference and the plan.
func (c *PlanCatalog) Find(ref string) (*models.Plan, error) {
	if id, found := c.cache.Get(refKey(ref)); found {
		if plan, ok := c.cached(id.(string)); ok { // only plan ids are stored under ref keys
			log.Debug(log.CatDB, "plan cache hit", "ref", ref)
			return plan, nil
		}
	}

	plan, err := findPlan(c.db, ref)
	if err != nil {
		return nil, err
	}
	c.remember(plan)
	c.cache.SetDefault(refKey(ref), plan.ID)
	return copyPlan(plan), nil
}

// ExerciseSequence implements workout.PlanStore.
func (c *PlanCatalog) ExerciseSequence(ctx context.Context, planID string) ([]workout.Exercise, error) {
	if plan, ok := c.cached(planID); ok {
		log.Debug(log.CatDB, "sequence cache hit", "plan", planID)
		return sequenceOf(plan), nil
	}

	plan, err := c.store.Plan(ctx, planID)
	if err != nil {
		return nil, err
	}
	c.remember(plan)
	return sequenceOf(plan), nil
}

func (c *PlanCatalog) cached(planID string) (*models.Plan, bool) {
	value, found := c.cache.Get(planKey(planID))
	if !found {
		return nil, false
	}
	plan, ok := value.(*models.Plan)
	if !ok {
		log.Error(log.CatDB, "wrong type in plan cache", "plan", planID)
		return nil, false
	}
	return copyPlan(plan), true
}

func (c *PlanCatalog) remember(plan *models.Plan) {
	c.cache.SetDefault(planKey(plan.ID), copyPlan(plan))
}
