package services

import (
	"errors"
	"strings"
	"time"

	"github.com/centsible/backend/internal/cache"
	apperrors "github.com/centsible/backend/internal/errors"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	spendAggregateReads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centsible_spend_aggregate_reads_total",
		Help: "Spend computations served from the precomputed aggregate.",
	})
	spendFallbackScans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centsible_spend_fallback_scans_total",
		Help: "Spend computations that fell back to scanning raw transactions.",
	})
	spendCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centsible_spend_cache_hits_total",
		Help: "Spend computations served from the in-process cache.",
	})
)

// spendMaps holds the computed spend per category and per subcategory for
// one caller and month. A transaction with both fields set contributes to
// both maps: a category budget and a subcategory budget under it are
// different envelopes that each see the relevant money.
type spendMaps struct {
	Categories    map[uuid.UUID]decimal.Decimal
	Subcategories map[uuid.UUID]decimal.Decimal
}

func newSpendMaps() spendMaps {
	return spendMaps{
		Categories:    make(map[uuid.UUID]decimal.Decimal),
		Subcategories: make(map[uuid.UUID]decimal.Decimal),
	}
}

// budgetService is the budget reconciliation engine.
type budgetService struct {
	db          *gorm.DB
	spendCache  *cache.Cache[spendMaps]
	invalidator Invalidator
}

// NewBudgetService creates a BudgetServicer. The spend cache may be nil
// for callers that do not want memoization; the invalidator may be nil.
func NewBudgetService(db *gorm.DB, spendCache *cache.Cache[spendMaps], invalidator Invalidator) BudgetServicer {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}

	return &budgetService{
		db:          db,
		spendCache:  spendCache,
		invalidator: invalidator,
	}
}

// NewSpendCache returns a cache suitable for NewBudgetService.
func NewSpendCache(ttl time.Duration) *cache.Cache[spendMaps] {
	return cache.New[spendMaps](ttl)
}

// GetBudgets returns every budget visible to the caller for the month,
// enriched with its actual spend and display category/subcategory.
func (s *budgetService) GetBudgets(userID uuid.UUID, month types.Month) ([]BudgetWithSpend, error) {
	result := make([]BudgetWithSpend, 0)

	// No principal, no visible budgets.
	if userID == uuid.Nil {
		return result, nil
	}

	householdID, err := s.activeHousehold(userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	// The primary fetch does not degrade: if it fails, the request fails.
	budgets, err := models.BudgetsByMonth(s.db, month)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	visible := make([]models.Budget, 0, len(budgets))
	for _, budget := range budgets {
		if s.visibleTo(budget, userID, householdID) {
			visible = append(visible, budget)
		}
	}

	if len(visible) == 0 {
		return result, nil
	}

	// Collect the IDs for the batched display lookups. Per-row queries
	// would be an N+1 storm.
	categoryIDs := make([]uuid.UUID, 0, len(visible))
	subcategoryIDs := make([]uuid.UUID, 0, len(visible))
	for _, budget := range visible {
		if budget.CategoryID != nil {
			categoryIDs = append(categoryIDs, *budget.CategoryID)
		}
		if budget.SubcategoryID != nil {
			subcategoryIDs = append(subcategoryIDs, *budget.SubcategoryID)
		}
	}

	// The two display lookups and the spend source are independent, fetch
	// them concurrently and join in memory. Display lookup failures
	// degrade to nil display fields, they never fail the request.
	var (
		categories    map[uuid.UUID]models.Category
		subcategories map[uuid.UUID]models.Subcategory
		spend         spendMaps
	)

	var g errgroup.Group
	g.Go(func() error {
		found, err := models.CategoriesByIDs(s.db, categoryIDs)
		if err != nil {
			log.Warn().Err(err).Msg("category lookup failed, degrading display fields")
			return nil
		}

		categories = make(map[uuid.UUID]models.Category, len(found))
		for _, category := range found {
			categories[category.ID] = category
		}
		return nil
	})
	g.Go(func() error {
		found, err := models.SubcategoriesByIDs(s.db, subcategoryIDs)
		if err != nil {
			log.Warn().Err(err).Msg("subcategory lookup failed, degrading display fields")
			return nil
		}

		subcategories = make(map[uuid.UUID]models.Subcategory, len(found))
		for _, subcategory := range found {
			subcategories[subcategory.ID] = subcategory
		}
		return nil
	})
	g.Go(func() error {
		spend = s.spendForMonth(month, userID, householdID)
		return nil
	})
	_ = g.Wait()

	for _, budget := range visible {
		enriched := BudgetWithSpend{Budget: budget}

		if budget.CategoryID != nil {
			if category, ok := categories[*budget.CategoryID]; ok {
				category := category
				enriched.Category = &category
			}
		}
		if budget.SubcategoryID != nil {
			if subcategory, ok := subcategories[*budget.SubcategoryID]; ok {
				subcategory := subcategory
				enriched.Subcategory = &subcategory
			}
		}

		// The subcategory map wins for subcategory budgets, the category
		// map for category budgets, zero otherwise.
		switch {
		case budget.SubcategoryID != nil:
			enriched.ActualSpend = spend.Subcategories[*budget.SubcategoryID]
		case budget.CategoryID != nil:
			enriched.ActualSpend = spend.Categories[*budget.CategoryID]
		}

		result = append(result, enriched)
	}

	// Stable presentation order, the database does not guarantee one.
	slices.SortFunc(result, func(a, b BudgetWithSpend) int {
		if c := strings.Compare(strings.ToLower(displayName(a)), strings.ToLower(displayName(b))); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	return result, nil
}

// displayName is the name a budget is listed under.
func displayName(b BudgetWithSpend) string {
	if b.Subcategory != nil {
		return b.Subcategory.Name
	}
	if b.Category != nil {
		return b.Category.Name
	}

	return ""
}

// GetBudget returns one budget the caller owns, enriched like GetBudgets.
func (s *budgetService) GetBudget(userID, budgetID uuid.UUID) (BudgetWithSpend, error) {
	budget, err := s.requireBudgetOwnership(userID, budgetID)
	if err != nil {
		return BudgetWithSpend{}, err
	}

	enriched := BudgetWithSpend{Budget: budget}

	if budget.CategoryID != nil {
		var category models.Category
		if s.db.First(&category, "id = ?", budget.CategoryID).Error == nil {
			enriched.Category = &category
		}
	}
	if budget.SubcategoryID != nil {
		var subcategory models.Subcategory
		if s.db.First(&subcategory, "id = ?", budget.SubcategoryID).Error == nil {
			enriched.Subcategory = &subcategory
		}
	}

	householdID, err := s.activeHousehold(userID)
	if err != nil {
		return BudgetWithSpend{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	spend := s.spendForMonth(budget.Month, userID, householdID)
	switch {
	case budget.SubcategoryID != nil:
		enriched.ActualSpend = spend.Subcategories[*budget.SubcategoryID]
	case budget.CategoryID != nil:
		enriched.ActualSpend = spend.Categories[*budget.CategoryID]
	}

	return enriched, nil
}

// visibleTo implements the visibility rule: household budgets are visible
// to members of that household only, personal budgets to their owner only.
// A budget of a different household is never visible, even when the user
// ID happens to match.
func (s *budgetService) visibleTo(budget models.Budget, userID, householdID uuid.UUID) bool {
	if budget.HouseholdID != nil {
		return householdID != uuid.Nil && *budget.HouseholdID == householdID
	}

	return budget.UserID == userID
}

// spendForMonth computes the spend maps for one caller and month.
//
// Fast path: the precomputed aggregate. Fallback: a live scan over the raw
// transactions. Both paths are numerically equivalent; aggregate failures
// are recovered transparently and never surfaced.
func (s *budgetService) spendForMonth(month types.Month, userID, householdID uuid.UUID) spendMaps {
	cacheKey := cache.Key(spendScope(userID, householdID), month.String()+"|user:"+userID.String())
	if s.spendCache != nil {
		if cached, ok := s.spendCache.Get(cacheKey); ok {
			spendCacheHits.Inc()
			return cached
		}
	}

	spend, fromAggregate := s.aggregateSpend(month, userID)
	if fromAggregate {
		spendAggregateReads.Inc()
	} else {
		spendFallbackScans.Inc()
		spend = s.scanSpend(month, userID, householdID)
	}

	if s.spendCache != nil {
		s.spendCache.Set(cacheKey, spend)
	}

	return spend
}

// aggregateSpend reads the precomputed aggregate. The second return value
// reports whether the aggregate could be used: a query error or zero rows
// both mean "use the fallback".
func (s *budgetService) aggregateSpend(month types.Month, userID uuid.UUID) (spendMaps, bool) {
	rows, err := models.MonthlySpendRows(s.db, month, userID)
	if err != nil {
		log.Info().Err(err).Str("month", month.String()).Msg("spend aggregate unavailable, falling back to transaction scan")
		return spendMaps{}, false
	}
	if len(rows) == 0 {
		return spendMaps{}, false
	}

	spend := newSpendMaps()
	for _, row := range rows {
		switch {
		case row.SubcategoryID != nil:
			spend.Subcategories[*row.SubcategoryID] = spend.Subcategories[*row.SubcategoryID].Add(row.ActualSpend)
		case row.CategoryID != nil:
			spend.Categories[*row.CategoryID] = spend.Categories[*row.CategoryID].Add(row.ActualSpend)
		}
	}

	return spend, true
}

// scanSpend computes the spend maps from the source of truth. A cheap
// count probe skips the full fetch for months without categorized
// expenses. Scan failures degrade to empty maps: availability never
// regresses below "compute from what we have".
func (s *budgetService) scanSpend(month types.Month, userID, householdID uuid.UUID) spendMaps {
	spend := newSpendMaps()

	count, err := models.CountExpensesForMonth(s.db, month, userID, optionalID(householdID))
	if err != nil {
		log.Error().Err(err).Str("month", month.String()).Msg("expense count probe failed")
		return spend
	}
	if count == 0 {
		return spend
	}

	projections, err := models.ExpensesForMonth(s.db, month, userID, optionalID(householdID))
	if err != nil {
		log.Error().Err(err).Str("month", month.String()).Msg("expense scan failed")
		return spend
	}

	for _, p := range projections {
		amount := p.Amount.Abs()
		if p.CategoryID != nil {
			spend.Categories[*p.CategoryID] = spend.Categories[*p.CategoryID].Add(amount)
		}
		if p.SubcategoryID != nil {
			spend.Subcategories[*p.SubcategoryID] = spend.Subcategories[*p.SubcategoryID].Add(amount)
		}
	}

	return spend
}

// CreateBudget creates a budget for the caller, scoped to their active
// household when they have one.
func (s *budgetService) CreateBudget(userID uuid.UUID, budget models.Budget) (models.Budget, error) {
	if userID == uuid.Nil {
		return models.Budget{}, apperrors.ErrUnauthenticated
	}

	budget.Month = types.MonthOf(time.Time(budget.Month))
	budget.UserID = userID

	householdID, err := s.activeHousehold(userID)
	if err != nil {
		return models.Budget{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	budget.HouseholdID = optionalID(householdID)

	// Pre-emptive conflict check. This is an optimization for a clean
	// error, the unique index below is the actual guarantee.
	taken, err := models.BudgetSlotTaken(s.db, budget.Month, budget.CategoryID, budget.SubcategoryID, budget.UserID, budget.HouseholdID)
	if err != nil {
		return models.Budget{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if taken {
		return models.Budget{}, apperrors.ErrBudgetSlotTaken
	}

	err = s.db.Create(&budget).Error
	if err != nil {
		// Two concurrent creators for the same slot: the loser gets the
		// unique violation and reports the same conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Budget{}, apperrors.ErrBudgetSlotTaken
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return models.Budget{}, appErr
		}

		return models.Budget{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	s.invalidateSpend(budget)
	return budget, nil
}

// UpdateBudget changes the amount and/or note of a budget the caller owns.
func (s *budgetService) UpdateBudget(userID, budgetID uuid.UUID, amount *decimal.Decimal, note *string) (models.Budget, error) {
	budget, err := s.requireBudgetOwnership(userID, budgetID)
	if err != nil {
		return models.Budget{}, err
	}

	if amount != nil {
		budget.Amount = *amount
	}
	if note != nil {
		budget.Note = *note
	}

	err = s.db.Save(&budget).Error
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return models.Budget{}, appErr
		}

		return models.Budget{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	s.invalidateSpend(budget)
	return budget, nil
}

// DeleteBudget soft-deletes a budget the caller owns. Deleting an already
// deleted budget is a no-op at the storage layer.
func (s *budgetService) DeleteBudget(userID, budgetID uuid.UUID) error {
	budget, err := s.requireBudgetOwnership(userID, budgetID)
	if err != nil {
		return err
	}

	err = s.db.Delete(&budget).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}

	s.invalidateSpend(budget)
	return nil
}

// CopyRecurring copies the caller's recurring budgets from one month into
// another. Slots that already exist in the target month are skipped, which
// makes the copy idempotent.
func (s *budgetService) CopyRecurring(userID uuid.UUID, from, to types.Month) ([]models.Budget, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}

	source, err := s.GetBudgets(userID, from)
	if err != nil {
		return nil, err
	}

	created := make([]models.Budget, 0)
	for _, budget := range source {
		if !budget.Recurring {
			continue
		}

		copied := models.Budget{
			Month:         to,
			Amount:        budget.Amount,
			CategoryID:    budget.CategoryID,
			SubcategoryID: budget.SubcategoryID,
			UserID:        budget.UserID,
			HouseholdID:   budget.HouseholdID,
			Recurring:     true,
			Note:          budget.Note,
		}

		err := s.db.Create(&copied).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternal, err)
		}

		created = append(created, copied)
	}

	if len(created) > 0 {
		s.invalidateSpend(created[0])
	}

	return created, nil
}

// requireBudgetOwnership resolves a budget and verifies the caller owns
// it: either directly or through their active household. A budget that
// exists but belongs to someone else is a Forbidden, not a NotFound, so
// the guard layer can log a potential tampering attempt.
func (s *budgetService) requireBudgetOwnership(userID, budgetID uuid.UUID) (models.Budget, error) {
	if userID == uuid.Nil {
		return models.Budget{}, apperrors.ErrUnauthenticated
	}

	var budget models.Budget
	err := s.db.First(&budget, "id = ?", budgetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Budget{}, apperrors.ErrBudgetNotFound
	}
	if err != nil {
		return models.Budget{}, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if budget.HouseholdID != nil {
		householdID, err := s.activeHousehold(userID)
		if err != nil {
			return models.Budget{}, apperrors.Wrap(apperrors.ErrInternal, err)
		}

		if householdID == *budget.HouseholdID {
			return budget, nil
		}
	} else if budget.UserID == userID {
		return budget, nil
	}

	log.Warn().
		Str("budget", budgetID.String()).
		Str("user", userID.String()).
		Msg("ownership check failed, possible tampering attempt")

	return models.Budget{}, apperrors.ErrForbidden
}

func (s *budgetService) activeHousehold(userID uuid.UUID) (uuid.UUID, error) {
	return models.ActiveHouseholdID(s.db, userID)
}

// invalidateSpend drops cached spend maps for both scopes a mutation can
// affect: the resource's owner scope and the acting user's own scope.
func (s *budgetService) invalidateSpend(budget models.Budget) {
	s.invalidator.Invalidate(budget.OwnerScope())
	s.invalidator.Invalidate("user:" + budget.UserID.String())
}

// spendScope is the cache scope spend maps live under: the household when
// the caller has one, the user otherwise.
func spendScope(userID, householdID uuid.UUID) string {
	if householdID != uuid.Nil {
		return "hh:" + householdID.String()
	}

	return "user:" + userID.String()
}

// optionalID converts a uuid.Nil to a nil pointer.
func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}

	return &id
}
