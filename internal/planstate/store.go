package planstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pranavkm07/finance_plan_app/internal/apperrors"
	"github.com/pranavkm07/finance_plan_app/internal/core/domain"
	portsrepo "github.com/pranavkm07/finance_plan_app/internal/core/ports/repositories"
)

// DefaultAutoSaveDebounce is the quiet period the store waits for before
// persisting dirty state in the background.
const DefaultAutoSaveDebounce = time.Second

// Store owns the financial plan state. Every transition goes through
// Dispatch, which applies the reducer under a single mutex, so dispatches
// issued within one operation land in issuance order. Two operations
// started concurrently interleave at dispatch granularity: the last
// dispatch to touch an entity wins, there is no version token.
//
// Start wires the lifecycle: a one-time load when the plan is pristine, and
// a watcher goroutine that debounces saves while the state is dirty.
type Store struct {
	repo     portsrepo.PlanRepository
	logger   *slog.Logger
	debounce time.Duration
	now      func() time.Time

	mu    sync.Mutex
	state State

	started   bool
	changed   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// StoreOption configures a Store at construction.
type StoreOption func(*Store)

// WithLogger sets the logger used by background work.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithAutoSaveDebounce overrides the auto-save quiet period.
func WithAutoSaveDebounce(d time.Duration) StoreOption {
	return func(s *Store) {
		s.debounce = d
	}
}

// WithNow overrides the clock used for entity timestamps and forecast
// anchoring.
func WithNow(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// New constructs a Store around the given repository.
func New(repo portsrepo.PlanRepository, options ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, fmt.Errorf("plan repository is required: %w", apperrors.ErrValidation)
	}
	s := &Store{
		repo:     repo,
		logger:   slog.Default(),
		debounce: DefaultAutoSaveDebounce,
		now:      func() time.Time { return time.Now().UTC() },
		state:    NewState(),
		changed:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Dispatch applies one action through the reducer. Safe for concurrent use.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	s.mu.Unlock()

	// Coalesced wake-up for the auto-save watcher.
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// State returns a deep copy of the full state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Plan returns a deep copy of the current plan.
func (s *Store) Plan() domain.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Plan.Clone()
}

// Loading returns the current loading flags.
func (s *Store) Loading() LoadingFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Loading
}

// Errors returns a copy of the error map.
func (s *Store) Errors() map[ErrorCategory]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[ErrorCategory]string, len(s.state.Errors))
	for k, v := range s.state.Errors {
		out[k] = v
	}
	return out
}

// Summary returns the derived plan summary.
func (s *Store) Summary() domain.PlanSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state.Plan.Summary
	out.GoalProgress = append([]domain.GoalProgress(nil), out.GoalProgress...)
	return out
}

// Start runs the one-time initial load (only when the plan is pristine) and
// launches the auto-save watcher. Calling Start twice is a no-op.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	pristine := s.state.Plan.IsPristine()
	s.mu.Unlock()

	if pristine {
		s.autoLoad(ctx)
	}

	s.wg.Add(1)
	go s.autoSaveLoop(ctx)
}

// Close stops the auto-save watcher and discards any pending save timer.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

// autoLoad hydrates the plan at startup. There is no caller to report to:
// failures are recorded in the general error slot and logged, nothing more.
func (s *Store) autoLoad(ctx context.Context) {
	s.Dispatch(LoadingSet{Scope: ScopeGlobal, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryGeneral})

	plan, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.Dispatch(LoadingSet{Scope: ScopeGlobal, On: false})
	case err != nil:
		s.logger.Error("initial plan load failed", slog.String("error", err.Error()))
		s.Dispatch(LoadFailed{Message: err.Error()})
	default:
		s.Dispatch(LoadSucceeded{Plan: *plan})
		s.logger.Info("plan loaded", slog.String("plan_id", plan.PlanID))
	}
}

func (s *Store) autoSaveLoop(ctx context.Context) {
	defer s.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	stop := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			fire = nil
		}
	}
	defer stop()

	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case <-s.changed:
			// Each state change supersedes the previous pending timer, so
			// only the latest schedule survives a burst of mutations.
			stop()
			if s.autoSaveEligible() {
				timer = time.NewTimer(s.debounce)
				fire = timer.C
			}
		case <-fire:
			timer = nil
			fire = nil
			s.autoSave(ctx)
		}
	}
}

func (s *Store) autoSaveEligible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.state.Plan.IsPristine() &&
		!s.state.Loading.IsLoading &&
		!s.state.Loading.IsSaving &&
		s.state.HasUnsavedChanges
}

// autoSave persists the current plan in the background. Failures never
// propagate anywhere; they are logged and recorded for display.
func (s *Store) autoSave(ctx context.Context) {
	if !s.autoSaveEligible() {
		return
	}
	s.Dispatch(LoadingSet{Scope: ScopeSaving, On: true})

	plan := s.Plan()
	saved, err := s.repo.Save(ctx, plan)
	if err != nil {
		s.logger.Warn("auto-save failed", slog.String("error", err.Error()))
		s.Dispatch(SaveFailed{Message: err.Error()})
		return
	}
	if saved.PlanID != plan.PlanID {
		s.Dispatch(PlanReplaced{Plan: *saved})
	}
	s.Dispatch(SaveSucceeded{})
	s.logger.Debug("auto-save completed", slog.String("plan_id", saved.PlanID))
}

// AddIncome creates an income entry from the caller-supplied fields.
func (s *Store) AddIncome(ctx context.Context, in IncomeInput) (domain.Income, error) {
	s.Dispatch(LoadingSet{Scope: ScopeIncome, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryIncome})
	defer s.Dispatch(LoadingSet{Scope: ScopeIncome, On: false})

	if err := in.validate(); err != nil {
		s.Dispatch(ErrorSet{Category: ErrorCategoryIncome, Message: err.Error()})
		return domain.Income{}, err
	}

	now := s.now()
	income := domain.Income{
		IncomeID:         NewEntityID("income"),
		Source:           in.Source,
		Amount:           in.Amount,
		Frequency:        defaultFrequency(in.Frequency),
		Notes:            in.Notes,
		EntityTimestamps: domain.EntityTimestamps{CreatedAt: now, UpdatedAt: now},
	}
	s.Dispatch(IncomeAdded{Income: income})
	return income, nil
}

// UpdateIncome merges the given fields over the existing entry. The entry
// must exist; otherwise apperrors.ErrNotFound is returned and the plan is
// left untouched.
func (s *Store) UpdateIncome(ctx context.Context, incomeID string, upd IncomeUpdate) (domain.Income, error) {
	s.Dispatch(LoadingSet{Scope: ScopeIncome, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryIncome})
	defer s.Dispatch(LoadingSet{Scope: ScopeIncome, On: false})

	if err := upd.validate(); err != nil {
		s.Dispatch(ErrorSet{Category: ErrorCategoryIncome, Message: err.Error()})
		return domain.Income{}, err
	}

	current, ok := findIncome(s.Plan(), incomeID)
	if !ok {
		err := fmt.Errorf("income %s: %w", incomeID, apperrors.ErrNotFound)
		s.Dispatch(ErrorSet{Category: ErrorCategoryIncome, Message: err.Error()})
		return domain.Income{}, err
	}

	merged := upd.apply(current)
	merged.UpdatedAt = s.now()
	s.Dispatch(IncomeUpdated{Income: merged})
	return merged, nil
}

// DeleteIncome removes the entry with the given id. Deleting an unknown id
// is a silent no-op.
func (s *Store) DeleteIncome(ctx context.Context, incomeID string) error {
	s.Dispatch(LoadingSet{Scope: ScopeIncome, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryIncome})
	defer s.Dispatch(LoadingSet{Scope: ScopeIncome, On: false})

	s.Dispatch(IncomeDeleted{IncomeID: incomeID})
	return nil
}

// AddExpense creates an expense entry from the caller-supplied fields.
func (s *Store) AddExpense(ctx context.Context, in ExpenseInput) (domain.Expense, error) {
	s.Dispatch(LoadingSet{Scope: ScopeExpenses, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryExpense})
	defer s.Dispatch(LoadingSet{Scope: ScopeExpenses, On: false})

	if err := in.validate(); err != nil {
		s.Dispatch(ErrorSet{Category: ErrorCategoryExpense, Message: err.Error()})
		return domain.Expense{}, err
	}

	now := s.now()
	expense := domain.Expense{
		ExpenseID:        NewEntityID("expense"),
		Category:         in.Category,
		Description:      in.Description,
		Amount:           in.Amount,
		Frequency:        defaultFrequency(in.Frequency),
		EntityTimestamps: domain.EntityTimestamps{CreatedAt: now, UpdatedAt: now},
	}
	s.Dispatch(ExpenseAdded{Expense: expense})
	return expense, nil
}

// UpdateExpense merges the given fields over the existing entry.
func (s *Store) UpdateExpense(ctx context.Context, expenseID string, upd ExpenseUpdate) (domain.Expense, error) {
	s.Dispatch(LoadingSet{Scope: ScopeExpenses, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryExpense})
	defer s.Dispatch(LoadingSet{Scope: ScopeExpenses, On: false})

	if err := upd.validate(); err != nil {
		s.Dispatch(ErrorSet{Category: ErrorCategoryExpense, Message: err.Error()})
		return domain.Expense{}, err
	}

	current, ok := findExpense(s.Plan(), expenseID)
	if !ok {
		err := fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
		s.Dispatch(ErrorSet{Category: ErrorCategoryExpense, Message: err.Error()})
		return domain.Expense{}, err
	}

	merged := upd.apply(current)
	merged.UpdatedAt = s.now()
	s.Dispatch(ExpenseUpdated{Expense: merged})
	return merged, nil
}

// DeleteExpense removes the entry with the given id, silently ignoring
// unknown ids.
func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	s.Dispatch(LoadingSet{Scope: ScopeExpenses, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryExpense})
	defer s.Dispatch(LoadingSet{Scope: ScopeExpenses, On: false})

	s.Dispatch(ExpenseDeleted{ExpenseID: expenseID})
	return nil
}

// AddGoal creates a savings goal from the caller-supplied fields.
func (s *Store) AddGoal(ctx context.Context, in GoalInput) (domain.Goal, error) {
	s.Dispatch(LoadingSet{Scope: ScopeGoals, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryGoal})
	defer s.Dispatch(LoadingSet{Scope: ScopeGoals, On: false})

	if err := in.validate(); err != nil {
		s.Dispatch(ErrorSet{Category: ErrorCategoryGoal, Message: err.Error()})
		return domain.Goal{}, err
	}

	now := s.now()
	goal := domain.Goal{
		GoalID:           NewEntityID("goal"),
		Name:             in.Name,
		TargetAmount:     in.TargetAmount,
		SavedAmount:      in.SavedAmount,
		TargetDate:       in.TargetDate,
		EntityTimestamps: domain.EntityTimestamps{CreatedAt: now, UpdatedAt: now},
	}
	s.Dispatch(GoalAdded{Goal: goal})
	return goal, nil
}

// UpdateGoal merges the given fields over the existing goal.
func (s *Store) UpdateGoal(ctx context.Context, goalID string, upd GoalUpdate) (domain.Goal, error) {
	s.Dispatch(LoadingSet{Scope: ScopeGoals, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryGoal})
	defer s.Dispatch(LoadingSet{Scope: ScopeGoals, On: false})

	if err := upd.validate(); err != nil {
		s.Dispatch(ErrorSet{Category: ErrorCategoryGoal, Message: err.Error()})
		return domain.Goal{}, err
	}

	current, ok := findGoal(s.Plan(), goalID)
	if !ok {
		err := fmt.Errorf("goal %s: %w", goalID, apperrors.ErrNotFound)
		s.Dispatch(ErrorSet{Category: ErrorCategoryGoal, Message: err.Error()})
		return domain.Goal{}, err
	}

	merged := upd.apply(current)
	merged.UpdatedAt = s.now()
	s.Dispatch(GoalUpdated{Goal: merged})
	return merged, nil
}

// DeleteGoal removes the goal with the given id, silently ignoring unknown
// ids.
func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	s.Dispatch(LoadingSet{Scope: ScopeGoals, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryGoal})
	defer s.Dispatch(LoadingSet{Scope: ScopeGoals, On: false})

	s.Dispatch(GoalDeleted{GoalID: goalID})
	return nil
}

// RegenerateForecast recomputes the projection from the current month.
func (s *Store) RegenerateForecast(ctx context.Context) error {
	s.Dispatch(LoadingSet{Scope: ScopeForecast, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryForecast})
	defer s.Dispatch(LoadingSet{Scope: ScopeForecast, On: false})

	s.Dispatch(ForecastRegenerated{Now: s.now()})
	return nil
}

// UpdateCurrentBalance replaces the plan's current balance.
func (s *Store) UpdateCurrentBalance(ctx context.Context, balance decimal.Decimal) error {
	s.Dispatch(LoadingSet{Scope: ScopeSaving, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryGeneral})
	defer s.Dispatch(LoadingSet{Scope: ScopeSaving, On: false})

	s.Dispatch(BalanceUpdated{Balance: balance})
	return nil
}

// UpdateForecastConfig merges a partial configuration over the current one
// and reprojects.
func (s *Store) UpdateForecastConfig(ctx context.Context, patch ForecastConfigPatch) (domain.ForecastConfig, error) {
	s.Dispatch(LoadingSet{Scope: ScopeForecast, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryForecast})
	defer s.Dispatch(LoadingSet{Scope: ScopeForecast, On: false})

	if err := patch.validate(); err != nil {
		s.Dispatch(ErrorSet{Category: ErrorCategoryForecast, Message: err.Error()})
		return domain.ForecastConfig{}, err
	}

	merged := patch.apply(s.Plan().ForecastConfig)
	s.Dispatch(ForecastConfigUpdated{Config: merged, Now: s.now()})
	return merged, nil
}

// SavePlan persists the current plan on behalf of the caller. On failure
// the error is recorded and returned; the saving flag stays set on this
// path until a retried save, a reset, or a successful auto-save clears it.
func (s *Store) SavePlan(ctx context.Context) error {
	s.Dispatch(LoadingSet{Scope: ScopeSaving, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryGeneral})

	plan := s.Plan()
	saved, err := s.repo.Save(ctx, plan)
	if err != nil {
		err = fmt.Errorf("saving plan: %w", err)
		s.Dispatch(ErrorSet{Category: ErrorCategoryGeneral, Message: err.Error()})
		return err
	}
	if saved.PlanID != plan.PlanID {
		s.Dispatch(PlanReplaced{Plan: *saved})
	}
	s.Dispatch(SaveSucceeded{})
	return nil
}

// LoadPlan replaces the state with the stored plan. An absent plan is not
// an error: the loading flag is cleared and the state is left as is.
func (s *Store) LoadPlan(ctx context.Context) error {
	s.Dispatch(LoadingSet{Scope: ScopeGlobal, On: true})
	s.Dispatch(ErrorCleared{Category: ErrorCategoryGeneral})

	plan, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.Dispatch(LoadingSet{Scope: ScopeGlobal, On: false})
		return nil
	case err != nil:
		err = fmt.Errorf("loading plan: %w", err)
		s.Dispatch(ErrorSet{Category: ErrorCategoryGeneral, Message: err.Error()})
		s.Dispatch(LoadingSet{Scope: ScopeGlobal, On: false})
		return err
	}
	s.Dispatch(LoadSucceeded{Plan: *plan})
	return nil
}

// ResetAll discards everything and returns to a pristine plan.
func (s *Store) ResetAll() {
	s.Dispatch(StateReset{})
}

// ClearError clears one error category, or all of them when category is
// empty.
func (s *Store) ClearError(category ErrorCategory) {
	s.Dispatch(ErrorCleared{Category: category})
}

func defaultFrequency(f domain.Frequency) domain.Frequency {
	if f == "" {
		return domain.FrequencyMonthly
	}
	return f
}

func findIncome(plan domain.Plan, id string) (domain.Income, bool) {
	for _, in := range plan.Income {
		if in.IncomeID == id {
			return in, true
		}
	}
	return domain.Income{}, false
}

func findExpense(plan domain.Plan, id string) (domain.Expense, bool) {
	for _, ex := range plan.Expenses {
		if ex.ExpenseID == id {
			return ex, true
		}
	}
	return domain.Expense{}, false
}

func findGoal(plan domain.Plan, id string) (domain.Goal, bool) {
	for _, g := range plan.Goals {
		if g.GoalID == id {
			return g, true
		}
	}
	return domain.Goal{}, false
}
