package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendtrack/internal/budget"
	"github.com/MrJamesThe3rd/spendtrack/internal/engine"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	"github.com/MrJamesThe3rd/spendtrack/internal/money"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	ctrl       *gomock.Controller
	repo       *engine.MockRepository
	classifier *engine.MockClassifier
	notifier   *engine.MockNotifier
	svc        *engine.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		ctrl:       ctrl,
		repo:       engine.NewMockRepository(ctrl),
		classifier: engine.NewMockClassifier(ctrl),
		notifier:   engine.NewMockNotifier(ctrl),
	}
	f.svc = engine.NewService(f.repo, f.classifier, f.notifier, nil, fixedClock)

	return f
}

func newUser(cardID uuid.UUID, balance string) *ledger.User {
	userID := uuid.New()

	return &ledger.User{
		ID:    userID,
		Email: "jane@example.com",
		Cards: []ledger.Card{{
			ID:      cardID,
			Balance: dec(balance),
			OwnerID: userID,
		}},
		Spending: ledger.SpendingState{OwnerID: userID},
	}
}

func TestService_RecordTransaction(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "1000.00")

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
	f.classifier.EXPECT().Classify("TESCO SUPERSTORE LONDON").Return("food")
	f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateCardBalance(gomock.Any(), cardID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, balance decimal.Decimal) error {
			assert.Equal(t, "956.31", balance.StringFixed(2))
			return nil
		})
	f.repo.EXPECT().UpdateSpendingState(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, state ledger.SpendingState) error {
			assert.Equal(t, "43.69", state.TotalAccountSpending.StringFixed(2))
			return nil
		})

	res, err := f.svc.RecordTransaction(context.Background(), user.ID, engine.RecordParams{
		CardID:      cardID,
		Amount:      dec("43.69"),
		Currency:    money.GBP,
		Timestamp:   testNow,
		Description: "TESCO SUPERSTORE LONDON",
	})

	require.NoError(t, err)
	require.True(t, res.Admitted)
	assert.Equal(t, "food", res.Transaction.Category)
	assert.NotEqual(t, uuid.Nil, res.Transaction.ID)
	assert.Equal(t, budget.Unset, res.Overall.State)
	assert.Nil(t, res.Category, "no category budget configured")
	assert.False(t, res.Balance.Crossed)
	assert.NoError(t, res.NotifyErr)
}

func TestService_RecordTransaction_ConvertsCurrency(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "1000.00")

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
	f.classifier.EXPECT().Classify(gomock.Any()).Return("General")
	f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateCardBalance(gomock.Any(), cardID, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateSpendingState(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.RecordTransaction(context.Background(), user.ID, engine.RecordParams{
		CardID:      cardID,
		Amount:      dec("100"),
		Currency:    money.EUR,
		Timestamp:   testNow,
		Description: "HOTEL PARIS",
	})

	require.NoError(t, err)
	assert.Equal(t, "88.00", res.Transaction.Amount.StringFixed(2))
}

func TestService_RecordTransaction_LowBalanceAlert(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "90.00")

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
	f.classifier.EXPECT().Classify(gomock.Any()).Return("General")
	f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateCardBalance(gomock.Any(), cardID, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateSpendingState(gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().BalanceAlert(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ledger.User, d budget.BalanceDecision) error {
			assert.True(t, d.Crossed)
			assert.Equal(t, cardID, d.CardID)
			assert.Equal(t, "45.00", d.Balance.StringFixed(2))
			return nil
		})

	res, err := f.svc.RecordTransaction(context.Background(), user.ID, engine.RecordParams{
		CardID:      cardID,
		Amount:      dec("45"),
		Currency:    money.GBP,
		Timestamp:   testNow,
		Description: "CASH WITHDRAWAL",
	})

	require.NoError(t, err)
	require.True(t, res.Admitted)
	assert.True(t, res.Balance.Crossed)
	assert.NoError(t, res.NotifyErr)
}

func TestService_RecordTransaction_InsufficientFunds(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "10.00")

	// Only GetUser is expected: a rejected candidate must not be classified,
	// recorded or aggregated.
	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)

	res, err := f.svc.RecordTransaction(context.Background(), user.ID, engine.RecordParams{
		CardID:      cardID,
		Amount:      dec("10.01"),
		Currency:    money.GBP,
		Timestamp:   testNow,
		Description: "Greggs",
	})

	require.NoError(t, err)
	assert.False(t, res.Admitted)
	assert.Nil(t, res.Transaction)
	assert.Equal(t, "10.00", user.Cards[0].Balance.StringFixed(2), "balance untouched")
	assert.Empty(t, user.Cards[0].Transactions)
}

func TestService_RecordTransaction_UnsupportedCurrency(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "1000.00")

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)

	_, err := f.svc.RecordTransaction(context.Background(), user.ID, engine.RecordParams{
		CardID:    cardID,
		Amount:    dec("100"),
		Currency:  money.Currency("JPY"),
		Timestamp: testNow,
	})

	assert.ErrorIs(t, err, money.ErrUnsupportedCurrency)
	assert.Equal(t, "1000.00", user.Cards[0].Balance.StringFixed(2))
}

func TestService_RecordTransaction_UnknownCard(t *testing.T) {
	f := newFixture(t)

	user := newUser(uuid.New(), "1000.00")
	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)

	_, err := f.svc.RecordTransaction(context.Background(), user.ID, engine.RecordParams{
		CardID: uuid.New(),
		Amount: dec("1"),
	})

	assert.ErrorIs(t, err, ledger.ErrCardNotFound)
}

func TestService_RecordTransaction_BudgetCrossings(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "1000.00")

	overall := dec("100")
	user.Spending.Budget = &overall
	user.CategoryBudgets = []ledger.CategoryBudget{
		{Category: "food", Budget: dec("100"), OwnerID: user.ID},
		{Category: "travel", Budget: dec("10"), OwnerID: user.ID},
	}
	user.Cards[0].Transactions = []ledger.Transaction{
		{Amount: dec("60"), Category: "food", Timestamp: testNow.AddDate(0, 0, -1), CardID: cardID},
	}

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
	f.classifier.EXPECT().Classify(gomock.Any()).Return("food")
	f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateCardBalance(gomock.Any(), cardID, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateSpendingState(gomock.Any(), gomock.Any()).Return(nil)

	f.notifier.EXPECT().BudgetAlert(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ledger.User, d budget.OverallDecision) error {
			assert.Equal(t, budget.Over, d.State)
			assert.Equal(t, "105.00", d.Spending.StringFixed(2))
			return nil
		})
	f.notifier.EXPECT().CategoryAlert(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ledger.User, d budget.CategoryDecision) error {
			// Only the transaction's own category is evaluated; the blown
			// travel budget stays silent.
			assert.Equal(t, "food", d.Budget.Category)
			assert.True(t, d.Crossed)
			return nil
		})

	res, err := f.svc.RecordTransaction(context.Background(), user.ID, engine.RecordParams{
		CardID:      cardID,
		Amount:      dec("45"),
		Currency:    money.GBP,
		Timestamp:   testNow,
		Description: "Tesco",
	})

	require.NoError(t, err)
	assert.Equal(t, budget.Over, res.Overall.State)
	require.NotNil(t, res.Category)
	assert.True(t, res.Category.Crossed)
	assert.NoError(t, res.NotifyErr)
}

func TestService_RecordTransaction_NearThreshold(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "1000.00")

	overall := dec("100")
	user.Spending.Budget = &overall

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
	f.classifier.EXPECT().Classify(gomock.Any()).Return("General")
	f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateCardBalance(gomock.Any(), cardID, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateSpendingState(gomock.Any(), gomock.Any()).Return(nil)

	f.notifier.EXPECT().BudgetAlert(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *ledger.User, d budget.OverallDecision) error {
			assert.Equal(t, budget.Near, d.State)
			return nil
		})

	res, err := f.svc.RecordTransaction(context.Background(), user.ID, engine.RecordParams{
		CardID:      cardID,
		Amount:      dec("55"),
		Currency:    money.GBP,
		Timestamp:   testNow,
		Description: "Greggs",
	})

	require.NoError(t, err)
	assert.Equal(t, budget.Near, res.Overall.State)
}

func TestService_RecordTransaction_NotifierFailureDoesNotFailUnit(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "1000.00")

	overall := dec("10")
	user.Spending.Budget = &overall

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
	f.classifier.EXPECT().Classify(gomock.Any()).Return("General")
	f.repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateCardBalance(gomock.Any(), cardID, gomock.Any()).Return(nil)
	f.repo.EXPECT().UpdateSpendingState(gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().BudgetAlert(gomock.Any(), user, gomock.Any()).
		Return(errors.New("smtp unavailable"))

	res, err := f.svc.RecordTransaction(context.Background(), user.ID, engine.RecordParams{
		CardID:      cardID,
		Amount:      dec("50"),
		Currency:    money.GBP,
		Timestamp:   testNow,
		Description: "Greggs",
	})

	require.NoError(t, err, "a failed notification must not fail the unit of work")
	assert.True(t, res.Admitted)
	assert.Error(t, res.NotifyErr)
}

func TestService_SetOverallBudget(t *testing.T) {
	f := newFixture(t)

	user := newUser(uuid.New(), "1000.00")

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
	f.repo.EXPECT().UpdateSpendingState(gomock.Any(), gomock.Any()).Return(nil)

	state, err := f.svc.SetOverallBudget(context.Background(), user.ID, dec("250"))
	require.NoError(t, err)
	require.NotNil(t, state.Budget)
	assert.Equal(t, "250.00", state.Budget.StringFixed(2))
	require.NotNil(t, state.BudgetSetAt)
	assert.Equal(t, testNow, *state.BudgetSetAt)
}

func TestService_SetOverallBudget_Unchanged(t *testing.T) {
	f := newFixture(t)

	user := newUser(uuid.New(), "1000.00")
	current := dec("250")
	user.Spending.Budget = &current

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)

	_, err := f.svc.SetOverallBudget(context.Background(), user.ID, dec("250"))
	assert.ErrorIs(t, err, engine.ErrBudgetUnchanged)
}

func TestService_SetCategoryBudget(t *testing.T) {
	f := newFixture(t)

	user := newUser(uuid.New(), "1000.00")
	user.CategoryBudgets = []ledger.CategoryBudget{
		{Category: "food", Budget: dec("100"), OwnerID: user.ID},
	}

	t.Run("UpdateExisting", func(t *testing.T) {
		f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
		f.repo.EXPECT().UpsertCategoryBudget(gomock.Any(), gomock.Any()).Return(nil)

		cb, err := f.svc.SetCategoryBudget(context.Background(), user.ID, "food", dec("150"))
		require.NoError(t, err)
		assert.Equal(t, "150.00", cb.Budget.StringFixed(2))
		assert.Len(t, user.CategoryBudgets, 1, "at most one budget per category")
	})

	t.Run("CreateNew", func(t *testing.T) {
		f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
		f.repo.EXPECT().UpsertCategoryBudget(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.SetCategoryBudget(context.Background(), user.ID, "travel", dec("50"))
		require.NoError(t, err)
		assert.Len(t, user.CategoryBudgets, 2)
	})

	t.Run("Unchanged", func(t *testing.T) {
		f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)

		_, err := f.svc.SetCategoryBudget(context.Background(), user.ID, "travel", dec("50"))
		assert.ErrorIs(t, err, engine.ErrBudgetUnchanged)
	})

	t.Run("EmptyCategory", func(t *testing.T) {
		_, err := f.svc.SetCategoryBudget(context.Background(), user.ID, "  ", dec("50"))
		assert.ErrorIs(t, err, engine.ErrEmptyCategory)
	})
}

func TestService_RemoveCard(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "1000.00")
	user.Cards[0].Transactions = []ledger.Transaction{
		{Amount: dec("30"), Category: "food", Timestamp: testNow, CardID: cardID},
	}
	user.Spending.TotalAccountSpending = dec("30")

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)
	f.repo.EXPECT().DeleteCard(gomock.Any(), cardID).Return(nil)
	f.repo.EXPECT().UpdateSpendingState(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, state ledger.SpendingState) error {
			assert.Equal(t, "0.00", state.TotalAccountSpending.StringFixed(2),
				"total recomputed after the cascade")
			return nil
		})

	require.NoError(t, f.svc.RemoveCard(context.Background(), user.ID, cardID))
	assert.Empty(t, user.Cards)
}

func TestService_RemoveCard_NotFound(t *testing.T) {
	f := newFixture(t)

	user := newUser(uuid.New(), "1000.00")
	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)

	err := f.svc.RemoveCard(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, ledger.ErrCardNotFound)
}

func TestService_Recategorize(t *testing.T) {
	f := newFixture(t)

	txID := uuid.New()
	f.repo.EXPECT().UpdateTransactionCategory(gomock.Any(), txID, "travel").Return(nil)

	require.NoError(t, f.svc.Recategorize(context.Background(), txID, "travel"))

	assert.ErrorIs(t, f.svc.Recategorize(context.Background(), txID, " "), engine.ErrEmptyCategory)
}

func TestService_Dashboard(t *testing.T) {
	f := newFixture(t)

	cardID := uuid.New()
	user := newUser(cardID, "500.00")
	user.Cards[0].Transactions = []ledger.Transaction{
		{Amount: dec("10"), Category: "food", Timestamp: testNow.AddDate(0, 0, -1), CardID: cardID},
		{Amount: dec("20"), Category: "food", Timestamp: testNow, CardID: cardID},
		{Amount: dec("5"), Category: "travel", Timestamp: testNow, CardID: cardID},
	}

	f.repo.EXPECT().GetUser(gomock.Any(), user.ID).Return(user, nil)

	start, end := testNow.AddDate(0, 0, -7), testNow
	summary, err := f.svc.Dashboard(context.Background(), user.ID, start, end)

	require.NoError(t, err)
	assert.Equal(t, "35.00", summary.Total.StringFixed(2))
	assert.Equal(t, "500.00", summary.Balance.StringFixed(2))
	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "food", summary.Categories[0].Category)
	assert.Equal(t, "30.00", summary.Categories[0].Amount.StringFixed(2))
}

func TestService_GetUserError(t *testing.T) {
	f := newFixture(t)

	userID := uuid.New()
	f.repo.EXPECT().GetUser(gomock.Any(), userID).Return(nil, errors.New("db error"))

	_, err := f.svc.RecordTransaction(context.Background(), userID, engine.RecordParams{})
	assert.Error(t, err)
}
