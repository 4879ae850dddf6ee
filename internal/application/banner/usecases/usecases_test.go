package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finderads/internal/domain/account"
	"finderads/internal/domain/banner"
	"finderads/internal/infrastructure/cache"
	"finderads/internal/infrastructure/persistence/models"
	"finderads/internal/infrastructure/repository"
	"finderads/internal/shared/biztime"
	"finderads/internal/shared/db"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

type fixture struct {
	gdb             *gorm.DB
	accountRepo     account.Repository
	ledgerRepo      account.LedgerRepository
	reservationRepo banner.Repository
	tx              *db.TransactionManager
	adCache         *fakeAdCache
}

func newFixture(t *testing.T) *fixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.ProAccountModel{},
		&models.CreditEntryModel{},
		&models.BannerReservationModel{},
		&models.ReservationDateModel{},
	)
	require.NoError(t, err)

	log := logger.NewLogger()
	return &fixture{
		gdb:             gdb,
		accountRepo:     repository.NewAccountRepository(gdb, log),
		ledgerRepo:      repository.NewLedgerRepository(gdb, log),
		reservationRepo: repository.NewReservationRepository(gdb, log),
		tx:              db.NewTransactionManager(gdb),
		adCache:         newFakeAdCache(),
	}
}

func (f *fixture) account(t *testing.T, email string, credits int) *account.ProAccount {
	a, err := account.NewProAccount(email)
	require.NoError(t, err)
	require.NoError(t, f.accountRepo.Create(context.Background(), a))
	if credits > 0 {
		require.NoError(t, f.accountRepo.CreditCredits(context.Background(), a.ID(), credits))
	}
	return a
}

func (f *fixture) reservation(t *testing.T, accountID uint, position banner.Position, approve bool) *banner.Reservation {
	creative, err := banner.NewCreative("Prompt Library", "Curated prompts", "https://cdn.example.com/p.png", "https://example.com/prompts", nil)
	require.NoError(t, err)
	r, err := banner.NewReservation(accountID, position, creative)
	require.NoError(t, err)
	require.NoError(t, f.reservationRepo.Create(context.Background(), r))
	if approve {
		require.NoError(t, r.Approve())
		require.NoError(t, f.reservationRepo.Update(context.Background(), r))
	}
	return r
}

// fakeAdCache is an in-memory AdCache for tests.
type fakeAdCache struct {
	entries     map[string]*cache.ResolvedBanner
	invalidated int
}

func newFakeAdCache() *fakeAdCache {
	return &fakeAdCache{entries: make(map[string]*cache.ResolvedBanner)}
}

func (f *fakeAdCache) cacheKey(position banner.Position, date banner.Date) string {
	return position.String() + ":" + date.String()
}

func (f *fakeAdCache) Get(_ context.Context, position banner.Position, date banner.Date) (*cache.ResolvedBanner, error) {
	return f.entries[f.cacheKey(position, date)], nil
}

func (f *fakeAdCache) Set(_ context.Context, position banner.Position, date banner.Date, resolved *cache.ResolvedBanner) error {
	f.entries[f.cacheKey(position, date)] = resolved
	return nil
}

func (f *fakeAdCache) SetNullMarker(_ context.Context, position banner.Position, date banner.Date) error {
	f.entries[f.cacheKey(position, date)] = &cache.ResolvedBanner{NotFound: true}
	return nil
}

func (f *fakeAdCache) Invalidate(_ context.Context, position banner.Position, dates []banner.Date) error {
	for _, d := range dates {
		delete(f.entries, f.cacheKey(position, d))
	}
	f.invalidated++
	return nil
}

type fakeRenderer struct{}

func (fakeRenderer) Render(markdown string) (string, error) {
	return "<p>" + markdown + "</p>", nil
}

func futureDates(n int) []string {
	base := biztime.NowUTC().AddDate(0, 1, 0)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, base.AddDate(0, 0, i).Format(banner.DateLayout))
	}
	return out
}

func TestBookDatesUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("books dates and debits the cost atomically", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "booker@example.com", 20)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, true)

		uc := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())

		dates := futureDates(3)
		result, err := uc.Execute(ctx, BookDatesCommand{
			ReservationSID: r.SID(),
			AccountSID:     acct.SID(),
			Dates:          dates,
		})
		require.NoError(t, err)

		// homepage_hero costs 3 per day.
		assert.Equal(t, 9, result.Cost)
		assert.Equal(t, 11, result.Balance)
		assert.Equal(t, dates, result.Reservation.Dates)
		assert.Equal(t, 9, result.Reservation.CreditsUsed)

		entries, total, err := f.ledgerRepo.ListByAccount(ctx, acct.ID(), 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, account.EntryKindDebit, entries[0].Kind())
		assert.Equal(t, 9, entries[0].Amount())

		d, err := banner.ParseDate(dates[0])
		require.NoError(t, err)
		booked, err := f.reservationRepo.IsBooked(ctx, banner.PositionHomepageHero, d)
		require.NoError(t, err)
		assert.True(t, booked)
	})

	t.Run("insufficient credits rolls everything back", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "shortfall@example.com", 5)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, true)

		uc := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())

		dates := futureDates(3) // costs 9, balance is 5
		_, err := uc.Execute(ctx, BookDatesCommand{
			ReservationSID: r.SID(),
			AccountSID:     acct.SID(),
			Dates:          dates,
		})
		assert.ErrorIs(t, err, account.ErrInsufficientCredits)
		assert.True(t, apperrors.IsInsufficientCreditsError(err))

		updated, err := f.accountRepo.GetByID(ctx, acct.ID())
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Credits())

		d, _ := banner.ParseDate(dates[0])
		booked, err := f.reservationRepo.IsBooked(ctx, banner.PositionHomepageHero, d)
		require.NoError(t, err)
		assert.False(t, booked)

		_, total, err := f.ledgerRepo.ListByAccount(ctx, acct.ID(), 0, 10)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("losing a slot race rolls the debit back", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "racer@example.com", 20)
		winner := f.reservation(t, acct.ID(), banner.PositionExploreTop, true)
		loser := f.reservation(t, acct.ID(), banner.PositionExploreTop, true)

		uc := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())

		dates := futureDates(2)
		_, err := uc.Execute(ctx, BookDatesCommand{
			ReservationSID: winner.SID(), AccountSID: acct.SID(), Dates: dates,
		})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, BookDatesCommand{
			ReservationSID: loser.SID(), AccountSID: acct.SID(), Dates: dates,
		})
		assert.ErrorIs(t, err, banner.ErrSlotAlreadyBooked)
		assert.True(t, apperrors.IsSlotAlreadyBookedError(err))

		// Only the winning batch was charged: 2 days at 2 credits.
		updated, err := f.accountRepo.GetByID(ctx, acct.ID())
		require.NoError(t, err)
		assert.Equal(t, 16, updated.Credits())

		fresh, err := f.reservationRepo.GetByID(ctx, loser.ID())
		require.NoError(t, err)
		assert.Zero(t, fresh.CreditsUsed())
		assert.Zero(t, fresh.Schedule().Len())
	})

	t.Run("unapproved reservation cannot book", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "pending@example.com", 20)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, false)

		uc := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())

		_, err := uc.Execute(ctx, BookDatesCommand{
			ReservationSID: r.SID(), AccountSID: acct.SID(), Dates: futureDates(1),
		})
		assert.ErrorIs(t, err, banner.ErrNotValidated)
		assert.True(t, apperrors.IsNotValidatedError(err))
	})

	t.Run("past dates rejected", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "late@example.com", 20)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, true)

		uc := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())

		yesterday := biztime.NowUTC().AddDate(0, 0, -1).Format(banner.DateLayout)
		_, err := uc.Execute(ctx, BookDatesCommand{
			ReservationSID: r.SID(), AccountSID: acct.SID(), Dates: []string{yesterday},
		})
		assert.ErrorIs(t, err, banner.ErrPastDate)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("missing reservation reports not found", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "ghost@example.com", 20)

		uc := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())

		_, err := uc.Execute(ctx, BookDatesCommand{
			ReservationSID: "bnr_missing", AccountSID: acct.SID(), Dates: futureDates(1),
		})
		assert.ErrorIs(t, err, banner.ErrReservationNotFound)
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("batch size cap", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "bulk@example.com", 1000)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, true)

		uc := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 2, logger.NewLogger())

		_, err := uc.Execute(ctx, BookDatesCommand{
			ReservationSID: r.SID(), AccountSID: acct.SID(), Dates: futureDates(3),
		})
		assert.Error(t, err)
	})

	t.Run("foreign reservation rejected", func(t *testing.T) {
		f := newFixture(t)
		owner := f.account(t, "owner@example.com", 20)
		other := f.account(t, "other@example.com", 20)
		r := f.reservation(t, owner.ID(), banner.PositionHomepageHero, true)

		uc := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())

		_, err := uc.Execute(ctx, BookDatesCommand{
			ReservationSID: r.SID(), AccountSID: other.SID(), Dates: futureDates(1),
		})
		assert.Error(t, err)
	})
}

func TestCancelReservationUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("refunds credits and frees slots", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "cancel@example.com", 20)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, true)

		book := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())
		dates := futureDates(2)
		_, err := book.Execute(ctx, BookDatesCommand{
			ReservationSID: r.SID(), AccountSID: acct.SID(), Dates: dates,
		})
		require.NoError(t, err)

		cancel := NewCancelReservationUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, logger.NewLogger())
		require.NoError(t, cancel.Execute(ctx, CancelReservationCommand{
			ReservationSID: r.SID(), AccountSID: acct.SID(),
		}))

		updated, err := f.accountRepo.GetByID(ctx, acct.ID())
		require.NoError(t, err)
		assert.Equal(t, 20, updated.Credits())

		_, err = f.reservationRepo.GetBySID(ctx, r.SID())
		assert.ErrorIs(t, err, banner.ErrReservationNotFound)

		d, _ := banner.ParseDate(dates[0])
		booked, err := f.reservationRepo.IsBooked(ctx, banner.PositionHomepageHero, d)
		require.NoError(t, err)
		assert.False(t, booked)

		// Journal holds the debit and the matching refund.
		entries, total, err := f.ledgerRepo.ListByAccount(ctx, acct.ID(), 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, account.EntryKindRefund, entries[0].Kind())

		// Debit and refund cancel out in the journal.
		sum, err := f.ledgerRepo.SumByAccount(ctx, acct.ID())
		require.NoError(t, err)
		assert.Zero(t, sum)
	})

	t.Run("cancelling a foreign reservation is forbidden", func(t *testing.T) {
		f := newFixture(t)
		owner := f.account(t, "owner2@example.com", 20)
		other := f.account(t, "other2@example.com", 20)
		r := f.reservation(t, owner.ID(), banner.PositionHomepageHero, true)

		cancel := NewCancelReservationUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, logger.NewLogger())
		err := cancel.Execute(ctx, CancelReservationCommand{
			ReservationSID: r.SID(), AccountSID: other.SID(),
		})
		assert.Error(t, err)

		_, err = f.reservationRepo.GetBySID(ctx, r.SID())
		assert.NoError(t, err)
	})

	t.Run("admin can cancel without ownership", func(t *testing.T) {
		f := newFixture(t)
		owner := f.account(t, "owner3@example.com", 20)
		r := f.reservation(t, owner.ID(), banner.PositionHomepageHero, true)

		cancel := NewCancelReservationUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, logger.NewLogger())
		require.NoError(t, cancel.Execute(ctx, CancelReservationCommand{ReservationSID: r.SID()}))
	})
}

func TestGetCalendarUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	acct := f.account(t, "calendar@example.com", 50)
	r := f.reservation(t, acct.ID(), banner.PositionHomepageSidebar, true)

	book := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())
	dates := futureDates(5)
	_, err := book.Execute(ctx, BookDatesCommand{
		ReservationSID: r.SID(), AccountSID: acct.SID(), Dates: dates[:2],
	})
	require.NoError(t, err)

	uc := NewGetCalendarUseCase(f.reservationRepo, logger.NewLogger())

	t.Run("booked dates are taken, rest free", func(t *testing.T) {
		calendar, err := uc.Execute(ctx, GetCalendarQuery{
			Position: banner.PositionHomepageSidebar.String(),
			From:     dates[0],
			To:       dates[4],
		})
		require.NoError(t, err)

		assert.Equal(t, 2, calendar.CostPerDay)
		assert.Equal(t, dates[:2], calendar.TakenDates)
		assert.Equal(t, dates[2:], calendar.FreeDates)
	})

	t.Run("other positions unaffected", func(t *testing.T) {
		calendar, err := uc.Execute(ctx, GetCalendarQuery{
			Position: banner.PositionExploreTop.String(),
			From:     dates[0],
			To:       dates[4],
		})
		require.NoError(t, err)
		assert.Empty(t, calendar.TakenDates)
		assert.Len(t, calendar.FreeDates, 5)
	})

	t.Run("range starting in the past is clamped to today", func(t *testing.T) {
		today := biztime.TodayString()
		from := biztime.NowUTC().AddDate(0, 0, -5).Format(banner.DateLayout)
		to := biztime.NowUTC().AddDate(0, 0, 2).Format(banner.DateLayout)

		calendar, err := uc.Execute(ctx, GetCalendarQuery{
			Position: banner.PositionExploreTop.String(),
			From:     from,
			To:       to,
		})
		require.NoError(t, err)

		assert.Len(t, calendar.FreeDates, 3)
		for _, d := range calendar.FreeDates {
			assert.GreaterOrEqual(t, d, today)
		}
		assert.Equal(t, today, calendar.From)
	})

	t.Run("fully past range has nothing free", func(t *testing.T) {
		calendar, err := uc.Execute(ctx, GetCalendarQuery{
			Position: banner.PositionExploreTop.String(),
			From:     biztime.NowUTC().AddDate(0, 0, -10).Format(banner.DateLayout),
			To:       biztime.NowUTC().AddDate(0, 0, -3).Format(banner.DateLayout),
		})
		require.NoError(t, err)
		assert.Empty(t, calendar.FreeDates)
		assert.Empty(t, calendar.TakenDates)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := uc.Execute(ctx, GetCalendarQuery{
			Position: banner.PositionExploreTop.String(),
			From:     dates[4],
			To:       dates[0],
		})
		assert.Error(t, err)
	})

	t.Run("unknown position rejected", func(t *testing.T) {
		_, err := uc.Execute(ctx, GetCalendarQuery{
			Position: "footer_mega",
			From:     dates[0],
			To:       dates[1],
		})
		assert.Error(t, err)
	})
}

func TestResolveActiveBannerUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *banner.Reservation, []string, *ResolveActiveBannerUseCase) {
		f := newFixture(t)
		acct := f.account(t, "resolve@example.com", 50)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, true)

		book := NewBookDatesUseCase(f.reservationRepo, f.accountRepo, f.ledgerRepo, f.tx, f.adCache, 62, logger.NewLogger())
		dates := futureDates(2)
		_, err := book.Execute(ctx, BookDatesCommand{
			ReservationSID: r.SID(), AccountSID: acct.SID(), Dates: dates,
		})
		require.NoError(t, err)

		uc := NewResolveActiveBannerUseCase(f.reservationRepo, f.adCache, fakeRenderer{}, logger.NewLogger())
		return f, r, dates, uc
	}

	t.Run("serves the active holder", func(t *testing.T) {
		_, r, dates, uc := setup(t)

		served, err := uc.Execute(ctx, ResolveActiveBannerQuery{
			Position: banner.PositionHomepageHero.String(),
			Date:     dates[0],
		})
		require.NoError(t, err)
		require.NotNil(t, served)
		assert.Equal(t, "Prompt Library", served.Title)
		assert.Equal(t, banner.FormatBanner.String(), served.Format)
		_ = r
	})

	t.Run("second hit comes from cache", func(t *testing.T) {
		f, _, dates, uc := setup(t)

		_, err := uc.Execute(ctx, ResolveActiveBannerQuery{
			Position: banner.PositionHomepageHero.String(), Date: dates[0],
		})
		require.NoError(t, err)
		assert.NotNil(t, f.adCache.entries[banner.PositionHomepageHero.String()+":"+dates[0]])

		served, err := uc.Execute(ctx, ResolveActiveBannerQuery{
			Position: banner.PositionHomepageHero.String(), Date: dates[0],
		})
		require.NoError(t, err)
		assert.Equal(t, "Prompt Library", served.Title)
	})

	t.Run("empty slot yields nil and a null marker", func(t *testing.T) {
		f, _, _, uc := setup(t)

		date := futureDates(5)[4]
		served, err := uc.Execute(ctx, ResolveActiveBannerQuery{
			Position: banner.PositionExploreTop.String(), Date: date,
		})
		require.NoError(t, err)
		assert.Nil(t, served)

		marker := f.adCache.entries[banner.PositionExploreTop.String()+":"+date]
		require.NotNil(t, marker)
		assert.True(t, marker.NotFound)
	})

	t.Run("toggled-off holder is not served but still blocks", func(t *testing.T) {
		f, r, dates, uc := setup(t)

		fresh, err := f.reservationRepo.GetBySID(ctx, r.SID())
		require.NoError(t, err)
		require.NoError(t, fresh.SetActive(false))
		require.NoError(t, f.reservationRepo.Update(ctx, fresh))
		require.NoError(t, f.adCache.Invalidate(ctx, fresh.Position(), fresh.Schedule().Dates()))

		served, err := uc.Execute(ctx, ResolveActiveBannerQuery{
			Position: banner.PositionHomepageHero.String(), Date: dates[0],
		})
		require.NoError(t, err)
		assert.Nil(t, served)

		d, _ := banner.ParseDate(dates[0])
		booked, err := f.reservationRepo.IsBooked(ctx, banner.PositionHomepageHero, d)
		require.NoError(t, err)
		assert.True(t, booked)
	})
}

func TestApproveRejectUseCases(t *testing.T) {
	ctx := context.Background()

	t.Run("approve flips status and activates", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "approve@example.com", 0)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, false)

		uc := NewApproveReservationUseCase(f.reservationRepo, f.adCache, logger.NewLogger())
		result, err := uc.Execute(ctx, ApproveReservationCommand{ReservationSID: r.SID()})
		require.NoError(t, err)
		assert.Equal(t, banner.ReservationStatusApproved.String(), result.Status)
		assert.True(t, result.Active)
		assert.NotNil(t, result.ValidatedAt)
	})

	t.Run("approve twice fails", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "twice@example.com", 0)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, true)

		uc := NewApproveReservationUseCase(f.reservationRepo, f.adCache, logger.NewLogger())
		_, err := uc.Execute(ctx, ApproveReservationCommand{ReservationSID: r.SID()})
		assert.ErrorIs(t, err, banner.ErrAlreadyDecided)
	})

	t.Run("reject is terminal", func(t *testing.T) {
		f := newFixture(t)
		acct := f.account(t, "reject@example.com", 0)
		r := f.reservation(t, acct.ID(), banner.PositionHomepageHero, false)

		reject := NewRejectReservationUseCase(f.reservationRepo, logger.NewLogger())
		result, err := reject.Execute(ctx, RejectReservationCommand{ReservationSID: r.SID()})
		require.NoError(t, err)
		assert.Equal(t, banner.ReservationStatusRejected.String(), result.Status)

		approve := NewApproveReservationUseCase(f.reservationRepo, f.adCache, logger.NewLogger())
		_, err = approve.Execute(ctx, ApproveReservationCommand{ReservationSID: r.SID()})
		assert.ErrorIs(t, err, banner.ErrRejectedTerminal)
	})
}
