package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finderads/internal/domain/account"
	"finderads/internal/domain/banner"
	"finderads/internal/infrastructure/persistence/models"
	"finderads/internal/shared/db"
	"finderads/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.ProAccountModel{},
		&models.CreditEntryModel{},
		&models.BannerReservationModel{},
		&models.ReservationDateModel{},
	)
	require.NoError(t, err)

	return gdb
}

func createTestAccount(t *testing.T, repo account.Repository, email string, credits int) *account.ProAccount {
	a, err := account.NewProAccount(email)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), a))

	if credits > 0 {
		require.NoError(t, repo.CreditCredits(context.Background(), a.ID(), credits))
	}
	return a
}

func createTestReservation(t *testing.T, repo banner.Repository, accountID uint, position banner.Position) *banner.Reservation {
	creative, err := banner.NewCreative("Vector Search API", "Fast ANN search", "https://cdn.example.com/b.png", "https://example.com/tool", nil)
	require.NoError(t, err)

	r, err := banner.NewReservation(accountID, position, creative)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestAccountRepository_CreateAndGet(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	t.Run("create assigns id and round-trips", func(t *testing.T) {
		a := createTestAccount(t, repo, "maker@example.com", 0)
		assert.NotZero(t, a.ID())

		found, err := repo.GetByID(ctx, a.ID())
		require.NoError(t, err)
		assert.Equal(t, "maker@example.com", found.UserEmail())
		assert.Equal(t, a.SID(), found.SID())
		assert.Equal(t, account.PlanTypeFree, found.PlanType())
	})

	t.Run("get by sid and email", func(t *testing.T) {
		a := createTestAccount(t, repo, "lookup@example.com", 0)

		bySID, err := repo.GetBySID(ctx, a.SID())
		require.NoError(t, err)
		assert.Equal(t, a.ID(), bySID.ID())

		byEmail, err := repo.GetByEmail(ctx, "Lookup@Example.com")
		require.NoError(t, err)
		assert.Equal(t, a.ID(), byEmail.ID())
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		createTestAccount(t, repo, "dup@example.com", 0)

		a2, err := account.NewProAccount("dup@example.com")
		require.NoError(t, err)
		err = repo.Create(ctx, a2)
		assert.Error(t, err)
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})
}

func TestAccountRepository_DebitCredits(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	t.Run("debit within balance", func(t *testing.T) {
		a := createTestAccount(t, repo, "debit@example.com", 10)

		err := repo.DebitCredits(ctx, a.ID(), 4)
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, a.ID())
		require.NoError(t, err)
		assert.Equal(t, 6, found.Credits())
	})

	t.Run("debit beyond balance fails and leaves balance intact", func(t *testing.T) {
		a := createTestAccount(t, repo, "poor@example.com", 3)

		err := repo.DebitCredits(ctx, a.ID(), 5)
		assert.ErrorIs(t, err, account.ErrInsufficientCredits)

		found, err := repo.GetByID(ctx, a.ID())
		require.NoError(t, err)
		assert.Equal(t, 3, found.Credits())
	})

	t.Run("debit to exactly zero succeeds", func(t *testing.T) {
		a := createTestAccount(t, repo, "zero@example.com", 5)

		err := repo.DebitCredits(ctx, a.ID(), 5)
		require.NoError(t, err)

		err = repo.DebitCredits(ctx, a.ID(), 1)
		assert.ErrorIs(t, err, account.ErrInsufficientCredits)
	})

	t.Run("missing account", func(t *testing.T) {
		err := repo.DebitCredits(ctx, 99999, 1)
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})
}

func TestLedgerRepository_Append(t *testing.T) {
	gdb := setupTestDB(t)
	accountRepo := NewAccountRepository(gdb, logger.NewLogger())
	repo := NewLedgerRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	a := createTestAccount(t, accountRepo, "journal@example.com", 0)

	t.Run("append assigns id", func(t *testing.T) {
		e, err := account.NewLedgerEntry(a.ID(), account.EntryKindPurchase, 50)
		require.NoError(t, err)

		err = repo.Append(ctx, e.WithReference("evt_append_1"))
		require.NoError(t, err)
		assert.NotZero(t, e.ID())
	})

	t.Run("duplicate reference rejected", func(t *testing.T) {
		e1, err := account.NewLedgerEntry(a.ID(), account.EntryKindPurchase, 50)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, e1.WithReference("evt_dup")))

		e2, err := account.NewLedgerEntry(a.ID(), account.EntryKindPurchase, 50)
		require.NoError(t, err)
		err = repo.Append(ctx, e2.WithReference("evt_dup"))
		assert.ErrorIs(t, err, account.ErrDuplicateReference)
	})

	t.Run("entries without reference never collide", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			e, err := account.NewLedgerEntry(a.ID(), account.EntryKindDebit, 1)
			require.NoError(t, err)
			require.NoError(t, repo.Append(ctx, e))
		}
	})

	t.Run("exists by reference", func(t *testing.T) {
		exists, err := repo.ExistsByReference(ctx, "evt_dup")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByReference(ctx, "evt_never")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestLedgerRepository_SumByAccount(t *testing.T) {
	gdb := setupTestDB(t)
	accountRepo := NewAccountRepository(gdb, logger.NewLogger())
	repo := NewLedgerRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	a := createTestAccount(t, accountRepo, "sum@example.com", 0)

	t.Run("empty journal sums to zero", func(t *testing.T) {
		sum, err := repo.SumByAccount(ctx, a.ID())
		require.NoError(t, err)
		assert.Equal(t, 0, sum)
	})

	t.Run("debits count negative", func(t *testing.T) {
		purchase, err := account.NewLedgerEntry(a.ID(), account.EntryKindPurchase, 100)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, purchase))

		debit, err := account.NewLedgerEntry(a.ID(), account.EntryKindDebit, 30)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, debit))

		refund, err := account.NewLedgerEntry(a.ID(), account.EntryKindRefund, 10)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, refund))

		sum, err := repo.SumByAccount(ctx, a.ID())
		require.NoError(t, err)
		assert.Equal(t, 80, sum)
	})
}

func TestReservationRepository_CRUD(t *testing.T) {
	gdb := setupTestDB(t)
	accountRepo := NewAccountRepository(gdb, logger.NewLogger())
	repo := NewReservationRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	a := createTestAccount(t, accountRepo, "crud@example.com", 0)

	t.Run("create and get round-trips the creative", func(t *testing.T) {
		r := createTestReservation(t, repo, a.ID(), banner.PositionHomepageHero)
		assert.NotZero(t, r.ID())

		found, err := repo.GetByID(ctx, r.ID())
		require.NoError(t, err)
		assert.Equal(t, banner.PositionHomepageHero, found.Position())
		assert.Equal(t, "Vector Search API", found.Creative().Title())
		assert.Equal(t, banner.ReservationStatusPending, found.Status())
		assert.Nil(t, found.ValidatedAt())
	})

	t.Run("update persists approval", func(t *testing.T) {
		r := createTestReservation(t, repo, a.ID(), banner.PositionExploreTop)
		require.NoError(t, r.Approve())
		require.NoError(t, repo.Update(ctx, r))

		found, err := repo.GetBySID(ctx, r.SID())
		require.NoError(t, err)
		assert.Equal(t, banner.ReservationStatusApproved, found.Status())
		assert.True(t, found.Active())
		assert.NotNil(t, found.ValidatedAt())
	})

	t.Run("stale write loses the version race", func(t *testing.T) {
		r := createTestReservation(t, repo, a.ID(), banner.PositionCategoryTop)

		first, err := repo.GetBySID(ctx, r.SID())
		require.NoError(t, err)
		second, err := repo.GetBySID(ctx, r.SID())
		require.NoError(t, err)

		require.NoError(t, first.Approve())
		require.NoError(t, repo.Update(ctx, first))

		require.NoError(t, second.Approve())
		err = repo.Update(ctx, second)
		assert.ErrorIs(t, err, banner.ErrStaleReservation)

		// The winning write is untouched by the losing one.
		found, err := repo.GetBySID(ctx, r.SID())
		require.NoError(t, err)
		assert.Equal(t, first.Version(), found.Version())
	})

	t.Run("delete removes reservation and slots", func(t *testing.T) {
		r := createTestReservation(t, repo, a.ID(), banner.PositionHomepageSidebar)
		require.NoError(t, r.Approve())
		dates := mustDates(t, "2026-10-01", "2026-10-02")
		require.NoError(t, repo.ClaimSlots(ctx, r.ID(), r.Position(), dates))

		require.NoError(t, repo.Delete(ctx, r.ID()))

		_, err := repo.GetByID(ctx, r.ID())
		assert.ErrorIs(t, err, banner.ErrReservationNotFound)

		booked, err := repo.IsBooked(ctx, banner.PositionHomepageSidebar, dates[0])
		require.NoError(t, err)
		assert.False(t, booked)
	})
}

func mustDates(t *testing.T, raw ...string) []banner.Date {
	dates, err := banner.ParseDates(raw)
	require.NoError(t, err)
	return dates
}

func TestReservationRepository_ClaimSlots(t *testing.T) {
	gdb := setupTestDB(t)
	accountRepo := NewAccountRepository(gdb, logger.NewLogger())
	repo := NewReservationRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	a := createTestAccount(t, accountRepo, "slots@example.com", 0)
	r1 := createTestReservation(t, repo, a.ID(), banner.PositionHomepageHero)
	r2 := createTestReservation(t, repo, a.ID(), banner.PositionHomepageHero)

	t.Run("claiming a taken slot fails", func(t *testing.T) {
		dates := mustDates(t, "2026-11-05")
		require.NoError(t, repo.ClaimSlots(ctx, r1.ID(), banner.PositionHomepageHero, dates))

		err := repo.ClaimSlots(ctx, r2.ID(), banner.PositionHomepageHero, dates)
		assert.ErrorIs(t, err, banner.ErrSlotAlreadyBooked)
	})

	t.Run("same date on another position is free", func(t *testing.T) {
		dates := mustDates(t, "2026-11-05")
		r3 := createTestReservation(t, repo, a.ID(), banner.PositionExploreTop)
		assert.NoError(t, repo.ClaimSlots(ctx, r3.ID(), banner.PositionExploreTop, dates))
	})

	t.Run("booked dates within range", func(t *testing.T) {
		dates := mustDates(t, "2026-11-10", "2026-11-12")
		require.NoError(t, repo.ClaimSlots(ctx, r1.ID(), banner.PositionHomepageHero, dates))

		from := mustDates(t, "2026-11-01")[0]
		to := mustDates(t, "2026-11-30")[0]
		booked, err := repo.BookedDates(ctx, banner.PositionHomepageHero, from, to)
		require.NoError(t, err)
		assert.Equal(t, mustDates(t, "2026-11-05", "2026-11-10", "2026-11-12"), booked)
	})

	t.Run("release frees every slot of the reservation", func(t *testing.T) {
		require.NoError(t, repo.ReleaseSlots(ctx, r1.ID()))

		booked, err := repo.IsBooked(ctx, banner.PositionHomepageHero, mustDates(t, "2026-11-05")[0])
		require.NoError(t, err)
		assert.False(t, booked)
	})
}

func TestReservationRepository_FindServable(t *testing.T) {
	gdb := setupTestDB(t)
	accountRepo := NewAccountRepository(gdb, logger.NewLogger())
	repo := NewReservationRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	a := createTestAccount(t, accountRepo, "serve@example.com", 0)
	date := mustDates(t, "2026-12-01")[0]

	t.Run("pending holder is not servable", func(t *testing.T) {
		r := createTestReservation(t, repo, a.ID(), banner.PositionHomepageHero)
		require.NoError(t, repo.ClaimSlots(ctx, r.ID(), banner.PositionHomepageHero, []banner.Date{date}))

		found, err := repo.FindServable(ctx, banner.PositionHomepageHero, date)
		require.NoError(t, err)
		assert.Empty(t, found)

		require.NoError(t, repo.Delete(ctx, r.ID()))
	})

	t.Run("approved holder is returned", func(t *testing.T) {
		r := createTestReservation(t, repo, a.ID(), banner.PositionHomepageHero)
		require.NoError(t, r.Approve())
		require.NoError(t, repo.Update(ctx, r))
		require.NoError(t, repo.ClaimSlots(ctx, r.ID(), banner.PositionHomepageHero, []banner.Date{date}))

		found, err := repo.FindServable(ctx, banner.PositionHomepageHero, date)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, r.ID(), found[0].ID())
	})
}

func TestTransactionManager_BookingRollback(t *testing.T) {
	gdb := setupTestDB(t)
	accountRepo := NewAccountRepository(gdb, logger.NewLogger())
	reservationRepo := NewReservationRepository(gdb, logger.NewLogger())
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	a := createTestAccount(t, accountRepo, "tx@example.com", 10)
	r1 := createTestReservation(t, reservationRepo, a.ID(), banner.PositionHomepageHero)
	r2 := createTestReservation(t, reservationRepo, a.ID(), banner.PositionHomepageHero)

	dates := mustDates(t, "2026-12-24", "2026-12-25")
	require.NoError(t, reservationRepo.ClaimSlots(ctx, r1.ID(), banner.PositionHomepageHero, mustDates(t, "2026-12-25")))

	// Debit succeeds, the slot claim collides, the whole booking rolls back.
	err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := accountRepo.DebitCredits(txCtx, a.ID(), 6); err != nil {
			return err
		}
		return reservationRepo.ClaimSlots(txCtx, r2.ID(), banner.PositionHomepageHero, dates)
	})
	assert.ErrorIs(t, err, banner.ErrSlotAlreadyBooked)

	found, err := accountRepo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, 10, found.Credits())

	booked, err := reservationRepo.IsBooked(ctx, banner.PositionHomepageHero, dates[0])
	require.NoError(t, err)
	assert.False(t, booked)
}
