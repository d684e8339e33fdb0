package expiry

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/naiaprojects/linkwedding/config"
	"github.com/naiaprojects/linkwedding/internal/db"
	"github.com/naiaprojects/linkwedding/logging"
	"github.com/naiaprojects/linkwedding/models"
	"github.com/stretchr/testify/assert"
)

func newTestManager(t *testing.T) (*Manager, sqlmock.Sqlmock, func()) {
	mockdb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	manager := NewManager(
		make(chan string, 10),
		&db.Manager{Db: mockdb},
		&config.Config{ExpirySweep: time.Hour},
		logging.GetSugaredLogger(),
	)

	return manager, mock, func() { mockdb.Close() }
}

func TestSweepExpiresOverdueOrders(t *testing.T) {
	manager, mock, closeDB := newTestManager(t)
	defer closeDB()

	mock.ExpectExec(`UPDATE orders SET payment_status = \$1`).
		WithArgs(models.PaymentExpired, models.PaymentPending, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	manager.Sweep()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepIgnoresDatabaseError(t *testing.T) {
	manager, mock, closeDB := newTestManager(t)
	defer closeDB()

	mock.ExpectExec(`UPDATE orders SET payment_status = \$1`).
		WillReturnError(assert.AnError)

	manager.Sweep()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpiryWatchChecksQueuedOrders(t *testing.T) {
	manager, mock, closeDB := newTestManager(t)
	defer closeDB()

	// Initial sweep on start, then the queued order check. The status guard
	// in the queries keeps repeated checks from expiring an order twice.
	mock.ExpectExec(`UPDATE orders SET payment_status = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE orders SET payment_status = \$1`).
		WithArgs(models.PaymentExpired, "order-1", models.PaymentPending, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	manager.Check("order-1")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	manager.StartExpiryWatch(ctx)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckNeverBlocks(t *testing.T) {
	manager := NewManager(make(chan string, 1), nil, &config.Config{}, logging.GetSugaredLogger())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			manager.Check("order-1")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Check blocked on a full channel")
	}
}
