package expiry

import (
	"context"
	"time"

	"github.com/naiaprojects/linkwedding/config"
	"github.com/naiaprojects/linkwedding/internal/db"
	"go.uber.org/zap"
)

// Manager enforces payment deadlines server-side. A periodic sweep moves
// every overdue pending order to expired, and order IDs pushed on the
// channel are checked immediately so an invoice read never shows a stale
// pending status for longer than one round trip.
type Manager struct {
	Database db.Database
	Orders   chan string
	Config   *config.Config
	Logger   *zap.SugaredLogger
}

func NewManager(orders chan string, database db.Database, config *config.Config, logger *zap.SugaredLogger) *Manager {
	return &Manager{
		Orders:   orders,
		Database: database,
		Config:   config,
		Logger:   logger,
	}
}

func (m *Manager) StartExpiryWatch(ctx context.Context) {
	interval := m.Config.ExpirySweep
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.Sweep()

	for {
		select {
		case <-ctx.Done():
			m.Logger.Info("context done")
			return
		case orderID, ok := <-m.Orders:
			if !ok {
				m.Logger.Info("order channel closed")
				return
			}
			if err := m.Database.ExpireOrderIfOverdue(orderID, time.Now().UTC()); err != nil {
				m.Logger.Warn(err)
			}
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Manager) Sweep() {
	expired, err := m.Database.ExpireOverdueOrders(time.Now().UTC())
	if err != nil {
		m.Logger.Warn(err)
		return
	}
	if expired > 0 {
		m.Logger.Infof("expired %d overdue orders", expired)
	}
}

// Check queues an order for an immediate deadline check without blocking
// the caller.
func (m *Manager) Check(orderID string) {
	select {
	case m.Orders <- orderID:
	default:
	}
}
