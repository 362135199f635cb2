package repository

import "github.com/termpro2000/fdapp/internal/domain/entity"

// StatsRepository is the read-only port behind the export service. All
// aggregation happens in SQL; nothing here mutates state.
type StatsRepository interface {
	OrdersForExport(f OrderFilter) ([]*entity.OrderExportRow, error)
	StatusStats(f OrderFilter) ([]*entity.StatusStat, error)
	DailyStats(f OrderFilter) ([]*entity.DailyStat, error)
	CarrierStats(f OrderFilter) ([]*entity.CarrierStat, error)
	UserStats(f OrderFilter) ([]*entity.UserOrderStat, error)
}
