package entity

import "time"

// Aggregates behind the statistics export. Pure read models; computed in SQL.

// StatusStat order count and share per shipping status.
type StatusStat struct {
	Status  string
	Orders  int
	Percent float64
}

// DailyStat per-day intake and completion numbers.
type DailyStat struct {
	Date          time.Time
	Orders        int
	Delivered     int
	DeliveredRate float64
}

// CarrierStat per tracking-company numbers. Company is "미배정" for orders
// without an assigned carrier.
type CarrierStat struct {
	Company         string
	Orders          int
	Delivered       int
	AvgDeliveryDays float64
}

// UserOrderStat per-user intake numbers.
type UserOrderStat struct {
	Name      string
	Username  string
	Orders    int
	LastOrder *time.Time
}

// OrderExportRow is a full order joined with its owning user, as rendered
// into the orders export.
type OrderExportRow struct {
	Order    ShippingOrder
	Username string
	UserName string
}
