package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// ExportUseCase builds the downloadable reports: the flat orders export and
// the four-table statistics report. Rendering is delegated per format.
type ExportUseCase struct {
	stats     repository.StatsRepository
	renderers map[string]Renderer
	activity  ActivityRecorder
}

func NewExportUseCase(stats repository.StatsRepository, renderers map[string]Renderer, activity ActivityRecorder) *ExportUseCase {
	return &ExportUseCase{stats: stats, renderers: renderers, activity: activity}
}

// ExportOrders renders the orders visible to the actor as one flat table.
// Regular users always get their own orders regardless of the userId
// parameter; managers and admins may filter by any user.
func (uc *ExportUseCase) ExportOrders(actor domain.Identity, req dto.ExportRequest, meta dto.RequestMeta) (*dto.ExportFile, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	r, err := uc.renderer(req.Format)
	if err != nil {
		return nil, err
	}
	f, err := buildFilter(req)
	if err != nil {
		return nil, err
	}
	if !entity.RoleAtLeast(actor.Role, entity.RoleManager) {
		f.UserID = actor.UserID
	}

	rows, err := uc.stats.OrdersForExport(f)
	if err != nil {
		return nil, err
	}

	table := ordersTable(rows)
	data, err := r.Render(TableSet{Tables: []Table{table}})
	if err != nil {
		return nil, err
	}

	uc.activity.Record(actor.UserID, "export_orders", "export", "", map[string]any{
		"format": r.Extension(),
		"count":  len(rows),
	}, meta)

	return &dto.ExportFile{
		Filename:    fmt.Sprintf("shipping_orders_%s.%s", time.Now().Format(dateLayout), r.Extension()),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}

// ExportStatistics renders the four aggregate tables. Manager or above only.
func (uc *ExportUseCase) ExportStatistics(actor domain.Identity, req dto.ExportRequest, meta dto.RequestMeta) (*dto.ExportFile, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if !entity.RoleAtLeast(actor.Role, entity.RoleManager) {
		return nil, domain.ErrForbidden
	}
	r, err := uc.renderer(req.Format)
	if err != nil {
		return nil, err
	}
	f, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	statusStats, err := uc.stats.StatusStats(f)
	if err != nil {
		return nil, err
	}
	dailyStats, err := uc.stats.DailyStats(f)
	if err != nil {
		return nil, err
	}
	carrierStats, err := uc.stats.CarrierStats(f)
	if err != nil {
		return nil, err
	}
	userStats, err := uc.stats.UserStats(f)
	if err != nil {
		return nil, err
	}

	ts := TableSet{Tables: []Table{
		statusTable(statusStats),
		dailyTable(dailyStats),
		carrierTable(carrierStats),
		userTable(userStats),
	}}
	data, err := r.Render(ts)
	if err != nil {
		return nil, err
	}

	uc.activity.Record(actor.UserID, "export_statistics", "export", "", map[string]any{
		"format": r.Extension(),
	}, meta)

	return &dto.ExportFile{
		Filename:    fmt.Sprintf("statistics_report_%s.%s", time.Now().Format(dateLayout), r.Extension()),
		ContentType: r.ContentType(),
		Data:        data,
	}, nil
}

func (uc *ExportUseCase) renderer(format string) (Renderer, error) {
	if format == "" {
		format = "xlsx"
	}
	r, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: 지원하지 않는 형식입니다: %s", domain.ErrInvalidInput, format)
	}
	return r, nil
}

func buildFilter(req dto.ExportRequest) (repository.OrderFilter, error) {
	var f repository.OrderFilter
	if req.Status != "" && req.Status != "all" {
		f.Status = req.Status
	}
	f.UserID = req.UserID
	if req.StartDate != "" {
		t, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return f, fmt.Errorf("%w: 잘못된 시작 날짜입니다", domain.ErrInvalidInput)
		}
		f.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return f, fmt.Errorf("%w: 잘못된 종료 날짜입니다", domain.ErrInvalidInput)
		}
		// inclusive end of day
		end := t.Add(24*time.Hour - time.Second)
		f.EndDate = &end
	}
	return f, nil
}

var ordersHeaders = []string{
	"주문번호", "배송상태", "운송장번호", "택배회사", "접수일시", "예상배송일",
	"발송인명", "발송인전화", "발송인이메일", "발송인회사", "발송인주소", "발송인우편번호",
	"수취인명", "수취인전화", "수취인이메일", "수취인회사", "수취인주소", "수취인우편번호",
	"포장종류", "중량(kg)", "규격", "물품가액", "물품설명",
	"배송종류", "희망배송일", "희망배송시간", "배송메모",
	"파손주의", "냉동", "서명필요", "보험금액", "특별요청사항",
	"등록자ID", "등록자명",
}

func ordersTable(rows []*entity.OrderExportRow) Table {
	t := Table{Name: "배송접수목록", Headers: ordersHeaders}
	for _, r := range rows {
		o := r.Order
		t.Rows = append(t.Rows, []string{
			o.ID,
			o.Status,
			strPtr(o.TrackingNumber),
			o.TrackingCompany,
			o.CreatedAt.Format(datetimeLayout),
			datePtr(o.EstimatedDelivery),
			o.SenderName,
			o.SenderPhone,
			o.SenderEmail,
			o.SenderCompany,
			joinAddress(o.SenderAddress, o.SenderDetailAddress),
			o.SenderZipcode,
			o.ReceiverName,
			o.ReceiverPhone,
			o.ReceiverEmail,
			o.ReceiverCompany,
			o.ReceiverFullAddress(),
			o.ReceiverZipcode,
			o.PackageType,
			nullDecimal(o.PackageWeight),
			o.PackageSize,
			nullDecimal(o.PackageValue),
			o.PackageDescription,
			o.DeliveryType,
			datePtr(o.DeliveryDate),
			o.DeliveryTime,
			o.DeliveryMemo,
			yesNo(o.IsFragile),
			yesNo(o.IsFrozen),
			yesNo(o.RequiresSignature),
			o.InsuranceAmount.String(),
			o.SpecialInstructions,
			r.Username,
			r.UserName,
		})
	}
	return t
}

func statusTable(stats []*entity.StatusStat) Table {
	t := Table{Name: "상태별통계", Headers: []string{"배송상태", "주문수", "비율(%)"}}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Status,
			strconv.Itoa(s.Orders),
			strconv.FormatFloat(s.Percent, 'f', 2, 64),
		})
	}
	return t
}

func dailyTable(stats []*entity.DailyStat) Table {
	t := Table{Name: "일별통계", Headers: []string{"날짜", "주문수", "완료건수", "완료율(%)"}}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Date.Format(dateLayout),
			strconv.Itoa(s.Orders),
			strconv.Itoa(s.Delivered),
			strconv.FormatFloat(s.DeliveredRate, 'f', 2, 64),
		})
	}
	return t
}

func carrierTable(stats []*entity.CarrierStat) Table {
	t := Table{Name: "택배회사별통계", Headers: []string{"택배회사", "주문수", "완료건수", "평균배송일"}}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Company,
			strconv.Itoa(s.Orders),
			strconv.Itoa(s.Delivered),
			strconv.FormatFloat(s.AvgDeliveryDays, 'f', 1, 64),
		})
	}
	return t
}

func userTable(stats []*entity.UserOrderStat) Table {
	t := Table{Name: "사용자별통계", Headers: []string{"등록자명", "등록자ID", "주문수", "최근접수일"}}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Name,
			s.Username,
			strconv.Itoa(s.Orders),
			datePtr(s.LastOrder),
		})
	}
	return t
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func datePtr(p *time.Time) string {
	if p == nil {
		return ""
	}
	return p.Format(dateLayout)
}

func nullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func yesNo(b bool) string {
	if b {
		return "예"
	}
	return "아니오"
}

func joinAddress(addr, detail string) string {
	if detail == "" {
		return addr
	}
	return addr + " " + detail
}
