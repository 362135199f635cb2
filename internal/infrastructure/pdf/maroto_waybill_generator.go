// Package pdf renders the printable waybill for a shipping order.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: 배송 운송장  │  접수번호 + 접수일                   │
//	│  ───────────────────────────────────────────────────────── │
//	│  보내는 분: 이름 / 연락처 / 주소                             │
//	│  받는 분:   이름 / 연락처 / 주소                             │
//	│  ───────────────────────────────────────────────────────── │
//	│  화물 정보: 종류 / 중량 / 규격 / 취급 옵션                    │
//	│  ───────────────────────────────────────────────────────── │
//	│  운송장번호 바코드 (code128) + 택배회사 + 예상배송일          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/termpro2000/fdapp/internal/application/shipping"
	"github.com/termpro2000/fdapp/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 120}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ shipping.WaybillGenerator = (*MarotoWaybillGenerator)(nil)

// MarotoWaybillGenerator implements shipping.WaybillGenerator using Maroto v2.
type MarotoWaybillGenerator struct{}

// NewMarotoWaybillGenerator builds the generator.
func NewMarotoWaybillGenerator() *MarotoWaybillGenerator { return &MarotoWaybillGenerator{} }

// GenerateWaybill renders the waybill PDF and returns its bytes.
func (g *MarotoWaybillGenerator) GenerateWaybill(order *entity.ShippingOrder) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Shipping Waybill", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("SENDER", order.SenderName, order.SenderPhone,
		joinAddress(order.SenderAddress, order.SenderDetailAddress), order.SenderZipcode))
	m.AddRows(partyRow("RECEIVER", order.ReceiverName, order.ReceiverPhone,
		order.ReceiverFullAddress(), order.ReceiverZipcode))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(packageRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(trackingRows(order)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate waybill: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: title on the left, order ID and intake date on the right.
func headerRow(order *entity.ShippingOrder) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("SHIPPING WAYBILL", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
			text.New("Status: "+order.Status, props.Text{
				Size: 9, Top: 11, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Order "+order.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Received: "+order.CreatedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// partyRow: one sender or receiver block.
func partyRow(label, name, phone, address, zipcode string) core.Row {
	addr := address
	if zipcode != "" {
		addr = fmt.Sprintf("(%s) %s", zipcode, address)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s", name, phone), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(addr, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// packageRow: package details and handling options on one line each.
func packageRow(order *entity.ShippingOrder) core.Row {
	weight := "-"
	if order.PackageWeight.Valid {
		weight = order.PackageWeight.Decimal.String() + " kg"
	}
	size := order.PackageSize
	if size == "" {
		size = "-"
	}
	var opts []string
	if order.IsFragile {
		opts = append(opts, "FRAGILE")
	}
	if order.IsFrozen {
		opts = append(opts, "FROZEN")
	}
	if order.RequiresSignature {
		opts = append(opts, "SIGNATURE REQUIRED")
	}
	options := strings.Join(opts, " / ")
	if options == "" {
		options = "-"
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("PACKAGE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s   |   %s   |   %s",
				order.PackageType, order.DeliveryType, weight, size,
			), props.Text{Size: 9, Top: 6}),
			text.New("Options: "+options, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// trackingRows: code128 barcode when a tracking number exists, otherwise a
// placeholder note. Printing before assignment is allowed.
func trackingRows(order *entity.ShippingOrder) []core.Row {
	if order.TrackingNumber == nil {
		return []core.Row{
			row.New(12).Add(
				col.New(12).Add(
					text.New("Tracking number not assigned yet", props.Text{
						Size: 10, Align: align.Center, Top: 4, Color: colorGray,
					}),
				),
			),
		}
	}

	company := order.TrackingCompany
	if company == "" {
		company = "-"
	}
	eta := "-"
	if order.EstimatedDelivery != nil {
		eta = order.EstimatedDelivery.Format("2006-01-02")
	}

	return []core.Row{
		row.New(20).Add(
			col.New(3),
			col.New(6).Add(
				code.NewBar(*order.TrackingNumber, props.Barcode{
					Center:  true,
					Percent: 90,
				}),
			),
			col.New(3),
		),
		row.New(10).Add(
			col.New(12).Add(
				text.New(*order.TrackingNumber, props.Text{
					Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1,
				}),
				text.New(fmt.Sprintf("Carrier: %s   |   ETA: %s", company, eta), props.Text{
					Size: 8, Align: align.Center, Top: 7, Color: colorGray,
				}),
			),
		),
	}
}

func joinAddress(addr, detail string) string {
	if detail == "" {
		return addr
	}
	return addr + " " + detail
}
