package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a PDF rendering of a price list using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(title, generatedAt string, rows []Row) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPriceListHeader(m, title, generatedAt)
	addPriceTableHeader(m)
	for _, r := range rows {
		addPriceTableRow(m, r)
	}
	addPriceListSummary(m, rows)
	addPriceListFooter(m, generatedAt)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addPriceListHeader adds the title and generation stamp.
func addPriceListHeader(m core.Maroto, title, generatedAt string) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Date: %s", generatedAt), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addPriceTableHeader adds the column header row. The PDF shows the pricing
// columns; the audit columns (Updated At/By) appear in the footer line of
// the workbook export instead.
func addPriceTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Item", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Purchase Cost", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Selling Price", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Fee", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Margin", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Margin%", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Gap", headerText)).WithStyle(&headerCell),
		),
	)
}

// addPriceTableRow adds a single data row, tinted by its status.
func addPriceTableRow(m core.Maroto, r Row) {
	var cellStyle *props.Cell
	switch r.Status {
	case StatusPriceInversion:
		bg := &props.Color{Red: 254, Green: 226, Blue: 226}
		cellStyle = &props.Cell{BackgroundColor: bg}
	case StatusBelowTarget:
		bg := &props.Color{Red: 254, Green: 243, Blue: 199}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	colNo := col.New(1).Add(text.New(fmt.Sprintf("%d", r.No), baseText))
	colItem := col.New(3).Add(text.New(DisplayName(r), leftText))
	colCost := col.New(2).Add(text.New(FormatKRW(r.PurchaseCost), rightText))
	colPrice := col.New(2).Add(text.New(FormatKRW(r.SellingPrice), rightText))
	colFee := col.New(1).Add(text.New(FormatKRW(r.FeeAmount), rightText))
	colMargin := col.New(1).Add(text.New(FormatKRW(r.MarginAmount), rightText))
	colPct := col.New(1).Add(text.New(FormatPercent(r.ActualMarginPct), rightText))
	colGap := col.New(1).Add(text.New(FormatSigned(r.TargetGap), rightText))

	if cellStyle != nil {
		colNo = colNo.WithStyle(cellStyle)
		colItem = colItem.WithStyle(cellStyle)
		colCost = colCost.WithStyle(cellStyle)
		colPrice = colPrice.WithStyle(cellStyle)
		colFee = colFee.WithStyle(cellStyle)
		colMargin = colMargin.WithStyle(cellStyle)
		colPct = colPct.WithStyle(cellStyle)
		colGap = colGap.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colNo,
			colItem,
			colCost,
			colPrice,
			colFee,
			colMargin,
			colPct,
			colGap,
		),
	)
}

// addPriceListSummary adds the cost/price/margin totals.
func addPriceListSummary(m core.Maroto, rows []Row) {
	var totalCost, totalPrice, totalMargin int64
	for _, r := range rows {
		totalCost += r.PurchaseCost
		totalPrice += r.SellingPrice
		totalMargin += r.MarginAmount
	}

	// Spacer before summary
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := labelStyle

	summaries := []struct {
		label string
		value int64
	}{
		{"Total Purchase Cost", totalCost},
		{"Total Selling Price", totalPrice},
		{"Total Margin", totalMargin},
	}
	for _, s := range summaries {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(s.label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatKRW(s.value), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}
}

// addPriceListFooter adds the generated-date line at the bottom.
func addPriceListFooter(m core.Maroto, generatedAt string) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", generatedAt),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
