package service

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"github.com/adiprakosa/kasirpos/pkg/util"
	"github.com/xuri/excelize/v2"
)

// DailySalesReport summarizes one calendar day of completed orders.
type DailySalesReport struct {
	Date        string        `json:"date"`
	OrderCount  int           `json:"orderCount"`
	ItemsSold   int           `json:"itemsSold"`
	GrossSales  int64         `json:"grossSales"`
	ByMethod    []MethodSales `json:"byMethod"`
	TopProducts []ProductRank `json:"topProducts"`
}

type MethodSales struct {
	PaymentMethod string `json:"paymentMethod"`
	OrderCount    int    `json:"orderCount"`
	GrossSales    int64  `json:"grossSales"`
}

type ProductRank struct {
	ProductName string `json:"productName"`
	Amounts     int    `json:"amounts"`
	GrossSales  int64  `json:"grossSales"`
}

type ReportService interface {
	DailySales(day time.Time) (*DailySalesReport, error)
	ExportDailySalesXLSX(day time.Time) ([]byte, string, error)
}

type reportService struct {
	orderRepo repository.OrderRepository
}

func NewReportService(orderRepo repository.OrderRepository) ReportService {
	return &reportService{orderRepo: orderRepo}
}

func (s *reportService) DailySales(day time.Time) (*DailySalesReport, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	logger.Info("Building daily sales report", map[string]interface{}{
		"date": start.Format("2006-01-02"),
	})

	orders, err := s.orderRepo.FindCreatedBetween(start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}

	report := &DailySalesReport{
		Date: start.Format("2006-01-02"),
	}

	methodTotals := make(map[string]*MethodSales)
	productTotals := make(map[uint]*ProductRank)

	for _, order := range orders {
		report.OrderCount++
		report.ItemsSold += order.TotalAmounts
		report.GrossSales += order.TotalPrice

		methodName := "Unknown"
		if order.PaymentMethod != nil {
			methodName = order.PaymentMethod.Name
		}
		ms, ok := methodTotals[methodName]
		if !ok {
			ms = &MethodSales{PaymentMethod: methodName}
			methodTotals[methodName] = ms
		}
		ms.OrderCount++
		ms.GrossSales += order.TotalPrice

		for _, item := range order.OrderItems {
			pr, ok := productTotals[item.ProductID]
			if !ok {
				name := fmt.Sprintf("#%d", item.ProductID)
				if item.Product != nil {
					name = item.Product.Name
				}
				pr = &ProductRank{ProductName: name}
				productTotals[item.ProductID] = pr
			}
			pr.Amounts += item.Amounts
			pr.GrossSales += item.SubTotal
		}
	}

	report.ByMethod = make([]MethodSales, 0, len(methodTotals))
	for _, ms := range methodTotals {
		report.ByMethod = append(report.ByMethod, *ms)
	}
	sort.Slice(report.ByMethod, func(i, j int) bool {
		return report.ByMethod[i].GrossSales > report.ByMethod[j].GrossSales
	})

	report.TopProducts = make([]ProductRank, 0, len(productTotals))
	for _, pr := range productTotals {
		report.TopProducts = append(report.TopProducts, *pr)
	}
	sort.Slice(report.TopProducts, func(i, j int) bool {
		return report.TopProducts[i].GrossSales > report.TopProducts[j].GrossSales
	})

	logger.Info("Daily sales report built", map[string]interface{}{
		"date":        report.Date,
		"order_count": report.OrderCount,
		"gross_sales": report.GrossSales,
	})

	return report, nil
}

// ExportDailySalesXLSX renders the daily report as a spreadsheet and
// returns the file bytes plus a suggested filename.
func (s *reportService) ExportDailySalesXLSX(day time.Time) ([]byte, string, error) {
	report, err := s.DailySales(day)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rows := [][]interface{}{
		{"Daily Sales Report", report.Date},
		{},
		{"Orders", report.OrderCount},
		{"Items Sold", report.ItemsSold},
		{"Gross Sales", util.FormatIDR(report.GrossSales)},
		{},
		{"Payment Method", "Orders", "Gross Sales"},
	}
	for _, ms := range report.ByMethod {
		rows = append(rows, []interface{}{ms.PaymentMethod, ms.OrderCount, util.FormatIDR(ms.GrossSales)})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Product", "Qty", "Gross Sales"})
	for _, pr := range report.TopProducts {
		rows = append(rows, []interface{}{pr.ProductName, pr.Amounts, util.FormatIDR(pr.GrossSales)})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write sales report spreadsheet", err)
		return nil, "", err
	}

	filename := fmt.Sprintf("sales-%s.xlsx", report.Date)
	return buf.Bytes(), filename, nil
}
