package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/whittakeragency/agency-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService renders admin data as downloadable files
type ExportService struct {
	adminSvc *AdminService
}

func NewExportService(adminSvc *AdminService) *ExportService {
	return &ExportService{adminSvc: adminSvc}
}

// ExportQuotesCSV renders the filtered quote list as CSV
func (s *ExportService) ExportQuotesCSV(ctx context.Context, query *repository.ListQuery) ([]byte, string, error) {
	query.PerPage = 0
	query.Page = 1
	quotes, _, err := s.adminSvc.ListQuotes(ctx, query)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Quote Requests", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"ID", "Customer", "Email", "Category", "Subcategory", "Status", "Amount", "Created"})

	for _, q := range quotes {
		sub := ""
		if q.Subcategory != nil {
			sub = *q.Subcategory
		}
		amount := ""
		if q.QuoteAmount != nil {
			amount = fmt.Sprintf("%.2f", *q.QuoteAmount)
		}
		_ = writer.Write([]string{
			fmt.Sprintf("%d", q.ID),
			q.CustomerName,
			q.CustomerEmail,
			q.Category,
			sub,
			q.Status,
			amount,
			q.CreatedAt.Format("2006-01-02"),
		})
	}

	writer.Flush()

	filename := fmt.Sprintf("quotes_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportClaimsCSV renders the filtered claim list as CSV
func (s *ExportService) ExportClaimsCSV(ctx context.Context, query *repository.ListQuery) ([]byte, string, error) {
	query.PerPage = 0
	query.Page = 1
	claims, _, err := s.adminSvc.ListClaims(ctx, query)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Claims", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"ID", "Customer", "Email", "Category", "Subcategory", "Incident Date", "Status", "Created"})

	for _, c := range claims {
		sub := ""
		if c.Subcategory != nil {
			sub = *c.Subcategory
		}
		_ = writer.Write([]string{
			fmt.Sprintf("%d", c.ID),
			c.CustomerName,
			c.CustomerEmail,
			c.Category,
			sub,
			c.IncidentDate.Format("2006-01-02"),
			c.Status,
			c.CreatedAt.Format("2006-01-02"),
		})
	}

	writer.Flush()

	filename := fmt.Sprintf("claims_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportUsersXLSX renders the user list with activity counts as a workbook
func (s *ExportService) ExportUsersXLSX(ctx context.Context, params AdminUserListParams) ([]byte, string, error) {
	params.Page = 1
	params.Limit = 0
	users, _, err := s.adminSvc.ListUsers(ctx, params)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Customers"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"ID", "Username", "Name", "Email", "Active", "Quotes", "Claims", "Messages", "Last Login"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, u := range users {
		lastLogin := ""
		if u.LastLoginAt != nil {
			lastLogin = u.LastLoginAt.Format("2006-01-02 15:04")
		}
		values := []any{u.ID, u.Username, u.FullName, u.Email, u.IsActive, u.QuotesCount, u.ClaimsCount, u.MessagesCount, lastLogin}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("customers_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportAttentionPDF renders the current attention queue as a printable report
func (s *ExportService) ExportAttentionPDF(ctx context.Context) ([]byte, string, error) {
	resp, err := s.adminSvc.AttentionItems(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Attention Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 8, fmt.Sprintf("Generated %s - %d items", time.Now().Format("2006-01-02 15:04"), len(resp.Items)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 8, "Customer", "1", 0, "", false, 0, "")
	pdf.CellFormat(70, 8, "Item", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 8, "Age", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 8, "Priority", "1", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range resp.Items {
		pdf.CellFormat(50, 8, item.CustomerName, "1", 0, "", false, 0, "")
		pdf.CellFormat(70, 8, item.Title, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 8, item.Age, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 8, item.Priority, "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("attention_report_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
