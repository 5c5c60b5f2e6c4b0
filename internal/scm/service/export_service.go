package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/mishimakazuya625-eng/as-erp-report/internal/scm/entity"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

type ExportService struct {
	shortage *ShortageService
	mc       *minio.Client // 可为nil，关闭归档
	bucket   string
	logger   *zap.Logger
}

func NewExportService(shortage *ShortageService, mc *minio.Client, bucket string, logger *zap.Logger) *ExportService {
	return &ExportService{shortage: shortage, mc: mc, bucket: bucket, logger: logger}
}

var r1Headers = []string{
	"URGENT_FLAG", "CUSTOMER", "PLANT_SITE", "ORDER_STATUS", "CAR_TYPE", "PART_NAME", "PN",
	"ORDER_COUNT", "TOTAL_ORDER_QTY", "TOTAL_DELIVERED_QTY", "FIELD_SERVICE_QTY",
	"TOTAL_REMAINING_QTY", "SHORT_PKID_COUNT", "SHORT_PKID_DETAILS",
}

var r3Headers = []string{"PN", "PART_NAME", "PLANT_SITE", "PRODUCIBLE_QTY", "LIMITING_PKID", "BREAKDOWN"}

func urgentMark(b bool) string {
	if b {
		return entity.UrgentYes
	}
	return entity.UrgentNo
}

func r1Records(rows []entity.R1Row) [][]string {
	records := [][]string{r1Headers}
	for _, r := range rows {
		records = append(records, []string{
			r.UrgentFlag, r.Customer, r.PlantSite, r.OrderStatus, r.CarType, r.PartName, r.PN,
			strconv.Itoa(r.OrderCount), formatQty(r.TotalOrderQty), formatQty(r.TotalDeliveredQty),
			formatQty(r.FieldServiceQty), formatQty(r.TotalRemainingQty),
			strconv.Itoa(r.ShortPKIDCount), r.ShortPKIDDetails,
		})
	}
	return records
}

func r2Records(report *entity.R2Report) [][]string {
	if report == nil {
		report = &entity.R2Report{}
	}
	records := [][]string{report.Headers()}
	for _, r := range report.Rows {
		rec := []string{
			urgentMark(r.IsUrgent), r.PKID, r.ShortageSites,
			formatQty(r.TotalRequired), formatQty(r.TotalOnHand), formatQty(r.TotalShortage),
		}
		for _, q := range r.RequiredBySite {
			rec = append(rec, formatQty(q))
		}
		for _, q := range r.OnHandBySite {
			rec = append(rec, formatQty(q))
		}
		rec = append(rec, r.SubstitutePKIDs, r.SubstituteDesc, r.SubstituteInvInfo)
		records = append(records, rec)
	}
	return records
}

func r3Records(rows []entity.R3Row) [][]string {
	records := [][]string{r3Headers}
	for _, r := range rows {
		records = append(records, []string{
			r.PN, r.PartName, r.PlantSite, formatQty(r.ProducibleQty), r.LimitingPKID, r.Breakdown,
		})
	}
	return records
}

// Workbook 三张报表写入同一工作簿，表头加粗，列序与CSV导出一致
func (s *ExportService) Workbook(result *entity.AnalysisResult) (*excelize.File, string, error) {
	f := excelize.NewFile()

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	sheets := []struct {
		name    string
		records [][]string
	}{
		{"R1 Order Summary", r1Records(result.R1)},
		{"R2 Component Detail", r2Records(result.R2)},
		{"R3 Producible Qty", r3Records(result.R3)},
	}

	for idx, sheet := range sheets {
		if idx == 0 {
			f.SetSheetName("Sheet1", sheet.name)
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, "", fmt.Errorf("create sheet %s: %w", sheet.name, err)
			}
		}
		for rowIdx, record := range sheet.records {
			for colIdx, val := range record {
				col, _ := excelize.ColumnNumberToName(colIdx + 1)
				cell := fmt.Sprintf("%s%d", col, rowIdx+1)
				f.SetCellValue(sheet.name, cell, val)
				if rowIdx == 0 {
					f.SetCellStyle(sheet.name, cell, cell, boldStyle)
				}
			}
		}
	}

	filename := fmt.Sprintf("Shortage_Analysis_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}

// CSV 单张报表导出；eucKR 为 true 时输出 EUC-KR 编码（下游报表工具按 cp949 读取）
func (s *ExportService) CSV(result *entity.AnalysisResult, report string, eucKR bool) ([]byte, string, error) {
	var records [][]string
	switch report {
	case "r1":
		records = r1Records(result.R1)
	case "r2":
		records = r2Records(result.R2)
	case "r3":
		records = r3Records(result.R3)
	default:
		return nil, "", fmt.Errorf("unknown report: %s", report)
	}

	var buf bytes.Buffer
	var w *csv.Writer
	if eucKR {
		w = csv.NewWriter(transform.NewWriter(&buf, korean.EUCKR.NewEncoder()))
	} else {
		w = csv.NewWriter(&buf)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, "", fmt.Errorf("write csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("write csv: %w", err)
	}

	filename := fmt.Sprintf("%s_Shortage_%s.csv", map[string]string{
		"r1": "R1", "r2": "R2_Detail", "r3": "R3_Producible",
	}[report], time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// Archive 将某次运行的工作簿归档到对象存储，返回对象名
func (s *ExportService) Archive(ctx context.Context, runID string) (string, error) {
	if s.mc == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	run, err := s.shortage.GetRun(runID)
	if err != nil {
		return "", fmt.Errorf("analysis run not found: %w", err)
	}
	result, err := s.shortage.GetReport(ctx, runID)
	if err != nil {
		return "", err
	}
	f, _, err := s.Workbook(result)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}

	objectName := fmt.Sprintf("shortage/%s.xlsx", run.RunCode)
	_, err = s.mc.PutObject(ctx, s.bucket, objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if err != nil {
		return "", fmt.Errorf("upload workbook: %w", err)
	}
	s.logger.Info("shortage report archived", zap.String("run_code", run.RunCode), zap.String("object", objectName))
	return objectName, nil
}
