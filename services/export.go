package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const expenseSheet = "Gastos"

type expenseRow struct {
	GastoID          uint
	HistoricoID      uint
	UsuarioID        uint
	VeiculoID        uint
	EstacaoID        uint
	KwhConsumidos    float64
	DataCarregamento time.Time
	DataGasto        time.Time
	CustoTotal       float64
}

var expenseHeaders = []string{
	"Gasto ID", "Histórico ID", "Usuário ID", "Veículo ID", "Estação ID",
	"kWh consumidos", "Data do carregamento", "Data do gasto", "Custo total",
}

// Export renders the expenses in the optional period as an xlsx workbook, one row per
// expense joined with its charging session, followed by a totals row.
func (s *ChargingExpenseService) Export(ctx context.Context, inicio, fim *time.Time) (*bytes.Buffer, error) {
	q := s.db.WithContext(ctx).
		Table("gasto_carregamento").
		Select("gasto_carregamento.gasto_id, gasto_carregamento.historico_id, " +
			"historico_carregamento.usuario_id, historico_carregamento.veiculo_id, historico_carregamento.estacao_id, " +
			"historico_carregamento.kwh_consumidos, historico_carregamento.data_carregamento, " +
			"gasto_carregamento.data_gasto, gasto_carregamento.custo_total").
		Joins("JOIN historico_carregamento ON historico_carregamento.historico_id = gasto_carregamento.historico_id").
		Order("gasto_carregamento.data_gasto, gasto_carregamento.gasto_id")
	if inicio != nil {
		q = q.Where("gasto_carregamento.data_gasto >= ?", inicio.UTC())
	}
	if fim != nil {
		q = q.Where("gasto_carregamento.data_gasto <= ?", fim.UTC())
	}

	var rows []expenseRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, s.fail("export", err)
	}

	f, err := expenseWorkbook(rows)
	if err != nil {
		return nil, s.fail("export", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, s.fail("export", err)
	}
	s.log.Info("expenses exported", zap.Int("rows", len(rows)))
	return buf, nil
}

func expenseWorkbook(rows []expenseRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := writeExpenseSheet(f, rows); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func writeExpenseSheet(f *excelize.File, rows []expenseRow) error {
	index, err := f.NewSheet(expenseSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2E7D32"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	if err := setRow(f, 1, toCells(expenseHeaders)); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(expenseHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(expenseSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(expenseSheet, "A", lastCol, 20); err != nil {
		return err
	}

	var total float64
	for i, r := range rows {
		values := []interface{}{
			r.GastoID, r.HistoricoID, r.UsuarioID, r.VeiculoID, r.EstacaoID,
			r.KwhConsumidos,
			r.DataCarregamento.Format("2006-01-02 15:04:05"),
			r.DataGasto.Format("2006-01-02 15:04:05"),
			r.CustoTotal,
		}
		if err := setRow(f, i+2, values); err != nil {
			return err
		}
		total += r.CustoTotal
	}

	totalRow := len(rows) + 2
	if err := f.SetCellValue(expenseSheet, fmt.Sprintf("H%d", totalRow), "Total"); err != nil {
		return err
	}
	return f.SetCellValue(expenseSheet, fmt.Sprintf("I%d", totalRow), total)
}

// setRow writes values into row starting at column A.
func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(expenseSheet, cell, &values)
}

func toCells(headers []string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}
