package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/report"
	"github.com/jhoicas/warehouse/internal/infrastructure/export"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func sampleReport() *report.Report {
	r := report.New(report.LabelDate, report.LabelTotalRevenue)
	r.AddRecord(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(20))
	r.AddRecord(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(1350))
	return r
}

func exportAs(t *testing.T, format report.ExportFormat, r *report.Report) string {
	t.Helper()
	exporter, err := export.NewFactory("Ingresos diarios").NewExporter(format)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, r))
	return buf.String()
}

// ──────────────────────────────────────────────────────────────────────────────
// Factory
// ──────────────────────────────────────────────────────────────────────────────

func TestFactory_TodosLosFormatosSoportados(t *testing.T) {
	f := export.NewFactory("")
	for _, format := range report.ExportFormats {
		exporter, err := f.NewExporter(format)
		require.NoError(t, err, "formato %s", format)
		assert.NotNil(t, exporter)
	}
}

func TestFactory_FormatoDesconocido(t *testing.T) {
	_, err := export.NewFactory("").NewExporter(report.ExportFormat("XLSX"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupported)
}

// ──────────────────────────────────────────────────────────────────────────────
// Formatos
// ──────────────────────────────────────────────────────────────────────────────

func TestCSV_EncabezadoYFilas(t *testing.T) {
	out := exportAs(t, report.FormatCSV, sampleReport())

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Total revenue"},
		{"2024-01-01", "20"},
		{"2024-01-02", "1350"},
	}, rows)
}

func TestCSV_SinEncabezado(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewCSVExporter(false).Export(&buf, sampleReport()))
	assert.Equal(t, "2024-01-01,20\n2024-01-02,1350\n", buf.String())
}

func TestTXT_ColumnasAlineadas(t *testing.T) {
	out := exportAs(t, report.FormatTXT, sampleReport())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Date"))
	assert.Contains(t, lines[1], "----")
	// La segunda columna empieza en la misma posición en todas las filas
	col := strings.Index(lines[0], "Total revenue")
	assert.Equal(t, col, strings.LastIndex(lines[2], "20"))
	assert.Equal(t, col, strings.Index(lines[3], "1350"))
}

func TestHTML_TablaEscapada(t *testing.T) {
	r := report.New("Nombre", "Valor")
	r.AddRecord("<b>x</b>", 1)

	out := exportAs(t, report.FormatHTML, r)

	assert.Contains(t, out, "<title>Ingresos diarios</title>")
	assert.Contains(t, out, "<th>Nombre</th><th>Valor</th>")
	assert.Contains(t, out, "<td>&lt;b&gt;x&lt;/b&gt;</td><td>1</td>")
	assert.NotContains(t, out, "<b>x</b>")
}

func TestJSON_EtiquetasYRegistrosNumericos(t *testing.T) {
	out := exportAs(t, report.FormatJSON, sampleReport())

	assert.JSONEq(t, `{
		"labels": ["Date", "Total revenue"],
		"records": [
			{"Date": "2024-01-01", "Total revenue": 20},
			{"Date": "2024-01-02", "Total revenue": 1350}
		]
	}`, out)
}

func TestJSON_ReporteVacio(t *testing.T) {
	out := exportAs(t, report.FormatJSON, report.New("Date", "Total revenue"))
	assert.JSONEq(t, `{"labels": ["Date", "Total revenue"], "records": []}`, out)
}

func TestPDF_GeneraDocumento(t *testing.T) {
	out := exportAs(t, report.FormatPDF, sampleReport())
	assert.True(t, strings.HasPrefix(out, "%PDF"), "el contenido debe ser un PDF")
}

func TestPDF_SinColumnasFalla(t *testing.T) {
	var buf bytes.Buffer
	err := export.NewPDFExporter("x").Export(&buf, report.New())
	assert.Error(t, err)
}
