package report

import "strings"

// ExportFormat formato de exportación de un reporte.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "CSV"
	FormatTXT  ExportFormat = "TXT"
	FormatHTML ExportFormat = "HTML"
	FormatJSON ExportFormat = "JSON"
	FormatPDF  ExportFormat = "PDF"
)

// ExportFormats formatos soportados en el orden en que se ofrecen en los menús.
var ExportFormats = []ExportFormat{FormatCSV, FormatTXT, FormatHTML, FormatJSON, FormatPDF}

// ParseExportFormat interpreta un formato sin distinguir mayúsculas.
func ParseExportFormat(s string) ExportFormat {
	return ExportFormat(strings.ToUpper(strings.TrimSpace(s)))
}

// Extension extensión de archivo sin punto.
func (f ExportFormat) Extension() string {
	return strings.ToLower(string(f))
}

// ContentType tipo MIME del formato.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ChartType tipo de gráfico.
type ChartType string

const (
	ChartBar  ChartType = "BAR"
	ChartLine ChartType = "LINE"
)

// ChartTypes gráficos soportados en el orden de los menús.
var ChartTypes = []ChartType{ChartBar, ChartLine}

// ParseChartType interpreta un tipo de gráfico sin distinguir mayúsculas.
func ParseChartType(s string) ChartType {
	return ChartType(strings.ToUpper(strings.TrimSpace(s)))
}
