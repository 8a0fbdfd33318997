package printing

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/erp/pdv/internal/domain/finance"
	"github.com/erp/pdv/internal/domain/shared/valueobject"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateCarne      = "carne.html"
	templateSaleReport = "sale_report.html"
)

// TemplateEngine renders the document templates with pt-BR formatting
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine parses the embedded templates
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("documents").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplateFailed, "failed to parse document templates", err)
	}
	return &TemplateEngine{tmpl: tmpl}, nil
}

// Execute renders the named template
func (e *TemplateEngine) Execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to execute template "+name, err)
	}
	return buf.String(), nil
}

var (
	ptBR    = language.BrazilianPortuguese
	printer = message.NewPrinter(ptBR)
	titler  = cases.Title(ptBR)
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"brl":       formatBRL,
		"date":      formatDate,
		"datetime":  formatDateTime,
		"title":     titleCase,
		"copyLabel": copyLabel,
		"cpf":       formatCPF,
		"inc":       func(i int) int { return i + 1 },
	}
}

// formatBRL renders an amount as "R$ 1.234,56"
func formatBRL(m valueobject.Money) string {
	units := float64(m.Int64()) / 100
	return printer.Sprintf("R$ %v", number.Decimal(units, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}

func titleCase(s string) string {
	return titler.String(strings.ToLower(strings.TrimSpace(s)))
}

func copyLabel(v finance.DeliveryVia) string {
	if v == finance.DeliveryViaCreditor {
		return "Via do credor"
	}
	return "Via do cliente"
}

// formatCPF renders 11 digits as 000.000.000-00
func formatCPF(cpf string) string {
	if len(cpf) != 11 {
		return cpf
	}
	return cpf[0:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:]
}
