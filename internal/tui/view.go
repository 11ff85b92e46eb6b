package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/export"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
)

const appTitle = "Boletim Diário de Operações"

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	cur := m.router.Current()
	var body string
	switch p := cur.Params.(type) {
	case navigation.HomeParams:
		body = m.homeView(p.Ledger)
	case navigation.GeneralInfoParams, navigation.ActivityParams:
		body = m.formView()
	case navigation.HistoryParams:
		body = m.historyView(p.Ledger)
	case navigation.RecordParams:
		body = m.detailView(p.Record)
	}

	if m.alert != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.styles.Alert.Render(m.alert),
			m.styles.Help.Render("enter: ok"))
	}
	return body + "\n"
}

func (m Model) homeView(ledger models.Ledger) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(appTitle))
	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString(m.styles.Success.Render(m.flash))
		b.WriteString("\n\n")
	}
	b.WriteString("[1] Novo registro\n")
	fmt.Fprintf(&b, "[2] Histórico (%d)\n", ledger.Len())
	b.WriteString(m.styles.Help.Render("1/n: novo · 2/h: histórico · q: sair"))
	return b.String()
}

func (m Model) formView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.form.schema.Title))
	b.WriteString("\n")
	b.WriteString(m.form.view(m.styles))

	if recent := m.wizard.RecentRecords(); len(recent) > 0 {
		lines := []string{m.styles.Label.Render("Últimos registros")}
		for _, rec := range recent {
			lines = append(lines, recordLine(rec))
		}
		b.WriteString(m.styles.Panel.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("enter: avançar · tab: próximo campo · esc: voltar"))
	return b.String()
}

func (m Model) historyView(ledger models.Ledger) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Histórico"))
	b.WriteString("\n")

	if ledger.Len() == 0 {
		b.WriteString(m.styles.Muted.Render("Nenhum registro."))
		b.WriteString("\n")
	}
	for i, rec := range ledger.Records() {
		line := fmt.Sprintf("%d. %s", i+1, recordLine(rec))
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("↑/↓: mover · enter: abrir · esc: voltar"))
	return b.String()
}

func (m Model) detailView(rec models.Record) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Registro"))
	b.WriteString("\n")

	cols := export.Columns()
	row := m.exporter.Row(rec)
	width := 0
	for _, c := range cols {
		if w := lipgloss.Width(c); w > width {
			width = w
		}
	}
	for i, c := range cols {
		label := m.styles.Label.Width(width + 2).Render(c + ":")
		b.WriteString(label + display.OrFallback(row[i]) + "\n")
	}

	b.WriteString(m.styles.Help.Render("esc: voltar"))
	return b.String()
}

func recordLine(rec models.Record) string {
	return fmt.Sprintf("%s–%s %s · Talhão %s · %s",
		display.OrFallback(rec.FormattedStart),
		display.OrFallback(rec.FormattedEnd),
		rec.Operation,
		rec.Plot,
		rec.RegistrationID,
	)
}
