// Package assembly merges the two validated wizard payloads into a Record.
package assembly

import (
	"fmt"
	"strings"

	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/models"
)

// Assembler builds records. It trusts its inputs: callers invoke it only
// after both steps passed validation.
type Assembler struct {
	clock *display.Clock
}

// New returns an Assembler formatting activity times with clock.
func New(clock *display.Clock) *Assembler {
	return &Assembler{clock: clock}
}

// Assemble merges info and detail and derives the formatted activity times.
// Neither input is retained: the record owns copies of every time value.
func (a *Assembler) Assemble(info models.GeneralInfo, detail models.ActivityDetail) models.Record {
	rec := models.Record{
		GeneralInfo:    info.Clone(),
		ActivityDetail: detail.Clone(),
	}
	rec.FormattedStart = a.clock.Format(detail.ActivityStart)
	rec.FormattedEnd = a.clock.Format(detail.ActivityEnd)
	return rec
}

// Summary is the confirmation text shown once a record is committed.
func Summary(rec models.Record) string {
	var sb strings.Builder
	sb.WriteString("Atividade adicionada com sucesso!\n")
	fmt.Fprintf(&sb, "Patrimônio Implemento: %s\n", display.OrFallback(rec.ImplementAssetTag))
	fmt.Fprintf(&sb, "Operação: %s\n", rec.Operation)
	fmt.Fprintf(&sb, "Motivo: %s\n", rec.StopReason)
	fmt.Fprintf(&sb, "Talhão: %s\n", rec.Plot)
	fmt.Fprintf(&sb, "Cultura: %s\n", display.OrFallback(rec.Crop))
	fmt.Fprintf(&sb, "Horário Inicial: %s\n", display.OrFallback(rec.FormattedStart))
	fmt.Fprintf(&sb, "Horário Final: %s", display.OrFallback(rec.FormattedEnd))
	return sb.String()
}
