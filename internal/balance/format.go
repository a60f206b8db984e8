package balance

import (
	"fmt"
	"strings"
	"time"

	"github.com/killerdias/controle-ferias/internal/vacation"
)

// The digests below are shared over messaging apps, so the wording and the
// *bold* markers are fixed. Day-off dates render as DD/MM/YYYY; the vacation
// "Data Tirada" line carries the stored ISO date untouched.

const listPlaceholder = "Nenhuma"

func formatDisplayDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func formatDayOffText(name string, totalGranted int, taken, pending []time.Time, balance int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*RESUMO DE FOLGAS - %s*\n\n", strings.ToUpper(name))

	fmt.Fprintf(&b, "*Total concedidas:* %d folga", totalGranted)
	if totalGranted != 1 {
		b.WriteString("s")
	}
	b.WriteString("\n")

	if len(taken) > 0 {
		fmt.Fprintf(&b, "*Já tiradas:* %d\n", len(taken))
		for _, d := range taken {
			fmt.Fprintf(&b, "• %s\n", formatDisplayDate(d))
		}
	} else {
		fmt.Fprintf(&b, "*Já tiradas:* %s\n", listPlaceholder)
	}

	fmt.Fprintf(&b, "\n*Saldo atual:* %d\n", balance)
	fmt.Fprintf(&b, "*Agendadas:* %d\n", len(pending))

	if len(pending) > 0 {
		b.WriteString("\n*Agendado para:*\n")
		for _, d := range pending {
			fmt.Fprintf(&b, "• %s\n", formatDisplayDate(d))
		}
	} else {
		fmt.Fprintf(&b, "\n*Agendado para:*\n• %s\n", listPlaceholder)
	}

	return b.String()
}

func formatVacationText(name string, records []vacation.VacationRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*RESUMO DE FÉRIAS - %s*\n\n", strings.ToUpper(name))

	if len(records) == 0 {
		b.WriteString("Nenhum registro de férias.")
		return b.String()
	}

	for _, rec := range records {
		fmt.Fprintf(&b, "*Ano: %d*\n", rec.Year)
		fmt.Fprintf(&b, "Pendentes: %s\n", formatOptionalInt(rec.DaysPending))
		fmt.Fprintf(&b, "Tirados: %s\n", formatOptionalInt(rec.DaysTaken))
		fmt.Fprintf(&b, "Saldo: %s\n", formatOptionalInt(rec.Balance))
		fmt.Fprintf(&b, "Previsão: %s\n", formatOptionalString(rec.Forecast))
		fmt.Fprintf(&b, "Vendas: %s\n", formatOptionalString(rec.SaleNote))
		fmt.Fprintf(&b, "Data Tirada: %s\n\n", formatOptionalDate(rec.DateTaken))
	}

	return b.String()
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func formatOptionalString(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func formatOptionalDate(v *time.Time) string {
	if v == nil {
		return "-"
	}
	return v.Format("2006-01-02")
}
