package availability

import (
	"regexp"
	"sort"
	"strings"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

var weekdays = []string{
	"domingo",
	"segunda",
	"terca",
	"quarta",
	"quinta",
	"sexta",
	"sabado",
}

var hhmm = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var unaccent = strings.NewReplacer("ç", "c", "á", "a", "à", "a", "ã", "a")

// NormalizeWeekday accepts "Segunda", "segunda-feira", "TERÇA", "sábado" and
// returns the stored lowercase form.
func NormalizeWeekday(s string) (string, bool) {
	day := unaccent.Replace(strings.ToLower(strings.TrimSpace(s)))
	day = strings.TrimSuffix(day, "-feira")

	for _, d := range weekdays {
		if d == day {
			return d, true
		}
	}
	return "", false
}

// NormalizeStartTimes validates every entry and returns them sorted without
// duplicates.
func NormalizeStartTimes(times []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(times))
	out := make([]string, 0, len(times))

	for _, raw := range times {
		t := strings.TrimSpace(raw)
		if !hhmm.MatchString(t) {
			return nil, false
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	sort.Strings(out)
	return out, true
}

// Validate normalizes w in place and enforces the window invariants.
func Validate(w *models.AvailabilityWindow) error {
	day, ok := NormalizeWeekday(w.Weekday)
	if !ok {
		return httperr.Validation("invalid_weekday", "Dia da semana inválido.")
	}

	if w.DurationMinutes <= 0 {
		return httperr.Validation("invalid_duration", "A duração da consulta deve ser maior que zero.")
	}

	if w.BufferMinutes < 0 {
		return httperr.Validation("invalid_buffer", "O intervalo entre consultas não pode ser negativo.")
	}

	times, ok := NormalizeStartTimes(w.StartTimes)
	if !ok {
		return httperr.Validation("invalid_start_time", "Horário inválido. Use o formato HH:MM.")
	}

	w.Weekday = day
	w.StartTimes = times
	w.Location = strings.TrimSpace(w.Location)
	return nil
}
