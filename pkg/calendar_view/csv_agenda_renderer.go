package calendar_view

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/klokku/calview/pkg/event"
	log "github.com/sirupsen/logrus"
)

var agendaHeader = []string{"Date", "Title", "Start", "End", "Duration", "Color", "Category"}

type CsvAgendaRenderer struct {
}

func NewCsvAgendaRenderer() *CsvAgendaRenderer {
	return &CsvAgendaRenderer{}
}

// RenderAgenda writes one row per event and day it overlaps, days in the given
// order and events sorted by start within a day. An event spanning several
// days appears on each of them.
func (r *CsvAgendaRenderer) RenderAgenda(days []time.Time, events []event.Event) (string, error) {
	data := make([][]string, 0, len(events)+1)
	data = append(data, agendaHeader)
	for _, day := range days {
		for _, e := range event.SortByStart(event.EventsForDay(events, day)) {
			data = append(data, agendaRow(day, e))
		}
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func agendaRow(day time.Time, e event.Event) []string {
	return []string{
		day.Format(time.DateOnly),
		e.Title,
		e.StartDate.In(day.Location()).Format("2006-01-02 15:04"),
		e.EndDate.In(day.Location()).Format("2006-01-02 15:04"),
		durationToString(e.EndDate.Sub(e.StartDate)),
		string(e.Color),
		e.Category,
	}
}

func durationToString(duration time.Duration) string {
	hours := strconv.Itoa(int(duration.Hours()))
	if len(hours) == 1 {
		hours = "0" + hours
	}
	minutes := strconv.Itoa(int(duration.Minutes()) % 60)
	if len(minutes) == 1 {
		minutes = "0" + minutes
	}
	return hours + ":" + minutes
}
