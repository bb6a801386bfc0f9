package invoice

import "github.com/redjkee/transport-analytics/internal/domain"

// Aggregate concatenates per-file record sequences in the given order and
// computes the batch statistics. Distinct plates and drivers keep first-seen order.
func Aggregate(perFile [][]domain.InvoiceRecord, inputs int) domain.Batch {
	records := make([]domain.InvoiceRecord, 0)
	for _, recs := range perFile {
		records = append(records, recs...)
	}

	stats := domain.Statistics{
		TotalRecords: len(records),
		Plates:       make([]string, 0),
		Drivers:      make([]string, 0),
	}
	seenPlates := make(map[string]bool)
	seenDrivers := make(map[string]bool)

	for _, r := range records {
		stats.TotalAmount += r.Amount

		if !seenPlates[r.Plate] {
			seenPlates[r.Plate] = true
			stats.Plates = append(stats.Plates, r.Plate)
		}
		if r.Driver.Found && !seenDrivers[r.Driver.Value] {
			seenDrivers[r.Driver.Value] = true
			stats.Drivers = append(stats.Drivers, r.Driver.Value)
		}
	}

	return domain.Batch{
		Records: records,
		Stats:   stats,
		Inputs:  inputs,
	}
}
