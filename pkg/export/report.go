package export

import (
	"fmt"
	"os"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"github.com/MarkTegna/netwalker/pkg/collect"
	"github.com/MarkTegna/netwalker/pkg/prefix"
)

// WriteSummaryPDF writes a one-run summary report: run metadata, device
// inventory, per-VRF prefix counts, the widest summary routes, and the
// exception tally.
func WriteSummaryPDF(path string, report *collect.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	addTitle(pdf, report)
	addDeviceTable(pdf, report.Devices)
	addVRFCounts(pdf, report.Deduplicated)
	addTopSummaries(pdf, report.Relationships)
	addExceptionTally(pdf, report.Exceptions)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()
	if err := pdf.Output(file); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func addTitle(pdf *gofpdf.Fpdf, report *collect.Report) {
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "NetWalker Collection Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Run started %s, finished %s",
		formatTime(report.StartedAt), formatTime(report.FinishedAt)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("%d/%d devices collected, %d prefixes, %d exceptions",
		report.Stats.DevicesSucceeded, report.Stats.DevicesAttempted,
		len(report.Normalized), len(report.Exceptions)), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func addDeviceTable(pdf *gofpdf.Fpdf, devices []collect.DeviceInfo) {
	sectionHeader(pdf, "Devices")
	pdf.SetFont("Arial", "B", 9)
	widths := []float64{40, 35, 25, 50, 40}
	headers := []string{"Name", "Host", "Platform", "Model", "Serial"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, d := range devices {
		cells := []string{d.Name, d.Host, d.Platform, d.Model, d.Serial}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func addVRFCounts(pdf *gofpdf.Fpdf, deduped []prefix.DeduplicatedPrefix) {
	counts := make(map[string]int)
	for _, d := range deduped {
		counts[d.VRF]++
	}
	vrfs := make([]string, 0, len(counts))
	for v := range counts {
		vrfs = append(vrfs, v)
	}
	sort.Strings(vrfs)

	sectionHeader(pdf, "Prefixes per VRF")
	pdf.SetFont("Arial", "", 9)
	for _, v := range vrfs {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d distinct prefixes", v, counts[v]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addTopSummaries(pdf *gofpdf.Fpdf, rels []prefix.SummarizationRelationship) {
	// Rank summaries by how many components they cover.
	counts := make(map[string]int)
	for _, r := range rels {
		counts[r.Summary]++
	}
	type ranked struct {
		summary string
		n       int
	}
	var top []ranked
	for s, n := range counts {
		top = append(top, ranked{s, n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].n != top[j].n {
			return top[i].n > top[j].n
		}
		return top[i].summary < top[j].summary
	})
	if len(top) > 10 {
		top = top[:10]
	}

	sectionHeader(pdf, "Top Summary Routes")
	pdf.SetFont("Arial", "", 9)
	for _, r := range top {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s covers %d component routes", r.summary, r.n), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addExceptionTally(pdf *gofpdf.Fpdf, exceptions []prefix.CollectionException) {
	counts := make(map[prefix.ExceptionType]int)
	for _, e := range exceptions {
		counts[e.Type]++
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)

	sectionHeader(pdf, "Exceptions")
	pdf.SetFont("Arial", "", 9)
	if len(types) == 0 {
		pdf.CellFormat(0, 6, "none", "", 1, "L", false, 0, "")
		return
	}
	for _, t := range types {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d", t, counts[prefix.ExceptionType(t)]), "", 1, "L", false, 0, "")
	}
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
}
