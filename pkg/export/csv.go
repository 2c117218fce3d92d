package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/profile"
)

// DefaultCSVChunkRows caps data rows per CSV file before rolling over.
const DefaultCSVChunkRows = 500000

// chunkedCSV writes rows across numbered files: <name>.csv, then
// <name>-2.csv and so on once a file hits the row ceiling. Every file
// repeats the header.
type chunkedCSV struct {
	dir      string
	name     string
	header   []string
	maxRows  int
	file     *os.File
	writer   *csv.Writer
	fileRows int
	fileNo   int
}

func newChunkedCSV(dir, name string, header []string, maxRows int) *chunkedCSV {
	if maxRows <= 0 {
		maxRows = DefaultCSVChunkRows
	}
	return &chunkedCSV{dir: dir, name: name, header: header, maxRows: maxRows}
}

func (c *chunkedCSV) path() string {
	if c.fileNo == 1 {
		return filepath.Join(c.dir, c.name+".csv")
	}
	return filepath.Join(c.dir, fmt.Sprintf("%s-%d.csv", c.name, c.fileNo))
}

func (c *chunkedCSV) roll() error {
	if err := c.closeFile(); err != nil {
		return err
	}
	c.fileNo++
	f, err := os.Create(c.path())
	if err != nil {
		return err
	}
	c.file = f
	c.writer = csv.NewWriter(f)
	c.fileRows = 0
	return c.writer.Write(c.header)
}

func (c *chunkedCSV) write(row []string) error {
	if c.writer == nil || c.fileRows >= c.maxRows {
		if err := c.roll(); err != nil {
			return err
		}
	}
	c.fileRows++
	return c.writer.Write(row)
}

func (c *chunkedCSV) closeFile() error {
	if c.file == nil {
		return nil
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		c.file.Close()
		return err
	}
	err := c.file.Close()
	c.file, c.writer = nil, nil
	return err
}

// close finishes the current file, creating an empty headed file if no
// row was ever written so downstream consumers always find the export.
func (c *chunkedCSV) close() error {
	if c.writer == nil {
		if err := c.roll(); err != nil {
			return err
		}
	}
	return c.closeFile()
}

// CSVExporter flattens officer records into the tabular exports. Every
// child row carries the officer's taxid as the join key.
type CSVExporter struct {
	dir       string
	chunkRows int
}

// NewCSVExporter creates an exporter writing under dir.
func NewCSVExporter(dir string, chunkRows int) *CSVExporter {
	return &CSVExporter{dir: dir, chunkRows: chunkRows}
}

var officerHeader = func() []string {
	header := []string{
		"taxid", "full_name", "first_name", "last_name", "middle_initial",
		"command", "rank", "shield_no", "appt_date",
		"recognition_count", "arrest_count",
		"summary_command", "assignment_date", "ethnicity", "rank_desc",
		"summary_shield_no", "summary_appt_date",
	}
	for _, classification := range profile.Classifications {
		header = append(header, "arrests_"+classification)
	}
	return header
}()

// Export writes all officer-derived CSVs from the given records. The
// records of every bucket stream through the same writers, so each CSV
// spans the whole force.
func (e *CSVExporter) Export(officers []profile.Officer) error {
	writers := map[string]*chunkedCSV{
		"officers":   newChunkedCSV(e.dir, "officers", officerHeader, e.chunkRows),
		"ranks":      newChunkedCSV(e.dir, "ranks", []string{"taxid", "rank", "date", "shield_no"}, e.chunkRows),
		"documents":  newChunkedCSV(e.dir, "documents", []string{"taxid", "date", "url", "type"}, e.chunkRows),
		"discipline": newChunkedCSV(e.dir, "discipline", []string{"taxid", "entry", "type", "disposition", "command", "case_no", "description", "recommendation", "penalty"}, e.chunkRows),
		"awards":     newChunkedCSV(e.dir, "awards", []string{"taxid", "date", "name"}, e.chunkRows),
		"training":   newChunkedCSV(e.dir, "training", []string{"taxid", "date", "name"}, e.chunkRows),
	}

	for _, officer := range officers {
		if err := e.writeOfficer(writers, officer); err != nil {
			return err
		}
	}

	for name, w := range writers {
		if err := w.close(); err != nil {
			return fmt.Errorf("%s export: %w", name, err)
		}
	}
	return nil
}

func (e *CSVExporter) writeOfficer(writers map[string]*chunkedCSV, officer profile.Officer) error {
	taxid := strconv.Itoa(officer.TaxID)

	row := []string{
		taxid, officer.FullName, officer.FirstName, officer.LastName, officer.MiddleInitial,
		officer.Command, officer.Rank, officer.ShieldNo, officer.ApptDate,
		strconv.Itoa(officer.RecognitionCount), strconv.Itoa(officer.ArrestCount),
	}
	if s := officer.Reports.Summary; s != nil {
		row = append(row, s.Command, s.AssignmentDate, s.Ethnicity, s.RankDesc, s.ShieldNo, s.ApptDate)
	} else {
		row = append(row, "", "", "", "", "", "")
	}
	for _, classification := range profile.Classifications {
		row = append(row, strconv.Itoa(officer.Reports.Arrests[classification]))
	}
	if err := writers["officers"].write(row); err != nil {
		return err
	}

	for _, rank := range officer.Reports.Ranks {
		if err := writers["ranks"].write([]string{taxid, rank.Rank, rank.Date, rank.ShieldNo}); err != nil {
			return err
		}
	}
	for _, doc := range officer.Reports.Documents {
		if err := writers["documents"].write([]string{taxid, doc.Date, doc.URL, doc.Type}); err != nil {
			return err
		}
	}
	for _, entry := range officer.Reports.Discipline {
		for _, charge := range entry.Charges {
			row := []string{taxid, entry.Entry, "charge", charge.Disposition, charge.Command, charge.CaseNo, charge.Description, "", charge.Penalty}
			if err := writers["discipline"].write(row); err != nil {
				return err
			}
		}
		for _, allegation := range entry.Allegations {
			row := []string{taxid, entry.Entry, "allegation", "", "", allegation.CaseNo, allegation.Description, allegation.Recommendation, allegation.Penalty}
			if err := writers["discipline"].write(row); err != nil {
				return err
			}
		}
	}
	for _, award := range officer.Reports.Awards {
		if err := writers["awards"].write([]string{taxid, award.Date, award.Name}); err != nil {
			return err
		}
	}
	for _, item := range officer.Reports.Training {
		if err := writers["training"].write([]string{taxid, item.Date, item.Name}); err != nil {
			return err
		}
	}
	return nil
}

// ExportTrials writes trials.csv, one row per officer named by each
// decision so the taxid join key stays usable.
func (e *CSVExporter) ExportTrials(decisions []profile.TrialDecision) error {
	w := newChunkedCSV(e.dir, "trials", []string{"date", "url", "last_name", "first_name", "taxid", "retired"}, e.chunkRows)
	for _, decision := range decisions {
		if len(decision.Officers) == 0 {
			if err := w.write([]string{decision.Date, decision.URL, "", "", "", ""}); err != nil {
				return err
			}
			continue
		}
		for _, ref := range decision.Officers {
			taxid := ""
			if ref.TaxID != nil {
				taxid = strconv.Itoa(*ref.TaxID)
			}
			retired := ""
			if ref.Retired {
				retired = "true"
			}
			if err := w.write([]string{decision.Date, decision.URL, ref.LastName, ref.FirstName, taxid, retired}); err != nil {
				return err
			}
		}
	}
	return w.close()
}
