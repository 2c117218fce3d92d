package harvest

import (
	"fmt"
	"net/url"
)

// Upstream report ids. Every report kind is served by the same datasource
// API, distinguished only by its report number.
const (
	reportSummary     = 1
	reportOfficerList = 2
	reportRanks       = 7
	reportAwards      = 13
	reportTraining    = 1027
	reportCharges     = 1030
	reportDiscipline  = 1031
	reportAllegations = 1033
	reportDocuments   = 2041
	reportArrests     = 2042
	reportTrials      = 2043
)

// Endpoints builds request URLs against the configured portal host.
type Endpoints struct {
	BaseURL string
}

// List returns the paginated officer list URL for a letter bucket. The
// platform filters ride along as URL-encoded JSON.
func (e Endpoints) List(letter string, page, pageSize int) string {
	filters := fmt.Sprintf(`{"filters":[{"key":"@SearchName","label":"Search Name","values":["SEARCH_FILTER_VALUE"]},{"key":"@LastNameFirstLetter","label":"Last Name First Letter","values":["%s"]}]}`, letter)
	return fmt.Sprintf("%s/api/reports/%d/datasource/serverList?aggregate=&filter=&group=&page=%d&pageSize=%d&platformFilters=%s&sort=",
		e.BaseURL, reportOfficerList, page, pageSize, url.QueryEscape(filters))
}

// Trials returns the paginated trial-decision list URL.
func (e Endpoints) Trials(page, pageSize int) string {
	return fmt.Sprintf("%s/api/reports/%d/datasource/serverList?aggregate=&filter=&group=&page=%d&pageSize=%d&sort=",
		e.BaseURL, reportTrials, page, pageSize)
}

// Report returns the per-officer datasource URL for a report id.
func (e Endpoints) Report(id int) string {
	return fmt.Sprintf("%s/api/reports/%d/datasource/list", e.BaseURL, id)
}

// taxidFilter is the POST body selecting one officer's report rows.
func taxidFilter(taxid int) []byte {
	return []byte(fmt.Sprintf(`{"filters":[{"key":"@TAXID","label":"TAXID","values":["%d"]}]}`, taxid))
}

// taxidDateFilter additionally carries the discipline entry's date key.
// The upstream requires it, but its correlation is unreliable; rows are
// claimed by group order, not by this date.
func taxidDateFilter(taxid int, date string) []byte {
	return []byte(fmt.Sprintf(`{"filters":[{"key":"@TAXID","label":"TAXID","values":["%d"]},{"key":"@DATE","values":["%s"]}]}`, taxid, date))
}
