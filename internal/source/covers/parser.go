package covers

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tomasvidela/consensus-alerts/internal/event"
)

var (
	rowRe    = regexp.MustCompile(`(?is)<tr[^>]*>(.*?)</tr>`)
	cellRe   = regexp.MustCompile(`(?is)<td[^>]*>(.*?)</td>`)
	homeRe   = regexp.MustCompile(`(?is)<span[^>]*class="[^"]*teamBlock"[^>]*>.*?<a[^>]*>(.*?)</a>`)
	awayRe   = regexp.MustCompile(`(?is)<span[^>]*class="[^"]*teamBlock2"[^>]*>.*?<a[^>]*>(.*?)</a>`)
	spanRe   = regexp.MustCompile(`(?is)<span[^>]*>(.*?)</span>`)
	etRe     = regexp.MustCompile(`(?i)\b(am|pm)\.?\s+ET\b`)
	brRe     = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	wsRe     = regexp.MustCompile(`\s+`)
	digitsRe = regexp.MustCompile(`\d+`)
)

// kickoffLayouts are tried in order against the cleaned kickoff cell.
// The page alternates between abbreviated and spelled-out day/month
// names; dotted abbreviations are stripped before parsing.
var kickoffLayouts = []string{
	"Mon Jan 2 3:04 PM 2006",
	"Monday January 2 3:04 PM 2006",
}

// parseSlate extracts one record per consensus table row. Rows without
// a recognizable matchup are skipped.
func (c *Client) parseSlate(page string) []event.Record {
	var records []event.Record
	for _, row := range rowRe.FindAllStringSubmatch(page, -1) {
		if rec, ok := c.parseRow(row[1]); ok {
			records = append(records, rec)
		}
	}
	return records
}

func (c *Client) parseRow(row string) (event.Record, bool) {
	cells := cellRe.FindAllStringSubmatch(row, -1)
	if len(cells) == 0 {
		return event.Record{}, false
	}

	rec := event.Record{Sport: strings.ToUpper(c.sport)}

	// Matchup cell: two team spans, each wrapping an anchor.
	var matchupCell string
	for _, cell := range cells {
		if homeRe.MatchString(cell[1]) {
			matchupCell = cell[1]
			break
		}
	}
	if matchupCell == "" {
		return event.Record{}, false
	}
	if m := homeRe.FindStringSubmatch(matchupCell); m != nil {
		rec.TeamHome = cleanText(m[1])
	}
	if m := awayRe.FindStringSubmatch(matchupCell); m != nil {
		rec.TeamAway = cleanText(m[1])
	}
	if rec.TeamHome == "" || rec.TeamAway == "" {
		return event.Record{}, false
	}

	// Kickoff cell: "Sat Aug 2 1:05 pm ET" or a dotted variant.
	for _, cell := range cells {
		text := cleanText(cell[1])
		if etRe.MatchString(text) {
			rec.EventDate, rec.EventTime = c.parseKickoff(text)
			break
		}
	}

	// Over/Under percentages live in labeled spans; either side may be
	// absent when the source reports no picks for it.
	for _, cell := range cells {
		for _, span := range spanRe.FindAllStringSubmatch(cell[1], -1) {
			text := cleanText(span[1])
			num := digitsRe.FindString(text)
			if num == "" {
				continue
			}
			if strings.Contains(text, "Over") {
				if v, err := strconv.Atoi(num); err == nil {
					rec.PctOver = &v
				}
			} else if strings.Contains(text, "Under") {
				if v, err := strconv.Atoi(num); err == nil {
					rec.PctUnder = &v
				}
			}
		}
	}

	// Fixed positions: fourth cell is the total line, fifth holds the
	// over/under pick counts split by a line break.
	if len(cells) >= 5 {
		rec.TotalLine = cleanText(cells[3][1])
		picks := digitsRe.FindAllString(cleanText(cells[4][1]), -1)
		if len(picks) == 2 {
			over, errO := strconv.Atoi(picks[0])
			under, errU := strconv.Atoi(picks[1])
			if errO == nil && errU == nil {
				rec.ExpertCount = over + under
			}
		}
	}

	return rec, true
}

// parseKickoff converts a kickoff cell in Eastern time into the
// operating timezone. Failure returns empty fields and the record
// stays inert.
func (c *Client) parseKickoff(text string) (date, hhmm string) {
	s := strings.ReplaceAll(text, "ET", "")
	s = strings.ReplaceAll(s, ".", "")
	s = wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
	s = strings.NewReplacer(" am", " AM", " pm", " PM", " Am", " AM", " Pm", " PM").Replace(s)
	if !strings.Contains(s, strconv.Itoa(time.Now().Year())) {
		s += " " + strconv.Itoa(time.Now().Year())
	}
	for _, layout := range kickoffLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.Add(c.offset)
			return t.Format("2006-01-02"), t.Format("15:04")
		}
	}
	c.logger.Warn("Unparsable kickoff time, record will stay inert", "text", text)
	return "", ""
}

// cleanText strips markup from a cell fragment: line breaks become
// spaces, tags go away, entities are decoded, whitespace collapses.
func cleanText(s string) string {
	s = brRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
}
