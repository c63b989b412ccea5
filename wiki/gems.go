package wiki

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Notable template fields surfaced in the human-readable summary, in
// display order. Anything else the template declares still comes back in
// the verbatim field map.
var summaryFields = []struct {
	key   string
	label string
}{
	{"gem_description", "Description"},
	{"description", "Description"},
	{"gem_tags", "Tags"},
	{"required_level", "Required level"},
	{"level_requirement", "Required level"},
	{"cooldown", "Cooldown"},
	{"cast_time", "Cast time"},
	{"mana_cost", "Cost"},
	{"attack_speed_multiplier", "Attack speed multiplier"},
	{"damage_multiplier", "Damage multiplier"},
	{"stat_text", "Effects"},
}

// GetGemInfo fetches a gem's wiki page, parses its Item template and returns
// the parsed fields with a readable summary. Lookup failures are downgraded
// to a found=false result with an explanatory message; only invalid input
// surfaces as an error.
func (c *Client) GetGemInfo(ctx context.Context, args GetGemInfoArgs) (GemInfoResult, error) {
	if args.GemName == "" {
		return GemInfoResult{}, &ValidationError{Field: "gem_name", Message: "gem_name is required"}
	}

	// Cache key uses the name exactly as supplied; no normalization, so
	// "gas grenade" and "Gas Grenade" are distinct entries.
	cacheKey := "gem_info:" + args.GemName
	if cached, ok := c.getCached(cacheKey); ok {
		return cached.(GemInfoResult), nil
	}

	page, record, err := c.fetchGemRecord(ctx, args.GemName)
	if err != nil {
		var tmplErr *TemplateNotFoundError
		if errors.As(err, &tmplErr) {
			// Page exists but has no Item template; fall back to a raw
			// excerpt so the caller still gets something to work with.
			excerpt, _ := truncateContent(page.Content, 1000)
			return GemInfoResult{
				GemName: args.GemName,
				Found:   false,
				Summary: excerpt,
				Message: fmt.Sprintf("Page '%s' exists but has no gem data template; returning a raw excerpt instead.", tmplErr.Title),
			}, nil
		}
		if IsNotFound(err) {
			return GemInfoResult{
				GemName: args.GemName,
				Found:   false,
				Message: fmt.Sprintf("No wiki page found for gem '%s'. Check the spelling, or use poe2_search_gems to find the exact name.", args.GemName),
			}, nil
		}
		c.logger.Warn("Gem page fetch failed", "gem", args.GemName, "error", err)
		return GemInfoResult{
			GemName: args.GemName,
			Found:   false,
			Message: fmt.Sprintf("Could not reach the wiki for '%s'; try again later.", args.GemName),
		}, nil
	}

	result := GemInfoResult{
		GemName: args.GemName,
		Found:   true,
		Summary: formatGemSummary(page.Title, record),
		Fields:  record,
	}

	c.setCache(cacheKey, result)
	return result, nil
}

// fetchGemRecord loads a gem's page and parses its Item template. A page
// without the template yields the page content alongside a
// TemplateNotFoundError, so callers can still show an excerpt.
func (c *Client) fetchGemRecord(ctx context.Context, gemName string) (PageContent, GemRecord, error) {
	page, err := c.fetchPageWikitext(ctx, gemName)
	if err != nil {
		return PageContent{}, nil, err
	}

	record, ok := ParseTemplate(page.Content, ItemTemplateMarker)
	if !ok {
		return page, nil, &TemplateNotFoundError{Title: page.Title, Template: "Item"}
	}
	return page, record, nil
}

// formatGemSummary renders the notable fields of a gem record as a
// multi-section text block, with markup cleaned for display.
func formatGemSummary(title string, record GemRecord) string {
	var sb strings.Builder

	name := record["name"]
	if name == "" {
		name = title
	}
	sb.WriteString("= " + CleanText(name) + " =\n")

	seen := map[string]bool{}
	for _, f := range summaryFields {
		value, ok := record[f.key]
		if !ok || strings.TrimSpace(value) == "" || seen[f.label] {
			continue
		}
		seen[f.label] = true

		cleaned := strings.TrimSpace(CleanText(value))
		if strings.Contains(cleaned, "\n") {
			sb.WriteString("\n" + f.label + ":\n" + cleaned + "\n")
		} else {
			sb.WriteString(f.label + ": " + cleaned + "\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\n%d template fields available in full form.", len(record)))
	return sb.String()
}
