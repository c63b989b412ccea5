package wiki

import (
	"context"
	"fmt"
	"strings"
)

// GetRecommendedSupports returns the support gems curated on a gem's wiki
// page under its Recommended Support Gems section. This answers "what does
// the wiki recommend", not "what is mechanically compatible"; the latter
// is FindCompatibleSupports.
func (c *Client) GetRecommendedSupports(ctx context.Context, args GetRecommendedSupportsArgs) (RecommendedSupportsResult, error) {
	if args.GemName == "" {
		return RecommendedSupportsResult{}, &ValidationError{Field: "gem_name", Message: "gem_name is required"}
	}

	page, err := c.fetchPageWikitext(ctx, args.GemName)
	if err != nil {
		if IsNotFound(err) {
			return RecommendedSupportsResult{
				GemName: args.GemName,
				Found:   false,
				Message: fmt.Sprintf("No wiki page found for gem '%s'.", args.GemName),
			}, nil
		}
		c.logger.Warn("Gem page fetch failed", "gem", args.GemName, "error", err)
		return RecommendedSupportsResult{
			GemName: args.GemName,
			Found:   false,
			Message: fmt.Sprintf("Could not reach the wiki for '%s'; try again later.", args.GemName),
		}, nil
	}

	names := ExtractSupportNames(page.Content, SupportSectionMarkers)
	if len(names) == 0 {
		return RecommendedSupportsResult{
			GemName: args.GemName,
			Found:   true,
			Message: fmt.Sprintf("The wiki page for '%s' lists no recommended support gems.", page.Title),
		}, nil
	}

	supports := make([]SupportReference, 0, len(names))
	var listing strings.Builder
	listing.WriteString(fmt.Sprintf("Recommended support gems for %s:\n", page.Title))
	for _, name := range names {
		supports = append(supports, SupportReference{Name: name, Note: SupportNote})
		listing.WriteString("- " + name + "\n")
	}

	return RecommendedSupportsResult{
		GemName:  args.GemName,
		Found:    true,
		Supports: supports,
		Listing:  listing.String(),
	}, nil
}

// FindCompatibleSupports returns support gems that mechanically overlap with
// a gem's tags, via a Cargo query with an OR-combined substring filter. The
// match is deliberately loose (substring containment over the tag string)
// and capped at MaxCompatibleResults rows in upstream order.
func (c *Client) FindCompatibleSupports(ctx context.Context, args FindCompatibleSupportsArgs) (CompatibleSupportsResult, error) {
	if args.GemName == "" {
		return CompatibleSupportsResult{}, &ValidationError{Field: "gem_name", Message: "gem_name is required"}
	}

	info, err := c.GetGemInfo(ctx, GetGemInfoArgs{GemName: args.GemName})
	if err != nil {
		return CompatibleSupportsResult{}, err
	}
	if !info.Found {
		return CompatibleSupportsResult{
			GemName: args.GemName,
			Found:   false,
			Message: info.Message,
		}, nil
	}

	tags, err := comparisonTags(args.GemName, info.Fields)
	if IsNoTags(err) {
		// Fail fast; the caller must report there is nothing to compare.
		return CompatibleSupportsResult{
			GemName: args.GemName,
			Found:   false,
			Message: fmt.Sprintf("Gem '%s' has no tags to compare against support gems.", args.GemName),
		}, nil
	}

	rows, err := c.querySupportsByTags(ctx, tags, MaxCompatibleResults)
	if err != nil {
		c.logger.Warn("Support gem query failed", "gem", args.GemName, "error", err)
		return CompatibleSupportsResult{
			GemName: args.GemName,
			Found:   false,
			Tags:    tags,
			Message: fmt.Sprintf("Could not query support gems for '%s'; try again later.", args.GemName),
		}, nil
	}

	// The Cargo LIKE filter is collation-dependent, so re-check each row
	// with the case-sensitive containment the match is defined by.
	matched := rows[:0]
	for _, row := range rows {
		if MatchesAnyTag(row.Tags, tags) {
			matched = append(matched, row)
		}
	}
	rows = matched

	if len(rows) == 0 {
		return CompatibleSupportsResult{
			GemName: args.GemName,
			Found:   true,
			Tags:    tags,
			Message: fmt.Sprintf("No support gems share tags with '%s' (%s).", args.GemName, strings.Join(tags, ", ")),
		}, nil
	}

	supports := make([]CompatibleSupport, 0, len(rows))
	var listing strings.Builder
	listing.WriteString(fmt.Sprintf("Support gems compatible with %s (tags: %s):\n",
		args.GemName, strings.Join(tags, ", ")))
	for _, row := range rows {
		supports = append(supports, CompatibleSupport{
			Name:        row.Name,
			Tags:        row.Tags,
			Description: row.Description,
		})
		listing.WriteString("- " + row.Name)
		if row.Tags != "" {
			listing.WriteString(" [" + row.Tags + "]")
		}
		if row.Description != "" {
			listing.WriteString(": " + row.Description)
		}
		listing.WriteString("\n")
	}

	return CompatibleSupportsResult{
		GemName:  args.GemName,
		Found:    true,
		Tags:     tags,
		Supports: supports,
		Listing:  listing.String(),
	}, nil
}

// comparisonTags extracts the tag set used for compatibility matching from a
// gem's template fields. A gem without tags yields a NoTagsError.
func comparisonTags(gemName string, fields GemRecord) ([]string, error) {
	tags := SplitTags(fields["gem_tags"])
	if len(tags) == 0 {
		return nil, &NoTagsError{Gem: gemName}
	}
	return tags, nil
}
