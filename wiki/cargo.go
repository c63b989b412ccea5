package wiki

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Cargo query defaults
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50

	gemTable  = "items"
	gemFields = "items.name=name,items.gem_tags=tags,items.gem_description=description"
)

// cargoQuery runs a Cargo tabular query and returns the result rows.
// Row order is whatever the wiki returns; no re-sorting is imposed.
func (c *Client) cargoQuery(ctx context.Context, where string, limit int) ([]GemRow, error) {
	params := url.Values{}
	params.Set("tables", gemTable)
	params.Set("fields", gemFields)
	params.Set("where", where)
	params.Set("limit", fmt.Sprintf("%d", limit))

	resp, err := c.apiRequest(ctx, "cargoquery", params)
	if err != nil {
		return nil, err
	}

	rows, ok := resp["cargoquery"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected API response: missing 'cargoquery' array")
	}

	results := make([]GemRow, 0, len(rows))
	for _, r := range rows {
		row, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		title, ok := row["title"].(map[string]interface{})
		if !ok {
			continue
		}

		name, _ := title["name"].(string)
		if name == "" {
			continue
		}
		tags, _ := title["tags"].(string)
		description, _ := title["description"].(string)

		results = append(results, GemRow{
			Name:        name,
			Tags:        tags,
			Description: CleanText(description),
		})
	}

	return results, nil
}

// querySupportsByTags fetches support gems whose tag string contains any of
// the given tags, via an OR-combined LIKE filter capped at limit rows.
func (c *Client) querySupportsByTags(ctx context.Context, tags []string, limit int) ([]GemRow, error) {
	conditions := make([]string, 0, len(tags))
	for _, tag := range tags {
		conditions = append(conditions, fmt.Sprintf(`items.gem_tags LIKE "%%%s%%"`, escapeCargoString(tag)))
	}

	where := fmt.Sprintf(`items.class="Support Gem" AND (%s)`, strings.Join(conditions, " OR "))
	return c.cargoQuery(ctx, where, limit)
}

// SearchGems finds skill gems whose name contains the query string.
func (c *Client) SearchGems(ctx context.Context, args SearchGemsArgs) (SearchGemsResult, error) {
	if strings.TrimSpace(args.Query) == "" {
		return SearchGemsResult{}, &ValidationError{Field: "query", Message: "query is required"}
	}

	limit := normalizeLimit(args.Limit, DefaultSearchLimit, MaxSearchLimit)

	cacheKey := fmt.Sprintf("gem_search:%s:%d", args.Query, limit)
	if cached, ok := c.getCached(cacheKey); ok {
		return cached.(SearchGemsResult), nil
	}

	where := fmt.Sprintf(`items.class LIKE "%%Gem%%" AND items.name LIKE "%%%s%%"`,
		escapeCargoString(args.Query))
	rows, err := c.cargoQuery(ctx, where, limit)
	if err != nil {
		return SearchGemsResult{}, err
	}

	result := SearchGemsResult{
		Query:   args.Query,
		Results: rows,
		Count:   len(rows),
	}
	c.setCache(cacheKey, result)
	return result, nil
}

// escapeCargoString escapes quotes and LIKE wildcards in a user-supplied
// value before embedding it in a Cargo where clause.
func escapeCargoString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
