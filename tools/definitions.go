package tools

// AllTools contains all tool specifications for the PoE2 Wiki MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	{
		Name:     "poe2_get_gem_info",
		Method:   "GetGemInfo",
		Title:    "Get Gem Info",
		Category: "gems",
		Description: `Get structured data for a Path of Exile 2 skill gem from its wiki page.

USE WHEN: User asks "what does X do", "show me the stats of X", "tell me about gem X".

NOT FOR: Finding which supports to pair with a gem (use poe2_get_recommended_supports or poe2_find_compatible_supports).

PARAMETERS:
- gem_name: Exact gem name as titled on the wiki (required)

RETURNS: A readable summary (description, tags, requirements, effects) plus the full template field map exactly as declared on the wiki.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "poe2_get_recommended_supports",
		Method:   "GetRecommendedSupports",
		Title:    "Get Recommended Supports",
		Category: "supports",
		Description: `Get the support gems the wiki OFFICIALLY RECOMMENDS for a skill gem, scraped from the page's "Recommended Support Gems" section.

USE WHEN: User asks "what supports does the wiki recommend for X", "best supports for X according to the wiki".

NOT FOR: Mechanical tag compatibility (poe2_find_compatible_supports answers that different question).

PARAMETERS:
- gem_name: Gem whose page to scrape (required)

RETURNS: Deduplicated list of recommended support gem names in page order.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "poe2_find_compatible_supports",
		Method:   "FindCompatibleSupports",
		Title:    "Find Compatible Supports",
		Category: "supports",
		Description: `Find support gems MECHANICALLY COMPATIBLE with a skill gem by matching its tags against the wiki's support gem table.

USE WHEN: User asks "which supports work with X", "what can I link to X", "supports that share tags with X".

NOT FOR: The wiki's curated recommendations (use poe2_get_recommended_supports instead).

PARAMETERS:
- gem_name: Gem whose tags to match (required)

RETURNS: Up to 15 support gems with their tags and descriptions. Fails gracefully when the gem has no tags.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "poe2_search_gems",
		Method:   "SearchGems",
		Title:    "Search Gems",
		Category: "gems",
		Description: `Search for skill gems by partial name.

USE WHEN: User doesn't know a gem's exact name, or a lookup by name came back not found.

NOT FOR: Fetching a known gem's data (use poe2_get_gem_info).

PARAMETERS:
- query: Partial gem name (required)
- limit: Max results (default 10, max 50)

RETURNS: Matching gem names with tags and descriptions.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "poe2_get_page",
		Method:   "GetPage",
		Title:    "Get Page",
		Category: "pages",
		Description: `Retrieve a wiki page's raw wikitext. Large pages are truncated at 25KB.

USE WHEN: Structured gem tools can't answer and the raw page content is needed (lore, mechanics pages, non-gem items).

NOT FOR: Gem lookups (use poe2_get_gem_info, which parses the page for you).

PARAMETERS:
- title: Page title (required)

RETURNS: Raw wikitext of the page.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
