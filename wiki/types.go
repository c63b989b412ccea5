package wiki

// Constants for response limits
const (
	// CharacterLimit caps raw page content returned to clients
	CharacterLimit = 25000

	// MaxCompatibleResults caps tag-based compatibility listings
	MaxCompatibleResults = 15

	// SupportNote is the fixed description attached to wiki-curated supports
	SupportNote = "recommended support"
)

// GemRecord maps template field names (exactly as written in the wikitext)
// to their raw values. There is no fixed schema; fields present depend on
// what the page's Item template declares, and values may contain embedded
// markup until cleaned with CleanText.
type GemRecord map[string]string

// SupportReference is one entry from a page's Recommended Support Gems section.
type SupportReference struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// ========== Gem Info Types ==========

type GetGemInfoArgs struct {
	GemName string `json:"gem_name" jsonschema:"required,description=Exact gem name as titled on the wiki (e.g. 'Gas Grenade')"`
}

type GemInfoResult struct {
	GemName string    `json:"gem_name"`
	Found   bool      `json:"found"`
	Summary string    `json:"summary,omitempty"`
	Fields  GemRecord `json:"fields,omitempty"`
	Message string    `json:"message,omitempty"`
}

// ========== Recommended Supports Types ==========

type GetRecommendedSupportsArgs struct {
	GemName string `json:"gem_name" jsonschema:"required,description=Gem whose wiki page lists recommended support gems"`
}

type RecommendedSupportsResult struct {
	GemName  string             `json:"gem_name"`
	Found    bool               `json:"found"`
	Supports []SupportReference `json:"supports,omitempty"`
	Listing  string             `json:"listing,omitempty"`
	Message  string             `json:"message,omitempty"`
}

// ========== Compatible Supports Types ==========

type FindCompatibleSupportsArgs struct {
	GemName string `json:"gem_name" jsonschema:"required,description=Gem whose tags are matched against support gems"`
}

type CompatibleSupport struct {
	Name        string `json:"name"`
	Tags        string `json:"tags,omitempty"`
	Description string `json:"description,omitempty"`
}

type CompatibleSupportsResult struct {
	GemName  string              `json:"gem_name"`
	Found    bool                `json:"found"`
	Tags     []string            `json:"tags,omitempty"`
	Supports []CompatibleSupport `json:"supports,omitempty"`
	Listing  string              `json:"listing,omitempty"`
	Message  string              `json:"message,omitempty"`
}

// ========== Gem Search Types ==========

type SearchGemsArgs struct {
	Query string `json:"query" jsonschema:"required,description=Partial gem name to search for"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Maximum results to return (default 10, max 50)"`
}

type SearchGemsResult struct {
	Query   string   `json:"query"`
	Results []GemRow `json:"results"`
	Count   int      `json:"count"`
}

// GemRow is one row of a Cargo tabular query over skill gems.
type GemRow struct {
	Name        string `json:"name"`
	Tags        string `json:"tags,omitempty"`
	Description string `json:"description,omitempty"`
}

// ========== Page Content Types ==========

type GetPageArgs struct {
	Title string `json:"title" jsonschema:"required,description=Wiki page title to retrieve as raw wikitext"`
}

type PageContent struct {
	Title     string `json:"title"`
	PageID    int    `json:"page_id"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated,omitempty"`
	Message   string `json:"message,omitempty"`
}
