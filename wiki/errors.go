package wiki

import "fmt"

// PageNotFoundError indicates the requested title has no corresponding wiki page.
type PageNotFoundError struct {
	Title string
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("page not found: %s", e.Title)
}

// TemplateNotFoundError indicates a page exists but the expected template
// block was not located in its wikitext.
type TemplateNotFoundError struct {
	Title    string
	Template string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("no %s template found on page %s", e.Template, e.Title)
}

// NoTagsError indicates a gem record exists but has no tag field, so
// tag-based compatibility lookups cannot run.
type NoTagsError struct {
	Gem string
}

func (e *NoTagsError) Error() string {
	return fmt.Sprintf("gem %s has no tags to compare", e.Gem)
}

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a PageNotFoundError or TemplateNotFoundError.
func IsNotFound(err error) bool {
	switch err.(type) {
	case *PageNotFoundError, *TemplateNotFoundError:
		return true
	}
	return false
}

// IsNoTags returns true if the error is a NoTagsError.
func IsNoTags(err error) bool {
	_, ok := err.(*NoTagsError)
	return ok
}
