package datasource

import (
	"fmt"
	"sort"
)

// Category classifies a datasource within the Glean index. The set is closed:
// the indexing API rejects values outside it.
type Category string

// Datasource categories accepted by the Glean indexing API.
const (
	CategoryKnowledgeHub         Category = "KNOWLEDGE_HUB"
	CategoryPublishedContent     Category = "PUBLISHED_CONTENT"
	CategoryCollaborativeContent Category = "COLLABORATIVE_CONTENT"
	CategoryQuestionAnswer       Category = "QUESTION_ANSWER"
	CategoryTickets              Category = "TICKETS"
	CategoryCodeRepository       Category = "CODE_REPOSITORY"
	CategoryChangeManagement     Category = "CHANGE_MANAGEMENT"
	CategoryEmail                Category = "EMAIL"
	CategoryMessaging            Category = "MESSAGING"
	CategoryCRM                  Category = "CRM"
	CategorySSO                  Category = "SSO"
	CategoryATS                  Category = "ATS"
	CategoryPeople               Category = "PEOPLE"
	CategoryExternalShortcut     Category = "EXTERNAL_SHORTCUT"
	CategoryUncategorized        Category = "UNCATEGORIZED"
)

// categoryDescriptions explains each category in the words Glean's own
// documentation uses. Shown by the wizard and the categories command.
var categoryDescriptions = map[Category]string{
	CategoryKnowledgeHub:         "Reference documentation that may be continually updated as a source of truth, such as Github READMEs, Confluence documents, or ServiceNow knowledge articles",
	CategoryPublishedContent:     "Blog posts published at a point in time, such as Brightspot posts or Confluence blog posts. Note that Confluence blog posts are different from other Confluence documents, which should be classified as KNOWLEDGE_HUB.",
	CategoryCollaborativeContent: "Documents that can be edited collaboratively, such as Google Drive, Dropbox, or Figma files",
	CategoryQuestionAnswer:       "Question-answer content such as Stack Overflow posts",
	CategoryTickets:              "Work item or issue trackers such as Asana tasks, Jira tickets, or Github issues",
	CategoryCodeRepository:       "Source code repositories such as Github repositories",
	CategoryChangeManagement:     "Code change management systems such as pull or merge requests on Github",
	CategoryEmail:                "Email content such as Gmail or Outlook messages",
	CategoryMessaging:            "Chat message or conversational content such as Slack or Discord messages",
	CategoryCRM:                  "Customer relationship management systems such as Sales Cloud",
	CategorySSO:                  "Single-sign-on services such as Azure SSO or GSuite SSO",
	CategoryATS:                  "Applicant tracking systems such as Greenhouse",
	CategoryPeople:               "This should not be used, please instead use the /bulkindexemployees API to upload data about employees",
	CategoryExternalShortcut:     "This should not be used; please contact us for guidance",
	CategoryUncategorized:        "This should not be used; please contact us for guidance",
}

// remoteCategoryTags maps each local category to its tag on the wire, and
// localCategories is the inverse. The two representations currently coincide,
// but the table is the contract: pull-path lookups go through it so a tag the
// remote service adds later fails loudly instead of leaking through.
var remoteCategoryTags = map[Category]string{
	CategoryKnowledgeHub:         "KNOWLEDGE_HUB",
	CategoryPublishedContent:     "PUBLISHED_CONTENT",
	CategoryCollaborativeContent: "COLLABORATIVE_CONTENT",
	CategoryQuestionAnswer:       "QUESTION_ANSWER",
	CategoryTickets:              "TICKETS",
	CategoryCodeRepository:       "CODE_REPOSITORY",
	CategoryChangeManagement:     "CHANGE_MANAGEMENT",
	CategoryEmail:                "EMAIL",
	CategoryMessaging:            "MESSAGING",
	CategoryCRM:                  "CRM",
	CategorySSO:                  "SSO",
	CategoryATS:                  "ATS",
	CategoryPeople:               "PEOPLE",
	CategoryExternalShortcut:     "EXTERNAL_SHORTCUT",
	CategoryUncategorized:        "UNCATEGORIZED",
}

var localCategories = func() map[string]Category {
	m := make(map[string]Category, len(remoteCategoryTags))
	for cat, tag := range remoteCategoryTags {
		m[tag] = cat
	}

	return m
}()

// disallowedCategories are documented as unusable for custom datasources.
// They are excluded from interactive selection but deliberately NOT rejected
// by validation: existing remote records may carry them.
var disallowedCategories = map[Category]bool{
	CategoryPeople:           true,
	CategoryExternalShortcut: true,
	CategoryUncategorized:    true,
}

// MappingError reports a remote category tag with no local equivalent.
// It is fatal to the pull operation that encountered it.
type MappingError struct {
	Tag string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("unknown datasource category tag %q", e.Tag)
}

// String returns the category's wire tag.
func (c Category) String() string { return string(c) }

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	_, ok := remoteCategoryTags[c]

	return ok
}

// Description returns the long-form guidance text for c.
func (c Category) Description() string {
	return categoryDescriptions[c]
}

// Disallowed reports whether c is documented as unusable for custom
// datasources.
func (c Category) Disallowed() bool {
	return disallowedCategories[c]
}

// RemoteTag translates c to its wire representation.
func (c Category) RemoteTag() string {
	return remoteCategoryTags[c]
}

// CategoryFromRemote translates a wire tag back to a local category.
// Unknown tags return a *MappingError: inbound remote data may contain
// values added after this tool was built, and defaulting would silently
// corrupt an exported configuration.
func CategoryFromRemote(tag string) (Category, error) {
	cat, ok := localCategories[tag]
	if !ok {
		return "", &MappingError{Tag: tag}
	}

	return cat, nil
}

// CategoryOrDefault resolves a raw category value for the push path,
// falling back to KNOWLEDGE_HUB for empty or unknown input. Outbound data
// is always locally validated first, so the default only papers over
// auxiliary-file doc categories, matching the remote service's own default.
func CategoryOrDefault(raw string) Category {
	if cat, ok := localCategories[raw]; ok {
		return cat
	}

	return CategoryKnowledgeHub
}

// Categories returns all categories in stable wire-tag order.
func Categories() []Category {
	all := make([]Category, 0, len(remoteCategoryTags))
	for cat := range remoteCategoryTags {
		all = append(all, cat)
	}

	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	return all
}

// UsableCategories returns the categories offered for new datasources, in
// the order the interactive picker presents them.
func UsableCategories() []Category {
	usable := []Category{
		CategoryKnowledgeHub,
		CategoryPublishedContent,
		CategoryCollaborativeContent,
		CategoryQuestionAnswer,
		CategoryTickets,
		CategoryCodeRepository,
		CategoryChangeManagement,
		CategoryEmail,
		CategoryMessaging,
		CategoryCRM,
		CategorySSO,
		CategoryATS,
	}

	return usable
}
