// Package datasource defines the local model of a Glean custom datasource
// configuration and the rules that make one valid: identifier and display
// name constraints, the closed category set, and the snake_case JSON layout
// of the auxiliary object-type and quicklink files.
package datasource

import "fmt"

// Config is the fully assembled local representation of a datasource. It is
// the input to a push and the output of a pull; field names here are local,
// translation to the wire format happens at the API boundary.
type Config struct {
	DisplayName           string
	ID                    string
	Category              Category
	HomeURL               string
	URLRegex              string
	IconLightmode         string // data URL
	IconDarkmode          string // data URL
	UserReferencedByEmail bool
	IsTestMode            bool
	TestUserEmails        []string
	SuggestionText        string
	ObjectTypes           []ObjectDefinition
	QuickLinks            []QuickLink
}

// ObjectDefinition describes one content type indexed under a datasource.
// JSON tags follow the on-disk layout of object_types.json, which is
// snake_case unlike the camelCase wire format.
type ObjectDefinition struct {
	Name                string               `json:"name"`
	DisplayLabel        string               `json:"display_label,omitempty"`
	DocCategory         string               `json:"doc_category,omitempty"`
	Summarizable        bool                 `json:"summarizable"`
	PropertyDefinitions []PropertyDefinition `json:"property_definitions,omitempty"`
	PropertyGroups      []PropertyGroup      `json:"property_groups,omitempty"`
}

// PropertyDefinition describes one custom property of an object type.
// UIFacetOrder is a pointer so an explicit 0 survives the round trip.
type PropertyDefinition struct {
	Name               string `json:"name"`
	DisplayLabel       string `json:"display_label,omitempty"`
	DisplayLabelPlural string `json:"display_label_plural,omitempty"`
	PropertyType       string `json:"property_type,omitempty"`
	UIOptions          string `json:"ui_options,omitempty"`
	HideUIFacet        bool   `json:"hide_ui_facet,omitempty"`
	UIFacetOrder       *int   `json:"ui_facet_order,omitempty"`
	SkipIndexing       bool   `json:"skip_indexing,omitempty"`
	Group              string `json:"group,omitempty"`
}

// PropertyGroup names a set of properties rendered together in search
// results.
type PropertyGroup struct {
	Name         string `json:"name"`
	DisplayLabel string `json:"display_label,omitempty"`
}

// QuickLink is a shortcut action surfaced in Glean's UI, such as "create a
// ticket". Scopes hold plain enum tags like APP_CARD.
type QuickLink struct {
	Name       string      `json:"name,omitempty"`
	ShortName  string      `json:"short_name,omitempty"`
	URL        string      `json:"url,omitempty"`
	ID         string      `json:"id,omitempty"`
	IconConfig *IconConfig `json:"icon_config,omitempty"`
	Scopes     []string    `json:"scopes,omitempty"`
}

// IconConfig styles a quicklink's icon. Masked is a pointer so an explicit
// false survives the round trip.
type IconConfig struct {
	GeneratedBackgroundColorKey string `json:"generated_background_color_key,omitempty"`
	BackgroundColor             string `json:"background_color,omitempty"`
	Color                       string `json:"color,omitempty"`
	Key                         string `json:"key,omitempty"`
	IconType                    string `json:"icon_type,omitempty"`
	Masked                      *bool  `json:"masked,omitempty"`
	Name                        string `json:"name,omitempty"`
	URL                         string `json:"url,omitempty"`
}

// ObjectTypesFile is the document layout of object_types.json.
type ObjectTypesFile struct {
	ObjectTypes []ObjectDefinition `json:"objectTypes"`
}

// QuickLinksFile is the document layout of quick_links.json.
type QuickLinksFile struct {
	QuickLinks []QuickLink `json:"quicklinks"`
}

// DefaultSuggestion returns the search suggestion text used when a
// datasource does not configure its own.
func DefaultSuggestion(displayName string) string {
	return fmt.Sprintf("Search for anything in %s...", displayName)
}
