package glean

// CustomDatasourceConfig is the wire representation of a datasource as the
// indexing API accepts and returns it. Name carries the datasource ID; the
// API upserts keyed on it. Booleans are serialized unconditionally so an
// update always states every flag explicitly.
type CustomDatasourceConfig struct {
	Name                         string             `json:"name"`
	DisplayName                  string             `json:"displayName,omitempty"`
	DatasourceCategory           string             `json:"datasourceCategory,omitempty"`
	URLRegex                     string             `json:"urlRegex,omitempty"`
	IconURL                      string             `json:"iconUrl,omitempty"`
	IconDarkURL                  string             `json:"iconDarkUrl,omitempty"`
	HomeURL                      string             `json:"homeUrl,omitempty"`
	SuggestionText               string             `json:"suggestionText,omitempty"`
	ObjectDefinitions            []ObjectDefinition `json:"objectDefinitions,omitempty"`
	Quicklinks                   []Quicklink        `json:"quicklinks,omitempty"`
	IsUserReferencedByEmail      bool               `json:"isUserReferencedByEmail"`
	IsTestDatasource             bool               `json:"isTestDatasource"`
	TrustURLRegexForViewActivity bool               `json:"trustUrlRegexForViewActivity"`
	StripFragmentInCanonicalURL  bool               `json:"stripFragmentInCanonicalUrl"`
	IsEntityDatasource           bool               `json:"isEntityDatasource"`
	CrawlerSeedURLs              []string           `json:"crawlerSeedUrls,omitempty"`
}

// ObjectDefinition is the wire form of one indexed content type.
type ObjectDefinition struct {
	Name                string               `json:"name"`
	DisplayLabel        string               `json:"displayLabel,omitempty"`
	DocCategory         string               `json:"docCategory,omitempty"`
	Summarizable        bool                 `json:"summarizable"`
	PropertyDefinitions []PropertyDefinition `json:"propertyDefinitions,omitempty"`
	PropertyGroups      []PropertyGroup      `json:"propertyGroups,omitempty"`
}

// PropertyDefinition is the wire form of one custom property.
type PropertyDefinition struct {
	Name               string `json:"name"`
	DisplayLabel       string `json:"displayLabel,omitempty"`
	DisplayLabelPlural string `json:"displayLabelPlural,omitempty"`
	PropertyType       string `json:"propertyType,omitempty"`
	UIOptions          string `json:"uiOptions,omitempty"`
	HideUIFacet        bool   `json:"hideUiFacet,omitempty"`
	UIFacetOrder       *int   `json:"uiFacetOrder,omitempty"`
	SkipIndexing       bool   `json:"skipIndexing,omitempty"`
	Group              string `json:"group,omitempty"`
}

// PropertyGroup is the wire form of a property display group.
type PropertyGroup struct {
	Name         string `json:"name"`
	DisplayLabel string `json:"displayLabel,omitempty"`
}

// Quicklink is the wire form of a datasource shortcut action.
type Quicklink struct {
	Name       string      `json:"name,omitempty"`
	ShortName  string      `json:"shortName,omitempty"`
	URL        string      `json:"url,omitempty"`
	ID         string      `json:"id,omitempty"`
	IconConfig *IconConfig `json:"iconConfig,omitempty"`
	Scopes     []string    `json:"scopes,omitempty"`
}

// IconConfig is the wire form of a quicklink icon style.
type IconConfig struct {
	GeneratedBackgroundColorKey string `json:"generatedBackgroundColorKey,omitempty"`
	BackgroundColor             string `json:"backgroundColor,omitempty"`
	Color                       string `json:"color,omitempty"`
	Key                         string `json:"key,omitempty"`
	IconType                    string `json:"iconType,omitempty"`
	Masked                      *bool  `json:"masked,omitempty"`
	Name                        string `json:"name,omitempty"`
	URL                         string `json:"url,omitempty"`
}
