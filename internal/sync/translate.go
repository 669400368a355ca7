package sync

import (
	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/glean"
)

// ToWire translates a local configuration into the indexing API's wire
// form. Three structural flags are forced on every push: URL regexes are
// trusted for view activity, URL fragments are stripped from canonical
// URLs, and the datasource is never an entity datasource. Doc categories
// fall back to KNOWLEDGE_HUB instead of failing; outbound data has already
// been validated, so the default only covers auxiliary-file values.
//
// Test user emails are deliberately absent: the datasource upsert carries
// no such field, test users are managed in the Glean admin interface.
func ToWire(cfg *datasource.Config) *glean.CustomDatasourceConfig {
	wire := &glean.CustomDatasourceConfig{
		Name:               cfg.ID,
		DisplayName:        cfg.DisplayName,
		DatasourceCategory: datasource.CategoryOrDefault(string(cfg.Category)).RemoteTag(),
		URLRegex:           cfg.URLRegex,
		IconURL:            cfg.IconLightmode,
		IconDarkURL:        cfg.IconDarkmode,
		HomeURL:            cfg.HomeURL,
		SuggestionText:     cfg.SuggestionText,

		IsUserReferencedByEmail: cfg.UserReferencedByEmail,
		IsTestDatasource:        cfg.IsTestMode,

		TrustURLRegexForViewActivity: true,
		StripFragmentInCanonicalURL:  true,
		IsEntityDatasource:           false,
	}

	for _, obj := range cfg.ObjectTypes {
		wire.ObjectDefinitions = append(wire.ObjectDefinitions, objectToWire(obj))
	}

	for _, ql := range cfg.QuickLinks {
		wire.Quicklinks = append(wire.Quicklinks, quickLinkToWire(ql))
	}

	return wire
}

func objectToWire(obj datasource.ObjectDefinition) glean.ObjectDefinition {
	displayLabel := obj.DisplayLabel
	if displayLabel == "" {
		displayLabel = obj.Name
	}

	wire := glean.ObjectDefinition{
		Name:         obj.Name,
		DisplayLabel: displayLabel,
		DocCategory:  datasource.CategoryOrDefault(obj.DocCategory).RemoteTag(),
		Summarizable: obj.Summarizable,
	}

	for _, p := range obj.PropertyDefinitions {
		wire.PropertyDefinitions = append(wire.PropertyDefinitions, glean.PropertyDefinition{
			Name:               p.Name,
			DisplayLabel:       p.DisplayLabel,
			DisplayLabelPlural: p.DisplayLabelPlural,
			PropertyType:       p.PropertyType,
			UIOptions:          p.UIOptions,
			HideUIFacet:        p.HideUIFacet,
			UIFacetOrder:       copyInt(p.UIFacetOrder),
			SkipIndexing:       p.SkipIndexing,
			Group:              p.Group,
		})
	}

	for _, g := range obj.PropertyGroups {
		wire.PropertyGroups = append(wire.PropertyGroups, glean.PropertyGroup{
			Name:         g.Name,
			DisplayLabel: g.DisplayLabel,
		})
	}

	return wire
}

func quickLinkToWire(ql datasource.QuickLink) glean.Quicklink {
	wire := glean.Quicklink{
		Name:      ql.Name,
		ShortName: ql.ShortName,
		URL:       ql.URL,
		ID:        ql.ID,
	}

	if ql.IconConfig != nil {
		wire.IconConfig = &glean.IconConfig{
			GeneratedBackgroundColorKey: ql.IconConfig.GeneratedBackgroundColorKey,
			BackgroundColor:             ql.IconConfig.BackgroundColor,
			Color:                       ql.IconConfig.Color,
			Key:                         ql.IconConfig.Key,
			IconType:                    ql.IconConfig.IconType,
			Masked:                      copyBool(ql.IconConfig.Masked),
			Name:                        ql.IconConfig.Name,
			URL:                         ql.IconConfig.URL,
		}
	}

	if len(ql.Scopes) > 0 {
		wire.Scopes = append([]string(nil), ql.Scopes...)
	}

	return wire
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}

	c := *v

	return &c
}

func copyBool(v *bool) *bool {
	if v == nil {
		return nil
	}

	c := *v

	return &c
}
