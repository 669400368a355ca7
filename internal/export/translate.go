package export

import (
	"github.com/donaldgifford/gleanctl/internal/datasource"
	"github.com/donaldgifford/gleanctl/internal/glean"
)

// FromWire translates a remote datasource record into the local
// representation. It is the inverse of the push-path translation, with one
// deliberate asymmetry: an unknown category tag is a *datasource.MappingError
// rather than a silent default. Empty categories mean the remote never had
// one set and map to KNOWLEDGE_HUB.
func FromWire(remote *glean.CustomDatasourceConfig) (*datasource.Config, error) {
	category := datasource.CategoryKnowledgeHub

	if remote.DatasourceCategory != "" {
		cat, err := datasource.CategoryFromRemote(remote.DatasourceCategory)
		if err != nil {
			return nil, err
		}

		category = cat
	}

	cfg := &datasource.Config{
		DisplayName:           remote.DisplayName,
		ID:                    remote.Name,
		Category:              category,
		HomeURL:               remote.HomeURL,
		URLRegex:              remote.URLRegex,
		SuggestionText:        remote.SuggestionText,
		IconLightmode:         remote.IconURL,
		IconDarkmode:          remote.IconDarkURL,
		UserReferencedByEmail: remote.IsUserReferencedByEmail,
		IsTestMode:            remote.IsTestDatasource,
	}

	for _, obj := range remote.ObjectDefinitions {
		local, err := objectFromWire(obj)
		if err != nil {
			return nil, err
		}

		cfg.ObjectTypes = append(cfg.ObjectTypes, local)
	}

	for _, ql := range remote.Quicklinks {
		local := quickLinkFromWire(ql)
		if isEmptyQuickLink(local) {
			continue
		}

		cfg.QuickLinks = append(cfg.QuickLinks, local)
	}

	return cfg, nil
}

func objectFromWire(obj glean.ObjectDefinition) (datasource.ObjectDefinition, error) {
	docCategory := datasource.CategoryKnowledgeHub

	if obj.DocCategory != "" {
		cat, err := datasource.CategoryFromRemote(obj.DocCategory)
		if err != nil {
			return datasource.ObjectDefinition{}, err
		}

		docCategory = cat
	}

	displayLabel := obj.DisplayLabel
	if displayLabel == "" {
		displayLabel = obj.Name
	}

	local := datasource.ObjectDefinition{
		Name:         obj.Name,
		DisplayLabel: displayLabel,
		DocCategory:  docCategory.String(),
		Summarizable: obj.Summarizable,
	}

	for _, p := range obj.PropertyDefinitions {
		local.PropertyDefinitions = append(local.PropertyDefinitions, datasource.PropertyDefinition{
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
		local.PropertyGroups = append(local.PropertyGroups, datasource.PropertyGroup{
			Name:         g.Name,
			DisplayLabel: g.DisplayLabel,
		})
	}

	return local, nil
}

func quickLinkFromWire(ql glean.Quicklink) datasource.QuickLink {
	local := datasource.QuickLink{
		Name:      ql.Name,
		ShortName: ql.ShortName,
		URL:       ql.URL,
		ID:        ql.ID,
	}

	if ql.IconConfig != nil {
		icon := datasource.IconConfig{
			GeneratedBackgroundColorKey: ql.IconConfig.GeneratedBackgroundColorKey,
			BackgroundColor:             ql.IconConfig.BackgroundColor,
			Color:                       ql.IconConfig.Color,
			Key:                         ql.IconConfig.Key,
			IconType:                    ql.IconConfig.IconType,
			Masked:                      copyBool(ql.IconConfig.Masked),
			Name:                        ql.IconConfig.Name,
			URL:                         ql.IconConfig.URL,
		}

		// An icon config with nothing in it carries no information and
		// would only clutter the exported file.
		if icon != (datasource.IconConfig{}) {
			local.IconConfig = &icon
		}
	}

	if len(ql.Scopes) > 0 {
		local.Scopes = append([]string(nil), ql.Scopes...)
	}

	return local
}

func isEmptyQuickLink(ql datasource.QuickLink) bool {
	return ql.Name == "" && ql.ShortName == "" && ql.URL == "" && ql.ID == "" &&
		ql.IconConfig == nil && len(ql.Scopes) == 0
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
