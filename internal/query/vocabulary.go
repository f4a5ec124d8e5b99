package query

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"go.uber.org/zap"

	"github.com/sells-group/resource-finder/internal/model"
)

// Vocabulary returns every distinct category tag across resources, sorted
// by the collation rules of locale. An unparseable locale falls back to
// English.
func Vocabulary(resources []model.Resource, locale string) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, r := range resources {
		for _, c := range r.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			tags = append(tags, c)
		}
	}

	tag, err := language.Parse(locale)
	if err != nil {
		zap.L().Debug("query: unknown locale, using english",
			zap.String("locale", locale),
			zap.Error(err),
		)
		tag = language.English
	}
	collate.New(tag).SortStrings(tags)
	return tags
}
