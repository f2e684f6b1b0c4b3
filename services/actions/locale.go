package actions

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed placeholders.yaml
var placeholdersYAML []byte

// Placeholder is the localised starting text of an action form.
type Placeholder struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type placeholderCatalog struct {
	texts   map[string]map[string]Placeholder
	tags    []language.Tag
	matcher language.Matcher
}

var (
	catalog     *placeholderCatalog
	catalogErr  error
	catalogOnce sync.Once
)

func loadCatalog() (*placeholderCatalog, error) {
	catalogOnce.Do(func() {
		var texts map[string]map[string]Placeholder
		if err := yaml.Unmarshal(placeholdersYAML, &texts); err != nil {
			catalogErr = fmt.Errorf("failed to parse placeholders: %w", err)
			return
		}
		// English first so it is the matcher's fallback.
		tags := []language.Tag{language.English}
		for code := range texts {
			if code == "en" {
				continue
			}
			tag, err := language.Parse(code)
			if err != nil {
				catalogErr = fmt.Errorf("invalid placeholder locale %q: %w", code, err)
				return
			}
			tags = append(tags, tag)
		}
		catalog = &placeholderCatalog{texts: texts, tags: tags, matcher: language.NewMatcher(tags)}
	})
	return catalog, catalogErr
}

// Placeholders returns the title and description for actionType in the
// closest supported locale, falling back to the locale default and then to English.
func Placeholders(locale, actionType string) Placeholder {
	c, err := loadCatalog()
	if err != nil {
		return Placeholder{}
	}
	code := "en"
	if locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"); locale != "" {
		if tag, perr := language.Parse(locale); perr == nil {
			_, idx, conf := c.matcher.Match(tag)
			if conf != language.No {
				base, _ := c.tags[idx].Base()
				code = base.String()
			}
		}
	}
	for _, lc := range []string{code, "en"} {
		texts := c.texts[lc]
		if p, ok := texts[actionType]; ok {
			return p
		}
		if lc != "en" {
			if p, ok := texts["default"]; ok {
				return p
			}
		}
	}
	return c.texts["en"]["default"]
}
