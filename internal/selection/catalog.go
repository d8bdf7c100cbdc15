// Package selection holds the topic and region catalogs and the Selection
// state container that tracks what the user has chosen.
package selection

import "strings"

// PresetTopics is the fixed topic catalog, in display order.
var PresetTopics = []string{
	"TECHNOLOGY",
	"ARTIFICIAL INTELLIGENCE",
	"CRYPTOCURRENCY",
	"STOCK MARKET",
	"CLIMATE CHANGE",
	"SPORTS",
	"ENTERTAINMENT",
	"POLITICS",
	"SCIENCE",
	"HEALTH",
	"BUSINESS",
	"WORLD NEWS",
	"GAMING",
	"MOVIES",
	"MUSIC",
	"FASHION",
	"TRAVEL",
	"FOOD",
	"SPACE",
	"ELECTRIC VEHICLES",
}

// Region controls feed localization.
// Code is the country (gl) and Language the interface language tag (hl).
type Region struct {
	Code     string
	Language string
	Name     string
}

// Edition returns the ceid value "<code>:<language base>", e.g. "US:en".
func (r Region) Edition() string {
	lang := r.Language
	if i := strings.IndexByte(lang, '-'); i >= 0 {
		lang = lang[:i]
	}
	return r.Code + ":" + lang
}

// Worldwide is the default edition, the one served without localization.
var Worldwide = Region{Code: "US", Language: "en-US", Name: "WORLDWIDE"}

// Regions is the region catalog, in display order.
var Regions = []Region{
	Worldwide,
	{Code: "GB", Language: "en-GB", Name: "UNITED KINGDOM"},
	{Code: "CA", Language: "en-CA", Name: "CANADA"},
	{Code: "AU", Language: "en-AU", Name: "AUSTRALIA"},
	{Code: "IN", Language: "en-IN", Name: "INDIA"},
	{Code: "IE", Language: "en-IE", Name: "IRELAND"},
	{Code: "ZA", Language: "en-ZA", Name: "SOUTH AFRICA"},
	{Code: "DE", Language: "de", Name: "GERMANY"},
	{Code: "FR", Language: "fr", Name: "FRANCE"},
	{Code: "ES", Language: "es", Name: "SPAIN"},
	{Code: "IT", Language: "it", Name: "ITALY"},
	{Code: "BR", Language: "pt-BR", Name: "BRAZIL"},
	{Code: "MX", Language: "es-419", Name: "MEXICO"},
	{Code: "JP", Language: "ja", Name: "JAPAN"},
}

// IsPreset reports whether topic is in the preset catalog.
func IsPreset(topic string) bool {
	for _, p := range PresetTopics {
		if p == topic {
			return true
		}
	}
	return false
}

// LookupRegion finds a catalog region by code (case-insensitive).
func LookupRegion(code string) (Region, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, r := range Regions {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}
