package fotolia

import "strconv"

// LanguageID identifies a catalogue language.
type LanguageID int

const (
	LanguageFrFR LanguageID = 1
	LanguageEnUS LanguageID = 2
	LanguageEnGB LanguageID = 3
	LanguageDeDE LanguageID = 4
	LanguageEsES LanguageID = 5
	LanguageItIT LanguageID = 6
	LanguagePtPT LanguageID = 7
	LanguagePtBR LanguageID = 8
	LanguageJaJP LanguageID = 9
	LanguagePlPL LanguageID = 11
	LanguageRuRU LanguageID = 12
	LanguageZhCN LanguageID = 13
	LanguageTrTR LanguageID = 14
	LanguageKoKR LanguageID = 15
)

// String returns the numeric id, which is what goes on the wire.
func (l LanguageID) String() string {
	return strconv.Itoa(int(l))
}

var languageCodes = map[string]LanguageID{
	"fr_FR": LanguageFrFR,
	"en_US": LanguageEnUS,
	"en_GB": LanguageEnGB,
	"de_DE": LanguageDeDE,
	"es_ES": LanguageEsES,
	"it_IT": LanguageItIT,
	"pt_PT": LanguagePtPT,
	"pt_BR": LanguagePtBR,
	"ja_JP": LanguageJaJP,
	"pl_PL": LanguagePlPL,
	"ru_RU": LanguageRuRU,
	"zh_CN": LanguageZhCN,
	"tr_TR": LanguageTrTR,
	"ko_KR": LanguageKoKR,
}

// ParseLanguage accepts a locale code such as "en_US" or a numeric id.
func ParseLanguage(s string) (LanguageID, bool) {
	if id, ok := languageCodes[s]; ok {
		return id, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	for _, id := range languageCodes {
		if int(id) == n {
			return id, true
		}
	}
	return 0, false
}

// DefaultThumbnailSize is the thumbnail edge in pixels used when none is given.
const DefaultThumbnailSize = 110

// TagType selects the tag cloud returned by GetTags.
type TagType string

const (
	TagsUsed TagType = "Used"
	TagsNew  TagType = "New"
)

// SalesType filters GetSalesData.
type SalesType string

const (
	SalesAll          SalesType = "all"
	SalesSubscription SalesType = "subscription"
	SalesStandard     SalesType = "standard"
	SalesExtended     SalesType = "extended"
)

// Valid reports whether the service accepts t.
func (t SalesType) Valid() bool {
	switch t {
	case SalesAll, SalesSubscription, SalesStandard, SalesExtended:
		return true
	}
	return false
}

// optional maps a zero value to nil so that the parameter is left out.
func optional[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}
