package prefs

var defaultGenreMappings = map[string][]string{
	"Anthologies":             {"Anthologies"},
	"Adventure":               {"Adventure"},
	"Adult Fiction":           {"Adult"},
	"Adult":                   {"Adult"},
	"Art":                     {"Art"},
	"Biography":               {"Biography"},
	"Biography Memoir":        {"Biography"},
	"Business":                {"Business"},
	"Chick-lit":               {"Chick-lit"},
	"Childrens":               {"Childrens"},
	"Classics":                {"Classics"},
	"Comics":                  {"Comics"},
	"Graphic Novels Comics":   {"Comics"},
	"Contemporary":            {"Contemporary"},
	"Cookbooks":               {"Cookbooks"},
	"Crime":                   {"Crime"},
	"Fantasy":                 {"Fantasy"},
	"Feminism":                {"Feminism"},
	"Gardening":               {"Gardening"},
	"Gay":                     {"Gay"},
	"Glbt":                    {"Gay"},
	"Health":                  {"Health"},
	"History":                 {"History"},
	"Historical Fiction":      {"Historical"},
	"Horror":                  {"Horror"},
	"Comedy":                  {"Humour"},
	"Humor":                   {"Humour"},
	"Inspirational":           {"Inspirational"},
	"Sequential Art > Manga":  {"Manga"},
	"Modern":                  {"Modern"},
	"Music":                   {"Music"},
	"Mystery":                 {"Mystery"},
	"Non Fiction":             {"Non-Fiction"},
	"Paranormal":              {"Paranormal"},
	"Religion":                {"Religion"},
	"Philosophy":              {"Philosophy"},
	"Politics":                {"Politics"},
	"Poetry":                  {"Poetry"},
	"Psychology":              {"Psychology"},
	"Reference":               {"Reference"},
	"Romance":                 {"Romance"},
	"Science":                 {"Science"},
	"Science Fiction":         {"Science Fiction"},
	"Science Fiction Fantasy": {"Science Fiction", "Fantasy"},
	"Self Help":               {"Self Help"},
	"Sociology":               {"Sociology"},
	"Spirituality":            {"Spirituality"},
	"Suspense":                {"Suspense"},
	"Thriller":                {"Thriller"},
	"Travel":                  {"Travel"},
	"Paranormal > Vampires":   {"Vampires"},
	"War":                     {"War"},
	"Western":                 {"Western"},
	"Language > Writing":      {"Writing"},
	"Writing > Essays":        {"Writing"},
	"Young Adult":             {"Young Adult"},
}

const (
	DefaultCategoryPrefix = "☞"
	DefaultMaxDownloads   = 5
)

// Defaults leaves every formatting rule off, so records carry the source
// values until a rule is switched on.
func Defaults() Prefs {
	return Prefs{
		GenreMappings:  cloneMappings(defaultGenreMappings),
		CategoryPrefix: DefaultCategoryPrefix,
		ConvertTag:     false,
		GetCategory:    false,
		SmallCover:     false,
		LargeCover:     false,
		GetAllAuthors:  true,
		AppendTOC:      true,
		CommentsSuffix: "",
		MaxDownloads:   DefaultMaxDownloads,
	}
}
