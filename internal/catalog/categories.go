// Package catalog содержит закрытый справочник категорий промокодов.
// Набор фиксированный и не расширяется пользователями; фронтенд и бэкенд
// обязаны работать ровно с этим списком.
package catalog

// Category — пара отображаемое имя / slug.
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Categories — все категории в порядке отображения.
var Categories = []Category{
	{Name: "動画配信", Slug: "video-streaming"},
	{Name: "音楽", Slug: "music"},
	{Name: "書籍", Slug: "books"},
	{Name: "ファッション", Slug: "fashion"},
	{Name: "飲食", Slug: "food-drink"},
	{Name: "旅行", Slug: "travel"},
	{Name: "ゲーム", Slug: "gaming"},
	{Name: "学習", Slug: "learning"},
	{Name: "スポーツ", Slug: "sports"},
	{Name: "ショッピング", Slug: "shopping"},
	{Name: "その他", Slug: "other"},
}

var (
	byName = make(map[string]Category, len(Categories))
	bySlug = make(map[string]Category, len(Categories))
)

func init() {
	for _, c := range Categories {
		byName[c.Name] = c
		bySlug[c.Slug] = c
	}
}

// SlugByName возвращает slug по отображаемому имени категории.
func SlugByName(name string) (string, bool) {
	c, ok := byName[name]
	return c.Slug, ok
}

// BySlug возвращает категорию по slug.
func BySlug(slug string) (Category, bool) {
	c, ok := bySlug[slug]
	return c, ok
}

// ValidSlug сообщает, входит ли slug в справочник.
func ValidSlug(slug string) bool {
	_, ok := bySlug[slug]
	return ok
}
