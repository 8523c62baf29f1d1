package models

type Category string

const (
	CategoryMemory      Category = "memory"
	CategoryPresent     Category = "present"
	CategoryFuture      Category = "future"
	CategoryImagination Category = "imagination"
)

// CategoryStyle binds a category to its presentation resources. The table is
// static so callers never depend on a rendering toolkit.
type CategoryStyle struct {
	DisplayName string `json:"display_name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

var categoryStyles = map[Category]CategoryStyle{
	CategoryMemory:      {DisplayName: "Memory", Icon: "book.closed", Color: "#F2A6B3"},
	CategoryPresent:     {DisplayName: "Present", Icon: "sparkles", Color: "#F7D794"},
	CategoryFuture:      {DisplayName: "Future", Icon: "airplane", Color: "#A6C8F2"},
	CategoryImagination: {DisplayName: "Imagination", Icon: "wand.and.stars", Color: "#C8A6F2"},
}

func (c Category) Valid() bool {
	_, ok := categoryStyles[c]
	return ok
}

func (c Category) Style() CategoryStyle {
	return categoryStyles[c]
}

func Categories() []Category {
	return []Category{CategoryMemory, CategoryPresent, CategoryFuture, CategoryImagination}
}

type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Emoji    string   `json:"emoji"`
}

// Catalog is the fixed question list. Ids are unique and stable; the list is
// append-only across releases.
var Catalog = []Question{
	{ID: "1", Text: "What struck you most about the day we first met?", Category: CategoryMemory, Emoji: "💝"},
	{ID: "2", Text: "In what ways do you think I have changed lately?", Category: CategoryPresent, Emoji: "🌟"},
	{ID: "3", Text: "Where would we go if we could travel anywhere together right now?", Category: CategoryFuture, Emoji: "✈️"},
	{ID: "4", Text: "If the day we first met came around again, what would be different?", Category: CategoryImagination, Emoji: "🎬"},
	{ID: "5", Text: "What has been the happiest moment of our time together so far?", Category: CategoryMemory, Emoji: "💫"},
	{ID: "6", Text: "When were you most thankful for me?", Category: CategoryMemory, Emoji: "🙏"},
	{ID: "7", Text: "Which side of me do you find most attractive these days?", Category: CategoryPresent, Emoji: "✨"},
	{ID: "8", Text: "If we could redo our first date, how would you want to spend it?", Category: CategoryImagination, Emoji: "📅"},
	{ID: "9", Text: "What will we look like ten years from now?", Category: CategoryFuture, Emoji: "🔮"},
	{ID: "10", Text: "What do you most want to say to me right at this moment?", Category: CategoryPresent, Emoji: "💌"},
	{ID: "11", Text: "What was our first kiss like?", Category: CategoryMemory, Emoji: "💋"},
	{ID: "12", Text: "When does your heart race the most these days?", Category: CategoryPresent, Emoji: "💓"},
	{ID: "13", Text: "What will our wedding look like?", Category: CategoryFuture, Emoji: "👰"},
	{ID: "14", Text: "If you could swap one of my habits with yours, which would it be?", Category: CategoryImagination, Emoji: "🔄"},
	{ID: "15", Text: "Do you remember the moment of our first confession?", Category: CategoryMemory, Emoji: "💘"},
}

func QuestionByID(id string) (Question, bool) {
	for _, q := range Catalog {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
