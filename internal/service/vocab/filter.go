package vocab

import "github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"

// FilterView returns the items matching filter, in buffer order, as a new
// slice. It never mutates items and never triggers a fetch: it only sees
// what has been loaded so far, so a narrow filter can look sparse while
// matching rows are still unfetched.
func FilterView(items []domain.VocabularyItem, filter domain.LevelFilter) []domain.VocabularyItem {
	out := make([]domain.VocabularyItem, 0, len(items))
	for _, it := range items {
		if filter.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
