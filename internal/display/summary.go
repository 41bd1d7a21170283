package display

import (
	"fmt"

	"github.com/harrison/scout/internal/models"
)

// Summary formats the closing line of a search.
func Summary(r models.SearchResults) string {
	return fmt.Sprintf("Explored %d directories and searched %d objects, found %d directories and %d files.",
		r.DirectoriesPushed, r.ObjectsScanned, r.DirectoriesMatched, r.FilesMatched)
}
