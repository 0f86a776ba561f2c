package reporters

import (
	"fmt"

	"github.com/jwalton/pixivdl/pkg/pixiv"
	"github.com/jwalton/pixivdl/pkg/pixivdl"
)

// imageLabel returns a short description of an image for display.
func imageLabel(image *pixiv.Image) string {
	info := image.Info()
	label := image.String()
	if info.Title != "" {
		label = fmt.Sprintf("%s %q", label, info.Title)
	}
	if pages := image.PageCount(); pages > 1 {
		label = fmt.Sprintf("%s [%d pages]", label, pages)
	}
	return label
}

func rankingLabel(ranking *pixivdl.Ranking) string {
	if ranking.URL != "" {
		return ranking.URL
	}
	mode := ranking.Options.Mode
	if mode == "" {
		mode = "daily"
	}
	return mode + " ranking"
}
