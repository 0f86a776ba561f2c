package pixivdl

import (
	"context"

	"github.com/jwalton/pixivdl/pkg/pixiv"
)

// downloadImage downloads an image and saves it in `toFolder`.
func downloadImage(
	ctx context.Context,
	image *pixiv.Image,
	toFolder string,
	writeInfo bool,
	reporter ProgressReporter,
) {
	var err error

	if image == nil {
		panic("pixivdl.downloadImage requires an image")
	}

	template, err := image.OriginalURLTemplate(ctx)
	if err != nil {
		reporter.ImageSkip(image, err)
		return
	}
	if template == pixiv.NotAnImage {
		reporter.ImageSkip(image, pixiv.ErrNotAnImage)
		return
	}

	// Verify image doesn't already exist before downloading
	exists, err := image.Exists(toFolder)
	if err != nil || exists {
		// If the image already exists, or we can't check for some reason, skip it.
		reporter.ImageSkip(image, err)
		return
	}

	reporter.ImageStart(image)
	defer func() { reporter.ImageEnd(image, err) }()

	if _, err = image.Save(ctx, toFolder); err != nil {
		return
	}

	if writeInfo {
		_, err = image.SaveInfo(toFolder)
	}
}
