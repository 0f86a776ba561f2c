package pixiv

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	modeDir  = 0755
	modeFile = 0644
)

// Save downloads this work if needed, and writes it to `dir`.
//
// A single page work is written to "{dir}/{id}.{ext}".  A work with more than
// one page is written to "{dir}/{id}/{page}.{ext}", with pages numbered from 0.
//
// Returns the path of the file or directory written.
func (img *Image) Save(ctx context.Context, dir string) (string, error) {
	pages, err := img.Payload(ctx)
	if err != nil {
		return "", err
	}

	id, err := img.Identifier()
	if err != nil {
		return "", err
	}

	fs := img.client.FS()
	ext := extension(img.template)

	if len(pages) == 1 {
		if err := fs.MkdirAll(dir, modeDir); err != nil {
			return "", err
		}
		filename := filepath.Join(dir, fmt.Sprintf("%d.%s", id, ext))
		return filename, afero.WriteFile(fs, filename, pages[0], modeFile)
	}

	imageDir := filepath.Join(dir, strconv.Itoa(id))
	if err := fs.MkdirAll(imageDir, modeDir); err != nil {
		return "", err
	}
	for page, data := range pages {
		filename := filepath.Join(imageDir, fmt.Sprintf("%d.%s", page, ext))
		if err := afero.WriteFile(fs, filename, data, modeFile); err != nil {
			return "", err
		}
	}
	return imageDir, nil
}

// SaveInfo writes everything currently known about this work to
// "{dir}/{id}.yaml".
func (img *Image) SaveInfo(dir string) (string, error) {
	id, err := img.Identifier()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(img.Info())
	if err != nil {
		return "", err
	}

	fs := img.client.FS()
	if err := fs.MkdirAll(dir, modeDir); err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("%d.yaml", id))
	return filename, afero.WriteFile(fs, filename, data, modeFile)
}

// Exists returns true if this work has already been saved to `dir`.
func (img *Image) Exists(dir string) (bool, error) {
	id, err := img.Identifier()
	if err != nil {
		return false, err
	}

	fs := img.client.FS()
	if img.PageCount() > 1 {
		return afero.DirExists(fs, filepath.Join(dir, strconv.Itoa(id)))
	}

	extensions := []string{"jpg", "png"}
	if img.state != stateIdentifierOnly && img.template != NotAnImage {
		extensions = append(extensions, extension(img.template))
	}
	for _, ext := range extensions {
		exists, err := afero.Exists(fs, filepath.Join(dir, fmt.Sprintf("%d.%s", id, ext)))
		if err != nil || exists {
			return exists, err
		}
	}
	return false, nil
}
