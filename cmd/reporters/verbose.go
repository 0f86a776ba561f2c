package reporters

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jwalton/gchalk"
	"github.com/jwalton/pixivdl/pkg/pixiv"
	"github.com/jwalton/pixivdl/pkg/pixivdl"
)

type verboseReporter struct {
	mutex sync.Mutex
	out   io.Writer
	err   io.Writer
	total int
	count int
}

func (p *verboseReporter) log(message string, a ...interface{}) {
	p.mutex.Lock()
	fmt.Fprintln(p.out, fmt.Sprintf(message, a...))
	p.mutex.Unlock()
}

func (p *verboseReporter) logError(message string, a ...interface{}) {
	p.mutex.Lock()
	io.WriteString(p.err, gchalk.Stderr.BrightRed(fmt.Sprintf(message, a...))+"\n")
	p.mutex.Unlock()
}

func (p *verboseReporter) getItemLabel(image *pixiv.Image) string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	outOf := "??"
	if p.total > 0 {
		outOf = fmt.Sprintf("%d", p.total)
	}
	return fmt.Sprintf("%s (%d/%s)", imageLabel(image), p.count, outOf)
}

// next counts one more image as handled.
func (p *verboseReporter) next() {
	p.mutex.Lock()
	p.count++
	p.mutex.Unlock()
}

func (p *verboseReporter) RankingFetch(ranking *pixivdl.Ranking) {
	p.log("Fetching ranking: %s", rankingLabel(ranking))
}

func (p *verboseReporter) RankingStart(ranking *pixivdl.Ranking) {
	if ranking.TotalImageCount >= 0 {
		p.mutex.Lock()
		p.total += ranking.TotalImageCount
		p.mutex.Unlock()
		p.log("Starting ranking: %s (%d images)", rankingLabel(ranking), ranking.TotalImageCount)
	}
}

func (p *verboseReporter) RankingEnd(ranking *pixivdl.Ranking, err error) {
	if err == nil {
		p.log("Done ranking: %s", rankingLabel(ranking))
	} else {
		p.logError("Error fetching ranking: %s: %v", rankingLabel(ranking), err)
	}
}

func (p *verboseReporter) ImageSkip(image *pixiv.Image, err error) {
	p.next()
	if err != nil {
		p.log("Skipping:    %s: %s", p.getItemLabel(image), err)
	} else {
		p.log("Skipping:    %s", p.getItemLabel(image))
	}
}

func (p *verboseReporter) ImageStart(image *pixiv.Image) {
	p.next()
	p.log("Downloading: %s", p.getItemLabel(image))
}

func (p *verboseReporter) ImageEnd(image *pixiv.Image, err error) {
	if err != nil {
		p.logError("Error:       %s: %v", imageLabel(image), err)
	} else {
		p.log("Downloaded:  %s", imageLabel(image))
	}
}

func (p *verboseReporter) Done() {
	p.log("All done")
}

// NewVerboseReporter returns a new ProgressReporter which logs all activity to stdout.
func NewVerboseReporter() pixivdl.ProgressReporter {
	return newVerboseReporter(os.Stdout, os.Stderr)
}

func newVerboseReporter(out io.Writer, err io.Writer) *verboseReporter {
	return &verboseReporter{out: out, err: err}
}
