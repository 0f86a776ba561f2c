package reporters

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jwalton/gchalk"
	"github.com/jwalton/pixivdl/pkg/pixiv"
	"github.com/jwalton/pixivdl/pkg/pixivdl"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const maxWidth = 100

var progressBarForeground = gchalk.WithBgCyan().Black
var progressBarBackground = gchalk.WithBgBrightBlack().BrightWhite

type downloadingEntry struct {
	label   string
	started time.Time
}

type progressBarReporter struct {
	mutex  sync.Mutex
	width  int
	height int
	// This is the number of lines we want to erase at the start of the next render.
	linesToErase int
	// Images that are currently downloading, indexed by image.
	downloading map[*pixiv.Image]*downloadingEntry
	// total is the number of images we expect to handle, or 0 if unknown.
	total int
	// done is the number of images which have been skipped or finished.
	done int
}

// moveUp moves the cursor up the specified number of lines.
func (*progressBarReporter) moveUp(lines int) {
	fmt.Printf("\u001B[%dA\r", lines)
}

func (p *progressBarReporter) getScreenSize() (width int, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		// Use the last width we had.
		width = p.width
		height = p.height
	}

	if width > maxWidth {
		width = maxWidth
	}

	p.width = width
	p.height = height

	return width, height
}

func (p *progressBarReporter) render(message string) {
	width, height := p.getScreenSize()

	// Move the cursor to the top of the area we want to overwrite.
	if p.linesToErase > 1 {
		p.moveUp(p.linesToErase - 1)
	}

	// If there's a message, print it.
	if message != "" {
		fmt.Print("\r" + strings.Repeat(" ", width))
		fmt.Println("\r" + message)
	}

	items := make([]*downloadingEntry, 0, len(p.downloading))
	for _, entry := range p.downloading {
		items = append(items, entry)
	}

	// Oldest downloads at the top.
	sort.Slice(items, func(i int, j int) bool {
		return items[i].started.Before(items[j].started)
	})

	// Leave room for the overall bar, and don't print more lines than will
	// fit on the screen.
	if len(items) > (height - 2) {
		items = items[0:max(height-2, 0)]
	}

	p.renderBar(p.overallLabel(), p.percentComplete(), width)
	for _, item := range items {
		fmt.Println()
		fmt.Print("\r" + lineToWidth(" "+item.label+" "+elapsed(item.started), width-1))
	}

	p.linesToErase = len(items) + 1
}

func (p *progressBarReporter) overallLabel() string {
	if p.total == 0 {
		return fmt.Sprintf("%d images", p.done)
	}
	return fmt.Sprintf("%d/%d images", p.done, p.total)
}

func (p *progressBarReporter) percentComplete() float64 {
	if p.total == 0 {
		return 0
	}
	return float64(p.done) / float64(p.total) * 100
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func elapsed(since time.Time) string {
	return fmt.Sprintf("(%ds)", int(time.Since(since).Seconds()))
}

// lineToWidth pads or truncates `message` to exactly `width` terminal columns.
func lineToWidth(message string, width int) string {
	if width < 0 {
		width = 0
	}
	message = runewidth.Truncate(message, width, "")
	return runewidth.FillRight(message, width)
}

func (p *progressBarReporter) renderBar(label string, percent float64, width int) {
	complete := fmt.Sprintf("%.2f%%", percent)

	// +1 for space, +1 for left margin.
	barWidth := width - 1
	labelWidth := barWidth - runewidth.StringWidth(complete) - 2
	if labelWidth < 0 {
		labelWidth = 0
	}
	label = runewidth.Truncate(label, labelWidth, "…")

	line := lineToWidth(" "+label+" "+complete, barWidth)

	completeWidth := int(float64(width) * (percent / 100.0))
	if completeWidth < 0 {
		completeWidth = 0
	}

	// The part that will be colored in the "done" color
	lineLeft := runewidth.Truncate(line, completeWidth, "")
	// The part that will be colored in the "not done" color
	lineRight := line[len(lineLeft):]

	fmt.Printf("\r%s%s",
		progressBarForeground(lineLeft),
		progressBarBackground(lineRight),
	)
}

func (p *progressBarReporter) RankingFetch(ranking *pixivdl.Ranking) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	message := fmt.Sprintf("%s Fetching ranking from %s", gchalk.BrightBlue("Info    :"), rankingLabel(ranking))
	p.render(message)
}

func (p *progressBarReporter) RankingStart(ranking *pixivdl.Ranking) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if ranking.TotalImageCount > 0 {
		p.total += ranking.TotalImageCount
		p.render("")
	}
}

func (p *progressBarReporter) RankingEnd(ranking *pixivdl.Ranking, err error) {
	if err == nil {
		return
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.render(fmt.Sprintf("%s %s: %v", gchalk.BrightRed("Error   :"), rankingLabel(ranking), err))
}

func (p *progressBarReporter) ImageSkip(image *pixiv.Image, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.done++

	var message string
	if err == nil {
		message = fmt.Sprintf("%s %s", gchalk.BrightBlue("Skipped :"), imageLabel(image))
	} else {
		message = fmt.Sprintf("%s %s: %v", gchalk.BrightBlue("Skipped :"), imageLabel(image), err)
	}
	p.render(message)
}

func (p *progressBarReporter) ImageStart(image *pixiv.Image) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.downloading[image] = &downloadingEntry{
		label:   imageLabel(image),
		started: time.Now(),
	}
	p.render("")
}

func (p *progressBarReporter) ImageEnd(image *pixiv.Image, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	delete(p.downloading, image)
	p.done++

	var message string
	if err == nil {
		message = gchalk.BrightGreen("Complete: ") + imageLabel(image)
	} else {
		message = fmt.Sprintf("%s %s: %v", gchalk.BrightRed("Error   :"), imageLabel(image), err)
	}
	p.render(message)
}

func (p *progressBarReporter) Done() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.render("")
	fmt.Println()
	fmt.Println("All done")
}

// NewProgressBarReporter returns a new ProgressReporter which shows a pretty progress bar.
func NewProgressBarReporter() (pixivdl.ProgressReporter, error) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))

	if err != nil {
		return nil, err
	}

	return &progressBarReporter{
		width:        width,
		height:       height,
		linesToErase: 0,
		downloading:  map[*pixiv.Image]*downloadingEntry{},
	}, nil
}
