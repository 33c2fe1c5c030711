package uploadclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор выполнения всей загрузки. Чанки, которые
// отправляются параллельно, добавляют байты в один общий индикатор.
type progressBar struct {
	out           io.Writer
	prefix        string
	total         int64
	current       int64
	lastRender    time.Time
	lastLineWidth int
	finished      bool
	mu            sync.Mutex
}

// newProgressBar возвращает nil, если out не задан: все методы nil-безопасны.
func newProgressBar(out io.Writer, prefix string, total int64) *progressBar {
	if out == nil {
		return nil
	}
	return &progressBar{
		out:    out,
		prefix: prefix,
		total:  total,
	}
}

func (p *progressBar) Write(b []byte) (int, error) {
	p.AddBytes(int64(len(b)))
	return len(b), nil
}

func (p *progressBar) AddBytes(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.current += n
	p.renderLocked(false, "")
}

func (p *progressBar) Finish() {
	p.complete(" ✓")
}

func (p *progressBar) Fail(err error) {
	p.complete(fmt.Sprintf(" ✗ %v", err))
}

func (p *progressBar) complete(suffix string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true
	p.renderLocked(true, suffix+"\n")
}

func (p *progressBar) renderLocked(force bool, suffix string) {
	now := time.Now()
	if !force && now.Sub(p.lastRender) < progressRenderPeriod {
		return
	}

	line := p.lineLocked() + suffix
	width := len(strings.TrimRight(line, "\n"))
	padding := ""
	if p.lastLineWidth > width {
		padding = strings.Repeat(" ", p.lastLineWidth-width)
	}
	p.lastLineWidth = width
	p.lastRender = now

	if strings.HasSuffix(line, "\n") {
		fmt.Fprintf(p.out, "\r%s%s\n", strings.TrimRight(line, "\n"), padding)
		return
	}
	fmt.Fprintf(p.out, "\r%s%s", line, padding)
}

func (p *progressBar) lineLocked() string {
	var b strings.Builder
	b.WriteString(p.prefix)
	b.WriteByte(' ')

	if p.total <= 0 {
		b.WriteString(humanize.Bytes(uint64(p.current)))
		b.WriteString(" transferred")
		return b.String()
	}

	ratio := float64(p.current) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*progressBarWidth + 0.5)
	b.WriteByte('[')
	b.WriteString(strings.Repeat("=", filled))
	b.WriteString(strings.Repeat(" ", progressBarWidth-filled))
	fmt.Fprintf(&b, "] %3d%% %s/%s", int(ratio*100+0.5), humanize.Bytes(uint64(p.current)), humanize.Bytes(uint64(p.total)))

	return b.String()
}
