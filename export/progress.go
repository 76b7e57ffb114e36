package export

import (
	"sync"
)

// Progress converts "N of M settled" into a whole percentage. An item is
// settled once it has been attempted, successfully or not: 100% means "done
// attempting", never "100% succeeded". The succeeded count travels separately
// in the job summary.
type Progress struct {
	mu       sync.Mutex
	total    int
	settled  int
	onChange func(percent int)
}

func NewProgress(total int, onChange func(percent int)) *Progress {
	return &Progress{total: total, onChange: onChange}
}

func (p *Progress) Settle() {
	p.mu.Lock()
	if p.settled < p.total {
		p.settled++
	}
	percent := p.percentLocked()
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(percent)
	}
}

func (p *Progress) Percent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.percentLocked()
}

func (p *Progress) percentLocked() int {
	if p.total <= 0 {
		return 100
	}
	percent := (p.settled * 100) / p.total
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent
}
