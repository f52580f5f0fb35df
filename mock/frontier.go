package mock

import (
	"context"

	"github.com/fwojciec/cdpdocs"
)

var _ cdpdocs.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of cdpdocs.URLFrontier.
type URLFrontier struct {
	PushFn    func(url string) bool
	PopFn     func() (string, bool)
	LenFn     func() int
	VisitedFn func() int
}

func (f *URLFrontier) Push(url string) bool {
	return f.PushFn(url)
}

func (f *URLFrontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Visited() int {
	return f.VisitedFn()
}

var _ cdpdocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of cdpdocs.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
