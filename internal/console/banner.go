package console

import (
	"sync"
	"time"
)

// Banner holds at most one active success and one active error message.
// The channels are independent: setting one never clears the other, and a
// new message simply overwrites the previous one on its channel. Success
// messages auto-clear after the configured delay; errors persist until
// dismissed or superseded.
type Banner struct {
	mu         sync.Mutex
	success    string
	errMsg     string
	successSeq uint64
	successTTL time.Duration
}

const defaultSuccessTTL = 3 * time.Second

func NewBanner(successTTL time.Duration) *Banner {
	if successTTL <= 0 {
		successTTL = defaultSuccessTTL
	}
	return &Banner{successTTL: successTTL}
}

func (b *Banner) SetSuccess(msg string) {
	b.mu.Lock()
	b.success = msg
	b.successSeq++
	seq := b.successSeq
	b.mu.Unlock()

	time.AfterFunc(b.successTTL, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// A newer success message owns the channel now.
		if b.successSeq == seq {
			b.success = ""
		}
	})
}

func (b *Banner) SetError(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errMsg = msg
}

func (b *Banner) ClearSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.success = ""
	b.successSeq++
}

func (b *Banner) ClearError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errMsg = ""
}

func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.success = ""
	b.errMsg = ""
	b.successSeq++
}

func (b *Banner) Messages() (success, errMsg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.success, b.errMsg
}

// Success and Error make Banner the reporter for stores and workflows.
func (b *Banner) Success(msg string) { b.SetSuccess(msg) }
func (b *Banner) Error(msg string)   { b.SetError(msg) }
