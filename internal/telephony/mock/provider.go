// Package mock provides an in-memory telephony provider for tests and local runs.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/domain"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/telephony"
)

// Provider records every invocation and answers with canned receipts. It never
// reaches the network, so the service runs end to end without credentials.
type Provider struct {
	mu       sync.Mutex
	calls    []telephony.CreateCallInput
	messages []telephony.SendMessageInput
	nextErr  error
	seq      int
}

// NewProvider constructs an empty mock provider.
func NewProvider() *Provider {
	return &Provider{}
}

// FailWith arms the next invocation to return err instead of a receipt.
func (p *Provider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextErr = err
}

// CreateCall records the input and returns a queued receipt with a CA-prefixed SID.
func (p *Provider) CreateCall(_ context.Context, input telephony.CreateCallInput) (*domain.CallReceipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.takeErr(); err != nil {
		return nil, err
	}

	p.calls = append(p.calls, input)
	p.seq++
	return &domain.CallReceipt{
		SID:    fmt.Sprintf("CA%030d", p.seq),
		To:     input.To,
		From:   input.From,
		Status: domain.CallStatusQueued,
	}, nil
}

// SendMessage records the input and returns a queued receipt with an SM-prefixed SID.
func (p *Provider) SendMessage(_ context.Context, input telephony.SendMessageInput) (*domain.MessageReceipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.takeErr(); err != nil {
		return nil, err
	}

	p.messages = append(p.messages, input)
	p.seq++
	return &domain.MessageReceipt{
		SID:    fmt.Sprintf("SM%030d", p.seq),
		To:     input.To,
		From:   input.From,
		Status: string(domain.CallStatusQueued),
	}, nil
}

// Calls returns a copy of the recorded call inputs.
func (p *Provider) Calls() []telephony.CreateCallInput {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]telephony.CreateCallInput(nil), p.calls...)
}

// Messages returns a copy of the recorded message inputs.
func (p *Provider) Messages() []telephony.SendMessageInput {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]telephony.SendMessageInput(nil), p.messages...)
}

func (p *Provider) takeErr() error {
	err := p.nextErr
	p.nextErr = nil
	return err
}
