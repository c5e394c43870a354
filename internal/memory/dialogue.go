package memory

import (
	"context"
	"strings"

	"docchat/internal/domain"
)

// Dialogue is a rolling window over the conversation transcript. It caps the
// stored transcript at max messages (oldest evicted first) and renders the
// last window messages into the prompt's history block.
type Dialogue struct {
	max    int
	window int
	msgs   []domain.Message
}

func NewDialogue(max, window int) *Dialogue {
	if max <= 0 {
		max = 40
	}
	if window <= 0 || window > max {
		window = max
	}
	return &Dialogue{max: max, window: window}
}

// Append records one turn, evicting the oldest message once the cap is hit.
func (d *Dialogue) Append(role domain.Role, content string) {
	d.msgs = append(d.msgs, domain.Message{Role: role, Content: content})
	if len(d.msgs) > d.max {
		d.msgs = d.msgs[len(d.msgs)-d.max:]
	}
}

// Messages returns the retained transcript, oldest first.
func (d *Dialogue) Messages() []domain.Message {
	out := make([]domain.Message, len(d.msgs))
	copy(out, d.msgs)
	return out
}

// RecentUserQuery joins the contents of the last n user turns, oldest first,
// with newlines. This is the retrieval query for the snippet buffer.
func (d *Dialogue) RecentUserQuery(n int) string {
	var parts []string
	for i := len(d.msgs) - 1; i >= 0 && len(parts) < n; i-- {
		if d.msgs[i].Role == domain.RoleUser {
			parts = append(parts, d.msgs[i].Content)
		}
	}
	// collected newest first, render oldest first
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "\n")
}

// Merge renders the last window messages as prompt history. The trailing
// user turn is excluded: it fills the prompt's input slot instead.
func (d *Dialogue) Merge(_ context.Context, _ string) (string, error) {
	msgs := d.msgs
	if n := len(msgs); n > 0 && msgs[n-1].Role == domain.RoleUser {
		msgs = msgs[:n-1]
	}
	if len(msgs) > d.window {
		msgs = msgs[len(msgs)-d.window:]
	}
	var b strings.Builder
	for _, m := range msgs {
		switch m.Role {
		case domain.RoleUser:
			b.WriteString("Customer: ")
		case domain.RoleAssistant:
			b.WriteString("Expert: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
