package convo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"docchat/internal/domain"
	"docchat/internal/llm"
	"docchat/internal/memory"
)

// promptTemplate is the fixed prompt. {snippets}, {history} and {input} are
// filled per turn.
const promptTemplate = `You are an expert, tasked with helping customers with their questions. They will ask you questions and provide technical snippets that may or may not contain the answer, and it's your job to find the answer if possible, while taking into account the entire conversation context.
The following snippets can be used to help you answer the questions:
{snippets}
The following is a friendly conversation between a customer and you. Please answer the customer's needs based on the provided snippets and the conversation history. Make sure to take the previous messages in consideration, as they contain additional context.
If the provided snippets don't include the answer, please say so, and don't try to make up an answer instead. Include in your reply the title of the document and the page from where your answer is coming from, if applicable.

{history}
Customer: {input}
`

// State aggregates everything one active conversation owns: the dialogue
// window, the snippet buffer and, through the buffer, the session index.
// Created on the first user message, discarded when the session ends.
type State struct {
	ID       string
	History  *memory.Dialogue
	Snippets *memory.Snippets
}

func NewState(history *memory.Dialogue, snippets *memory.Snippets) *State {
	return &State{ID: uuid.NewString(), History: history, Snippets: snippets}
}

// Reply is one assistant answer plus the provenance of the snippets that
// were in view when it was produced.
type Reply struct {
	Text       string
	Provenance []memory.Provenance
}

// Orchestrator runs one conversation turn: retrieval query from recent user
// turns, snippet merge, prompt assembly, completion call, history update.
type Orchestrator struct {
	completer      llm.Completer
	searchMessages int
}

func NewOrchestrator(completer llm.Completer, searchMessages int) *Orchestrator {
	if searchMessages <= 0 {
		searchMessages = 4
	}
	return &Orchestrator{completer: completer, searchMessages: searchMessages}
}

// Respond handles one user message. The user turn is recorded before the
// completion call; the assistant turn only on success, so a failed call
// leaves the state consistent and the same input can be retried.
func (o *Orchestrator) Respond(ctx context.Context, state *State, userInput string) (Reply, error) {
	state.History.Append(domain.RoleUser, userInput)

	query := state.History.RecentUserQuery(o.searchMessages)
	snippetText, err := mergeBlock(ctx, state.Snippets, query)
	if err != nil {
		return Reply{}, err
	}
	historyText, err := mergeBlock(ctx, state.History, query)
	if err != nil {
		return Reply{}, err
	}

	prompt := strings.NewReplacer(
		"{snippets}", snippetText,
		"{history}", historyText,
		"{input}", userInput,
	).Replace(promptTemplate)

	answer, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		return Reply{}, &domain.CompletionError{Model: o.completer.Model(), Err: err}
	}

	state.History.Append(domain.RoleAssistant, answer)
	return Reply{Text: answer, Provenance: state.Snippets.Entries()}, nil
}

// mergeBlock loads one memory block for the prompt. An unbuilt index reads
// as an empty block, so the session can chat before any document is indexed;
// other failures surface.
func mergeBlock(ctx context.Context, m memory.Merger, query string) (string, error) {
	text, err := m.Merge(ctx, query)
	if err != nil {
		var empty *domain.EmptyIndexError
		if errors.As(err, &empty) {
			return "", nil
		}
		return "", err
	}
	return text, nil
}
