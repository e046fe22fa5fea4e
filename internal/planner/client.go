package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient"
	"github.com/a2aproject/a2a-go/a2aclient/agentcard"

	"travel-planner/internal/config"
)

// messageClient is the slice of a2aclient.Client the planner needs.
type messageClient interface {
	SendMessage(ctx context.Context, params *a2a.MessageSendParams) (a2a.SendMessageResult, error)
	GetTask(ctx context.Context, query *a2a.TaskQueryParams) (*a2a.Task, error)
	Destroy() error
}

// dialFunc resolves an agent base URL into a connected client.
type dialFunc func(ctx context.Context, url string) (messageClient, error)

// dialAgent fetches the agent card published at url and connects to the
// transport it advertises.
func dialAgent(ctx context.Context, url string) (messageClient, error) {
	card, err := agentcard.DefaultResolver.Resolve(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve agent card: %w", err)
	}
	client, err := a2aclient.NewFromCard(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("failed to create A2A client: %w", err)
	}
	return client, nil
}

// connect returns the cached connection for agent, dialing on first use.
func (p *Planner) connect(ctx context.Context, agent config.Agent) (messageClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.conns[agent.Name]; ok {
		return conn, nil
	}
	conn, err := p.dial(ctx, agent.URL)
	if err != nil {
		return nil, err
	}
	p.conns[agent.Name] = conn
	return conn, nil
}

// ask sends query to agent and waits for the answer text. Agents may
// respond with a bare message, a finished task, or a task that is still
// running; running tasks are polled until they reach a terminal state.
func (p *Planner) ask(ctx context.Context, agent config.Agent, query string) (string, error) {
	conn, err := p.connect(ctx, agent)
	if err != nil {
		return "", err
	}

	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.TextPart{Text: query})
	result, err := conn.SendMessage(ctx, &a2a.MessageSendParams{Message: msg})
	if err != nil {
		return "", fmt.Errorf("send failed: %w", err)
	}

	switch res := result.(type) {
	case *a2a.Message:
		return messageText(res), nil
	case *a2a.Task:
		if res.Status.State.Terminal() {
			return taskText(res)
		}
	}

	info := result.TaskInfo()
	if info.TaskID == "" {
		return "", errors.New("response carries no task")
	}
	task, err := p.awaitTask(ctx, conn, info.TaskID)
	if err != nil {
		return "", err
	}
	return taskText(task)
}

// awaitTask polls the agent until the task reaches a terminal state. A
// task asking for more input fails immediately since the planner has
// nothing further to offer.
func (p *Planner) awaitTask(ctx context.Context, conn messageClient, id a2a.TaskID) (*a2a.Task, error) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		task, err := conn.GetTask(ctx, &a2a.TaskQueryParams{ID: id})
		if err != nil {
			return nil, fmt.Errorf("failed to get task %s: %w", id, err)
		}
		if task.Status.State == a2a.TaskStateInputRequired {
			return nil, fmt.Errorf("task needs further input: %s", statusText(task))
		}
		if task.Status.State.Terminal() {
			return task, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// taskText extracts the answer text from a terminal task.
func taskText(task *a2a.Task) (string, error) {
	switch task.Status.State {
	case a2a.TaskStateCompleted:
		if text := artifactText(task); text != "" {
			return text, nil
		}
		return statusText(task), nil
	case a2a.TaskStateFailed:
		return "", fmt.Errorf("task failed: %s", statusText(task))
	case a2a.TaskStateCanceled:
		return "", fmt.Errorf("task canceled: %s", statusText(task))
	default:
		return "", fmt.Errorf("task ended in unexpected state %q", task.Status.State)
	}
}

// artifactText joins the text parts of every artifact on the task.
func artifactText(task *a2a.Task) string {
	var texts []string
	for _, artifact := range task.Artifacts {
		for _, part := range artifact.Parts {
			if tp, ok := part.(a2a.TextPart); ok && tp.Text != "" {
				texts = append(texts, tp.Text)
			}
		}
	}
	return strings.Join(texts, "\n")
}

func statusText(task *a2a.Task) string {
	return messageText(task.Status.Message)
}

func messageText(msg *a2a.Message) string {
	if msg == nil {
		return ""
	}
	var texts []string
	for _, part := range msg.Parts {
		if tp, ok := part.(a2a.TextPart); ok && tp.Text != "" {
			texts = append(texts, tp.Text)
		}
	}
	return strings.Join(texts, "\n")
}
