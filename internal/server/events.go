package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
)

// EventWriter is the subset of eventqueue.Queue the task helpers write to.
type EventWriter interface {
	Write(ctx context.Context, event a2a.Event) error
}

// TextTaskFunc produces the text result for one task request.
type TextTaskFunc func(ctx context.Context) (string, error)

// RunTextTask drives the event sequence for a task that resolves to a
// single text artifact: Submitted (new tasks only), Working, the artifact,
// then a final Completed status. A failure from fn becomes a final Failed
// status carrying the cause text; the error is consumed so the failure
// stays recorded on the task rather than aborting the request.
func RunTextTask(ctx context.Context, reqCtx *a2asrv.RequestContext, queue EventWriter, fn TextTaskFunc) error {
	if reqCtx.StoredTask == nil {
		submitted := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateSubmitted, nil)
		if err := queue.Write(ctx, submitted); err != nil {
			return fmt.Errorf("failed to write submitted event: %w", err)
		}
	}

	working := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, nil)
	if err := queue.Write(ctx, working); err != nil {
		return fmt.Errorf("failed to write working event: %w", err)
	}

	text, err := fn(ctx)
	if err != nil {
		return WriteFailed(ctx, reqCtx, queue, err)
	}

	artifact := a2a.NewArtifactEvent(reqCtx, a2a.TextPart{Text: text})
	if err := queue.Write(ctx, artifact); err != nil {
		return fmt.Errorf("failed to write artifact event: %w", err)
	}

	closing := a2a.NewArtifactUpdateEvent(reqCtx, artifact.Artifact.ID)
	closing.LastChunk = true
	if err := queue.Write(ctx, closing); err != nil {
		return fmt.Errorf("failed to write artifact close event: %w", err)
	}

	completed := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCompleted, nil)
	completed.Final = true
	if err := queue.Write(ctx, completed); err != nil {
		return fmt.Errorf("failed to write completed event: %w", err)
	}
	return nil
}

// WriteFailed emits a final Failed status carrying the cause text.
func WriteFailed(ctx context.Context, reqCtx *a2asrv.RequestContext, queue EventWriter, cause error) error {
	msg := a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.TextPart{Text: cause.Error()})
	ev := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateFailed, msg)
	ev.Final = true
	return queue.Write(ctx, ev)
}

// WriteCanceled emits a final Canceled status.
func WriteCanceled(ctx context.Context, reqCtx *a2asrv.RequestContext, queue EventWriter) error {
	ev := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCanceled, nil)
	ev.Final = true
	return queue.Write(ctx, ev)
}

// MessageText concatenates the text parts of a message.
func MessageText(msg *a2a.Message) string {
	if msg == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range msg.Parts {
		if tp, ok := part.(a2a.TextPart); ok {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}
